package db

const schemaVersion = 1

const schema = `
-- Verdicts: one row per committed swipe
CREATE TABLE IF NOT EXISTS verdicts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    deck_id TEXT NOT NULL,
    card_id TEXT NOT NULL,
    card_title TEXT DEFAULT '',
    direction TEXT NOT NULL CHECK (direction IN ('right', 'left')),
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_verdicts_deck ON verdicts(deck_id, id);

-- Schema metadata
CREATE TABLE IF NOT EXISTS schema_info (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`
