package db

import (
	"fmt"
	"time"

	"github.com/marcus/swipedeck/internal/models"
)

// VerdictFilter narrows ListVerdicts
type VerdictFilter struct {
	DeckID string // empty = all decks
	Limit  int    // 0 = unlimited
}

// RecordVerdict appends a verdict. ID and CreatedAt are filled in when unset.
func (db *DB) RecordVerdict(v *models.Verdict) error {
	if !models.IsValidDirection(v.Direction) {
		return fmt.Errorf("invalid direction %q", v.Direction)
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}

	res, err := db.conn.Exec(
		`INSERT INTO verdicts (deck_id, card_id, card_title, direction, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		v.DeckID, v.CardID, v.CardTitle, string(v.Direction), v.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert verdict: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("verdict id: %w", err)
	}
	v.ID = id
	return nil
}

// ListVerdicts returns verdicts newest first
func (db *DB) ListVerdicts(f VerdictFilter) ([]models.Verdict, error) {
	query := `SELECT id, deck_id, card_id, card_title, direction, created_at FROM verdicts`
	var args []any
	if f.DeckID != "" {
		query += ` WHERE deck_id = ?`
		args = append(args, f.DeckID)
	}
	query += ` ORDER BY id DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query verdicts: %w", err)
	}
	defer rows.Close()

	var verdicts []models.Verdict
	for rows.Next() {
		var v models.Verdict
		var dir, created string
		if err := rows.Scan(&v.ID, &v.DeckID, &v.CardID, &v.CardTitle, &dir, &created); err != nil {
			return nil, fmt.Errorf("scan verdict: %w", err)
		}
		v.Direction = models.Direction(dir)
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			v.CreatedAt = t
		}
		verdicts = append(verdicts, v)
	}
	return verdicts, rows.Err()
}

// Tallies counts verdicts per deck, ordered by deck id
func (db *DB) Tallies() ([]models.Tally, error) {
	rows, err := db.conn.Query(`
		SELECT deck_id,
		       SUM(CASE WHEN direction = 'right' THEN 1 ELSE 0 END),
		       SUM(CASE WHEN direction = 'left' THEN 1 ELSE 0 END)
		FROM verdicts
		GROUP BY deck_id
		ORDER BY deck_id`)
	if err != nil {
		return nil, fmt.Errorf("query tallies: %w", err)
	}
	defer rows.Close()

	var tallies []models.Tally
	for rows.Next() {
		var t models.Tally
		if err := rows.Scan(&t.DeckID, &t.Right, &t.Left); err != nil {
			return nil, fmt.Errorf("scan tally: %w", err)
		}
		tallies = append(tallies, t)
	}
	return tallies, rows.Err()
}

// ClearVerdicts deletes verdicts for one deck, or all when deckID is empty.
// It returns the number of rows removed.
func (db *DB) ClearVerdicts(deckID string) (int64, error) {
	query := `DELETE FROM verdicts`
	var args []any
	if deckID != "" {
		query += ` WHERE deck_id = ?`
		args = append(args, deckID)
	}
	res, err := db.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("clear verdicts: %w", err)
	}
	return res.RowsAffected()
}
