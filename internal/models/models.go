package models

import "time"

// Direction is the side a card was swiped to
type Direction string

const (
	DirectionRight Direction = "right"
	DirectionLeft  Direction = "left"
)

// IsValidDirection checks if a direction is valid
func IsValidDirection(d Direction) bool {
	return d == DirectionRight || d == DirectionLeft
}

// Label returns the user-facing name of a direction
func (d Direction) Label() string {
	switch d {
	case DirectionRight:
		return "like"
	case DirectionLeft:
		return "nope"
	default:
		return string(d)
	}
}

// Card is one entry of a deck
type Card struct {
	ID       string   `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Body     string   `json:"body,omitempty" yaml:"body,omitempty"`
	ImageURI string   `json:"image,omitempty" yaml:"image,omitempty"`
	Tags     []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Key returns the card ID; it identifies the card in the swipe stack.
func (c Card) Key() string {
	return c.ID
}

// Verdict records a single committed swipe
type Verdict struct {
	ID        int64     `json:"id"`
	DeckID    string    `json:"deck_id"`
	CardID    string    `json:"card_id"`
	CardTitle string    `json:"card_title,omitempty"`
	Direction Direction `json:"direction"`
	CreatedAt time.Time `json:"created_at"`
}

// Tally counts verdicts per direction for one deck
type Tally struct {
	DeckID string `json:"deck_id"`
	Right  int    `json:"right"`
	Left   int    `json:"left"`
}

// Total returns the number of verdicts in the tally
func (t Tally) Total() int {
	return t.Right + t.Left
}

// Config stores local settings
type Config struct {
	CellWidthPx    int      `json:"cell_width_px,omitempty"`
	CellHeightPx   int      `json:"cell_height_px,omitempty"`
	ExitDurationMs int      `json:"exit_duration_ms,omitempty"`
	FrameRate      int      `json:"frame_rate,omitempty"`
	MarkdownStyle  string   `json:"markdown_style,omitempty"`
	DeckPaths      []string `json:"deck_paths,omitempty"`
	RecordVerdicts *bool    `json:"record_verdicts,omitempty"`
}

// ShouldRecord reports whether swipes are written to the journal.
// Recording is on unless explicitly disabled.
func (c *Config) ShouldRecord() bool {
	return c.RecordVerdicts == nil || *c.RecordVerdicts
}
