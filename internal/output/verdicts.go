package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/swipedeck/internal/models"
)

const titleWidth = 32

// FormatDirection renders a direction as a colored like/nope label
func FormatDirection(d models.Direction) string {
	switch d {
	case models.DirectionRight:
		return rightStyle.Render("→ " + d.Label())
	case models.DirectionLeft:
		return leftStyle.Render("← " + d.Label())
	default:
		return mutedStyle.Render(string(d))
	}
}

// VerdictLines renders one line per verdict: age, direction, card and deck.
func VerdictLines(verdicts []models.Verdict, now time.Time) []string {
	lines := make([]string, 0, len(verdicts))
	for _, v := range verdicts {
		title := v.CardTitle
		if title == "" {
			title = v.CardID
		}
		title = ansi.Truncate(title, titleWidth, "…")
		pad := titleWidth - ansi.StringWidth(title)
		if pad < 0 {
			pad = 0
		}
		lines = append(lines, fmt.Sprintf("%-9s %s  %s%s  %s",
			formatTimeAgo(v.CreatedAt, now),
			FormatDirection(v.Direction),
			title, strings.Repeat(" ", pad),
			mutedStyle.Render(v.DeckID),
		))
	}
	return lines
}

// FormatTally renders "deck  3 like / 1 nope (4)"
func FormatTally(t models.Tally) string {
	return fmt.Sprintf("%s  %s / %s (%d)",
		t.DeckID,
		rightStyle.Render(fmt.Sprintf("%d like", t.Right)),
		leftStyle.Render(fmt.Sprintf("%d nope", t.Left)),
		t.Total(),
	)
}
