package deckview

import (
	"math"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/swipedeck/internal/models"
)

// maxShearDeg caps the rotation used for shearing; past this the rows drift
// further than the card is wide.
const maxShearDeg = 60.0

// cardRenderer draws cards as bordered boxes of a fixed size and caches the
// result per card id.
type cardRenderer struct {
	width, height int
	style         string

	md    *glamour.TermRenderer
	cache map[string]string
}

func newCardRenderer(style string) *cardRenderer {
	return &cardRenderer{style: style, cache: make(map[string]string)}
}

// resize sets the outer card size in cells, dropping the cache when it
// changes.
func (r *cardRenderer) resize(width, height int) {
	if width == r.width && height == r.height {
		return
	}
	r.width, r.height = width, height
	r.md = nil
	clear(r.cache)
}

func (r *cardRenderer) contentWidth() int {
	return max(1, r.width-4)
}

func (r *cardRenderer) render(c models.Card) string {
	if out, ok := r.cache[c.ID]; ok {
		return out
	}
	out := r.build(c)
	r.cache[c.ID] = out
	return out
}

func (r *cardRenderer) build(c models.Card) string {
	w := r.contentWidth()
	inner := max(1, r.height-2)

	var head []string
	head = append(head, cardTitleStyle.Render(ansi.Truncate(c.Title, w, "…")))
	if c.ImageURI != "" {
		head = append(head, cardImageStyle.Render(ansi.Truncate("▣ "+c.ImageURI, w, "…")))
	}
	head = append(head, "")

	var foot []string
	if len(c.Tags) > 0 {
		tags := "#" + strings.Join(c.Tags, " #")
		foot = append(foot, cardTagStyle.Render(ansi.Truncate(tags, w, "…")))
	}

	room := inner - len(head) - len(foot)
	body := r.body(c.Body)
	if len(body) > room {
		body = body[:max(0, room)]
	}
	for len(body) < room {
		body = append(body, "")
	}

	lines := append(head, body...)
	lines = append(lines, foot...)
	if len(lines) > inner {
		lines = lines[:inner]
	}
	return cardBoxStyle.Width(r.width - 2).Render(strings.Join(lines, "\n"))
}

// body renders markdown to lines no wider than the card content area.
func (r *cardRenderer) body(md string) []string {
	if strings.TrimSpace(md) == "" {
		return nil
	}
	w := r.contentWidth()

	out := md
	if tr := r.markdown(); tr != nil {
		if rendered, err := tr.Render(md); err == nil {
			out = rendered
		}
	}

	var lines []string
	for _, l := range strings.Split(out, "\n") {
		l = strings.TrimRight(l, " ")
		if l == "" && len(lines) == 0 {
			continue
		}
		lines = append(lines, ansi.Truncate(l, w, ""))
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func (r *cardRenderer) markdown() *glamour.TermRenderer {
	if r.md != nil {
		return r.md
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.style),
		glamour.WithWordWrap(r.contentWidth()),
	)
	if err != nil {
		return nil
	}
	r.md = tr
	return tr
}

// shear returns the horizontal offset, in cells, of each row of a card of
// the given height rotated by deg around its center. Positive angles are
// clockwise, so rows above the center move right.
func shear(rows int, deg float64, cellW, cellH int) []int {
	offsets := make([]int, rows)
	if deg == 0 || cellW <= 0 {
		return offsets
	}
	deg = math.Max(-maxShearDeg, math.Min(maxShearDeg, deg))
	s := math.Sin(deg * math.Pi / 180)
	center := float64(rows-1) / 2
	for i := range offsets {
		dyPx := (float64(i) - center) * float64(cellH)
		offsets[i] = int(math.Round(-dyPx * s / float64(cellW)))
	}
	return offsets
}
