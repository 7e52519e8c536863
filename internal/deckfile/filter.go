package deckfile

import (
	"slices"
	"strings"

	"github.com/marcus/swipedeck/internal/models"
	"github.com/sahilm/fuzzy"
)

type cardSource []models.Card

func (s cardSource) String(i int) string {
	c := s[i]
	if len(c.Tags) == 0 {
		return c.Title
	}
	return c.Title + " " + strings.Join(c.Tags, " ")
}

func (s cardSource) Len() int { return len(s) }

// Filter keeps cards whose title or tags fuzzy-match query. Matches stay in
// deck order; an empty query keeps every card.
func Filter(cards []models.Card, query string) []models.Card {
	query = strings.TrimSpace(query)
	if query == "" {
		return cards
	}

	matches := fuzzy.FindFrom(query, cardSource(cards))
	idx := make([]int, 0, len(matches))
	for _, m := range matches {
		idx = append(idx, m.Index)
	}
	slices.Sort(idx)

	out := make([]models.Card, 0, len(idx))
	for _, i := range idx {
		out = append(out, cards[i])
	}
	return out
}
