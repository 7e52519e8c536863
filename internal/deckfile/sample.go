package deckfile

import (
	"fmt"

	"github.com/marcus/swipedeck/internal/models"
)

var sampleImages = []string{
	"http://imgs.abduzeedo.com/files/paul0v2/unsplash/unsplash-04.jpg",
	"http://www.fluxdigital.co/wp-content/uploads/2015/04/Unsplash.jpg",
	"http://imgs.abduzeedo.com/files/paul0v2/unsplash/unsplash-09.jpg",
	"http://imgs.abduzeedo.com/files/paul0v2/unsplash/unsplash-01.jpg",
}

// Sample returns the built-in demo deck of eight cards
func Sample() *Deck {
	cards := make([]models.Card, 8)
	for i := range cards {
		cards[i] = models.Card{
			ID:       fmt.Sprintf("%d", i+1),
			Title:    fmt.Sprintf("Card #%d", i+1),
			Body:     "Cards can have a **title** and a _description_.",
			ImageURI: sampleImages[i%len(sampleImages)],
		}
	}
	return &Deck{Name: "sample", Cards: cards, Source: []string{"builtin"}}
}
