package swipe

import (
	"fmt"
	"time"
)

type card struct {
	id   string
	text string
}

func (c card) Key() string { return c.id }

func makeCards(n int) []card {
	cards := make([]card, n)
	for i := range cards {
		cards[i] = card{id: fmt.Sprintf("id%d", i+1), text: fmt.Sprintf("Card #%d", i+1)}
	}
	return cards
}

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

const frame = 16 * time.Millisecond

// pump advances the clock frame by frame until the controller is idle or
// limit elapses. It returns the number of frames pumped.
func pump(c *Controller[card], clk *fakeClock, limit time.Duration) int {
	frames := 0
	for elapsed := time.Duration(0); elapsed < limit; elapsed += frame {
		clk.Advance(frame)
		frames++
		if !c.Tick(clk.Now()) {
			break
		}
	}
	return frames
}

type swipeLog struct {
	right, left []Deck[card]
}

func newTestController(width float64, clk *fakeClock) (*Controller[card], *swipeLog) {
	log := &swipeLog{}
	c := NewController(Options[card]{
		ScreenWidth:  width,
		Clock:        clk,
		OnSwipeRight: func(d Deck[card]) { log.right = append(log.right, d) },
		OnSwipeLeft:  func(d Deck[card]) { log.left = append(log.left, d) },
	})
	return c, log
}
