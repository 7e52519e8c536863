package swipe

// Item is an entry of the deck. Key must be stable and unique within a deck;
// the engine uses it for render keys only and never touches the payload.
type Item interface {
	Key() string
}

// Deck is an ordered sequence of items and the cursor of the first item
// still on screen. Invariant: 0 <= VisibleFrom <= len(Items).
type Deck[T Item] struct {
	Items       []T
	VisibleFrom int
}

// Len returns the number of items, including swiped ones.
func (d Deck[T]) Len() int {
	return len(d.Items)
}

// Exhausted reports whether every item has been swiped away.
func (d Deck[T]) Exhausted() bool {
	return d.VisibleFrom >= len(d.Items)
}

// Visible returns the items still on screen, topmost first.
func (d Deck[T]) Visible() []T {
	if d.Exhausted() {
		return nil
	}
	return d.Items[d.VisibleFrom:]
}

// Top returns the topmost visible item.
func (d Deck[T]) Top() (T, bool) {
	if d.Exhausted() {
		var zero T
		return zero, false
	}
	return d.Items[d.VisibleFrom], true
}
