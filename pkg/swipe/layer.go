package swipe

// StackSpacing is the vertical offset, in pixels, between stacked cards.
const StackSpacing = 10.0

// Layer is the render geometry of one visible item.
type Layer[T Item] struct {
	Item T

	// Index is the position among visible items, 0 being the topmost.
	Index int

	// Offset is the translation of the card. For the topmost card it is the
	// live drag or animation offset; below it, (0, StackSpacing×Index).
	Offset Offset

	// Transition is the extra vertical displacement of an in-flight
	// re-stack spring. It decays to zero; renderers add it to Offset.Y.
	Transition float64

	RotationDeg float64

	// StackOrder is the paint order; the topmost card has the highest value.
	StackOrder int

	IsTopmost bool

	// Handle accepts pointer input. It is nil for every layer but the topmost.
	Handle *GestureHandle[T]
}

// Position returns Offset with Transition applied.
func (l Layer[T]) Position() Offset {
	return Offset{X: l.Offset.X, Y: l.Offset.Y + l.Transition}
}

// Renderer produces visual output for items. Implementations are called by
// Render and must not call back into the controller.
type Renderer[T Item, R any] interface {
	RenderCard(item T) R
	RenderEmptyState() R
}

// RenderFuncs adapts two plain functions to the Renderer interface.
type RenderFuncs[T Item, R any] struct {
	Card  func(T) R
	Empty func() R
}

func (f RenderFuncs[T, R]) RenderCard(item T) R { return f.Card(item) }

func (f RenderFuncs[T, R]) RenderEmptyState() R { return f.Empty() }

// Placed is a layer together with its rendered output.
type Placed[T Item, R any] struct {
	Layer[T]
	Output R
}

// Frame is the result of one render pass. When Empty is set only EmptyState
// is meaningful; otherwise Layers is ordered bottom to top for painting.
type Frame[T Item, R any] struct {
	Empty      bool
	EmptyState R
	Layers     []Placed[T, R]
}

// Render asks r for the output of every visible layer, or for the empty
// state once the deck is exhausted.
func Render[T Item, R any](c *Controller[T], r Renderer[T, R]) Frame[T, R] {
	if c.IsExhausted() {
		return Frame[T, R]{Empty: true, EmptyState: r.RenderEmptyState()}
	}
	layers := c.Layers()
	placed := make([]Placed[T, R], 0, len(layers))
	for i := len(layers) - 1; i >= 0; i-- {
		placed = append(placed, Placed[T, R]{Layer: layers[i], Output: r.RenderCard(layers[i].Item)})
	}
	return Frame[T, R]{Layers: placed}
}
