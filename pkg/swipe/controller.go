package swipe

import (
	"slices"
	"time"
)

// Options configures a Controller.
type Options[T Item] struct {
	// ScreenWidth in pixels; drives the swipe threshold, exit distance and
	// rotation range.
	ScreenWidth float64

	// ExitDuration is the fixed length of the exit animation.
	// Defaults to DefaultExitDuration.
	ExitDuration time.Duration

	// ExitCurve eases the exit animation. Defaults to EaseInOut.
	ExitCurve func(float64) float64

	// Clock defaults to SystemClock.
	Clock Clock

	// OnSwipeRight and OnSwipeLeft are called once per committed swipe, after
	// the exit animation completes, with the deck as it stood before the
	// cursor advanced. Nil callbacks are no-ops.
	OnSwipeRight func(Deck[T])
	OnSwipeLeft  func(Deck[T])
}

// Controller is the swipe-stack state machine. See the package documentation.
type Controller[T Item] struct {
	opts    Options[T]
	clock   Clock
	tracker GestureTracker

	deck  Deck[T]
	drag  DragState
	phase Phase

	active     *Animation
	generation uint64

	// epoch changes whenever a different item becomes topmost, invalidating
	// gesture handles issued for the previous one.
	epoch uint64

	stack     map[string]*SpringSimulation
	stackStep time.Time
}

// NewController returns a controller with an empty deck.
func NewController[T Item](opts Options[T]) *Controller[T] {
	if opts.ExitDuration <= 0 {
		opts.ExitDuration = DefaultExitDuration
	}
	if opts.ExitCurve == nil {
		opts.ExitCurve = EaseInOut
	}
	clock := opts.Clock
	if clock == nil {
		clock = SystemClock
	}
	return &Controller[T]{
		opts:    opts,
		clock:   clock,
		tracker: NewGestureTracker(opts.ScreenWidth),
	}
}

// Reset replaces the deck and moves the cursor back to the first item. Any
// drag or animation in flight is dropped and its completion will not fire.
// Reset always restarts the deck, even if the items are unchanged.
func (c *Controller[T]) Reset(items []T) {
	prev := c.stackPositions()
	c.supersede()
	c.deck = Deck[T]{Items: slices.Clone(items)}
	c.drag = DragState{}
	c.phase = Idle
	c.epoch++
	c.restack(prev)
}

// SetScreenWidth updates the screen width. An exit already in flight keeps
// its original target.
func (c *Controller[T]) SetScreenWidth(w float64) {
	c.opts.ScreenWidth = w
	c.tracker = NewGestureTracker(w)
}

// ScreenWidth returns the configured screen width.
func (c *Controller[T]) ScreenWidth() float64 { return c.opts.ScreenWidth }

// Threshold returns the commit distance.
func (c *Controller[T]) Threshold() float64 { return c.tracker.Threshold() }

// Deck returns a snapshot of the deck.
func (c *Controller[T]) Deck() Deck[T] { return c.deck }

// VisibleFrom returns the index of the topmost visible item.
func (c *Controller[T]) VisibleFrom() int { return c.deck.VisibleFrom }

// Len returns the number of items in the deck.
func (c *Controller[T]) Len() int { return c.deck.Len() }

// IsExhausted reports whether every item has been swiped.
func (c *Controller[T]) IsExhausted() bool { return c.deck.Exhausted() }

// Drag returns the live offset of the topmost card.
func (c *Controller[T]) Drag() DragState { return c.drag }

// Phase returns the interaction state of the topmost card.
func (c *Controller[T]) Phase() Phase { return c.phase }

// Animation returns the active animation, or nil.
func (c *Controller[T]) Animation() *Animation { return c.active }

// Animating reports whether Tick still has work to do.
func (c *Controller[T]) Animating() bool {
	return c.active != nil || len(c.stack) > 0
}

// Layer returns the geometry of the i-th visible item, 0 being the topmost.
func (c *Controller[T]) Layer(i int) (Layer[T], bool) {
	visible := c.deck.Visible()
	if i < 0 || i >= len(visible) {
		return Layer[T]{}, false
	}
	item := visible[i]
	l := Layer[T]{
		Item:       item,
		Index:      i,
		Offset:     Offset{Y: StackSpacing * float64(i)},
		StackOrder: len(visible) - i,
	}
	if sim, ok := c.stack[item.Key()]; ok {
		l.Transition = sim.Position() - sim.Target()
	}
	if i == 0 {
		l.Offset = c.drag.Offset
		l.RotationDeg = c.tracker.Rotation(c.drag.Offset.X)
		l.IsTopmost = true
		l.Handle = &GestureHandle[T]{c: c, epoch: c.epoch}
	}
	return l, true
}

// Layers returns the geometry of every visible item, topmost first.
func (c *Controller[T]) Layers() []Layer[T] {
	n := len(c.deck.Visible())
	layers := make([]Layer[T], 0, n)
	for i := range n {
		l, _ := c.Layer(i)
		layers = append(layers, l)
	}
	return layers
}

// Swipe sends the topmost card off-screen in dir. When the exit animation
// completes the matching callback fires and the cursor advances. It reports
// false, and does nothing, when the deck is exhausted or a card is already
// leaving.
func (c *Controller[T]) Swipe(dir Direction) bool {
	if c.IsExhausted() || c.phase.IsExiting() {
		return false
	}
	c.supersede()
	gen := c.generation
	target := Offset{X: dir.sign() * ExitDistanceFactor * c.opts.ScreenWidth}
	c.active = newTimedAnimation(gen, c.drag.Offset, target, c.opts.ExitDuration, c.opts.ExitCurve, c.clock.Now(), func() {
		c.finishSwipe(gen, dir)
	})
	c.phase = exitPhase(dir)
	return true
}

// Tick advances the active animation and any re-stack springs to now,
// running at most one completion per animation. It reports whether another
// frame is needed.
func (c *Controller[T]) Tick(now time.Time) bool {
	if a := c.active; a != nil {
		offset, done := a.step(now)
		c.drag = DragState{Offset: offset}
		if done {
			c.complete(a)
		}
	}
	c.stepStack(now)
	return c.Animating()
}

func (c *Controller[T]) complete(a *Animation) {
	if a.finished || a != c.active || a.generation != c.generation {
		return
	}
	a.finished = true
	c.active = nil
	if a.onComplete != nil {
		a.onComplete()
	}
}

// supersede drops the active animation; a completion already scheduled for
// it is ignored from now on.
func (c *Controller[T]) supersede() {
	c.generation++
	if c.active != nil {
		c.active.finished = true
		c.active = nil
	}
}

func (c *Controller[T]) finishSwipe(gen uint64, dir Direction) {
	if gen != c.generation {
		return
	}
	snapshot := c.deck
	cb := c.opts.OnSwipeLeft
	if dir == Right {
		cb = c.opts.OnSwipeRight
	}
	if cb != nil {
		cb(snapshot)
	}
	// The callback may have reset the deck.
	if gen != c.generation {
		return
	}
	prev := c.stackPositions()
	c.drag = DragState{}
	c.deck.VisibleFrom++
	c.phase = Idle
	c.epoch++
	c.restack(prev)
}

func (c *Controller[T]) springBack() {
	c.supersede()
	gen := c.generation
	c.active = newSpringAnimation(gen, c.drag.Offset, Offset{}, ResetSpring, c.clock.Now(), func() {
		if gen != c.generation {
			return
		}
		c.drag = DragState{}
		c.phase = Idle
	})
	c.phase = Resetting
}

type stackPosition struct {
	y, velocity float64
}

// stackPositions records where each visible card is drawn right now, so the
// next layout can spring from there.
func (c *Controller[T]) stackPositions() map[string]stackPosition {
	visible := c.deck.Visible()
	pos := make(map[string]stackPosition, len(visible))
	for i, item := range visible {
		p := stackPosition{y: StackSpacing * float64(i)}
		if sim, ok := c.stack[item.Key()]; ok {
			p.y += sim.Position() - sim.Target()
			p.velocity = sim.Velocity()
		}
		pos[item.Key()] = p
	}
	return pos
}

func (c *Controller[T]) restack(prev map[string]stackPosition) {
	next := make(map[string]*SpringSimulation)
	for i, item := range c.deck.Visible() {
		p, ok := prev[item.Key()]
		if !ok {
			continue
		}
		rest := StackSpacing * float64(i)
		sim := NewSpringSimulation(LayoutSpring, p.y, p.velocity, rest)
		if !sim.IsDone() {
			next[item.Key()] = sim
		}
	}
	c.stack = next
	c.stackStep = c.clock.Now()
}

func (c *Controller[T]) stepStack(now time.Time) {
	if len(c.stack) == 0 {
		return
	}
	dt := now.Sub(c.stackStep).Seconds()
	if dt <= 0 {
		return
	}
	c.stackStep = now
	for key, sim := range c.stack {
		if sim.Step(dt) {
			delete(c.stack, key)
		}
	}
}

// GestureHandle routes pointer input to the topmost card. Handles are issued
// by Layer for the topmost layer only and stop responding once another card
// becomes topmost.
type GestureHandle[T Item] struct {
	c     *Controller[T]
	epoch uint64
}

// Live reports whether the handle still belongs to the topmost card.
func (h *GestureHandle[T]) Live() bool {
	return h != nil && h.c != nil && h.epoch == h.c.epoch && !h.c.IsExhausted()
}

// Start begins a drag, superseding a spring-back in progress. A card that
// is already leaving the screen cannot be grabbed.
func (h *GestureHandle[T]) Start() {
	if !h.Live() || h.c.phase.IsExiting() {
		return
	}
	c := h.c
	c.supersede()
	c.drag = c.tracker.Start()
	c.phase = Dragging
}

// Move reports the cumulative displacement since Start.
func (h *GestureHandle[T]) Move(dx, dy float64) {
	if !h.Live() || h.c.phase != Dragging {
		return
	}
	h.c.drag = h.c.tracker.Move(dx, dy)
}

// Release ends the drag with its final displacement and returns the
// decision: a commit schedules the exit animation, a cancel springs the card
// back. A release without a matching Start reports Cancel and does nothing.
func (h *GestureHandle[T]) Release(dx, dy float64) Decision {
	if !h.Live() || h.c.phase != Dragging {
		return Cancel
	}
	c := h.c
	c.drag = c.tracker.Move(dx, dy)
	decision := c.tracker.Release(dx, dy)
	if dir, ok := decision.Direction(); ok {
		c.Swipe(dir)
	} else {
		c.springBack()
	}
	return decision
}
