package swipe

import (
	"testing"
	"time"
)

func TestResetStartsAtFirstItem(t *testing.T) {
	for _, n := range []int{0, 1, 3, 8} {
		clk := newFakeClock()
		c, _ := newTestController(400, clk)
		c.Reset(makeCards(n))

		if c.VisibleFrom() != 0 {
			t.Errorf("n=%d: VisibleFrom = %d, want 0", n, c.VisibleFrom())
		}
		if got := c.IsExhausted(); got != (n == 0) {
			t.Errorf("n=%d: IsExhausted = %v, want %v", n, got, n == 0)
		}
	}
}

func TestCommitRightScenario(t *testing.T) {
	clk := newFakeClock()
	c, log := newTestController(400, clk)
	c.Reset(makeCards(8))

	top, ok := c.Layer(0)
	if !ok || top.Handle == nil {
		t.Fatal("expected a gesture handle on the topmost layer")
	}
	top.Handle.Start()
	top.Handle.Move(80, 5)
	if got := c.Drag().Offset; got != (Offset{X: 80, Y: 5}) {
		t.Errorf("drag offset = %+v, want {80 5}", got)
	}

	if d := top.Handle.Release(150, 5); d != CommitRight {
		t.Fatalf("Release = %v, want commit-right", d)
	}
	if c.Phase() != ExitingRight {
		t.Errorf("phase = %v, want exiting-right", c.Phase())
	}
	a := c.Animation()
	if a == nil {
		t.Fatal("expected an exit animation")
	}
	if a.Target() != (Offset{X: 800}) {
		t.Errorf("exit target = %+v, want {800 0}", a.Target())
	}
	if a.Duration() != DefaultExitDuration {
		t.Errorf("exit duration = %v, want %v", a.Duration(), DefaultExitDuration)
	}

	// Nothing fires before the animation completes.
	clk.Advance(200 * time.Millisecond)
	c.Tick(clk.Now())
	if len(log.right) != 0 || c.VisibleFrom() != 0 {
		t.Fatalf("callback fired mid-animation: right=%d visibleFrom=%d", len(log.right), c.VisibleFrom())
	}
	if x := c.Drag().Offset.X; x <= 150 || x >= 800 {
		t.Errorf("mid-exit x = %v, want between 150 and 800", x)
	}

	clk.Advance(200 * time.Millisecond)
	c.Tick(clk.Now())

	if len(log.right) != 1 {
		t.Fatalf("OnSwipeRight calls = %d, want 1", len(log.right))
	}
	if len(log.left) != 0 {
		t.Errorf("OnSwipeLeft calls = %d, want 0", len(log.left))
	}
	snap := log.right[0]
	if snap.Len() != 8 || snap.VisibleFrom != 0 {
		t.Errorf("snapshot = len %d visibleFrom %d, want 8 and 0", snap.Len(), snap.VisibleFrom)
	}
	if c.VisibleFrom() != 1 {
		t.Errorf("VisibleFrom = %d, want 1", c.VisibleFrom())
	}
	if c.Phase() != Idle {
		t.Errorf("phase = %v, want idle", c.Phase())
	}

	next, _ := c.Layer(0)
	if next.Item.id != "id2" {
		t.Errorf("top item = %s, want id2", next.Item.id)
	}
	if !next.Offset.IsZero() || next.RotationDeg != 0 {
		t.Errorf("new top geometry = %+v rot %v, want zero", next.Offset, next.RotationDeg)
	}

	// Further ticks never fire the callback again.
	pump(c, clk, 3*time.Second)
	if len(log.right) != 1 || c.VisibleFrom() != 1 {
		t.Errorf("after settle: right=%d visibleFrom=%d, want 1 and 1", len(log.right), c.VisibleFrom())
	}
}

func TestCommitLeft(t *testing.T) {
	clk := newFakeClock()
	c, log := newTestController(400, clk)
	c.Reset(makeCards(3))

	top, _ := c.Layer(0)
	top.Handle.Start()
	if d := top.Handle.Release(-101, 0); d != CommitLeft {
		t.Fatalf("Release = %v, want commit-left", d)
	}
	if a := c.Animation(); a == nil || a.Target() != (Offset{X: -800}) {
		t.Fatalf("exit animation = %+v, want target {-800 0}", a)
	}
	pump(c, clk, time.Second)

	if len(log.left) != 1 || len(log.right) != 0 {
		t.Errorf("left=%d right=%d, want 1 and 0", len(log.left), len(log.right))
	}
	if c.VisibleFrom() != 1 {
		t.Errorf("VisibleFrom = %d, want 1", c.VisibleFrom())
	}
}

func TestCancelSpringsBack(t *testing.T) {
	clk := newFakeClock()
	c, log := newTestController(400, clk)
	c.Reset(makeCards(3))

	top, _ := c.Layer(0)
	top.Handle.Start()
	top.Handle.Move(60, 30)
	if d := top.Handle.Release(99, 30); d != Cancel {
		t.Fatalf("Release = %v, want cancel", d)
	}
	if c.Phase() != Resetting {
		t.Errorf("phase = %v, want resetting", c.Phase())
	}
	a := c.Animation()
	if a == nil || !a.IsSpring() || a.Duration() != 0 || !a.Target().IsZero() {
		t.Fatalf("reset animation = %+v, want zero-duration spring to origin", a)
	}

	pump(c, clk, 3*time.Second)

	if c.Animating() {
		t.Fatal("spring did not settle within 3s")
	}
	if !c.Drag().Offset.IsZero() {
		t.Errorf("drag offset = %+v, want zero", c.Drag().Offset)
	}
	if c.Phase() != Idle {
		t.Errorf("phase = %v, want idle", c.Phase())
	}
	if c.VisibleFrom() != 0 {
		t.Errorf("VisibleFrom = %d, want 0", c.VisibleFrom())
	}
	if len(log.left)+len(log.right) != 0 {
		t.Errorf("callbacks fired on cancel: left=%d right=%d", len(log.left), len(log.right))
	}
}

func TestExhaustionAfterAlternatingSwipes(t *testing.T) {
	clk := newFakeClock()
	c, log := newTestController(400, clk)
	c.Reset(makeCards(8))

	for i := range 8 {
		top, ok := c.Layer(0)
		if !ok {
			t.Fatalf("swipe %d: no top layer", i)
		}
		dx := 150.0
		if i%2 == 1 {
			dx = -150
		}
		top.Handle.Start()
		top.Handle.Release(dx, 0)
		pump(c, clk, time.Second)
		if c.VisibleFrom() != i+1 {
			t.Fatalf("after swipe %d: VisibleFrom = %d, want %d", i, c.VisibleFrom(), i+1)
		}
	}

	if !c.IsExhausted() {
		t.Fatal("expected deck to be exhausted")
	}
	if len(log.right) != 4 || len(log.left) != 4 {
		t.Errorf("right=%d left=%d, want 4 and 4", len(log.right), len(log.left))
	}
	for i, d := range log.right {
		if d.VisibleFrom != 2*i {
			t.Errorf("right snapshot %d VisibleFrom = %d, want %d", i, d.VisibleFrom, 2*i)
		}
	}

	if c.Swipe(Right) {
		t.Error("Swipe on exhausted deck reported true")
	}
	if c.Animating() {
		t.Error("Swipe on exhausted deck started an animation")
	}
	pump(c, clk, time.Second)
	if c.VisibleFrom() != 8 || len(log.right) != 4 {
		t.Errorf("exhausted swipe changed state: visibleFrom=%d right=%d", c.VisibleFrom(), len(log.right))
	}
	if _, ok := c.Layer(0); ok {
		t.Error("exhausted deck should have no layers")
	}
}

func TestResetSupersedesExit(t *testing.T) {
	clk := newFakeClock()
	c, log := newTestController(400, clk)
	cards := makeCards(4)
	c.Reset(cards)

	c.Swipe(Right)
	clk.Advance(100 * time.Millisecond)
	c.Tick(clk.Now())

	c.Reset(cards)
	if c.Animation() != nil {
		t.Error("Reset left an animation active")
	}
	if !c.Drag().Offset.IsZero() || c.Phase() != Idle {
		t.Errorf("after Reset: offset %+v phase %v", c.Drag().Offset, c.Phase())
	}

	pump(c, clk, 2*time.Second)
	if len(log.right) != 0 {
		t.Errorf("superseded exit fired OnSwipeRight %d times", len(log.right))
	}
	if c.VisibleFrom() != 0 {
		t.Errorf("VisibleFrom = %d, want 0", c.VisibleFrom())
	}
}

func TestStaleCompletionIsIgnored(t *testing.T) {
	clk := newFakeClock()
	c, log := newTestController(400, clk)
	c.Reset(makeCards(4))

	c.Swipe(Left)
	stale := c.Animation()
	c.Reset(makeCards(4))

	// Completing the superseded handle directly must not advance the deck.
	stale.onComplete()
	c.complete(stale)

	if c.VisibleFrom() != 0 || len(log.left) != 0 {
		t.Errorf("stale completion ran: visibleFrom=%d left=%d", c.VisibleFrom(), len(log.left))
	}
}

func TestSwipeWhileExitingIsNoop(t *testing.T) {
	clk := newFakeClock()
	c, log := newTestController(400, clk)
	c.Reset(makeCards(4))

	if !c.Swipe(Right) {
		t.Fatal("first Swipe reported false")
	}
	if c.Swipe(Left) {
		t.Error("second Swipe during exit reported true")
	}
	pump(c, clk, time.Second)

	if len(log.right) != 1 || len(log.left) != 0 {
		t.Errorf("right=%d left=%d, want 1 and 0", len(log.right), len(log.left))
	}
	if c.VisibleFrom() != 1 {
		t.Errorf("VisibleFrom = %d, want 1", c.VisibleFrom())
	}
}

func TestGestureStartDuringResetSupersedesSpring(t *testing.T) {
	clk := newFakeClock()
	c, _ := newTestController(400, clk)
	c.Reset(makeCards(2))

	top, _ := c.Layer(0)
	top.Handle.Start()
	top.Handle.Release(50, 0)
	clk.Advance(frame)
	c.Tick(clk.Now())

	top.Handle.Start()
	if c.Phase() != Dragging {
		t.Fatalf("phase = %v, want dragging", c.Phase())
	}
	if c.Animation() != nil {
		t.Error("spring still active after new gesture start")
	}
	if !c.Drag().Offset.IsZero() {
		t.Errorf("offset at gesture start = %+v, want zero", c.Drag().Offset)
	}
}

func TestGestureStartDuringExitIsIgnored(t *testing.T) {
	clk := newFakeClock()
	c, log := newTestController(400, clk)
	c.Reset(makeCards(2))

	top, _ := c.Layer(0)
	top.Handle.Start()
	top.Handle.Release(300, 0)

	top.Handle.Start()
	top.Handle.Move(10, 10)
	if c.Phase() != ExitingRight {
		t.Errorf("phase = %v, want exiting-right", c.Phase())
	}
	pump(c, clk, time.Second)
	if len(log.right) != 1 {
		t.Errorf("right=%d, want 1", len(log.right))
	}
}

func TestHandleGoesStaleWhenTopChanges(t *testing.T) {
	clk := newFakeClock()
	c, _ := newTestController(400, clk)
	c.Reset(makeCards(3))

	old, _ := c.Layer(0)
	c.Swipe(Right)
	pump(c, clk, time.Second)

	if old.Handle.Live() {
		t.Error("handle for swiped card is still live")
	}
	old.Handle.Start()
	if c.Phase() != Idle {
		t.Errorf("stale Start changed phase to %v", c.Phase())
	}
	if d := old.Handle.Release(300, 0); d != Cancel {
		t.Errorf("stale Release = %v, want cancel", d)
	}
	if c.Animating() && c.Animation() != nil {
		t.Error("stale Release started an animation")
	}
}

func TestReleaseWithoutStart(t *testing.T) {
	clk := newFakeClock()
	c, log := newTestController(400, clk)
	c.Reset(makeCards(2))

	top, _ := c.Layer(0)
	if d := top.Handle.Release(300, 0); d != Cancel {
		t.Errorf("Release without Start = %v, want cancel", d)
	}
	pump(c, clk, time.Second)
	if len(log.right) != 0 || c.VisibleFrom() != 0 {
		t.Errorf("release without start committed: right=%d visibleFrom=%d", len(log.right), c.VisibleFrom())
	}
}

func TestLayerGeometry(t *testing.T) {
	clk := newFakeClock()
	c, _ := newTestController(400, clk)
	c.Reset(makeCards(4))

	top, _ := c.Layer(0)
	top.Handle.Start()
	top.Handle.Move(300, 20)

	layers := c.Layers()
	if len(layers) != 4 {
		t.Fatalf("len(Layers) = %d, want 4", len(layers))
	}

	l0 := layers[0]
	if !l0.IsTopmost || l0.Handle == nil {
		t.Error("layer 0 should be topmost with a handle")
	}
	if l0.Offset != (Offset{X: 300, Y: 20}) {
		t.Errorf("layer 0 offset = %+v, want {300 20}", l0.Offset)
	}
	if l0.RotationDeg != 60 {
		t.Errorf("layer 0 rotation = %v, want 60", l0.RotationDeg)
	}

	for i, l := range layers[1:] {
		idx := i + 1
		if l.IsTopmost || l.Handle != nil {
			t.Errorf("layer %d should not be topmost or draggable", idx)
		}
		if l.Offset != (Offset{Y: 10 * float64(idx)}) {
			t.Errorf("layer %d offset = %+v, want {0 %d}", idx, l.Offset, 10*idx)
		}
		if l.RotationDeg != 0 {
			t.Errorf("layer %d rotation = %v, want 0", idx, l.RotationDeg)
		}
		if l.StackOrder >= l0.StackOrder {
			t.Errorf("layer %d stack order %d not below top %d", idx, l.StackOrder, l0.StackOrder)
		}
	}

	if _, ok := c.Layer(4); ok {
		t.Error("Layer(4) should not exist")
	}
	if _, ok := c.Layer(-1); ok {
		t.Error("Layer(-1) should not exist")
	}
}

func TestRestackSpringsAfterSwipe(t *testing.T) {
	clk := newFakeClock()
	c, _ := newTestController(400, clk)
	c.Reset(makeCards(3))

	c.Swipe(Right)
	clk.Advance(DefaultExitDuration)
	c.Tick(clk.Now())

	top, _ := c.Layer(0)
	if top.Transition != StackSpacing {
		t.Errorf("promoted card transition = %v, want %v", top.Transition, StackSpacing)
	}
	if got := top.Position().Y; got != StackSpacing {
		t.Errorf("promoted card drawn at y=%v, want %v", got, StackSpacing)
	}
	second, _ := c.Layer(1)
	if second.Transition != StackSpacing {
		t.Errorf("second card transition = %v, want %v", second.Transition, StackSpacing)
	}
	if !c.Animating() {
		t.Fatal("expected re-stack spring to be animating")
	}

	clk.Advance(100 * time.Millisecond)
	c.Tick(clk.Now())
	mid, _ := c.Layer(0)
	if mid.Transition >= StackSpacing {
		t.Errorf("transition did not move toward rest: %v", mid.Transition)
	}

	pump(c, clk, 5*time.Second)
	if c.Animating() {
		t.Fatal("re-stack spring did not settle")
	}
	for _, l := range c.Layers() {
		if l.Transition != 0 {
			t.Errorf("layer %d transition = %v after settle, want 0", l.Index, l.Transition)
		}
	}
}

func TestResetInsideCallback(t *testing.T) {
	clk := newFakeClock()
	cards := makeCards(3)
	var c *Controller[card]
	calls := 0
	c = NewController(Options[card]{
		ScreenWidth: 400,
		Clock:       clk,
		OnSwipeRight: func(d Deck[card]) {
			calls++
			c.Reset(cards)
		},
	})
	c.Reset(cards)

	c.Swipe(Right)
	pump(c, clk, time.Second)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if c.VisibleFrom() != 0 {
		t.Errorf("VisibleFrom = %d, want 0 after reset in callback", c.VisibleFrom())
	}
}

func TestNilCallbacksAreNoops(t *testing.T) {
	clk := newFakeClock()
	c := NewController(Options[card]{ScreenWidth: 400, Clock: clk})
	c.Reset(makeCards(2))

	c.Swipe(Left)
	c.Swipe(Right)
	pump(c, clk, time.Second)
	if c.VisibleFrom() != 1 {
		t.Errorf("VisibleFrom = %d, want 1", c.VisibleFrom())
	}
}

func TestResetCopiesItems(t *testing.T) {
	clk := newFakeClock()
	c, _ := newTestController(400, clk)
	cards := makeCards(2)
	c.Reset(cards)

	cards[0] = card{id: "mutated"}
	top, _ := c.Layer(0)
	if top.Item.id != "id1" {
		t.Errorf("top item = %s, want id1", top.Item.id)
	}
}

func TestRender(t *testing.T) {
	clk := newFakeClock()
	c, _ := newTestController(400, clk)
	r := RenderFuncs[card, string]{
		Card:  func(cd card) string { return "card:" + cd.id },
		Empty: func() string { return "empty" },
	}

	c.Reset(makeCards(3))
	f := Render[card, string](c, r)
	if f.Empty {
		t.Fatal("non-empty deck rendered empty state")
	}
	want := []string{"card:id3", "card:id2", "card:id1"}
	if len(f.Layers) != len(want) {
		t.Fatalf("len(Layers) = %d, want %d", len(f.Layers), len(want))
	}
	for i, p := range f.Layers {
		if p.Output != want[i] {
			t.Errorf("layer %d output = %q, want %q", i, p.Output, want[i])
		}
	}
	if !f.Layers[2].IsTopmost {
		t.Error("last painted layer should be topmost")
	}

	c.Reset(nil)
	f = Render[card, string](c, r)
	if !f.Empty || f.EmptyState != "empty" || len(f.Layers) != 0 {
		t.Errorf("exhausted frame = %+v, want empty state only", f)
	}
}
