package deckview

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/swipedeck/internal/deckfile"
	"github.com/marcus/swipedeck/internal/models"
	"github.com/marcus/swipedeck/pkg/deckview/mouse"
	"github.com/marcus/swipedeck/pkg/swipe"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

type memRecorder struct {
	verdicts []models.Verdict
	err      error
}

func (r *memRecorder) RecordVerdict(v *models.Verdict) error {
	if r.err != nil {
		return r.err
	}
	r.verdicts = append(r.verdicts, *v)
	return nil
}

type harness struct {
	t     *testing.T
	m     Model
	clock *fakeClock
	rec   *memRecorder
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		t:     t,
		clock: &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		rec:   &memRecorder{},
	}
	h.m = New(deckfile.Sample().Cards, Options{
		DeckID:        "sample",
		DeckName:      "sample",
		MarkdownStyle: "notty",
		Recorder:      h.rec,
		Clock:         h.clock,
	})
	h.send(tea.WindowSizeMsg{Width: 80, Height: 30})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	return cmd
}

func (h *harness) key(s string) tea.Cmd {
	switch s {
	case "right":
		return h.send(tea.KeyMsg{Type: tea.KeyRight})
	case "left":
		return h.send(tea.KeyMsg{Type: tea.KeyLeft})
	case "enter":
		return h.send(tea.KeyMsg{Type: tea.KeyEnter})
	}
	return h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// settle runs frames 16ms apart until the model stops asking for them.
func (h *harness) settle() {
	h.t.Helper()
	for i := 0; i < 500; i++ {
		if !h.m.ticking {
			return
		}
		h.clock.now = h.clock.now.Add(16 * time.Millisecond)
		h.send(frameMsg{})
	}
	h.t.Fatal("animation did not settle")
}

func (h *harness) region(id string) mouse.Region {
	h.t.Helper()
	h.m.View()
	for _, r := range h.m.mouse.HitMap.Regions() {
		if r.ID == id {
			return r
		}
	}
	h.t.Fatalf("region %q not registered", id)
	return mouse.Region{}
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}

func TestResizeSetsScreenWidth(t *testing.T) {
	h := newHarness(t)
	if got := h.m.ctrl.ScreenWidth(); got != 640 {
		t.Errorf("ScreenWidth: got %v, want 640", got)
	}
	h.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	if got := h.m.ctrl.ScreenWidth(); got != 800 {
		t.Errorf("ScreenWidth after resize: got %v, want 800", got)
	}
}

func TestKeySwipeRecordsVerdict(t *testing.T) {
	h := newHarness(t)

	if cmd := h.key("right"); cmd == nil {
		t.Fatal("expected a frame to be scheduled")
	}
	if h.m.ctrl.Phase() != swipe.ExitingRight {
		t.Errorf("phase: got %v, want %v", h.m.ctrl.Phase(), swipe.ExitingRight)
	}
	h.settle()

	if h.m.Likes() != 1 || h.m.Nopes() != 0 {
		t.Errorf("tally: got %d/%d, want 1/0", h.m.Likes(), h.m.Nopes())
	}
	if len(h.rec.verdicts) != 1 {
		t.Fatalf("recorded %d verdicts, want 1", len(h.rec.verdicts))
	}
	v := h.rec.verdicts[0]
	if v.CardID != "1" || v.Direction != models.DirectionRight || v.DeckID != "sample" {
		t.Errorf("verdict: got %+v", v)
	}

	view := h.m.View()
	if !strings.Contains(view, "Card #2") {
		t.Error("view should show the next card")
	}
	if !strings.Contains(view, "2/8") {
		t.Error("status should show position 2/8")
	}
}

func TestSingleFrameChain(t *testing.T) {
	h := newHarness(t)

	if cmd := h.key("right"); cmd == nil {
		t.Fatal("expected a frame to be scheduled")
	}
	if cmd := h.key("left"); cmd != nil {
		t.Error("second key while a frame is pending should not schedule another")
	}
	h.settle()
	if h.m.Likes() != 1 || h.m.Nopes() != 0 {
		t.Errorf("swipe during exit should be ignored, got %d/%d", h.m.Likes(), h.m.Nopes())
	}
}

func TestMouseDragCommits(t *testing.T) {
	h := newHarness(t)
	r := h.region(topCardRegion)
	x, y := r.Rect.X+r.Rect.W/2, r.Rect.Y+r.Rect.H/2

	h.send(press(x, y))
	if h.m.ctrl.Phase() != swipe.Dragging {
		t.Fatalf("phase after press: got %v, want %v", h.m.ctrl.Phase(), swipe.Dragging)
	}
	h.send(motion(x+25, y+2))
	if got := h.m.ctrl.Drag().Offset; got.X != 200 || got.Y != 32 {
		t.Errorf("drag offset: got %+v, want {200 32}", got)
	}
	if !strings.Contains(h.m.View(), "LIKE") {
		t.Error("expected LIKE stamp past half the threshold")
	}

	h.send(release(x+25, y+2))
	if h.m.ctrl.Phase() != swipe.ExitingRight {
		t.Fatalf("phase after release: got %v, want %v", h.m.ctrl.Phase(), swipe.ExitingRight)
	}
	h.settle()
	if h.m.Likes() != 1 {
		t.Errorf("likes: got %d, want 1", h.m.Likes())
	}
}

func TestMouseDragCancels(t *testing.T) {
	h := newHarness(t)
	r := h.region(topCardRegion)
	x, y := r.Rect.X+1, r.Rect.Y+1

	h.send(press(x, y))
	h.send(motion(x-5, y))
	h.send(release(x-5, y))
	if h.m.ctrl.Phase() != swipe.Resetting {
		t.Fatalf("phase after short drag: got %v, want %v", h.m.ctrl.Phase(), swipe.Resetting)
	}
	h.settle()

	if h.m.ctrl.Phase() != swipe.Idle || h.m.ctrl.VisibleFrom() != 0 {
		t.Errorf("after spring back: phase %v, visibleFrom %d", h.m.ctrl.Phase(), h.m.ctrl.VisibleFrom())
	}
	if !h.m.ctrl.Drag().Offset.IsZero() {
		t.Errorf("offset not reset: %+v", h.m.ctrl.Drag().Offset)
	}
	if len(h.rec.verdicts) != 0 {
		t.Errorf("cancel recorded %d verdicts", len(h.rec.verdicts))
	}
}

func TestPressOnLowerCardIgnored(t *testing.T) {
	h := newHarness(t)
	top := h.region(topCardRegion)
	below := h.region("card-1")
	if below.Rect.Y <= top.Rect.Y {
		t.Fatalf("lower card not offset: top %+v below %+v", top.Rect, below.Rect)
	}

	// The bottom row of the second card peeks out below the top card.
	y := below.Rect.Y + below.Rect.H - 1
	h.send(press(below.Rect.X+2, y))
	if h.m.ctrl.Phase() != swipe.Idle {
		t.Errorf("press on lower card changed phase to %v", h.m.ctrl.Phase())
	}
	if h.m.handle != nil {
		t.Error("press on lower card should not take a gesture handle")
	}
}

func TestCardRegionsSpanWholeCard(t *testing.T) {
	h := newHarness(t)
	cw, ch := h.m.cardSize()
	for _, id := range []string{topCardRegion, "card-1", "card-2"} {
		r := h.region(id)
		if r.Rect.W != cw || r.Rect.H != ch {
			t.Errorf("%s: got %dx%d, want %dx%d", id, r.Rect.W, r.Rect.H, cw, ch)
		}
	}

	// The last row of the top card still starts a drag.
	top := h.region(topCardRegion)
	h.send(press(top.Rect.X+1, top.Rect.Y+ch-1))
	if h.m.ctrl.Phase() != swipe.Dragging {
		t.Errorf("phase after press on bottom row: got %v, want %v", h.m.ctrl.Phase(), swipe.Dragging)
	}
}

func TestKeySwipeDuringDrag(t *testing.T) {
	h := newHarness(t)
	r := h.region(topCardRegion)
	x, y := r.Rect.X+r.Rect.W/2, r.Rect.Y+r.Rect.H/2

	h.send(press(x, y))
	h.send(motion(x-3, y))
	h.key("right")
	h.send(release(x-30, y))
	h.settle()

	if h.m.Likes() != 1 || h.m.Nopes() != 0 {
		t.Errorf("tally: got %d/%d, want 1/0", h.m.Likes(), h.m.Nopes())
	}
	if got := h.m.ctrl.VisibleFrom(); got != 1 {
		t.Errorf("VisibleFrom: got %d, want 1", got)
	}
	if len(h.rec.verdicts) != 1 {
		t.Errorf("recorded %d verdicts, want 1", len(h.rec.verdicts))
	}
}

func TestEmptyStateRefresh(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 8; i++ {
		dir := "right"
		if i%2 == 1 {
			dir = "left"
		}
		h.key(dir)
		h.settle()
	}
	if !h.m.ctrl.IsExhausted() {
		t.Fatal("deck should be exhausted")
	}
	if h.m.Likes() != 4 || h.m.Nopes() != 4 {
		t.Errorf("tally: got %d/%d, want 4/4", h.m.Likes(), h.m.Nopes())
	}

	view := h.m.View()
	for _, want := range []string{"Guess you are out of cards!", "REFRESH", "8/8 done"} {
		if !strings.Contains(view, want) {
			t.Errorf("empty view missing %q", want)
		}
	}

	btn := h.region(actionRefresh)
	h.send(press(btn.Rect.X+1, btn.Rect.Y))
	if h.m.ctrl.IsExhausted() || h.m.ctrl.VisibleFrom() != 0 {
		t.Fatalf("refresh should restart the deck, visibleFrom %d", h.m.ctrl.VisibleFrom())
	}
	if !strings.Contains(h.m.View(), "Card #1") {
		t.Error("view should show the first card after refresh")
	}
}

func TestEmptyStateEnterRefreshes(t *testing.T) {
	h := newHarness(t)
	h.m.ctrl.Reset(nil)
	h.m.cards = deckfile.Sample().Cards[:2]

	h.key("enter")
	if h.m.ctrl.Len() != 2 || h.m.ctrl.IsExhausted() {
		t.Errorf("enter should reload the deck, len %d", h.m.ctrl.Len())
	}
}

func TestResetKey(t *testing.T) {
	h := newHarness(t)
	h.key("left")
	h.settle()
	h.key("r")
	if h.m.ctrl.VisibleFrom() != 0 {
		t.Errorf("visibleFrom after reset: got %d, want 0", h.m.ctrl.VisibleFrom())
	}
	if h.m.Nopes() != 1 {
		t.Errorf("session tally should survive reset, got %d", h.m.Nopes())
	}
}

func TestRecorderErrorShown(t *testing.T) {
	h := newHarness(t)
	h.rec.err = errors.New("disk full")
	h.key("left")
	h.settle()

	if !strings.Contains(h.m.View(), "disk full") {
		t.Error("status should surface the recorder error")
	}
	if h.m.Nopes() != 1 {
		t.Errorf("swipe should count despite the error, got %d", h.m.Nopes())
	}
}

func TestQuitKey(t *testing.T) {
	h := newHarness(t)
	cmd := h.key("q")
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg, got %T", cmd())
	}
}

func TestHelpToggle(t *testing.T) {
	h := newHarness(t)
	if strings.Contains(h.m.View(), "reset deck") {
		t.Error("short help should not list reset")
	}
	h.key("?")
	if !strings.Contains(h.m.View(), "reset deck") {
		t.Error("full help should list reset")
	}
}
