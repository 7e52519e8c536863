// Package deckview hosts a swipe stack in a terminal using bubbletea.
//
// The stack controller works in pixels; the view converts to terminal cells
// with a configurable cell size. Mouse drags on the top card are routed to
// its gesture handle, the arrow keys swipe without a gesture, and animation
// frames are scheduled only while the controller has work to do.
package deckview

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/swipedeck/internal/models"
	"github.com/marcus/swipedeck/pkg/deckview/modal"
	"github.com/marcus/swipedeck/pkg/deckview/mouse"
	"github.com/marcus/swipedeck/pkg/swipe"
)

const (
	defaultCellWidth  = 8
	defaultCellHeight = 16
	defaultFrameRate  = 60

	actionRefresh = "refresh"
	topCardRegion = "card-0"
)

// Recorder persists committed swipes.
type Recorder interface {
	RecordVerdict(v *models.Verdict) error
}

// Options configures a Model. Zero values pick defaults.
type Options struct {
	DeckID   string
	DeckName string

	CellWidth     int // pixels per column
	CellHeight    int // pixels per row
	FrameInterval time.Duration

	ExitDuration  time.Duration
	MarkdownStyle string

	Recorder Recorder
	Logger   *slog.Logger
	Clock    swipe.Clock
}

// session is shared by every copy of the Model; swipe callbacks write to it.
type session struct {
	likes, nopes int
	last         *models.Verdict
	err          error
}

// Model is the bubbletea model for a swipe session.
type Model struct {
	opts   Options
	cards  []models.Card
	ctrl   *swipe.Controller[models.Card]
	state  *session
	logger *slog.Logger
	clock  swipe.Clock

	keys  keyMap
	help  help.Model
	mouse *mouse.Handler
	empty *modal.Modal
	cardR *cardRenderer

	width, height int
	ticking       bool
	handle        *swipe.GestureHandle[models.Card]
}

// frameMsg drives one animation step.
type frameMsg struct{}

// New creates a model showing cards from the top.
func New(cards []models.Card, opts Options) Model {
	if opts.CellWidth <= 0 {
		opts.CellWidth = defaultCellWidth
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = defaultCellHeight
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = time.Second / defaultFrameRate
	}
	if opts.MarkdownStyle == "" {
		opts.MarkdownStyle = "dark"
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	clock := opts.Clock
	if clock == nil {
		clock = swipe.SystemClock
	}

	m := Model{
		opts:   opts,
		cards:  cards,
		state:  &session{},
		logger: logger,
		clock:  clock,
		keys:   defaultKeyMap(),
		help:   help.New(),
		mouse:  mouse.NewHandler(),
		cardR:  newCardRenderer(opts.MarkdownStyle),
	}
	m.empty = modal.New("Out of cards", modal.WithWidth(40), modal.WithHints(false), modal.WithPrimaryAction(actionRefresh)).
		AddSection(modal.Text("Guess you are out of cards!")).
		AddSection(modal.Spacer()).
		AddSection(modal.Buttons(modal.Btn(" REFRESH ", actionRefresh)))

	m.ctrl = swipe.NewController(swipe.Options[models.Card]{
		ExitDuration: opts.ExitDuration,
		Clock:        clock,
		OnSwipeRight: m.onSwipe(models.DirectionRight),
		OnSwipeLeft:  m.onSwipe(models.DirectionLeft),
	})
	m.ctrl.Reset(cards)
	return m
}

// onSwipe returns the callback for one direction. It only touches shared
// state, so it is safe to capture from a Model copy.
func (m Model) onSwipe(dir models.Direction) func(swipe.Deck[models.Card]) {
	state, logger, rec := m.state, m.logger, m.opts.Recorder
	deckID := m.opts.DeckID
	return func(d swipe.Deck[models.Card]) {
		card, ok := d.Top()
		if !ok {
			return
		}
		v := &models.Verdict{
			DeckID:    deckID,
			CardID:    card.ID,
			CardTitle: card.Title,
			Direction: dir,
		}
		if dir == models.DirectionRight {
			state.likes++
		} else {
			state.nopes++
		}
		state.last = v
		logger.Info("swipe", "deck", deckID, "id", card.ID, "direction", string(dir), "position", d.VisibleFrom+1, "total", d.Len())

		if rec == nil {
			return
		}
		if err := rec.RecordVerdict(v); err != nil {
			state.err = fmt.Errorf("record verdict: %w", err)
			logger.Error("record verdict", "id", card.ID, "err", err)
		}
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.ctrl.SetScreenWidth(float64(msg.Width * m.opts.CellWidth))
		return m, nil

	case frameMsg:
		m.ticking = false
		m.ctrl.Tick(m.clock.Now())
		return m.scheduleFrame()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.ctrl.IsExhausted() {
		if action, cmd := m.empty.HandleKey(msg); action == actionRefresh {
			return m.reset()
		} else if cmd != nil {
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Left):
		m.swipe(swipe.Left)
	case key.Matches(msg, m.keys.Right):
		m.swipe(swipe.Right)
	case key.Matches(msg, m.keys.Reset):
		return m.reset()
	}
	return m.scheduleFrame()
}

func (m Model) swipe(dir swipe.Direction) {
	if m.ctrl.Swipe(dir) {
		m.logger.Debug("swipe key", "direction", dir.String())
	}
}

func (m Model) reset() (tea.Model, tea.Cmd) {
	m.ctrl.Reset(m.cards)
	m.handle = nil
	m.mouse.EndDrag()
	m.state.err = nil
	m.logger.Info("deck reset", "deck", m.opts.DeckID, "cards", len(m.cards))
	return m.scheduleFrame()
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.ctrl.IsExhausted() {
		if m.empty.HandleMouse(msg, m.mouse) == actionRefresh {
			return m.reset()
		}
		return m, nil
	}

	action := m.mouse.HandleMouse(msg)
	switch action.Type {
	case mouse.ActionClick, mouse.ActionDoubleClick:
		if action.Region == nil || action.Region.ID != topCardRegion {
			return m, nil
		}
		layer, ok := m.ctrl.Layer(0)
		if !ok {
			return m, nil
		}
		m.handle = layer.Handle
		m.handle.Start()
		m.mouse.StartDrag(msg.X, msg.Y, topCardRegion, 0)

	case mouse.ActionDrag:
		dx, dy := m.toPixels(action.DragDX, action.DragDY)
		m.handle.Move(dx, dy)

	case mouse.ActionDragEnd:
		dx, dy := m.toPixels(action.DragDX, action.DragDY)
		decision := m.handle.Release(dx, dy)
		m.handle = nil
		m.logger.Debug("gesture released", "dx", dx, "decision", decision.String())
	}
	return m.scheduleFrame()
}

func (m Model) toPixels(dx, dy int) (float64, float64) {
	return float64(dx * m.opts.CellWidth), float64(dy * m.opts.CellHeight)
}

// scheduleFrame requests the next animation frame unless one is already
// pending or nothing is moving.
func (m Model) scheduleFrame() (tea.Model, tea.Cmd) {
	if m.ticking || !m.ctrl.Animating() {
		return m, nil
	}
	m.ticking = true
	return m, tea.Tick(m.opts.FrameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

// stageTop is the first row below the header.
const stageTop = 1

func (m Model) stageHeight() int {
	return max(0, m.height-stageTop-2)
}

func (m Model) cardSize() (int, int) {
	w := min(m.width, max(20, min(48, m.width*6/10)))
	h := max(6, min(18, m.stageHeight()-3))
	return w, h
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	m.mouse.Clear()
	cv := newCanvas(m.width, m.height)

	frame := swipe.Render(m.ctrl, m.renderer())
	if frame.Empty {
		cv.draw(frame.EmptyState, 0, 0)
	} else {
		m.drawStack(cv, frame)
	}

	footer := m.statusLine() + "\n" + m.help.View(m.keys)
	cv.drawLine(m.header(), 0, 0)
	cv.draw(footer, 0, m.height-strings.Count(footer, "\n")-1)
	return cv.String()
}

func (m Model) renderer() swipe.Renderer[models.Card, string] {
	cw, ch := m.cardSize()
	m.cardR.resize(cw, ch)
	return swipe.RenderFuncs[models.Card, string]{
		Card: m.cardR.render,
		Empty: func() string {
			return m.empty.Render(m.width, m.height, m.mouse)
		},
	}
}

func (m Model) drawStack(cv *canvas, frame swipe.Frame[models.Card, string]) {
	cw, ch := m.cardSize()
	baseX := (m.width - cw) / 2
	baseY := stageTop + 1

	for _, p := range frame.Layers {
		pos := p.Position()
		x := baseX + int(math.Round(pos.X/float64(m.opts.CellWidth)))
		y := baseY + int(math.Round(pos.Y/float64(m.opts.CellHeight)))

		lines := strings.Split(p.Output, "\n")
		offsets := shear(len(lines), p.RotationDeg, m.opts.CellWidth, m.opts.CellHeight)
		for i, line := range lines {
			cv.drawLine(line, x+offsets[i], y+i)
		}
		m.mouse.HitMap.AddRect(fmt.Sprintf("card-%d", p.Index), x, y, cw, ch, p.Item.ID)

		if p.IsTopmost {
			m.drawStamp(cv, pos.X, x, y, cw)
		}
	}
}

// drawStamp labels the top card once the drag passes half the threshold.
func (m Model) drawStamp(cv *canvas, dx float64, x, y, cw int) {
	if math.Abs(dx) < m.ctrl.Threshold()/2 {
		return
	}
	if dx > 0 {
		cv.draw(likeStamp.Render("LIKE"), x+2, y+1)
		return
	}
	stamp := nopeStamp.Render("NOPE")
	cv.draw(stamp, x+cw-2-ansi.StringWidth(strings.SplitN(stamp, "\n", 2)[0]), y+1)
}

func (m Model) header() string {
	name := m.opts.DeckName
	if name == "" {
		name = "deck"
	}
	return titleStyle.Render(" swipedeck ") + mutedStyle.Render(name)
}

func (m Model) statusLine() string {
	n := m.ctrl.Len()
	var parts []string
	if m.ctrl.IsExhausted() {
		parts = append(parts, mutedStyle.Render(fmt.Sprintf("%d/%d done", n, n)))
	} else {
		parts = append(parts, fmt.Sprintf("%d/%d", m.ctrl.VisibleFrom()+1, n))
	}
	if v := m.state.last; v != nil {
		label := nopeStyle.Render("✗ nope")
		if v.Direction == models.DirectionRight {
			label = likeStyle.Render("♥ like")
		}
		parts = append(parts, "last: "+label+" "+v.CardTitle)
	}
	parts = append(parts,
		likeStyle.Render(fmt.Sprintf("♥ %d", m.state.likes)),
		nopeStyle.Render(fmt.Sprintf("✗ %d", m.state.nopes)),
	)
	if m.state.err != nil {
		parts = append(parts, errStyle.Render(m.state.err.Error()))
	}
	return " " + strings.Join(parts, "  ")
}

// Likes returns the number of right swipes this session.
func (m Model) Likes() int { return m.state.likes }

// Nopes returns the number of left swipes this session.
func (m Model) Nopes() int { return m.state.nopes }
