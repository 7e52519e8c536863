package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/swipedeck/pkg/deckview/mouse"
)

// Variant selects the border color.
type Variant int

const (
	VariantDefault Variant = iota
	VariantDanger
	VariantWarning
	VariantInfo
)

// Region ids registered with the mouse handler besides the focusables.
const (
	BackdropID = "modal-backdrop"
	BodyID     = "modal-body"
)

// ActionCancel is returned for Esc and backdrop clicks.
const ActionCancel = "cancel"

const defaultWidth = 50

// Option configures a Modal.
type Option func(*Modal)

// WithWidth sets the outer width including the border.
func WithWidth(w int) Option {
	return func(m *Modal) {
		if w > 0 {
			m.width = w
		}
	}
}

// WithVariant sets the visual style.
func WithVariant(v Variant) Option {
	return func(m *Modal) { m.variant = v }
}

// WithHints toggles the keyboard hint line.
func WithHints(show bool) Option {
	return func(m *Modal) { m.showHints = show }
}

// WithPrimaryAction sets the action returned by Enter when nothing that
// handles Enter is focused.
func WithPrimaryAction(actionID string) Option {
	return func(m *Modal) { m.primaryAction = actionID }
}

// WithCloseOnBackdropClick makes a click outside the body return ActionCancel.
func WithCloseOnBackdropClick(close bool) Option {
	return func(m *Modal) { m.closeOnBackdrop = close }
}

// Modal is a dialog box made of sections.
type Modal struct {
	title           string
	width           int
	variant         Variant
	showHints       bool
	primaryAction   string
	closeOnBackdrop bool

	sections []Section

	// From the last Render.
	focusIDs []string
	focusIdx int
	hoverID  string
}

// New creates a modal with the given title.
func New(title string, opts ...Option) *Modal {
	m := &Modal{
		title:     title,
		width:     defaultWidth,
		showHints: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddSection appends a section and returns the modal for chaining.
func (m *Modal) AddSection(s Section) *Modal {
	m.sections = append(m.sections, s)
	return m
}

// FocusedID returns the id of the focused element, or "".
func (m *Modal) FocusedID() string {
	if m.focusIdx < 0 || m.focusIdx >= len(m.focusIDs) {
		return ""
	}
	return m.focusIDs[m.focusIdx]
}

// HoveredID returns the id under the pointer, or "".
func (m *Modal) HoveredID() string {
	return m.hoverID
}

// Render draws the modal centered on a screenW x screenH canvas and, when
// handler is non-nil, registers the backdrop, body and focusable regions.
func (m *Modal) Render(screenW, screenH int, handler *mouse.Handler) string {
	width := min(m.width, screenW)
	contentWidth := max(1, width-4) // border and padding on both sides

	focusID := m.FocusedID()

	var blocks []string
	var focusables []FocusableInfo
	y := 0
	add := func(content string) {
		blocks = append(blocks, content)
		y += lipgloss.Height(content)
	}

	if m.title != "" {
		add(ModalTitle.Foreground(borderColor(m.variant)).Render(m.title))
		add(" ")
	}
	for _, s := range m.sections {
		r := s.Render(contentWidth, focusID, m.hoverID)
		if r.Content == "" {
			continue
		}
		for _, f := range r.Focusables {
			f.OffsetY += y
			focusables = append(focusables, f)
		}
		add(r.Content)
	}
	if m.showHints {
		add(" ")
		add(MutedText.Render(m.hints()))
	}

	m.focusIDs = m.focusIDs[:0]
	for _, f := range focusables {
		m.focusIDs = append(m.focusIDs, f.ID)
	}
	if m.focusIdx >= len(m.focusIDs) {
		m.focusIdx = 0
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor(m.variant)).
		Padding(0, 1).
		Width(width - 2).
		Render(strings.Join(blocks, "\n"))

	boxW, boxH := lipgloss.Width(box), lipgloss.Height(box)
	x0 := max(0, (screenW-boxW)/2)
	y0 := max(0, (screenH-boxH)/2)

	if handler != nil {
		handler.HitMap.AddRect(BackdropID, 0, 0, screenW, screenH, nil)
		handler.HitMap.AddRect(BodyID, x0, y0, boxW, boxH, nil)
		for _, f := range focusables {
			handler.HitMap.AddRect(f.ID, x0+2+f.OffsetX, y0+1+f.OffsetY, f.Width, f.Height, nil)
		}
	}

	return place(box, x0, y0, screenH)
}

func (m *Modal) hints() string {
	parts := []string{}
	if len(m.focusIDs) > 1 {
		parts = append(parts, "tab: next")
	}
	parts = append(parts, "enter: select", "esc: close")
	return strings.Join(parts, "  ")
}

// place offsets box by (x0, y0) and pads it to height lines.
func place(box string, x0, y0, height int) string {
	lines := strings.Split(box, "\n")
	out := make([]string, 0, max(height, y0+len(lines)))
	for range y0 {
		out = append(out, "")
	}
	pad := strings.Repeat(" ", x0)
	for _, l := range lines {
		out = append(out, pad+l)
	}
	for len(out) < height {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

// HandleKey processes a key press and returns the triggered action id.
func (m *Modal) HandleKey(msg tea.KeyMsg) (string, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.cycleFocus(1)
		return "", nil
	case "shift+tab":
		m.cycleFocus(-1)
		return "", nil
	case "esc":
		return ActionCancel, nil
	}

	focusID := m.FocusedID()
	for _, s := range m.sections {
		if action, cmd := s.Update(msg, focusID); action != "" || cmd != nil {
			return action, cmd
		}
	}

	if msg.String() == "enter" && m.primaryAction != "" {
		return m.primaryAction, nil
	}
	return "", nil
}

func (m *Modal) cycleFocus(delta int) {
	n := len(m.focusIDs)
	if n == 0 {
		return
	}
	m.focusIdx = ((m.focusIdx+delta)%n + n) % n
}

// HandleMouse processes a mouse event against the regions registered by the
// last Render and returns the clicked action id.
func (m *Modal) HandleMouse(msg tea.MouseMsg, handler *mouse.Handler) string {
	action := handler.HandleMouse(msg)
	switch action.Type {
	case mouse.ActionHover:
		m.hoverID = ""
		if action.Region != nil && m.isFocusable(action.Region.ID) {
			m.hoverID = action.Region.ID
		}
	case mouse.ActionClick, mouse.ActionDoubleClick:
		if action.Region == nil {
			return ""
		}
		switch id := action.Region.ID; {
		case m.isFocusable(id):
			m.focusTo(id)
			return id
		case id == BackdropID && m.closeOnBackdrop:
			return ActionCancel
		}
	}
	return ""
}

func (m *Modal) isFocusable(id string) bool {
	for _, f := range m.focusIDs {
		if f == id {
			return true
		}
	}
	return false
}

func (m *Modal) focusTo(id string) {
	for i, f := range m.focusIDs {
		if f == id {
			m.focusIdx = i
			return
		}
	}
}
