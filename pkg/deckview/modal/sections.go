package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FocusableInfo locates a focusable element relative to its section.
type FocusableInfo struct {
	ID      string
	OffsetX int
	OffsetY int
	Width   int
	Height  int
}

// RenderedSection is the output of Section.Render.
type RenderedSection struct {
	Content    string
	Focusables []FocusableInfo
}

// Section is one block of modal content.
type Section interface {
	Render(contentWidth int, focusID, hoverID string) RenderedSection
	// Update handles a message while focusID is focused and returns an
	// action id when the message triggered one.
	Update(msg tea.Msg, focusID string) (string, tea.Cmd)
}

type textSection struct {
	text string
}

// Text creates a static text section wrapped to the modal width.
func Text(s string) Section {
	return textSection{text: s}
}

func (s textSection) Render(contentWidth int, _, _ string) RenderedSection {
	return RenderedSection{Content: Body.Width(contentWidth).Render(s.text)}
}

func (textSection) Update(tea.Msg, string) (string, tea.Cmd) { return "", nil }

type spacerSection struct{}

// Spacer creates a blank line.
func Spacer() Section {
	return spacerSection{}
}

func (spacerSection) Render(int, string, string) RenderedSection {
	return RenderedSection{Content: " "}
}

func (spacerSection) Update(tea.Msg, string) (string, tea.Cmd) { return "", nil }

// ButtonDef describes one button.
type ButtonDef struct {
	Label  string
	ID     string
	Danger bool
}

// ButtonOption configures a button.
type ButtonOption func(*ButtonDef)

// BtnDanger styles the button as destructive.
func BtnDanger() ButtonOption {
	return func(b *ButtonDef) { b.Danger = true }
}

// Btn creates a button; id is returned as the action when it is pressed.
func Btn(label, id string, opts ...ButtonOption) ButtonDef {
	b := ButtonDef{Label: label, ID: id}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

type buttonsSection struct {
	buttons []ButtonDef
}

// Buttons creates a row of buttons separated by two spaces.
func Buttons(btns ...ButtonDef) Section {
	return buttonsSection{buttons: btns}
}

const buttonGap = 2

func (s buttonsSection) Render(_ int, focusID, hoverID string) RenderedSection {
	var sb strings.Builder
	var focusables []FocusableInfo
	x := 0
	for i, b := range s.buttons {
		if i > 0 {
			sb.WriteString(strings.Repeat(" ", buttonGap))
			x += buttonGap
		}
		rendered := buttonStyle(b, focusID == b.ID, hoverID == b.ID).Render(b.Label)
		w := lipgloss.Width(rendered)
		focusables = append(focusables, FocusableInfo{ID: b.ID, OffsetX: x, Width: w, Height: 1})
		sb.WriteString(rendered)
		x += w
	}
	return RenderedSection{Content: sb.String(), Focusables: focusables}
}

func (s buttonsSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || key.String() != "enter" {
		return "", nil
	}
	for _, b := range s.buttons {
		if b.ID == focusID {
			return b.ID, nil
		}
	}
	return "", nil
}

func buttonStyle(b ButtonDef, focused, hovered bool) lipgloss.Style {
	switch {
	case b.Danger && focused:
		return ButtonDangerFocused
	case b.Danger && hovered:
		return ButtonDangerHover
	case b.Danger:
		return ButtonDanger
	case focused:
		return ButtonFocused
	case hovered:
		return ButtonHover
	default:
		return Button
	}
}

type whenSection struct {
	cond    func() bool
	section Section
}

// When renders section only while cond returns true.
func When(cond func() bool, section Section) Section {
	return whenSection{cond: cond, section: section}
}

func (s whenSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	if !s.cond() {
		return RenderedSection{}
	}
	return s.section.Render(contentWidth, focusID, hoverID)
}

func (s whenSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if !s.cond() {
		return "", nil
	}
	return s.section.Update(msg, focusID)
}
