// Package modal provides a declarative modal dialog with automatic hit
// region management for mouse support.
//
// Sections are rendered first and measured afterwards, so the hit regions
// registered for buttons always match what was drawn. Keyboard navigation
// (Tab/Shift+Tab, Enter, Esc) and hover state are handled by the modal.
//
// # Quick Start
//
//	m := modal.New("Out of cards", modal.WithPrimaryAction("refresh")).
//	    AddSection(modal.Text("Guess you are out of cards!")).
//	    AddSection(modal.Spacer()).
//	    AddSection(modal.Buttons(
//	        modal.Btn(" REFRESH ", "refresh"),
//	    ))
//
//	// In View():
//	content := m.Render(screenW, screenH, mouseHandler)
//
//	// In Update():
//	if action, cmd := m.HandleKey(keyMsg); action == "refresh" {
//	    return resetDeck()
//	}
//
// # Built-in Sections
//
//   - Text(s string) - static text, auto-wrapped
//   - Spacer() - blank line
//   - Buttons(btns ...ButtonDef) - button row with focus/hover styling
//   - When(condition func() bool, section) - conditional rendering
//
// # Options
//
//   - WithWidth(w int) - set modal width (default: 50)
//   - WithVariant(v Variant) - set visual style (Default, Danger, Warning, Info)
//   - WithHints(show bool) - show/hide keyboard hints at bottom
//   - WithPrimaryAction(actionID string) - action for implicit Enter submit
//   - WithCloseOnBackdropClick(close bool) - close on backdrop click
package modal
