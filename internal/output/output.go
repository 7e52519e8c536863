package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	rightStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	leftStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Error prints a formatted error to stderr
func Error(format string, args ...any) {
	fmt.Fprintln(stderr, errorStyle.Render("ERROR:")+" "+fmt.Sprintf(format, args...))
}

// Warning prints a formatted warning to stderr
func Warning(format string, args ...any) {
	fmt.Fprintln(stderr, warningStyle.Render("WARNING:")+" "+fmt.Sprintf(format, args...))
}

// Success prints a formatted confirmation to stdout
func Success(format string, args ...any) {
	fmt.Fprintln(stdout, successStyle.Render(fmt.Sprintf(format, args...)))
}

// JSON writes v as indented JSON to stdout
func JSON(v any) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// JSONError writes an error object to stdout for --json callers
func JSONError(code, message string) error {
	return JSON(map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}

// FormatTimeAgo renders t relative to now, e.g. "5m ago"
func FormatTimeAgo(t time.Time) string {
	return formatTimeAgo(t, time.Now())
}

func formatTimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}
