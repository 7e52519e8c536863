package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/marcus/swipedeck/internal/workdir"
)

// openDebugLog returns a JSON logger appending to the layout's debug log.
// The terminal belongs to the TUI, so debug output never goes to stderr.
func openDebugLog(layout workdir.Layout) (*slog.Logger, func() error, error) {
	if err := layout.Ensure(); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(layout.DebugLogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open debug log: %w", err)
	}
	h := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h), f.Close, nil
}
