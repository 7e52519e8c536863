package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/swipedeck/internal/config"
	"github.com/marcus/swipedeck/internal/db"
	"github.com/marcus/swipedeck/internal/deckfile"
	"github.com/marcus/swipedeck/internal/output"
	"github.com/marcus/swipedeck/pkg/deckview"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

// ErrNoTTY is returned when play is started without a terminal
var ErrNoTTY = errors.New("play needs an interactive terminal")

var playFlags struct {
	filter   string
	noRecord bool
	exitMs   int
	style    enumValue
}

// markdownStyles are the glamour standard styles accepted by --style
var markdownStyles = []string{"auto", "dark", "light", "notty", "ascii", "pink", "dracula", "tokyo-night"}

func init() {
	playFlags.style = enumValue{allowed: markdownStyles}
	addPlayFlags(playCmd.Flags())
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play [deck-file...]",
	Short: "Swipe through one or more decks",
	Long: `Swipe through the cards of the given deck files (JSON or YAML), in order.
Without files the configured deck_paths are used, then the built-in sample.`,
	GroupID: "core",
	RunE:    runPlay,
}

func addPlayFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&playFlags.filter, "filter", "f", "", "only include cards fuzzy-matching this query")
	fs.BoolVar(&playFlags.noRecord, "no-record", false, "do not write swipes to the journal")
	fs.IntVar(&playFlags.exitMs, "exit-ms", 0, "exit animation length in milliseconds")
	fs.Var(&playFlags.style, "style", "markdown style for card bodies ("+strings.Join(markdownStyles, ", ")+")")
}

func runPlay(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNoTTY
	}

	settings, err := config.LoadSettings(getBaseDir())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyPlayFlags(&settings)

	deck, err := loadDeck(cmd.Context(), args, settings.DeckPaths)
	if err != nil {
		return err
	}
	cards := deckfile.Filter(deck.Cards, playFlags.filter)
	if len(cards) == 0 {
		return fmt.Errorf("no cards match %q", playFlags.filter)
	}

	opts := deckview.Options{
		DeckID:        deck.ID(),
		DeckName:      deck.Name,
		CellWidth:     settings.CellWidthPx,
		CellHeight:    settings.CellHeightPx,
		FrameInterval: settings.FrameInterval,
		ExitDuration:  settings.ExitDuration,
		MarkdownStyle: settings.MarkdownStyle,
		Logger:        logger,
	}
	if settings.RecordVerdicts {
		journal, err := db.Initialize(getBaseDir())
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer journal.Close()
		opts.Recorder = journal
	}

	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		logger.Debug("play", "deck", opts.DeckID, "cards", len(cards), "cols", w, "rows", h)
	}

	p := tea.NewProgram(
		deckview.New(cards, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
	)
	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run: %w", err)
	}
	if m, ok := final.(deckview.Model); ok {
		output.Success("%d liked, %d noped", m.Likes(), m.Nopes())
	}
	return nil
}

// applyPlayFlags overrides config values with explicit flags
func applyPlayFlags(s *config.Settings) {
	if playFlags.noRecord {
		s.RecordVerdicts = false
	}
	if playFlags.exitMs > 0 {
		s.ExitDuration = time.Duration(playFlags.exitMs) * time.Millisecond
	}
	if playFlags.style.value != "" {
		s.MarkdownStyle = playFlags.style.value
	}
}

// loadDeck reads deck files from args, then from the configured paths, and
// falls back to the sample deck.
func loadDeck(ctx context.Context, args, configured []string) (*deckfile.Deck, error) {
	paths := args
	if len(paths) == 0 {
		paths = configured
	}
	if len(paths) == 0 {
		return deckfile.Sample(), nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	deck, err := deckfile.Load(ctx, paths...)
	if err != nil {
		return nil, fmt.Errorf("load deck: %w", err)
	}
	return deck, nil
}

// enumValue is a string flag restricted to a fixed set of values
type enumValue struct {
	allowed []string
	value   string
}

func (e *enumValue) String() string { return e.value }

func (e *enumValue) Set(v string) error {
	for _, a := range e.allowed {
		if a == v {
			e.value = v
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", strings.Join(e.allowed, ", "))
}

func (e *enumValue) Type() string { return "string" }
