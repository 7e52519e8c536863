package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/marcus/swipedeck/internal/output"
	"github.com/marcus/swipedeck/internal/workdir"
	"github.com/spf13/cobra"
)

var (
	version string
	baseDir string

	debugFlag bool
	dirFlag   string

	// logger writes to .swipedeck/debug.log with --debug and discards otherwise
	logger     = slog.New(slog.DiscardHandler)
	closeDebug = func() error { return nil }
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "swipedeck [deck-file...]",
	Short: "Swipe through a deck of cards in the terminal",
	Long: `swipedeck - swipe cards left or right in the terminal.

Drag the top card with the mouse, or use the arrow keys. Every swipe is
recorded in a local journal so decks can be reviewed later with "history".
Run without a subcommand to play the given deck files, or the built-in
sample deck.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	Args:              cobra.ArbitraryArgs,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeDebug()
	},
	RunE: runPlay,
}

// Execute runs the root command
func Execute() {
	if first := firstNonFlagArg(os.Args[1:]); first != "" && !isCommand(first) {
		if _, err := os.Stat(first); err != nil {
			output.Error("unknown command or deck file %q", first)
			os.Exit(1)
		}
	}
	if err := rootCmd.Execute(); err != nil {
		output.Error("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: "core", Title: "Core Commands:"},
		&cobra.Group{ID: "system", Title: "System Commands:"},
	)
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "write debug logs to .swipedeck/debug.log")
	rootCmd.PersistentFlags().StringVarP(&dirFlag, "dir", "C", "", "base directory holding .swipedeck (default: current directory)")
	addPlayFlags(rootCmd.Flags())
}

func setup(cmd *cobra.Command, args []string) error {
	var layout workdir.Layout
	if dirFlag != "" {
		abs, err := filepath.Abs(dirFlag)
		if err != nil {
			return fmt.Errorf("resolve base dir: %w", err)
		}
		layout = workdir.At(abs)
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("cannot determine working directory: %w", err)
		}
		layout = workdir.Locate(wd)
	}
	baseDir = layout.Base

	if debugFlag {
		l, closeFn, err := openDebugLog(layout)
		if err != nil {
			return err
		}
		logger, closeDebug = l, closeFn
		slog.SetDefault(logger)
		logger.Debug("start", "command", cmd.CommandPath(), "version", version, "dir", baseDir, "source", layout.Source.String())
	}
	return nil
}

// getBaseDir returns the base directory for the project
func getBaseDir() string {
	return baseDir
}

// valueFlags are persistent flags that consume the next argument
var valueFlags = map[string]bool{"--dir": true, "-C": true}

// firstNonFlagArg returns the first argument that is neither a flag nor the
// value of a persistent flag.
func firstNonFlagArg(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "-") {
			if valueFlags[a] {
				i++
			}
			continue
		}
		return a
	}
	return ""
}

func isCommand(name string) bool {
	if name == "help" || name == "completion" {
		return true
	}
	for _, c := range rootCmd.Commands() {
		if c.Name() == name || c.HasAlias(name) {
			return true
		}
	}
	return false
}
