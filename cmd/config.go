package cmd

import (
	"fmt"
	"strings"

	"github.com/marcus/swipedeck/internal/config"
	"github.com/marcus/swipedeck/internal/output"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Show or change local settings",
	GroupID: "system",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(settingsMap(s))
		}
		values := settingsMap(s)
		for _, key := range config.Keys {
			fmt.Printf("%-18s %v\n", key, values[key])
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value (" + strings.Join(config.Keys, ", ") + ")",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Set(getBaseDir(), args[0], args[1]); err != nil {
			return err
		}
		output.Success("%s set to %s", args[0], args[1])
		return nil
	},
}

func loadSettings() (config.Settings, error) {
	s, err := config.LoadSettings(getBaseDir())
	if err != nil {
		return config.Settings{}, fmt.Errorf("load config: %w", err)
	}
	return s, nil
}

// settingsMap keys resolved settings by their config key
func settingsMap(s config.Settings) map[string]any {
	paths := s.DeckPaths
	if paths == nil {
		paths = []string{}
	}
	return map[string]any{
		"cell_width_px":    s.CellWidthPx,
		"cell_height_px":   s.CellHeightPx,
		"exit_duration_ms": s.ExitDuration.Milliseconds(),
		"frame_rate":       int(1e9 / s.FrameInterval.Nanoseconds()),
		"markdown_style":   s.MarkdownStyle,
		"deck_paths":       paths,
		"record_verdicts":  s.RecordVerdicts,
	}
}

func init() {
	configShowCmd.Flags().Bool("json", false, "output as JSON")
	configCmd.AddCommand(configShowCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}
