package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/marcus/swipedeck/internal/models"
	"github.com/marcus/swipedeck/internal/workdir"
)

// Defaults applied when a setting is missing or out of range
const (
	DefaultCellWidthPx    = 8
	DefaultCellHeightPx   = 16
	DefaultExitDurationMs = 400
	DefaultFrameRate      = 60
	DefaultMarkdownStyle  = "dark"
)

// Keys accepted by Set
var Keys = []string{
	"cell_width_px",
	"cell_height_px",
	"exit_duration_ms",
	"frame_rate",
	"markdown_style",
	"deck_paths",
	"record_verdicts",
}

// Settings is a config with defaults applied
type Settings struct {
	CellWidthPx    int
	CellHeightPx   int
	ExitDuration   time.Duration
	FrameInterval  time.Duration
	MarkdownStyle  string
	DeckPaths      []string
	RecordVerdicts bool
}

// Load reads the config from disk
func Load(baseDir string) (*models.Config, error) {
	configPath := workdir.At(baseDir).ConfigPath()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &models.Config{}, nil
		}
		return nil, err
	}

	var cfg models.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the config to disk
func Save(baseDir string, cfg *models.Config) error {
	layout := workdir.At(baseDir)
	if err := layout.Ensure(); err != nil {
		return err
	}
	configPath := layout.ConfigPath()

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// Resolve applies defaults to a loaded config
func Resolve(cfg *models.Config) Settings {
	s := Settings{
		CellWidthPx:    positiveOr(cfg.CellWidthPx, DefaultCellWidthPx),
		CellHeightPx:   positiveOr(cfg.CellHeightPx, DefaultCellHeightPx),
		ExitDuration:   time.Duration(positiveOr(cfg.ExitDurationMs, DefaultExitDurationMs)) * time.Millisecond,
		MarkdownStyle:  cfg.MarkdownStyle,
		DeckPaths:      cfg.DeckPaths,
		RecordVerdicts: cfg.ShouldRecord(),
	}
	fps := positiveOr(cfg.FrameRate, DefaultFrameRate)
	if fps > 240 {
		fps = 240
	}
	s.FrameInterval = time.Second / time.Duration(fps)
	if s.MarkdownStyle == "" {
		s.MarkdownStyle = DefaultMarkdownStyle
	}
	return s
}

// LoadSettings reads the config and applies defaults
func LoadSettings(baseDir string) (Settings, error) {
	cfg, err := Load(baseDir)
	if err != nil {
		return Settings{}, err
	}
	return Resolve(cfg), nil
}

// Set updates a single key from its string form and saves the config
func Set(baseDir, key, value string) error {
	cfg, err := Load(baseDir)
	if err != nil {
		return err
	}

	switch key {
	case "cell_width_px":
		cfg.CellWidthPx, err = parsePositive(key, value)
	case "cell_height_px":
		cfg.CellHeightPx, err = parsePositive(key, value)
	case "exit_duration_ms":
		cfg.ExitDurationMs, err = parsePositive(key, value)
	case "frame_rate":
		cfg.FrameRate, err = parsePositive(key, value)
	case "markdown_style":
		cfg.MarkdownStyle = strings.TrimSpace(value)
	case "deck_paths":
		cfg.DeckPaths = splitList(value)
	case "record_verdicts":
		var b bool
		b, err = strconv.ParseBool(value)
		if err != nil {
			err = fmt.Errorf("%s: expected true or false, got %q", key, value)
		}
		cfg.RecordVerdicts = &b
	default:
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(Keys, ", "))
	}
	if err != nil {
		return err
	}

	return Save(baseDir, cfg)
}

func positiveOr(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func parsePositive(key, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s: expected a positive integer, got %q", key, value)
	}
	return n, nil
}

func splitList(value string) []string {
	var out []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
