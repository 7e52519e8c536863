// Package workdir locates the .swipedeck state directory and names the
// files kept inside it.
package workdir

import (
	"os"
	"path/filepath"
	"strings"
)

// StateDirName is the directory holding the journal, config and debug log.
const StateDirName = ".swipedeck"

const (
	rootFileName = ".swipedeck-root"
	repoMarker   = ".git"

	journalFile  = "verdicts.db"
	configFile   = "config.json"
	debugLogFile = "debug.log"
)

// Source records how a Layout's base directory was chosen.
type Source int

const (
	// SourceStart means no marker was found and the start directory is used.
	SourceStart Source = iota
	// SourceRootFile means a .swipedeck-root file redirected the base.
	SourceRootFile
	// SourceStateDir means an existing .swipedeck directory was found.
	SourceStateDir
	// SourceExplicit means the caller named the base directly.
	SourceExplicit
)

func (s Source) String() string {
	switch s {
	case SourceRootFile:
		return "root-file"
	case SourceStateDir:
		return "state-dir"
	case SourceExplicit:
		return "explicit"
	default:
		return "start"
	}
}

// Layout is a resolved base directory and the state paths beneath it.
type Layout struct {
	Base   string
	Source Source
}

// At returns the layout rooted at base without looking for markers.
func At(base string) Layout {
	return Layout{Base: filepath.Clean(base), Source: SourceExplicit}
}

// StateDir is <base>/.swipedeck.
func (l Layout) StateDir() string { return filepath.Join(l.Base, StateDirName) }

// JournalPath is the sqlite verdict journal.
func (l Layout) JournalPath() string { return filepath.Join(l.StateDir(), journalFile) }

// ConfigPath is the JSON settings file.
func (l Layout) ConfigPath() string { return filepath.Join(l.StateDir(), configFile) }

// DebugLogPath is where --debug appends JSON log records.
func (l Layout) DebugLogPath() string { return filepath.Join(l.StateDir(), debugLogFile) }

// Ensure creates the state directory if it is missing.
func (l Layout) Ensure() error {
	return os.MkdirAll(l.StateDir(), 0755)
}

// HasState reports whether the state directory already exists.
func (l Layout) HasState() bool {
	fi, err := os.Stat(l.StateDir())
	return err == nil && fi.IsDir()
}

// Locate walks from start toward the filesystem root and returns the layout
// of the nearest directory holding a .swipedeck-root file or a .swipedeck
// directory. A root file beats a state directory in the same place. The walk
// stops after the first directory containing .git, so one repository never
// picks up another's journal. With no marker, start itself is the base.
func Locate(start string) Layout {
	if start == "" {
		return Layout{}
	}
	start = filepath.Clean(start)

	for dir := start; ; {
		if target, ok := readRootFile(dir); ok {
			return Layout{Base: target, Source: SourceRootFile}
		}
		if l := (Layout{Base: dir, Source: SourceStateDir}); l.HasState() {
			return l
		}
		if exists(filepath.Join(dir, repoMarker)) {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return Layout{Base: start, Source: SourceStart}
}

// readRootFile returns the directory named by dir/.swipedeck-root, resolved
// against dir when relative. Blank files are ignored.
func readRootFile(dir string) (string, bool) {
	content, err := os.ReadFile(filepath.Join(dir, rootFileName))
	if err != nil {
		return "", false
	}
	target := strings.TrimSpace(string(content))
	if target == "" {
		return "", false
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(dir, target)
	}
	return filepath.Clean(target), true
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
