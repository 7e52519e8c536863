package output

import (
	"strings"
	"testing"

	"github.com/marcus/swipedeck/internal/models"
)

func TestRenderTreeLines_Empty(t *testing.T) {
	lines := RenderTreeLines(nil, TreeRenderOptions{})
	if len(lines) != 0 {
		t.Errorf("expected empty lines, got %d", len(lines))
	}
}

func TestRenderTreeLines_SingleNode(t *testing.T) {
	nodes := []TreeNode{
		{ID: "1", Title: "Card #1", Verdict: models.DirectionRight},
	}
	lines := RenderTreeLines(nodes, TreeRenderOptions{ShowVerdict: true})

	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}

	line := lines[0]
	if !strings.Contains(line, "└──") {
		t.Errorf("expected last-item connector, got: %s", line)
	}
	if !strings.Contains(line, "1: Card #1") {
		t.Errorf("expected id and title in output, got: %s", line)
	}
	if !strings.Contains(line, "✓") {
		t.Errorf("expected like mark, got: %s", line)
	}
}

func TestRenderTreeLines_VerdictHidden(t *testing.T) {
	nodes := []TreeNode{{ID: "1", Title: "Card", Verdict: models.DirectionLeft}}
	lines := RenderTreeLines(nodes, TreeRenderOptions{})
	if strings.Contains(lines[0], "✗") {
		t.Errorf("verdict mark shown without ShowVerdict: %s", lines[0])
	}
}

func TestCardTree(t *testing.T) {
	cards := []models.Card{
		{ID: "a", Title: "Alpha", Tags: []string{"x", "y"}},
		{ID: "b", Title: "Beta"},
	}
	root := CardTree("demo", cards, map[string]models.Direction{"b": models.DirectionLeft})

	lines := strings.Split(RenderTree(root, TreeRenderOptions{ShowVerdict: true}), "\n")
	want := []string{
		"├── a: Alpha",
		"│   ├── #x",
		"│   └── #y",
		"└── b: Beta ✗",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRenderTreeLines_MaxDepth(t *testing.T) {
	root := CardTree("demo", []models.Card{{ID: "a", Title: "Alpha", Tags: []string{"x"}}}, nil)
	lines := RenderTreeLines(root.Children, TreeRenderOptions{MaxDepth: 1})
	if len(lines) != 1 {
		t.Errorf("expected 1 line with MaxDepth=1, got %d: %v", len(lines), lines)
	}
}
