package output

import (
	"strings"

	"github.com/marcus/swipedeck/internal/models"
)

// TreeNode represents a node in a tree structure for rendering
type TreeNode struct {
	ID       string
	Title    string
	Verdict  models.Direction // empty = not swiped yet
	Children []TreeNode
}

// TreeRenderOptions configures tree rendering behavior
type TreeRenderOptions struct {
	MaxDepth    int  // 0 = unlimited
	ShowVerdict bool // Whether to show the last verdict mark
}

// verdictMark returns a verdict indicator symbol
func verdictMark(d models.Direction) string {
	switch d {
	case models.DirectionRight:
		return " ✓" // ✓
	case models.DirectionLeft:
		return " ✗" // ✗
	default:
		return ""
	}
}

// CardTree builds a deck tree: one node per card, tags as children.
// verdicts maps card id to its latest direction and may be nil.
func CardTree(name string, cards []models.Card, verdicts map[string]models.Direction) TreeNode {
	root := TreeNode{ID: name, Title: name}
	for _, c := range cards {
		node := TreeNode{ID: c.ID, Title: c.Title, Verdict: verdicts[c.ID]}
		for _, tag := range c.Tags {
			node.Children = append(node.Children, TreeNode{ID: "#" + tag})
		}
		root.Children = append(root.Children, node)
	}
	return root
}

// RenderTree renders a tree starting from a single root node
// Returns the complete tree as a string (without the root - just children)
func RenderTree(root TreeNode, opts TreeRenderOptions) string {
	lines := renderTreeNodes(root.Children, opts, 0, "")
	return strings.Join(lines, "\n")
}

// RenderTreeLines renders multiple root nodes and returns individual lines
func RenderTreeLines(roots []TreeNode, opts TreeRenderOptions) []string {
	return renderTreeNodes(roots, opts, 0, "")
}

func renderTreeNodes(nodes []TreeNode, opts TreeRenderOptions, depth int, prefix string) []string {
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		return nil
	}

	var lines []string

	for i, node := range nodes {
		isLast := i == len(nodes)-1

		connector := "├── " // ├──
		if isLast {
			connector = "└── " // └──
		}

		label := node.ID
		if node.Title != "" {
			label += ": " + node.Title
		}
		if opts.ShowVerdict {
			label += verdictMark(node.Verdict)
		}
		lines = append(lines, prefix+connector+label)

		childPrefix := prefix
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "│   " // │
		}

		lines = append(lines, renderTreeNodes(node.Children, opts, depth+1, childPrefix)...)
	}

	return lines
}
