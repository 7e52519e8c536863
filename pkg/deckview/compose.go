package deckview

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// canvas is a fixed-size grid of styled lines. Blocks drawn later cover
// earlier ones; anything outside the grid is clipped.
type canvas struct {
	width, height int
	lines         []string
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: max(0, width), height: max(0, height)}
	blank := strings.Repeat(" ", c.width)
	c.lines = make([]string, c.height)
	for i := range c.lines {
		c.lines[i] = blank
	}
	return c
}

// draw places a multi-line block with its top-left corner at (x, y).
func (c *canvas) draw(block string, x, y int) {
	for i, line := range strings.Split(block, "\n") {
		c.drawLine(line, x, y+i)
	}
}

// drawLine places one line at (x, y).
func (c *canvas) drawLine(s string, x, y int) {
	if y < 0 || y >= c.height || s == "" {
		return
	}
	c.lines[y] = overlayLine(c.lines[y], s, x, c.width)
}

func (c *canvas) String() string {
	return strings.Join(c.lines, "\n")
}

// overlayLine writes s over base starting at column x, keeping the styled
// cells of base on either side.
func overlayLine(base, s string, x, width int) string {
	sw := ansi.StringWidth(s)
	if x < 0 {
		s = ansi.TruncateLeft(s, -x, "")
		sw += x
		x = 0
	}
	if sw <= 0 || x >= width {
		return base
	}
	if x+sw > width {
		s = ansi.Truncate(s, width-x, "")
		sw = width - x
	}

	left := ansi.Truncate(base, x, "")
	if lw := ansi.StringWidth(left); lw < x {
		left += strings.Repeat(" ", x-lw)
	}
	right := ansi.TruncateLeft(base, x+sw, "")
	return left + s + right
}
