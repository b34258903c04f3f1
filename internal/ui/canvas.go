package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/yanmxa/gauntlet/internal/focus"
)

// canvas accumulates rendered lines and records where focusable items land,
// so that scroll requests can be answered from the last render.
type canvas struct {
	lines  []string
	layout *focus.Layout
}

func newCanvas(layout *focus.Layout) *canvas {
	return &canvas{layout: layout}
}

// add appends block and returns its rect in content coordinates.
func (c *canvas) add(block string) focus.Rect {
	parts := strings.Split(block, "\n")
	r := focus.Rect{Y: len(c.lines), Height: len(parts)}
	for _, p := range parts {
		r.Width = max(r.Width, lipgloss.Width(p))
	}
	c.lines = append(c.lines, parts...)
	return r
}

// item appends block and records it under target.
func (c *canvas) item(target, block string) {
	c.layout.Record(target, c.add(block))
}

func (c *canvas) blank() {
	c.lines = append(c.lines, "")
}

func (c *canvas) String() string {
	return strings.Join(c.lines, "\n")
}

// truncate shortens s to width cells with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
