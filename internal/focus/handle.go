// Package focus tracks which item of a list, grid or action panel has
// keyboard focus and keeps it scrolled into view.
package focus

import (
	tea "github.com/charmbracelet/bubbletea"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/yanmxa/gauntlet/internal/navigation"
)

// ScrollHandle holds the focused item of one scrollable collection.
// K identifies items; V is the item payload.
type ScrollHandle[K comparable, V any] struct {
	scrollable string
	current    K
	focused    bool
}

// NewScrollHandle returns an unfocused handle for the named scrollable.
func NewScrollHandle[K comparable, V any](scrollable string) *ScrollHandle[K, V] {
	return &ScrollHandle[K, V]{scrollable: scrollable}
}

// Scrollable returns the id of the viewport that owns the items.
func (h *ScrollHandle[K, V]) Scrollable() string {
	return h.scrollable
}

// Current returns the focused id.
func (h *ScrollHandle[K, V]) Current() (K, bool) {
	return h.current, h.focused
}

// Get returns the focused item.
func (h *ScrollHandle[K, V]) Get(items *orderedmap.OrderedMap[K, V]) (V, bool) {
	if !h.focused {
		var zero V
		return zero, false
	}
	return items.Get(h.current)
}

// GetByID returns the item with the given id.
func (h *ScrollHandle[K, V]) GetByID(items *orderedmap.OrderedMap[K, V], id K) (V, bool) {
	return items.Get(id)
}

// Index returns the position of the focused item.
func (h *ScrollHandle[K, V]) Index(items *orderedmap.OrderedMap[K, V]) (int, bool) {
	if !h.focused {
		return 0, false
	}
	i := 0
	for pair := items.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Key == h.current {
			return i, true
		}
		i++
	}
	return 0, false
}

// FocusTarget focuses id. The returned command scrolls the item into view;
// it is nil when id was already focused.
func (h *ScrollHandle[K, V]) FocusTarget(id K) tea.Cmd {
	if h.focused && h.current == id {
		return nil
	}
	h.current = id
	h.focused = true

	req := ScrollRequestMsg{Scrollable: h.scrollable, Target: TargetID(h.scrollable, id)}
	return func() tea.Msg { return req }
}

// Unfocus clears the focus.
func (h *ScrollHandle[K, V]) Unfocus() {
	var zero K
	h.current = zero
	h.focused = false
}

// ListFocusUp moves to the previous item.
func (h *ScrollHandle[K, V]) ListFocusUp(items *orderedmap.OrderedMap[K, V]) tea.Cmd {
	return h.GridFocusUp(column(items))
}

// ListFocusDown moves to the next item.
func (h *ScrollHandle[K, V]) ListFocusDown(items *orderedmap.OrderedMap[K, V]) tea.Cmd {
	return h.GridFocusDown(column(items))
}

// GridFocusUp moves to the row above, clamping the column to that row.
// Nothing happens on the first row or when unfocused.
func (h *ScrollHandle[K, V]) GridFocusUp(grid [][]K) tea.Cmd {
	keys, sections := flatten(grid)
	index, ok := h.find(keys)
	if !ok {
		return nil
	}
	off, ok := navigation.GridUpOffset(sections, index)
	if !ok {
		return nil
	}
	return h.FocusTarget(keys[index-off.Offset])
}

// GridFocusDown moves to the row below, clamping the column to that row.
// When unfocused the first item is focused.
func (h *ScrollHandle[K, V]) GridFocusDown(grid [][]K) tea.Cmd {
	keys, sections := flatten(grid)
	if len(keys) == 0 {
		return nil
	}
	index, ok := h.find(keys)
	if !ok {
		return h.FocusTarget(keys[0])
	}
	off, ok := navigation.GridDownOffset(sections, index)
	if !ok {
		return nil
	}
	return h.FocusTarget(keys[index+off.Offset])
}

// GridFocusLeft moves one item left within the current row.
func (h *ScrollHandle[K, V]) GridFocusLeft(grid [][]K) tea.Cmd {
	row, col, ok := h.locate(grid)
	if !ok || col == 0 {
		return nil
	}
	return h.FocusTarget(grid[row][col-1])
}

// GridFocusRight moves one item right within the current row.
func (h *ScrollHandle[K, V]) GridFocusRight(grid [][]K) tea.Cmd {
	row, col, ok := h.locate(grid)
	if !ok || col+1 >= len(grid[row]) {
		return nil
	}
	return h.FocusTarget(grid[row][col+1])
}

func (h *ScrollHandle[K, V]) find(keys []K) (int, bool) {
	if !h.focused {
		return 0, false
	}
	for i, k := range keys {
		if k == h.current {
			return i, true
		}
	}
	return 0, false
}

func (h *ScrollHandle[K, V]) locate(grid [][]K) (row, col int, ok bool) {
	if !h.focused {
		return 0, 0, false
	}
	for r, items := range grid {
		for c, k := range items {
			if k == h.current {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// flatten turns explicit rows into linear keys plus one section per row.
func flatten[K comparable](grid [][]K) ([]K, []navigation.GridSectionData) {
	var keys []K
	sizes := make([]navigation.SectionSize, 0, len(grid))
	for _, row := range grid {
		if len(row) == 0 {
			continue
		}
		keys = append(keys, row...)
		sizes = append(sizes, navigation.SectionSize{Amount: len(row), Width: len(row)})
	}
	return keys, navigation.Sections(sizes...)
}

func column[K comparable, V any](items *orderedmap.OrderedMap[K, V]) [][]K {
	rows := make([][]K, 0, items.Len())
	for pair := items.Oldest(); pair != nil; pair = pair.Next() {
		rows = append(rows, []K{pair.Key})
	}
	return rows
}
