package ui

import (
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"

	"github.com/yanmxa/gauntlet/internal/actionpanel"
	"github.com/yanmxa/gauntlet/internal/log"
	"github.com/yanmxa/gauntlet/internal/tree"
	"github.com/yanmxa/gauntlet/internal/widget"
)

// screen is everything derived from one snapshot of the committed view.
type screen struct {
	root  *tree.Node
	view  *tree.Node
	panel *actionpanel.ActionPanel

	search *tree.Node
	empty  *tree.Node
	detail *tree.Node

	listItems *orderedmap.OrderedMap[string, *tree.Node]

	gridItems    *orderedmap.OrderedMap[string, *tree.Node]
	gridSections []gridSection

	fields *orderedmap.OrderedMap[widget.ID, *tree.Node]
}

// gridSection is a run of grid items laid out with the same column count.
// A grid's loose items form untitled sections.
type gridSection struct {
	node    *tree.Node
	columns int
	keys    []string
}

func newScreen(root *tree.Node, shortcuts map[string]actionpanel.Shortcut) screen {
	s := screen{
		root:      root,
		listItems: orderedmap.New[string, *tree.Node](),
		gridItems: orderedmap.New[string, *tree.Node](),
		fields:    orderedmap.New[widget.ID, *tree.Node](),
	}
	if root == nil || len(root.Nodes) == 0 {
		return s
	}

	s.view = root.Nodes[0]
	s.panel = actionpanel.Convert(root, shortcuts)
	s.search = s.view.First("search_bar")
	s.empty = s.view.First("empty_view")

	switch s.view.Component.InternalName {
	case "list":
		s.detail = s.view.First("detail")
		for _, child := range s.view.Nodes {
			switch {
			case child.Is("list_item"):
				addItem(s.listItems, child)
			case child.Is("list_section"):
				for _, item := range child.All("list_item") {
					addItem(s.listItems, item)
				}
			}
		}
	case "grid":
		s.collectGrid()
	case "form":
		for _, child := range s.view.Nodes {
			if isField(child) {
				s.fields.Set(child.ID, child)
			}
		}
	}
	return s
}

func (s *screen) collectGrid() {
	columns := numberOr(s.view, "columns", defaultGridColumns)

	var loose *gridSection
	for _, child := range s.view.Nodes {
		switch {
		case child.Is("grid_item"):
			if loose == nil {
				s.gridSections = append(s.gridSections, gridSection{columns: columns})
				loose = &s.gridSections[len(s.gridSections)-1]
			}
			if k, ok := addItem(s.gridItems, child); ok {
				loose.keys = append(loose.keys, k)
			}
		case child.Is("grid_section"):
			loose = nil
			sec := gridSection{node: child, columns: numberOr(child, "columns", columns)}
			for _, item := range child.All("grid_item") {
				if k, ok := addItem(s.gridItems, item); ok {
					sec.keys = append(sec.keys, k)
				}
			}
			s.gridSections = append(s.gridSections, sec)
		}
	}
}

// gridRows splits every section into rows of its column count.
func (s screen) gridRows() [][]string {
	var rows [][]string
	for _, sec := range s.gridSections {
		for start := 0; start < len(sec.keys); start += sec.columns {
			end := min(start+sec.columns, len(sec.keys))
			rows = append(rows, sec.keys[start:end])
		}
	}
	return rows
}

func (s screen) kind() string {
	if s.view == nil {
		return ""
	}
	return s.view.Component.InternalName
}

func (s screen) loading() bool {
	return s.view != nil && s.view.Props.Bool("isLoading")
}

// scrollable names the focus collection of the view.
func (s screen) scrollable() string {
	switch s.kind() {
	case "list":
		return scrollList
	case "grid":
		return scrollGrid
	case "form":
		return scrollForm
	}
	return ""
}

// find returns the node of a widget anywhere in the view.
func (s screen) find(id widget.ID) *tree.Node {
	return s.root.Find(func(n *tree.Node) bool { return n.ID == id })
}

// itemKey is the id a list or grid item is focused and reported by: its id
// property, or "#" and the widget id when the plugin set none.
func itemKey(n *tree.Node) string {
	if id, ok := n.Props.OptString("id"); ok && id != "" {
		return id
	}
	return "#" + strconv.FormatUint(uint64(n.ID), 10)
}

// addItem stores n under its key. The first item with a key wins; later
// ones are not focusable and not drawn.
func addItem(items *orderedmap.OrderedMap[string, *tree.Node], n *tree.Node) (string, bool) {
	k := itemKey(n)
	if _, dup := items.Get(k); dup {
		log.Named("ui").Warn("Skipping item with duplicate id", zap.String("id", k), zap.Uint64("widget", uint64(n.ID)))
		return k, false
	}
	items.Set(k, n)
	return k, true
}

func numberOr(n *tree.Node, prop string, def int) int {
	if v, ok := n.Props.Number(prop); ok && v >= 1 {
		return int(v)
	}
	return def
}

func isField(n *tree.Node) bool {
	switch n.Component.InternalName {
	case "text_field", "password_field", "checkbox", "date_picker", "select":
		return true
	}
	return false
}
