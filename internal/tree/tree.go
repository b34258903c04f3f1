// Package tree holds the live widget trees built by plugin commands.
//
// Widgets are stored in an arena keyed by the id the plugin runtime assigns.
// Parents hold children as ids, so the same widget may be referenced from
// several parents without aliasing. Every exported method takes the lock for
// exactly one operation and never calls out while holding it.
package tree

import (
	"errors"
	"fmt"
	"sync"

	"github.com/yanmxa/gauntlet/internal/component"
	"github.com/yanmxa/gauntlet/internal/property"
	"github.com/yanmxa/gauntlet/internal/widget"
)

var (
	ErrDuplicateWidget = errors.New("duplicate widget id")
	ErrUnknownWidget   = errors.New("unknown widget id")
	ErrNotRoot         = errors.New("widget is not a root")
	ErrCycle           = errors.New("child is an ancestor of parent")
)

// Location is where a committed tree is shown.
type Location int

const (
	LocationView Location = iota
	LocationInlineView
)

func (l Location) String() string {
	switch l {
	case LocationView:
		return "view"
	case LocationInlineView:
		return "inlineView"
	default:
		return fmt.Sprintf("Location(%d)", int(l))
	}
}

// ParseLocation parses the wire name of a location.
func ParseLocation(s string) (Location, error) {
	switch s {
	case "view":
		return LocationView, nil
	case "inlineView":
		return LocationInlineView, nil
	default:
		return 0, fmt.Errorf("unknown render location %q", s)
	}
}

// Tree is an arena of widgets plus the committed root per location.
// committed marks widgets that were reachable from a committed root at some
// point; only those are released once they become unreachable, so a tree
// still being built for one location survives commits at another.
type Tree struct {
	mu        sync.RWMutex
	model     *component.Model
	nodes     map[widget.ID]*widget.Widget
	roots     map[Location]widget.ID
	committed map[widget.ID]bool
}

// New creates an empty tree validated against model.
func New(model *component.Model) *Tree {
	return &Tree{
		model: model,
		nodes:     make(map[widget.ID]*widget.Widget),
		roots:     make(map[Location]widget.ID),
		committed: make(map[widget.ID]bool),
	}
}

// Model returns the component model the tree validates against.
func (t *Tree) Model() *component.Model {
	return t.model
}

func (t *Tree) insert(w *widget.Widget) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.nodes[w.ID]; exists {
		return fmt.Errorf("%w: %d", ErrDuplicateWidget, w.ID)
	}
	t.nodes[w.ID] = w
	return nil
}

// Widget creates a standard widget from a property bag.
func (t *Tree) Widget(id widget.ID, internalName string, bag property.Bag) error {
	w, err := widget.Create(t.model, id, internalName, bag)
	if err != nil {
		return err
	}
	return t.insert(w)
}

// Root creates a root widget.
func (t *Tree) Root(id widget.ID) error {
	return t.insert(widget.NewRoot(t.model, id))
}

// TextPart creates a text widget.
func (t *Tree) TextPart(id widget.ID, text string) error {
	return t.insert(widget.NewTextPart(t.model, id, text))
}

// AppendChild appends child to parent after validating the child type.
func (t *Tree) AppendChild(parent, child widget.ID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, err := t.lookup(parent)
	if err != nil {
		return err
	}
	c, err := t.lookup(child)
	if err != nil {
		return err
	}
	if t.reaches(child, parent) {
		return fmt.Errorf("%w: %s under %s", ErrCycle, c, p)
	}
	return p.AppendChild(c)
}

// Children returns the ordered child ids of a widget.
func (t *Tree) Children(id widget.ID) ([]widget.ID, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	w, err := t.lookup(id)
	if err != nil {
		return nil, err
	}
	return w.GetChildren()
}

// SetChildren replaces the children of parent. Either every child is valid
// and the swap happens, or the prior children are kept.
func (t *Tree) SetChildren(parent widget.ID, children []widget.ID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, err := t.lookup(parent)
	if err != nil {
		return err
	}
	ws := make([]*widget.Widget, len(children))
	for i, id := range children {
		c, err := t.lookup(id)
		if err != nil {
			return err
		}
		if t.reaches(id, parent) {
			return fmt.Errorf("%w: %s under %s", ErrCycle, c, p)
		}
		ws[i] = c
	}
	return p.SetChildren(ws)
}

// ReplaceView commits root as the tree shown at loc. Previously committed
// widgets no longer reachable from any committed root are released.
func (t *Tree) ReplaceView(loc Location, root widget.ID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	w, err := t.lookup(root)
	if err != nil {
		return err
	}
	if w.Component.Kind != component.KindRoot {
		return fmt.Errorf("%w: %s", ErrNotRoot, w)
	}
	t.roots[loc] = root
	t.sweep()
	return nil
}

// Clear drops the tree shown at loc.
func (t *Tree) Clear(loc Location) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.roots, loc)
	t.sweep()
}

// RootOf returns the committed root id for loc.
func (t *Tree) RootOf(loc Location) (widget.ID, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	id, ok := t.roots[loc]
	return id, ok
}

// Get returns a copy of a widget.
func (t *Tree) Get(id widget.ID) (widget.Widget, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	w, ok := t.nodes[id]
	if !ok {
		return widget.Widget{}, false
	}
	return w.Clone(), true
}

// Len returns the number of live widgets.
func (t *Tree) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.nodes)
}

func (t *Tree) lookup(id widget.ID) (*widget.Widget, error) {
	w, ok := t.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownWidget, id)
	}
	return w, nil
}

// reaches reports whether to is from itself or one of its descendants.
func (t *Tree) reaches(from, to widget.ID) bool {
	seen := map[widget.ID]bool{}
	stack := []widget.ID{from}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == to {
			return true
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		if w, ok := t.nodes[id]; ok {
			stack = append(stack, w.Children...)
		}
	}
	return false
}

func (t *Tree) sweep() {
	live := make(map[widget.ID]bool, len(t.nodes))
	var stack []widget.ID
	for _, id := range t.roots {
		stack = append(stack, id)
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if live[id] {
			continue
		}
		live[id] = true
		if w, ok := t.nodes[id]; ok {
			stack = append(stack, w.Children...)
		}
	}
	for id := range t.nodes {
		switch {
		case live[id]:
			t.committed[id] = true
		case t.committed[id]:
			delete(t.nodes, id)
			delete(t.committed, id)
		}
	}
}
