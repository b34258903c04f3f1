package tree

import (
	"strings"

	"github.com/yanmxa/gauntlet/internal/component"
	"github.com/yanmxa/gauntlet/internal/widget"
)

// Node is an immutable copy of a widget and its subtree. Renderers work on
// nodes so that no lock is held while drawing.
type Node struct {
	widget.Widget
	Nodes []*Node
}

// Snapshot copies the subtree rooted at id.
func (t *Tree) Snapshot(id widget.ID) (*Node, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if _, ok := t.nodes[id]; !ok {
		return nil, false
	}
	return t.copyNode(id, map[widget.ID]bool{}), true
}

// View copies the committed tree at loc.
func (t *Tree) View(loc Location) (*Node, bool) {
	t.mu.RLock()
	id, ok := t.roots[loc]
	t.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return t.Snapshot(id)
}

func (t *Tree) copyNode(id widget.ID, path map[widget.ID]bool) *Node {
	w := t.nodes[id]
	n := &Node{Widget: w.Clone()}
	path[id] = true
	for _, childID := range w.Children {
		if path[childID] {
			continue
		}
		if _, ok := t.nodes[childID]; !ok {
			continue
		}
		n.Nodes = append(n.Nodes, t.copyNode(childID, path))
	}
	delete(path, id)
	return n
}

// Is reports whether the node is an instance of the named component.
func (n *Node) Is(internalName string) bool {
	return n != nil && n.Component.InternalName == internalName
}

// First returns the first direct child of the named component.
func (n *Node) First(internalName string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Nodes {
		if c.Is(internalName) {
			return c
		}
	}
	return nil
}

// All returns the direct children of the named component, in order.
func (n *Node) All(internalName string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Nodes {
		if c.Is(internalName) {
			out = append(out, c)
		}
	}
	return out
}

// PlainText concatenates every text part under n.
func (n *Node) PlainText() string {
	var sb strings.Builder
	n.walkText(&sb)
	return sb.String()
}

func (n *Node) walkText(sb *strings.Builder) {
	if n.Component.Kind == component.KindTextPart {
		sb.WriteString(n.Widget.Text)
		return
	}
	for _, c := range n.Nodes {
		c.walkText(sb)
	}
}

// Find returns the first node in depth-first order matching fn.
func (n *Node) Find(fn func(*Node) bool) *Node {
	if n == nil {
		return nil
	}
	if fn(n) {
		return n
	}
	for _, c := range n.Nodes {
		if found := c.Find(fn); found != nil {
			return found
		}
	}
	return nil
}

// RenderContext carries the surrounding style a widget is drawn in.
// Heading is 1 to 6 inside a heading, 0 otherwise.
type RenderContext struct {
	Heading int
}

// InHeading returns ctx with the heading level set.
func (ctx RenderContext) InHeading(level int) RenderContext {
	if level < 0 || level > 6 {
		level = 0
	}
	ctx.Heading = level
	return ctx
}
