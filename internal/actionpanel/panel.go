// Package actionpanel flattens the ActionPanel widgets of a view into the
// list shown in the action overlay, and assigns keyboard shortcuts.
//
// The first action is always bound to enter and the second to alt+enter,
// whatever shortcut the plugin assigned them. Later actions keep their own.
package actionpanel

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/yanmxa/gauntlet/internal/tree"
	"github.com/yanmxa/gauntlet/internal/widget"
)

// Item is an Action or a Section.
type Item interface {
	isItem()
}

// Action is one invokable entry.
type Action struct {
	Label string
	// ContainerID is the position of the action across the flattened panel.
	ContainerID int
	WidgetID    widget.ID
	// ID is the plugin-assigned action id used for shortcut lookup.
	ID       string
	Shortcut *Shortcut
}

// Section groups actions under an optional title.
type Section struct {
	Title string
	Items []Item
}

func (Action) isItem()  {}
func (Section) isItem() {}

// ActionPanel is the overlay content of one view.
type ActionPanel struct {
	Title string
	Items []Item
}

// Binding pairs an action with the key that invokes it.
type Binding struct {
	Action Action
	Key    key.Binding
}

// FindActionPanel returns the ActionPanel of the view under root, if any.
func FindActionPanel(root *tree.Node) *tree.Node {
	if root == nil {
		return nil
	}
	for _, view := range root.Nodes {
		if p := view.First("action_panel"); p != nil {
			return p
		}
	}
	return nil
}

// Convert builds the panel of the view under root. shortcuts maps action ids
// to assigned shortcuts. It returns nil when the view has no action panel.
func Convert(root *tree.Node, shortcuts map[string]Shortcut) *ActionPanel {
	panel := FindActionPanel(root)
	if panel == nil {
		return nil
	}
	return FromNode(panel, shortcuts)
}

// FromNode converts an ActionPanel node.
func FromNode(panel *tree.Node, shortcuts map[string]Shortcut) *ActionPanel {
	next := 0
	title, _ := panel.Props.OptString("title")
	return &ActionPanel{
		Title: title,
		Items: convertItems(panel.Nodes, shortcuts, &next),
	}
}

func convertItems(nodes []*tree.Node, shortcuts map[string]Shortcut, next *int) []Item {
	var items []Item
	for _, n := range nodes {
		switch n.Component.InternalName {
		case "action":
			a := Action{
				Label:       n.Props.String("label"),
				ContainerID: *next,
				WidgetID:    n.ID,
				ID:          n.Props.String("id"),
			}
			if a.ID != "" {
				if s, ok := shortcuts[a.ID]; ok {
					a.Shortcut = &s
				}
			}
			*next++
			items = append(items, a)
		case "action_panel_section":
			title, _ := n.Props.OptString("title")
			items = append(items, Section{
				Title: title,
				Items: convertItems(n.Nodes, shortcuts, next),
			})
		}
	}
	return items
}

// FindFirst returns the first action in depth-first order.
func (p *ActionPanel) FindFirst() (label string, id widget.ID, ok bool) {
	if p == nil {
		return "", 0, false
	}
	a, ok := findFirst(p.Items)
	return a.Label, a.WidgetID, ok
}

func findFirst(items []Item) (Action, bool) {
	for _, item := range items {
		switch it := item.(type) {
		case Action:
			return it, true
		case Section:
			if a, ok := findFirst(it.Items); ok {
				return a, true
			}
		}
	}
	return Action{}, false
}

// Actions returns every action in container order.
func (p *ActionPanel) Actions() []Action {
	if p == nil {
		return nil
	}
	var out []Action
	var walk func([]Item)
	walk = func(items []Item) {
		for _, item := range items {
			switch it := item.(type) {
			case Action:
				out = append(out, it)
			case Section:
				walk(it.Items)
			}
		}
	}
	walk(p.Items)
	return out
}

// Ordered returns the actions keyed by container id.
func (p *ActionPanel) Ordered() *orderedmap.OrderedMap[int, Action] {
	m := orderedmap.New[int, Action]()
	for _, a := range p.Actions() {
		m.Set(a.ContainerID, a)
	}
	return m
}

// Bindings returns the key binding of every action that has one, applying
// the primary and secondary override.
func (p *ActionPanel) Bindings() []Binding {
	var out []Binding
	for i, a := range p.Actions() {
		switch {
		case i == 0:
			out = append(out, Binding{Action: a, Key: PrimaryBinding(a.Label)})
		case i == 1:
			out = append(out, Binding{Action: a, Key: SecondaryBinding(a.Label)})
		case a.Shortcut != nil:
			out = append(out, Binding{Action: a, Key: a.Shortcut.Binding(a.Label)})
		}
	}
	return out
}

// Match returns the action bound to msg.
func (p *ActionPanel) Match(msg tea.KeyMsg) (Action, bool) {
	for _, b := range p.Bindings() {
		if key.Matches(msg, b.Key) {
			return b.Action, true
		}
	}
	return Action{}, false
}
