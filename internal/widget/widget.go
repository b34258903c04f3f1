// Package widget builds validated widget instances from the component model.
//
// A widget is created from an internal name and an untyped property bag. The
// bag is checked against the component's declared properties and converted
// into typed Props; it is never kept past the constructor. Children are held
// as widget ids, in insertion order.
package widget

import (
	"fmt"

	"github.com/yanmxa/gauntlet/internal/component"
	"github.com/yanmxa/gauntlet/internal/property"
)

// ID identifies a widget within a live tree. Ids are assigned by the plugin
// runtime and never reused.
type ID uint64

// Widget is one instance of a component.
type Widget struct {
	ID        ID
	Component *component.Component
	Props     Props

	// Text is the payload of a text part.
	Text string

	// Children is nil for components that accept no children.
	Children []ID
}

// Create validates bag against the standard component named internalName.
func Create(model *component.Model, id ID, internalName string, bag property.Bag) (*Widget, error) {
	c, ok := model.LookupWire(internalName)
	if !ok || c.Kind != component.KindStandard {
		return nil, &UnknownComponentTypeError{InternalName: internalName}
	}

	props := make(Props, len(c.Props))
	for _, p := range c.DataProps() {
		v, present := bag[p.Name]
		if !present || v.IsUndefined() {
			if !p.Optional {
				return nil, &MissingRequiredPropertyError{Component: c.Name, Property: p.Name}
			}
			props[p.Name] = property.Undefined()
			continue
		}
		if !conforms(p.Type, v) {
			return nil, &TypeMismatchError{
				Component: c.Name,
				Property:  p.Name,
				Expected:  p.Type.String(),
				Actual:    v.Kind().String(),
			}
		}
		props[p.Name] = v
	}

	w := &Widget{ID: id, Component: c, Props: props}
	if c.HasChildren() {
		w.Children = []ID{}
	}
	return w, nil
}

// NewRoot creates the root widget of a tree.
func NewRoot(model *component.Model, id ID) *Widget {
	return &Widget{ID: id, Component: model.Root(), Props: Props{}, Children: []ID{}}
}

// NewTextPart creates a literal text widget.
func NewTextPart(model *component.Model, id ID, text string) *Widget {
	return &Widget{ID: id, Component: model.TextPart(), Props: Props{}, Text: text}
}

// conforms reports whether v has the runtime kind required by t.
func conforms(t component.PropertyType, v property.Value) bool {
	switch t.Kind {
	case component.PropString:
		return v.Kind() == property.KindString
	case component.PropNumber:
		return v.Kind() == property.KindNumber
	case component.PropBoolean:
		return v.Kind() == property.KindBool
	case component.PropImageSource:
		return v.Kind() == property.KindBytes
	case component.PropArray:
		items, ok := v.AsArray()
		if !ok {
			return false
		}
		for _, item := range items {
			if !conforms(*t.Nested, item) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Type returns the widget's internal and display names.
func (w *Widget) Type() (internalName, displayName string) {
	return w.Component.InternalName, w.Component.Name
}

// Is reports whether the widget is an instance of the named component.
func (w *Widget) Is(internalName string) bool {
	return w.Component.InternalName == internalName
}

// checkChild validates child against the parent's children constraint.
func (w *Widget) checkChild(child *Widget) error {
	if !w.Component.HasChildren() {
		return &ChildrenNotAllowedError{Component: w.Component.Name}
	}
	if !w.Component.Accepts(child.Component.InternalName) {
		return &InvalidChildTypeError{Parent: w.Component.Name, Child: child.Component.Name}
	}
	return nil
}

// AppendChild appends child after validating its type.
func (w *Widget) AppendChild(child *Widget) error {
	if err := w.checkChild(child); err != nil {
		return err
	}
	w.Children = append(w.Children, child.ID)
	return nil
}

// GetChildren returns a copy of the ordered children.
func (w *Widget) GetChildren() ([]ID, error) {
	if !w.Component.HasChildren() {
		return nil, &ChildrenNotAllowedError{Component: w.Component.Name}
	}
	return append([]ID{}, w.Children...), nil
}

// SetChildren replaces the children. Every child is validated first; on any
// failure the existing children are kept.
func (w *Widget) SetChildren(children []*Widget) error {
	if !w.Component.HasChildren() {
		return &ChildrenNotAllowedError{Component: w.Component.Name}
	}
	ids := make([]ID, len(children))
	for i, child := range children {
		if err := w.checkChild(child); err != nil {
			return err
		}
		ids[i] = child.ID
	}
	w.Children = ids
	return nil
}

// Clone returns a copy that shares no mutable state with w.
func (w *Widget) Clone() Widget {
	out := *w
	out.Props = w.Props.clone()
	if w.Children != nil {
		out.Children = append([]ID{}, w.Children...)
	}
	return out
}

func (w *Widget) String() string {
	return fmt.Sprintf("%s#%d", w.Component.Name, w.ID)
}
