// Package component describes every UI component kind a plugin can render:
// its names, typed properties and the children it accepts.
//
// The schema is static. CreateComponentModel is the single definition shared
// by the widget constructor and by schema export tooling.
package component

import (
	"fmt"
	"strings"
)

// WirePrefix namespaces internal names on the wire ("gauntlet:list_item").
const WirePrefix = "gauntlet:"

// PropertyKind identifies the variant of a PropertyType.
type PropertyKind int

const (
	PropString PropertyKind = iota
	PropNumber
	PropBoolean
	PropImageSource
	PropArray
	PropFunction
	PropComponent
)

// String returns a readable name for the kind.
func (k PropertyKind) String() string {
	switch k {
	case PropString:
		return "string"
	case PropNumber:
		return "number"
	case PropBoolean:
		return "boolean"
	case PropImageSource:
		return "image_source"
	case PropArray:
		return "array"
	case PropFunction:
		return "function"
	case PropComponent:
		return "component"
	default:
		return "unknown"
	}
}

// PropertyType is the declared type of a property.
//
// Array uses Nested, Function uses Arguments and Component uses Reference
// (the internal name of the component supplied as a child).
type PropertyType struct {
	Kind      PropertyKind
	Nested    *PropertyType
	Arguments []Property
	Reference string
}

// String renders the type in a TypeScript-like notation.
func (t PropertyType) String() string {
	switch t.Kind {
	case PropArray:
		if t.Nested == nil {
			return "array<?>"
		}
		return "array<" + t.Nested.String() + ">"
	case PropFunction:
		args := make([]string, len(t.Arguments))
		for i, a := range t.Arguments {
			args[i] = a.String()
		}
		return "function(" + strings.Join(args, ", ") + ")"
	case PropComponent:
		return "component<" + t.Reference + ">"
	default:
		return t.Kind.String()
	}
}

// IsData reports whether values of this type are stored on a widget.
// Function and Component properties never are.
func (t PropertyType) IsData() bool {
	return t.Kind != PropFunction && t.Kind != PropComponent
}

// Property is a named, typed property of a component.
type Property struct {
	Name     string
	Optional bool
	Type     PropertyType
}

func (p Property) String() string {
	if p.Optional {
		return p.Name + "?: " + p.Type.String()
	}
	return p.Name + ": " + p.Type.String()
}

// ChildrenKind is the shape of a children constraint.
type ChildrenKind int

const (
	ChildrenNone ChildrenKind = iota
	ChildrenString
	ChildrenStringOrMembers
	ChildrenMembers
)

// String returns a readable name for the constraint.
func (k ChildrenKind) String() string {
	switch k {
	case ChildrenNone:
		return "none"
	case ChildrenString:
		return "string"
	case ChildrenStringOrMembers:
		return "string_or_members"
	case ChildrenMembers:
		return "members"
	default:
		return "unknown"
	}
}

// Member binds a logical slot name to one allowed child component.
type Member struct {
	Name      string
	Component string
}

// Children is the children constraint of a standard component.
// TextPart is the internal name of the text part for the String variants.
type Children struct {
	Kind     ChildrenKind
	Members  []Member
	TextPart string
}

// Kind is the variant of a Component.
type Kind int

const (
	KindStandard Kind = iota
	KindRoot
	KindTextPart
)

// String returns a readable name for the component kind.
func (k Kind) String() string {
	switch k {
	case KindStandard:
		return "standard"
	case KindRoot:
		return "root"
	case KindTextPart:
		return "text_part"
	default:
		return "unknown"
	}
}

// Component is one entry of the component model.
type Component struct {
	Kind         Kind
	InternalName string
	Name         string
	Props        []Property
	Children     Children

	// RootChildren lists the internal names a Root accepts.
	RootChildren []string
}

// WireTag returns the namespaced wire identifier.
func (c *Component) WireTag() string {
	return WirePrefix + c.InternalName
}

// Prop returns the declared property with the given name.
func (c *Component) Prop(name string) (Property, bool) {
	for _, p := range c.Props {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// DataProps returns the properties stored on widget instances, in declaration order.
func (c *Component) DataProps() []Property {
	var out []Property
	for _, p := range c.Props {
		if p.Type.IsData() {
			out = append(out, p)
		}
	}
	return out
}

// Events returns the function-typed properties, in declaration order.
func (c *Component) Events() []Property {
	var out []Property
	for _, p := range c.Props {
		if p.Type.Kind == PropFunction {
			out = append(out, p)
		}
	}
	return out
}

// HasChildren reports whether widgets of this component hold a children collection.
func (c *Component) HasChildren() bool {
	switch c.Kind {
	case KindRoot:
		return true
	case KindStandard:
		return c.Children.Kind != ChildrenNone
	default:
		return false
	}
}

// AllowedChildren returns the internal names accepted as children, in
// declaration order. String constraints accept only their text part.
func (c *Component) AllowedChildren() []string {
	switch c.Kind {
	case KindRoot:
		return append([]string(nil), c.RootChildren...)
	case KindStandard:
	default:
		return nil
	}

	var out []string
	switch c.Children.Kind {
	case ChildrenString:
		out = append(out, c.Children.TextPart)
	case ChildrenStringOrMembers:
		out = append(out, c.Children.TextPart)
		for _, m := range c.Children.Members {
			out = append(out, m.Component)
		}
	case ChildrenMembers:
		for _, m := range c.Children.Members {
			out = append(out, m.Component)
		}
	}
	return out
}

// Accepts reports whether a child of the given internal name may be appended.
func (c *Component) Accepts(internalName string) bool {
	for _, name := range c.AllowedChildren() {
		if name == internalName {
			return true
		}
	}
	return false
}

func (c *Component) String() string {
	return fmt.Sprintf("%s(%s)", c.Name, c.WireTag())
}
