package component

import (
	"strings"
	"sync"
)

// Model indexes a component list by internal name.
type Model struct {
	components []Component
	byInternal map[string]*Component
	root       *Component
	textPart   *Component
}

// NewModel indexes components. The slice is retained and must not be modified.
func NewModel(components []Component) *Model {
	m := &Model{
		components: components,
		byInternal: make(map[string]*Component, len(components)),
	}
	for i := range components {
		c := &components[i]
		m.byInternal[c.InternalName] = c
		switch c.Kind {
		case KindRoot:
			m.root = c
		case KindTextPart:
			m.textPart = c
		}
	}
	return m
}

var (
	defaultOnce  sync.Once
	defaultModel *Model
)

// Default returns the process-wide model built from CreateComponentModel.
// Every consumer (widget constructor, schema export) shares this instance.
func Default() *Model {
	defaultOnce.Do(func() {
		defaultModel = NewModel(CreateComponentModel())
	})
	return defaultModel
}

// Components returns all components in model order.
func (m *Model) Components() []Component {
	return m.components
}

// Lookup finds a component by internal name.
func (m *Model) Lookup(internalName string) (*Component, bool) {
	c, ok := m.byInternal[internalName]
	return c, ok
}

// LookupWire finds a component by wire tag ("gauntlet:list"). A bare internal
// name is accepted as well.
func (m *Model) LookupWire(tag string) (*Component, bool) {
	return m.Lookup(strings.TrimPrefix(tag, WirePrefix))
}

// Root returns the root component.
func (m *Model) Root() *Component { return m.root }

// TextPart returns the synthetic text part component.
func (m *Model) TextPart() *Component { return m.textPart }

// DisplayName returns the display name for an internal name, or the internal
// name itself when unknown.
func (m *Model) DisplayName(internalName string) string {
	if c, ok := m.byInternal[internalName]; ok {
		return c.Name
	}
	return internalName
}
