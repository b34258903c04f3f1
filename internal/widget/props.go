package widget

import (
	"github.com/yanmxa/gauntlet/internal/property"
)

// Props holds the validated data properties of a widget. Every declared data
// property is present; optional ones that were not supplied hold Undefined.
type Props map[string]property.Value

// Value returns the raw value of a property.
func (p Props) Value(name string) property.Value {
	return p[name]
}

// String returns a string property, or "" when unset.
func (p Props) String(name string) string {
	s, _ := p[name].AsString()
	return s
}

// OptString returns a string property and whether it was set.
func (p Props) OptString(name string) (string, bool) {
	return p[name].AsString()
}

// Number returns a number property and whether it was set.
func (p Props) Number(name string) (float64, bool) {
	return p[name].AsNumber()
}

// Bool returns a boolean property, or false when unset.
func (p Props) Bool(name string) bool {
	b, _ := p[name].AsBool()
	return b
}

// Bytes returns an image source property.
func (p Props) Bytes(name string) ([]byte, bool) {
	return p[name].AsBytes()
}

// Strings returns an array-of-string property. Non-string items are skipped.
func (p Props) Strings(name string) []string {
	items, ok := p[name].AsArray()
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.AsString(); ok {
			out = append(out, s)
		}
	}
	return out
}

func (p Props) clone() Props {
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
