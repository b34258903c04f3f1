// Package property provides the tagged value union exchanged with the plugin runtime.
//
// A Value is one of String, Number, Bool, Bytes, Array, Object or Undefined.
// Undefined is an explicit value: a key holding Undefined is distinct from a
// missing key, and an event argument set to Undefined is distinct from an
// argument the plugin never received.
package property

import (
	"fmt"
	"sort"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindUndefined Kind = iota
	KindString
	KindNumber
	KindBool
	KindBytes
	KindArray
	KindObject
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindBytes:
		return "bytes"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// parseKind maps a wire name back to its Kind.
func parseKind(s string) (Kind, bool) {
	for k := KindUndefined; k <= KindObject; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return KindUndefined, false
}

// Value is an immutable tagged value. The zero Value is Undefined.
type Value struct {
	kind  Kind
	str   string
	num   float64
	b     bool
	bytes []byte
	arr   []Value
	obj   map[string]Value
}

// Bag is the untyped property bag received with a create-widget command.
type Bag map[string]Value

// Undefined returns the explicit undefined value.
func Undefined() Value { return Value{} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a double-precision number value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Bytes returns a raw byte buffer value. The buffer is copied.
func Bytes(b []byte) Value {
	return Value{kind: KindBytes, bytes: append([]byte(nil), b...)}
}

// Array returns an ordered array value.
func Array(items ...Value) Value {
	return Value{kind: KindArray, arr: append([]Value(nil), items...)}
}

// Object returns an object value. The map is copied.
func Object(fields map[string]Value) Value {
	obj := make(map[string]Value, len(fields))
	for k, v := range fields {
		obj[k] = v
	}
	return Value{kind: KindObject, obj: obj}
}

// OptString returns String(*s), or Undefined when s is nil.
func OptString(s *string) Value {
	if s == nil {
		return Undefined()
	}
	return String(*s)
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsUndefined reports whether v is the explicit undefined value.
func (v Value) IsUndefined() bool { return v.kind == KindUndefined }

// AsString returns the string payload.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsNumber returns the number payload.
func (v Value) AsNumber() (float64, bool) { return v.num, v.kind == KindNumber }

// AsBool returns the boolean payload.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsBytes returns the byte payload. The returned slice must not be modified.
func (v Value) AsBytes() ([]byte, bool) { return v.bytes, v.kind == KindBytes }

// AsArray returns the array items. The returned slice must not be modified.
func (v Value) AsArray() ([]Value, bool) { return v.arr, v.kind == KindArray }

// AsObject returns the object fields. The returned map must not be modified.
func (v Value) AsObject() (map[string]Value, bool) { return v.obj, v.kind == KindObject }

// Equal reports deep equality of two values.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindUndefined:
		return true
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	case KindBytes:
		return string(v.bytes) == string(o.bytes)
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(o.obj) {
			return false
		}
		for k, a := range v.obj {
			b, ok := o.obj[k]
			if !ok || !a.Equal(b) {
				return false
			}
		}
		return true
	}
	return false
}

// GoString renders a compact debug form, used by logs and test failures.
func (v Value) GoString() string {
	switch v.kind {
	case KindUndefined:
		return "undefined"
	case KindString:
		return fmt.Sprintf("%q", v.str)
	case KindNumber:
		return fmt.Sprintf("%g", v.num)
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindBytes:
		return fmt.Sprintf("bytes(%d)", len(v.bytes))
	case KindArray:
		parts := make([]string, len(v.arr))
		for i, item := range v.arr {
			parts[i] = item.GoString()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindObject:
		keys := make([]string, 0, len(v.obj))
		for k := range v.obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + v.obj[k].GoString()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return "?"
}

// String implements fmt.Stringer.
func (v Value) String() string { return v.GoString() }
