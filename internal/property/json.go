package property

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// wireValue is the tagged JSON form of a Value:
//
//	{"type":"string","value":"hello"}
//	{"type":"bytes","value":"aGVsbG8="}
//	{"type":"undefined"}
//
// Decoding also accepts null (Undefined) and plain strings, numbers, bools
// and arrays. Objects are always tagged.
type wireValue struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

// MarshalJSON encodes v in its tagged wire form.
func (v Value) MarshalJSON() ([]byte, error) {
	var payload any
	switch v.kind {
	case KindUndefined:
		return json.Marshal(wireValue{Type: v.kind.String()})
	case KindString:
		payload = v.str
	case KindNumber:
		payload = v.num
	case KindBool:
		payload = v.b
	case KindBytes:
		payload = v.bytes
	case KindArray:
		arr := v.arr
		if arr == nil {
			arr = []Value{}
		}
		payload = arr
	case KindObject:
		obj := v.obj
		if obj == nil {
			obj = map[string]Value{}
		}
		payload = obj
	default:
		return nil, fmt.Errorf("cannot marshal value of kind %d", v.kind)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireValue{Type: v.kind.String(), Value: raw})
}

// UnmarshalJSON decodes the tagged wire form, or a plain JSON value.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*v = Undefined()
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] != '{' {
		var x any
		if err := json.Unmarshal(trimmed, &x); err != nil {
			return fmt.Errorf("invalid property value: %w", err)
		}
		out, err := FromAny(x)
		if err != nil {
			return fmt.Errorf("invalid property value: %w", err)
		}
		*v = out
		return nil
	}

	var w wireValue
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("invalid property value: %w", err)
	}
	kind, ok := parseKind(w.Type)
	if !ok {
		return fmt.Errorf("invalid property value type %q", w.Type)
	}
	if kind != KindUndefined && len(w.Value) == 0 {
		return fmt.Errorf("property value of type %q has no payload", w.Type)
	}

	out := Value{kind: kind}
	var err error
	switch kind {
	case KindUndefined:
	case KindString:
		err = json.Unmarshal(w.Value, &out.str)
	case KindNumber:
		err = json.Unmarshal(w.Value, &out.num)
	case KindBool:
		err = json.Unmarshal(w.Value, &out.b)
	case KindBytes:
		err = json.Unmarshal(w.Value, &out.bytes)
	case KindArray:
		err = json.Unmarshal(w.Value, &out.arr)
	case KindObject:
		err = json.Unmarshal(w.Value, &out.obj)
	}
	if err != nil {
		return fmt.Errorf("invalid %s payload: %w", w.Type, err)
	}
	*v = out
	return nil
}

// FromAny converts a plain decoded JSON value (as produced by encoding/json
// into an interface{}) into a Value. JSON null becomes Undefined. Byte
// buffers have no plain JSON form and must use the tagged encoding.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Undefined(), nil
	case string:
		return String(t), nil
	case float64:
		return Number(t), nil
	case int:
		return Number(float64(t)), nil
	case bool:
		return Bool(t), nil
	case []byte:
		return Bytes(t), nil
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			v, err := FromAny(item)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items[i] = v
		}
		return Array(items...), nil
	case map[string]any:
		fields := make(map[string]Value, len(t))
		for k, item := range t {
			v, err := FromAny(item)
			if err != nil {
				return Value{}, fmt.Errorf("field %q: %w", k, err)
			}
			fields[k] = v
		}
		return Object(fields), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", x)
	}
}
