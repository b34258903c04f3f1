package log

import (
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yanmxa/gauntlet/internal/property"
	"github.com/yanmxa/gauntlet/internal/widget"
)

// valueMarshaler wraps a property Value for zap logging
type valueMarshaler property.Value

func (v valueMarshaler) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	pv := property.Value(v)
	enc.AddString("type", pv.Kind().String())
	switch pv.Kind() {
	case property.KindString:
		s, _ := pv.AsString()
		enc.AddString("value", escapeForLog(s))
	case property.KindNumber:
		n, _ := pv.AsNumber()
		enc.AddFloat64("value", n)
	case property.KindBool:
		b, _ := pv.AsBool()
		enc.AddBool("value", b)
	case property.KindBytes:
		b, _ := pv.AsBytes()
		enc.AddInt("len", len(b))
	case property.KindArray:
		items, _ := pv.AsArray()
		_ = enc.AddArray("value", valuesMarshaler(items))
	case property.KindObject:
		fields, _ := pv.AsObject()
		_ = enc.AddObject("value", bagMarshaler(fields))
	}
	return nil
}

// valuesMarshaler wraps a slice of Values for zap logging
type valuesMarshaler []property.Value

func (vs valuesMarshaler) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, v := range vs {
		_ = enc.AppendObject(valueMarshaler(v))
	}
	return nil
}

// bagMarshaler wraps a property bag for zap logging, keys sorted
type bagMarshaler map[string]property.Value

func (b bagMarshaler) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_ = enc.AddObject(k, valueMarshaler(b[k]))
	}
	return nil
}

// ValueField creates a zap field for one property value
func ValueField(key string, v property.Value) zap.Field {
	return zap.Object(key, valueMarshaler(v))
}

// PropsField creates a zap field for a property bag
func PropsField(props map[string]property.Value) zap.Field {
	return zap.Object("props", bagMarshaler(props))
}

// eventMarshaler wraps a widget Event for zap logging
type eventMarshaler widget.Event

func (e eventMarshaler) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddUint64("widget_id", uint64(e.WidgetID))
	enc.AddString("event", e.EventName)
	if len(e.Arguments) > 0 {
		_ = enc.AddArray("arguments", valuesMarshaler(e.Arguments))
	}
	return nil
}

// EventField creates a zap field for a widget event
func EventField(ev widget.Event) zap.Field {
	return zap.Object("event", eventMarshaler(ev))
}
