package runtime

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yanmxa/gauntlet/internal/component"
	"github.com/yanmxa/gauntlet/internal/log"
	"github.com/yanmxa/gauntlet/internal/property"
	"github.com/yanmxa/gauntlet/internal/tree"
	"github.com/yanmxa/gauntlet/internal/widget"
)

// Methods sent by the plugin runtime.
const (
	MethodCreateWidget = "createWidget"
	MethodAppendChild  = "appendChild"
	MethodSetChildren  = "setChildren"
	MethodReplaceView  = "replaceView"
	MethodClearView    = "clearView"
)

// Methods sent by the launcher.
const (
	MethodWidgetEvent   = "widgetEvent"
	MethodFocusListItem = "focusListItem"
	MethodFocusGridItem = "focusGridItem"
	MethodOpenView      = "openView"
)

// Command is one widget tree mutation.
type Command interface {
	Method() string
	zapcore.ObjectMarshaler
}

// CreateWidget creates a widget. Type is the wire tag; the root and text
// part tags create those synthetic widgets, with Text as the text payload.
type CreateWidget struct {
	ID    widget.ID    `json:"id"`
	Type  string       `json:"type"`
	Props property.Bag `json:"props,omitempty"`
	Text  string       `json:"text,omitempty"`
}

// AppendChild appends Child to Parent.
type AppendChild struct {
	Parent widget.ID `json:"parent"`
	Child  widget.ID `json:"child"`
}

// SetChildren replaces the children of Parent.
type SetChildren struct {
	Parent   widget.ID   `json:"parent"`
	Children []widget.ID `json:"children"`
}

// ReplaceView commits Root as the tree shown at Location.
type ReplaceView struct {
	Location     string    `json:"location"`
	Root         widget.ID `json:"root"`
	EntrypointID string    `json:"entrypointId,omitempty"`
}

// ClearView drops the tree shown at Location.
type ClearView struct {
	Location string `json:"location"`
}

func (CreateWidget) Method() string { return MethodCreateWidget }
func (AppendChild) Method() string  { return MethodAppendChild }
func (SetChildren) Method() string  { return MethodSetChildren }
func (ReplaceView) Method() string  { return MethodReplaceView }
func (ClearView) Method() string    { return MethodClearView }

func (c CreateWidget) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddUint64("id", uint64(c.ID))
	enc.AddString("type", c.Type)
	if c.Text != "" {
		enc.AddInt("text_len", len(c.Text))
	}
	log.PropsField(c.Props).AddTo(enc)
	return nil
}

func (c AppendChild) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddUint64("parent", uint64(c.Parent))
	enc.AddUint64("child", uint64(c.Child))
	return nil
}

func (c SetChildren) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddUint64("parent", uint64(c.Parent))
	enc.AddInt("children", len(c.Children))
	return nil
}

func (c ReplaceView) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("location", c.Location)
	enc.AddUint64("root", uint64(c.Root))
	if c.EntrypointID != "" {
		enc.AddString("entrypoint", c.EntrypointID)
	}
	return nil
}

func (c ClearView) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("location", c.Location)
	return nil
}

// CommandField creates a zap field for a command
func CommandField(c Command) zap.Field {
	return zap.Object(c.Method(), c)
}

// Decode parses the params of a plugin request.
func Decode(method string, params json.RawMessage) (Command, error) {
	var (
		cmd Command
		err error
	)
	switch method {
	case MethodCreateWidget:
		var c CreateWidget
		err = unmarshalParams(params, &c)
		cmd = c
	case MethodAppendChild:
		var c AppendChild
		err = unmarshalParams(params, &c)
		cmd = c
	case MethodSetChildren:
		var c SetChildren
		err = unmarshalParams(params, &c)
		cmd = c
	case MethodReplaceView:
		var c ReplaceView
		err = unmarshalParams(params, &c)
		if err == nil {
			_, err = tree.ParseLocation(c.Location)
		}
		cmd = c
	case MethodClearView:
		var c ClearView
		err = unmarshalParams(params, &c)
		if err == nil {
			_, err = tree.ParseLocation(c.Location)
		}
		cmd = c
	default:
		return nil, &Error{Code: CodeMethodNotFound, Message: fmt.Sprintf("unknown method %q", method)}
	}
	if err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: fmt.Sprintf("%s: %v", method, err)}
	}
	return cmd, nil
}

func unmarshalParams(params json.RawMessage, v any) error {
	if len(params) == 0 {
		return fmt.Errorf("missing params")
	}
	return json.Unmarshal(params, v)
}

// Apply performs cmd on t. A failed command leaves t unchanged.
func Apply(t *tree.Tree, cmd Command) error {
	switch c := cmd.(type) {
	case CreateWidget:
		switch c.Type {
		case component.WirePrefix + t.Model().Root().InternalName:
			return t.Root(c.ID)
		case component.WirePrefix + t.Model().TextPart().InternalName:
			return t.TextPart(c.ID, c.Text)
		default:
			return t.Widget(c.ID, c.Type, c.Props)
		}
	case AppendChild:
		return t.AppendChild(c.Parent, c.Child)
	case SetChildren:
		return t.SetChildren(c.Parent, c.Children)
	case ReplaceView:
		loc, err := tree.ParseLocation(c.Location)
		if err != nil {
			return err
		}
		return t.ReplaceView(loc, c.Root)
	case ClearView:
		loc, err := tree.ParseLocation(c.Location)
		if err != nil {
			return err
		}
		t.Clear(loc)
		return nil
	default:
		return fmt.Errorf("unsupported command %T", cmd)
	}
}
