package widget

import (
	"fmt"

	"github.com/yanmxa/gauntlet/internal/component"
	"github.com/yanmxa/gauntlet/internal/property"
)

// Event is an interaction sent to the plugin runtime.
type Event struct {
	WidgetID  ID               `json:"widgetId"`
	EventName string           `json:"eventName"`
	Arguments []property.Value `json:"eventArguments"`
}

// NewEvent builds the event for a function property declared by w's
// component. Arguments are positional. Optional arguments may be omitted or
// passed as Undefined; either way they are sent as an explicit Undefined.
func NewEvent(w *Widget, name string, args ...property.Value) (Event, error) {
	p, ok := w.Component.Prop(name)
	if !ok || !isEvent(p.Type.Kind) {
		return Event{}, fmt.Errorf("%w: %s has no event %q", ErrUnknownEvent, w.Component.Name, name)
	}

	declared := p.Type.Arguments
	if len(args) > len(declared) {
		return Event{}, fmt.Errorf("%s.%s: expected at most %d arguments, got %d", w.Component.Name, name, len(declared), len(args))
	}

	out := make([]property.Value, len(declared))
	for i, a := range declared {
		if i >= len(args) || args[i].IsUndefined() {
			if !a.Optional {
				return Event{}, &MissingRequiredPropertyError{Component: w.Component.Name + "." + name, Property: a.Name}
			}
			out[i] = property.Undefined()
			continue
		}
		if !conforms(a.Type, args[i]) {
			return Event{}, &TypeMismatchError{
				Component: w.Component.Name + "." + name,
				Property:  a.Name,
				Expected:  a.Type.String(),
				Actual:    args[i].Kind().String(),
			}
		}
		out[i] = args[i]
	}

	return Event{WidgetID: w.ID, EventName: name, Arguments: out}, nil
}

// OnAction builds the onAction event of an Action.
func OnAction(w *Widget) (Event, error) {
	return NewEvent(w, "onAction")
}

// OnClick builds the onClick event of a list item, grid item or tag.
func OnClick(w *Widget) (Event, error) {
	return NewEvent(w, "onClick")
}

// OnChange builds the onChange event of a text-valued input. A nil value is
// sent as Undefined.
func OnChange(w *Widget, value *string) (Event, error) {
	return NewEvent(w, "onChange", property.OptString(value))
}

// OnToggle builds the onChange event of a Checkbox.
func OnToggle(w *Widget, value bool) (Event, error) {
	return NewEvent(w, "onChange", property.Bool(value))
}

func isEvent(k component.PropertyKind) bool {
	return k == component.PropFunction
}
