package widget

import (
	"errors"
	"fmt"
)

// Sentinel errors, matched with errors.Is.
var (
	ErrUnknownComponentType = errors.New("unknown component type")
	ErrMissingRequiredProp  = errors.New("missing required property")
	ErrTypeMismatch         = errors.New("property type mismatch")
	ErrInvalidChildType     = errors.New("invalid child type")
	ErrChildrenNotAllowed   = errors.New("children not allowed")
	ErrUnknownEvent         = errors.New("unknown event")
)

// UnknownComponentTypeError reports an internal name absent from the model.
type UnknownComponentTypeError struct {
	InternalName string
}

func (e *UnknownComponentTypeError) Error() string {
	return fmt.Sprintf("unknown component type %q", e.InternalName)
}

func (e *UnknownComponentTypeError) Is(target error) bool { return target == ErrUnknownComponentType }

// MissingRequiredPropertyError reports a required property absent from the bag.
type MissingRequiredPropertyError struct {
	Component string
	Property  string
}

func (e *MissingRequiredPropertyError) Error() string {
	return fmt.Sprintf("%s: missing required property %q", e.Component, e.Property)
}

func (e *MissingRequiredPropertyError) Is(target error) bool { return target == ErrMissingRequiredProp }

// TypeMismatchError reports a value whose kind does not match the declared type.
type TypeMismatchError struct {
	Component string
	Property  string
	Expected  string
	Actual    string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: property %q expects %s, got %s", e.Component, e.Property, e.Expected, e.Actual)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// InvalidChildTypeError reports a child the parent's constraint does not list.
type InvalidChildTypeError struct {
	Parent string
	Child  string
}

func (e *InvalidChildTypeError) Error() string {
	return fmt.Sprintf("%s cannot contain %s", e.Parent, e.Child)
}

func (e *InvalidChildTypeError) Is(target error) bool { return target == ErrInvalidChildType }

// ChildrenNotAllowedError reports a children operation on a leaf component.
type ChildrenNotAllowedError struct {
	Component string
}

func (e *ChildrenNotAllowedError) Error() string {
	return fmt.Sprintf("%s does not accept children", e.Component)
}

func (e *ChildrenNotAllowedError) Is(target error) bool { return target == ErrChildrenNotAllowed }
