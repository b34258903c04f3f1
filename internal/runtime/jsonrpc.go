// Package runtime connects the launcher to a plugin runtime process.
//
// Both sides speak JSON-RPC 2.0, one message per line. The plugin runtime
// sends widget tree commands as requests; the launcher answers each one after
// applying it, and sends widget events and focus changes as notifications.
package runtime

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yanmxa/gauntlet/internal/tree"
	"github.com/yanmxa/gauntlet/internal/widget"
)

// Message is any JSON-RPC 2.0 message. Requests carry Method and ID,
// notifications carry only Method, responses carry ID and Result or Error.
type Message struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *uint64         `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// IsRequest reports whether the message expects a response.
func (m *Message) IsRequest() bool { return m.Method != "" && m.ID != nil }

// IsNotification reports whether the message is a one-way call.
func (m *Message) IsNotification() bool { return m.Method != "" && m.ID == nil }

// IsResponse reports whether the message answers one of our requests.
func (m *Message) IsResponse() bool { return m.Method == "" && m.ID != nil }

// Error is a JSON-RPC 2.0 error object.
type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603

	// CodeRejected marks a well-formed command the widget tree refused.
	CodeRejected = 1
)

// rejection is the Data payload of a CodeRejected error.
type rejection struct {
	Kind string `json:"kind"`
}

// toError converts an apply error into its wire form.
func toError(err error) *Error {
	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		return rpcErr
	}
	data, _ := json.Marshal(rejection{Kind: ErrorKind(err)})
	return &Error{Code: CodeRejected, Message: err.Error(), Data: data}
}

// ErrorKind names the class of a rejected command.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, widget.ErrUnknownComponentType):
		return "UnknownComponentType"
	case errors.Is(err, widget.ErrMissingRequiredProp):
		return "MissingRequiredProperty"
	case errors.Is(err, widget.ErrTypeMismatch):
		return "TypeMismatch"
	case errors.Is(err, widget.ErrInvalidChildType):
		return "InvalidChildType"
	case errors.Is(err, widget.ErrChildrenNotAllowed):
		return "ChildrenNotAllowed"
	case errors.Is(err, tree.ErrDuplicateWidget):
		return "DuplicateWidget"
	case errors.Is(err, tree.ErrUnknownWidget):
		return "UnknownWidget"
	case errors.Is(err, tree.ErrNotRoot):
		return "NotRoot"
	case errors.Is(err, tree.ErrCycle):
		return "Cycle"
	default:
		return "Internal"
	}
}
