package log

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yanmxa/gauntlet/internal/widget"
)

// DevCommand represents a plugin command saved to JSON file
type DevCommand struct {
	Seq       int             `json:"seq"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID uint64          `json:"request_id"`
	Method    string          `json:"method"`
	Params    json.RawMessage `json:"params,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// DevEvent represents an outgoing widget event saved to JSON file
type DevEvent struct {
	Seq       int          `json:"seq"`
	Timestamp time.Time    `json:"timestamp"`
	Event     widget.Event `json:"event"`
}

// WriteDevCommand writes an applied command to a JSON file in DEV_DIR
func WriteDevCommand(requestID uint64, method string, params json.RawMessage, err error) {
	if !devEnabled {
		return
	}
	n := NextSeq()
	c := DevCommand{
		Seq:       n,
		Timestamp: time.Now().UTC(),
		RequestID: requestID,
		Method:    method,
		Params:    params,
	}
	if err != nil {
		c.Error = err.Error()
	}
	writeJSON(filepath.Join(devDir, fmt.Sprintf("%05d-command-%s.json", n, method)), c)
}

// WriteDevEvent writes an outgoing event to a JSON file in DEV_DIR
func WriteDevEvent(ev widget.Event) {
	if !devEnabled {
		return
	}
	n := NextSeq()
	e := DevEvent{Seq: n, Timestamp: time.Now().UTC(), Event: ev}
	writeJSON(filepath.Join(devDir, fmt.Sprintf("%05d-event-%s.json", n, ev.EventName)), e)
}

func writeJSON(filename string, data any) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(filename, jsonData, 0644)
}
