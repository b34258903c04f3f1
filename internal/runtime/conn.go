package runtime

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// Handler receives requests and notifications from the peer. It runs on the
// read goroutine; blocking in it stops further reads.
type Handler func(msg *Message)

// Conn is a JSON-lines JSON-RPC connection over a pair of streams.
type Conn struct {
	r       io.Reader
	w       io.WriteCloser
	scanner *bufio.Scanner

	mu       sync.Mutex
	pending  map[uint64]chan *Message
	nextID   uint64
	alive    bool
	handler  Handler
	readDone chan struct{}
}

// NewConn wraps r and w. Call Start to begin reading.
func NewConn(r io.Reader, w io.WriteCloser) *Conn {
	scanner := bufio.NewScanner(r)
	// Allow for large messages (up to 10MB), image props travel inline
	const maxScannerBuffer = 10 * 1024 * 1024
	scanner.Buffer(make([]byte, 0, 64*1024), maxScannerBuffer)

	return &Conn{
		r:        r,
		w:        w,
		scanner:  scanner,
		pending:  make(map[uint64]chan *Message),
		readDone: make(chan struct{}),
	}
}

// Start begins reading and dispatching incoming messages to handler.
func (c *Conn) Start(handler Handler) {
	c.mu.Lock()
	c.handler = handler
	c.alive = true
	c.mu.Unlock()

	go c.readLoop()
}

// readLoop continuously reads messages from the peer
func (c *Conn) readLoop() {
	defer close(c.readDone)

	for c.scanner.Scan() {
		line := c.scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var msg Message
		if err := json.Unmarshal(line, &msg); err != nil {
			_ = c.writeJSON(Message{
				JSONRPC: "2.0",
				Error:   &Error{Code: CodeParseError, Message: err.Error()},
			})
			continue
		}

		if msg.IsResponse() {
			c.mu.Lock()
			ch, ok := c.pending[*msg.ID]
			if ok {
				delete(c.pending, *msg.ID)
			}
			c.mu.Unlock()

			if ok {
				ch <- &msg
			}
			continue
		}

		if (msg.IsRequest() || msg.IsNotification()) && c.handler != nil {
			c.handler(&msg)
		}
	}

	// Peer closed - mark as not alive and fail pending calls
	c.mu.Lock()
	c.alive = false
	for id, ch := range c.pending {
		close(ch)
		delete(c.pending, id)
	}
	c.mu.Unlock()
}

// writeJSON marshals and writes one message line
func (c *Conn) writeJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal: %w", err)
	}

	c.mu.Lock()
	_, err = c.w.Write(append(data, '\n'))
	c.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to write: %w", err)
	}
	return nil
}

func marshalParams(params any) (json.RawMessage, error) {
	if params == nil {
		return nil, nil
	}
	data, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal params: %w", err)
	}
	return data, nil
}

// Call sends a request and waits for its response. A non-nil result is
// filled from the response payload.
func (c *Conn) Call(ctx context.Context, method string, params, result any) error {
	if !c.IsAlive() {
		return fmt.Errorf("connection is not alive")
	}
	raw, err := marshalParams(params)
	if err != nil {
		return err
	}

	respCh := make(chan *Message, 1)

	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.pending[id] = respCh
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	if err := c.writeJSON(Message{JSONRPC: "2.0", ID: &id, Method: method, Params: raw}); err != nil {
		return err
	}

	timeout := 30 * time.Second
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}

	select {
	case resp := <-respCh:
		if resp == nil {
			return fmt.Errorf("connection closed")
		}
		if resp.Error != nil {
			return resp.Error
		}
		if result != nil && len(resp.Result) > 0 {
			if err := json.Unmarshal(resp.Result, result); err != nil {
				return fmt.Errorf("failed to decode %s result: %w", method, err)
			}
		}
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("%s: request timeout", method)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Notify sends a notification (no response expected)
func (c *Conn) Notify(method string, params any) error {
	if !c.IsAlive() {
		return fmt.Errorf("connection is not alive")
	}
	raw, err := marshalParams(params)
	if err != nil {
		return err
	}
	return c.writeJSON(Message{JSONRPC: "2.0", Method: method, Params: raw})
}

// Reply answers the request with the given id. A non-nil err is sent as an
// error response.
func (c *Conn) Reply(id uint64, result any, err error) error {
	msg := Message{JSONRPC: "2.0", ID: &id}
	if err != nil {
		msg.Error = toError(err)
		return c.writeJSON(msg)
	}
	if result == nil {
		result = struct{}{}
	}
	raw, merr := json.Marshal(result)
	if merr != nil {
		return fmt.Errorf("failed to marshal result: %w", merr)
	}
	msg.Result = raw
	return c.writeJSON(msg)
}

// Done is closed when the peer stops sending.
func (c *Conn) Done() <-chan struct{} {
	return c.readDone
}

// Close closes the write side and waits briefly for the read loop to end.
func (c *Conn) Close() error {
	c.mu.Lock()
	wasAlive := c.alive
	c.alive = false
	c.mu.Unlock()

	err := c.w.Close()

	if wasAlive {
		select {
		case <-c.readDone:
		case <-time.After(2 * time.Second):
		}
	}
	return err
}

// IsAlive returns true if the connection is open
func (c *Conn) IsAlive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.alive
}
