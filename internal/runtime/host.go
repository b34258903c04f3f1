package runtime

import (
	"context"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/yanmxa/gauntlet/internal/log"
	"github.com/yanmxa/gauntlet/internal/widget"
)

// CommandBuffer is the capacity of the command channel. When it is full
// the reader stops reading from the plugin runtime.
const CommandBuffer = 64

// Request is a decoded command waiting to be applied. Requests without an
// id came as notifications and get no reply.
type Request struct {
	ID      uint64
	HasID   bool
	Command Command
	Params  []byte
}

// Runtime is the launcher side of a plugin runtime connection.
type Runtime interface {
	// Commands delivers plugin commands in arrival order. It is closed when
	// the runtime goes away.
	Commands() <-chan Request
	// Reply answers a request once it has been applied.
	Reply(req Request, err error) error
	SendEvent(ev widget.Event) error
	FocusListItem(list widget.ID, itemID string) error
	FocusGridItem(grid widget.ID, itemID string) error
	OpenView(ctx context.Context, plugin, entrypoint string) error
	Close() error
}

// Host implements Runtime over a Conn.
type Host struct {
	conn     *Conn
	closer   io.Closer
	requests chan Request
	quit     chan struct{}
	once     sync.Once
	logger   *zap.Logger
}

// NewHost starts conn and pumps its commands. closer releases the
// underlying transport; it is usually the Process owning conn.
func NewHost(conn *Conn, closer io.Closer) *Host {
	h := &Host{
		conn:     conn,
		closer:   closer,
		requests: make(chan Request, CommandBuffer),
		quit:     make(chan struct{}),
		logger:   log.Named("runtime"),
	}
	conn.Start(h.handle)

	go func() {
		<-conn.Done()
		close(h.requests)
	}()

	return h
}

// handle runs on the connection's read goroutine.
func (h *Host) handle(msg *Message) {
	cmd, err := Decode(msg.Method, msg.Params)
	if err != nil {
		h.logger.Warn("Dropping malformed command", zap.String("method", msg.Method), zap.Error(err))
		if msg.IsRequest() {
			_ = h.conn.Reply(*msg.ID, nil, err)
		}
		return
	}

	req := Request{Command: cmd, Params: msg.Params}
	if msg.ID != nil {
		req.ID = *msg.ID
		req.HasID = true
	}

	select {
	case h.requests <- req:
	case <-h.quit:
	}
}

// Commands implements Runtime.
func (h *Host) Commands() <-chan Request {
	return h.requests
}

// Reply implements Runtime.
func (h *Host) Reply(req Request, err error) error {
	if err != nil {
		h.logger.Warn("Command rejected", CommandField(req.Command), zap.Error(err))
	}
	if !req.HasID {
		return nil
	}
	return h.conn.Reply(req.ID, nil, err)
}

// SendEvent implements Runtime.
func (h *Host) SendEvent(ev widget.Event) error {
	h.logger.Debug("Sending event", log.EventField(ev))
	log.WriteDevEvent(ev)
	return h.conn.Notify(MethodWidgetEvent, ev)
}

type focusParams struct {
	WidgetID widget.ID `json:"widgetId"`
	ItemID   string    `json:"itemId"`
}

// FocusListItem implements Runtime.
func (h *Host) FocusListItem(list widget.ID, itemID string) error {
	return h.conn.Notify(MethodFocusListItem, focusParams{WidgetID: list, ItemID: itemID})
}

// FocusGridItem implements Runtime.
func (h *Host) FocusGridItem(grid widget.ID, itemID string) error {
	return h.conn.Notify(MethodFocusGridItem, focusParams{WidgetID: grid, ItemID: itemID})
}

type openViewParams struct {
	PluginID     string `json:"pluginId"`
	EntrypointID string `json:"entrypointId"`
}

// OpenView asks the runtime to render an entrypoint and waits for it to
// acknowledge. The view itself arrives as commands.
func (h *Host) OpenView(ctx context.Context, plugin, entrypoint string) error {
	h.logger.Info("Opening view", zap.String("plugin", plugin), zap.String("entrypoint", entrypoint))
	return h.conn.Call(ctx, MethodOpenView, openViewParams{PluginID: plugin, EntrypointID: entrypoint}, nil)
}

// Close implements Runtime.
func (h *Host) Close() error {
	var err error
	h.once.Do(func() {
		close(h.quit)
		if h.closer != nil {
			err = h.closer.Close()
		} else {
			err = h.conn.Close()
		}
	})
	return err
}
