package runtime

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanmxa/gauntlet/internal/component"
	"github.com/yanmxa/gauntlet/internal/tree"
	"github.com/yanmxa/gauntlet/internal/widget"
)

// peer plays the plugin runtime side of a Host.
type peer struct {
	t        *testing.T
	w        io.WriteCloser
	messages chan Message
}

func newHostPair(t *testing.T) (*Host, *peer) {
	t.Helper()
	hostR, peerW := io.Pipe()
	peerR, hostW := io.Pipe()

	h := NewHost(NewConn(hostR, hostW), nil)
	p := &peer{t: t, w: peerW, messages: make(chan Message, 16)}

	go func() {
		defer close(p.messages)
		scanner := bufio.NewScanner(peerR)
		for scanner.Scan() {
			var msg Message
			if err := json.Unmarshal(scanner.Bytes(), &msg); err == nil {
				p.messages <- msg
			}
		}
	}()

	t.Cleanup(func() {
		_ = peerW.Close()
		_ = h.Close()
	})
	return h, p
}

func (p *peer) send(id uint64, method string, params string) {
	line := `{"jsonrpc":"2.0","id":` + jsonNumber(id) + `,"method":"` + method + `","params":` + params + "}\n"
	_, err := p.w.Write([]byte(line))
	assert.NoError(p.t, err)
}

func (p *peer) notify(method string, params string) {
	_, err := p.w.Write([]byte(`{"jsonrpc":"2.0","method":"` + method + `","params":` + params + "}\n"))
	assert.NoError(p.t, err)
}

func (p *peer) next() Message {
	p.t.Helper()
	select {
	case msg, ok := <-p.messages:
		require.True(p.t, ok, "host closed the connection")
		return msg
	case <-time.After(2 * time.Second):
		p.t.Fatal("timed out waiting for host message")
		return Message{}
	}
}

func jsonNumber(n uint64) string {
	data, _ := json.Marshal(n)
	return string(data)
}

func nextRequest(t *testing.T, h *Host) Request {
	t.Helper()
	select {
	case req, ok := <-h.Commands():
		require.True(t, ok)
		return req
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for command")
		return Request{}
	}
}

func TestHostAppliesCommandsInOrder(t *testing.T) {
	h, p := newHostPair(t)
	tr := tree.New(component.Default())

	go func() {
		p.send(1, MethodCreateWidget, `{"id":1,"type":"gauntlet:root"}`)
		p.send(2, MethodCreateWidget, `{"id":2,"type":"gauntlet:list","props":{"isLoading":{"type":"bool","value":true}}}`)
		p.send(3, MethodCreateWidget, `{"id":3,"type":"gauntlet:list_item","props":{"title":{"type":"string","value":"Firefox"}}}`)
		p.send(4, MethodAppendChild, `{"parent":2,"child":3}`)
		p.send(5, MethodAppendChild, `{"parent":1,"child":2}`)
		p.send(6, MethodReplaceView, `{"location":"view","root":1}`)
	}()

	for want := uint64(1); want <= 6; want++ {
		req := nextRequest(t, h)
		require.True(t, req.HasID)
		assert.Equal(t, want, req.ID)
		require.NoError(t, h.Reply(req, Apply(tr, req.Command)))

		resp := p.next()
		require.NotNil(t, resp.ID)
		assert.Equal(t, want, *resp.ID)
		assert.Nil(t, resp.Error)
	}

	root, ok := tr.View(tree.LocationView)
	require.True(t, ok)
	list := root.First("list")
	require.NotNil(t, list)
	assert.True(t, list.Props.Bool("isLoading"))
	assert.Equal(t, "Firefox", list.First("list_item").Props.String("title"))
}

func TestHostRepliesWithRejectionKind(t *testing.T) {
	h, p := newHostPair(t)
	tr := tree.New(component.Default())

	go func() {
		p.send(1, MethodCreateWidget, `{"id":1,"type":"gauntlet:paragraph"}`)
		p.send(2, MethodCreateWidget, `{"id":2,"type":"gauntlet:metadata"}`)
		p.send(3, MethodAppendChild, `{"parent":1,"child":2}`)
	}()

	for i := 0; i < 2; i++ {
		req := nextRequest(t, h)
		require.NoError(t, h.Reply(req, Apply(tr, req.Command)))
		p.next()
	}

	req := nextRequest(t, h)
	err := Apply(tr, req.Command)
	require.ErrorIs(t, err, widget.ErrInvalidChildType)
	require.NoError(t, h.Reply(req, err))

	resp := p.next()
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeRejected, resp.Error.Code)
	assert.Equal(t, "Paragraph cannot contain Metadata", resp.Error.Message)

	var data rejection
	require.NoError(t, json.Unmarshal(resp.Error.Data, &data))
	assert.Equal(t, "InvalidChildType", data.Kind)
}

func TestHostAnswersMalformedCommandsDirectly(t *testing.T) {
	h, p := newHostPair(t)

	go func() {
		p.send(7, "explode", `{}`)
		p.send(8, MethodAppendChild, `{"parent":"x"}`)
		p.send(9, MethodReplaceView, `{"location":"window","root":1}`)
	}()

	for _, want := range []struct {
		id   uint64
		code int
	}{{7, CodeMethodNotFound}, {8, CodeInvalidParams}, {9, CodeInvalidParams}} {
		resp := p.next()
		require.NotNil(t, resp.ID)
		assert.Equal(t, want.id, *resp.ID)
		require.NotNil(t, resp.Error)
		assert.Equal(t, want.code, resp.Error.Code)
	}

	select {
	case req := <-h.Commands():
		t.Fatalf("malformed command delivered: %+v", req)
	default:
	}
}

func TestNotificationCommandsGetNoReply(t *testing.T) {
	h, p := newHostPair(t)
	go p.notify(MethodCreateWidget, `{"id":1,"type":"gauntlet:root"}`)

	req := nextRequest(t, h)
	assert.False(t, req.HasID)
	assert.NoError(t, h.Reply(req, nil))

	select {
	case msg := <-p.messages:
		t.Fatalf("unexpected reply: %+v", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSendEventEncodesUndefinedArgument(t *testing.T) {
	h, p := newHostPair(t)

	field, err := widget.Create(component.Default(), 5, "gauntlet:text_field", nil)
	require.NoError(t, err)
	ev, err := widget.OnChange(field, nil)
	require.NoError(t, err)

	go func() { assert.NoError(t, h.SendEvent(ev)) }()

	msg := p.next()
	assert.Equal(t, MethodWidgetEvent, msg.Method)
	assert.Nil(t, msg.ID)
	assert.JSONEq(t, `{"widgetId":5,"eventName":"onChange","eventArguments":[{"type":"undefined"}]}`, string(msg.Params))
}

func TestFocusNotifications(t *testing.T) {
	h, p := newHostPair(t)

	go func() {
		assert.NoError(t, h.FocusListItem(2, "firefox"))
		assert.NoError(t, h.FocusGridItem(9, "emoji-1"))
	}()

	msg := p.next()
	assert.Equal(t, MethodFocusListItem, msg.Method)
	assert.JSONEq(t, `{"widgetId":2,"itemId":"firefox"}`, string(msg.Params))

	msg = p.next()
	assert.Equal(t, MethodFocusGridItem, msg.Method)
	assert.JSONEq(t, `{"widgetId":9,"itemId":"emoji-1"}`, string(msg.Params))
}

func TestOpenViewWaitsForAcknowledgement(t *testing.T) {
	h, p := newHostPair(t)

	done := make(chan error, 1)
	go func() {
		done <- h.OpenView(context.Background(), "apps", "search")
	}()

	req := p.next()
	assert.Equal(t, MethodOpenView, req.Method)
	require.NotNil(t, req.ID)
	assert.JSONEq(t, `{"pluginId":"apps","entrypointId":"search"}`, string(req.Params))

	_, err := p.w.Write([]byte(`{"jsonrpc":"2.0","id":` + jsonNumber(*req.ID) + `,"result":{}}` + "\n"))
	require.NoError(t, err)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("OpenView did not return")
	}
}

func TestOpenViewFailsWhenPeerExits(t *testing.T) {
	h, p := newHostPair(t)

	done := make(chan error, 1)
	go func() {
		done <- h.OpenView(context.Background(), "apps", "search")
	}()

	p.next()
	require.NoError(t, p.w.Close())

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection closed")
	case <-time.After(2 * time.Second):
		t.Fatal("OpenView did not return")
	}

	_, ok := <-h.Commands()
	assert.False(t, ok, "commands channel is closed")
}
