package ui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanmxa/gauntlet/internal/actionpanel"
	"github.com/yanmxa/gauntlet/internal/component"
	"github.com/yanmxa/gauntlet/internal/focus"
	"github.com/yanmxa/gauntlet/internal/property"
	"github.com/yanmxa/gauntlet/internal/runtime"
	"github.com/yanmxa/gauntlet/internal/tree"
	"github.com/yanmxa/gauntlet/internal/widget"
)

type fakeRuntime struct {
	mu        sync.Mutex
	commands  chan runtime.Request
	replies   map[uint64]error
	events    []widget.Event
	listFocus []string
	gridFocus []string
}

func newFakeRuntime() *fakeRuntime {
	ch := make(chan runtime.Request)
	close(ch)
	return &fakeRuntime{commands: ch, replies: make(map[uint64]error)}
}

func (f *fakeRuntime) Commands() <-chan runtime.Request { return f.commands }

func (f *fakeRuntime) Reply(req runtime.Request, err error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[req.ID] = err
	return nil
}

func (f *fakeRuntime) SendEvent(ev widget.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return nil
}

func (f *fakeRuntime) FocusListItem(_ widget.ID, itemID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listFocus = append(f.listFocus, itemID)
	return nil
}

func (f *fakeRuntime) FocusGridItem(_ widget.ID, itemID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gridFocus = append(f.gridFocus, itemID)
	return nil
}

func (f *fakeRuntime) OpenView(context.Context, string, string) error { return nil }
func (f *fakeRuntime) Close() error                                  { return nil }

func (f *fakeRuntime) lastEvent(t *testing.T) widget.Event {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.events)
	return f.events[len(f.events)-1]
}

func (f *fakeRuntime) eventCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

// script builds the commands a plugin sends to render a view.
type script struct {
	reqs []runtime.Request
	next uint64
}

func (s *script) add(cmd runtime.Command) {
	s.next++
	s.reqs = append(s.reqs, runtime.Request{ID: s.next, HasID: true, Command: cmd})
}

func (s *script) widget(id widget.ID, name string, props property.Bag) {
	s.add(runtime.CreateWidget{ID: id, Type: component.WirePrefix + name, Props: props})
}

func (s *script) text(id widget.ID, text string) {
	s.add(runtime.CreateWidget{ID: id, Type: component.WirePrefix + "text_part", Text: text})
}

func (s *script) children(parent widget.ID, children ...widget.ID) {
	s.add(runtime.SetChildren{Parent: parent, Children: children})
}

func (s *script) commit(root widget.ID) commandsMsg {
	s.add(runtime.ReplaceView{Location: "view", Root: root})
	return commandsMsg{requests: s.reqs}
}

// collect runs cmd and returns the messages it produces. Commands that do
// not finish quickly (cursor blinks, ticks) are dropped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		switch msg := msg.(type) {
		case nil:
			return nil
		case tea.BatchMsg:
			var out []tea.Msg
			for _, c := range msg {
				out = append(out, collect(c)...)
			}
			return out
		default:
			return []tea.Msg{msg}
		}
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

// send delivers msg and feeds the resulting scroll requests back, the way
// the program loop would.
func send(m tea.Model, msg tea.Msg) (tea.Model, []tea.Msg) {
	m, cmd := m.Update(msg)
	var out []tea.Msg
	for _, produced := range collect(cmd) {
		if req, ok := produced.(focus.ScrollRequestMsg); ok {
			m, _ = m.Update(req)
			continue
		}
		out = append(out, produced)
	}
	return m, out
}

func state(t *testing.T, m tea.Model) *model {
	t.Helper()
	switch v := m.(type) {
	case model:
		return &v
	case *model:
		return v
	}
	t.Fatalf("unexpected model type %T", m)
	return nil
}

func newTestModel(t *testing.T, width, height int) (tea.Model, *fakeRuntime) {
	t.Helper()
	rt := newFakeRuntime()
	m := New(Options{
		Runtime:   rt,
		Tree:      tree.New(component.Default()),
		Location:  tree.LocationView,
		Title:     "Search Applications",
		Shortcuts: map[string]actionpanel.Shortcut{"reveal": {Key: "r", Kind: actionpanel.KindMain}},
	})
	m, _ = send(m, tea.WindowSizeMsg{Width: width, Height: height})
	return m, rt
}

func str(s string) property.Value { return property.String(s) }

func listScript() *script {
	s := &script{}
	s.add(runtime.CreateWidget{ID: 1, Type: component.WirePrefix + "root"})
	s.widget(2, "list", nil)
	s.widget(3, "action_panel", nil)
	s.widget(4, "action", property.Bag{"label": str("Open"), "id": str("open")})
	s.widget(5, "action", property.Bag{"label": str("Copy"), "id": str("copy")})
	s.widget(6, "action", property.Bag{"label": str("Reveal"), "id": str("reveal")})
	s.widget(7, "list_item", property.Bag{"title": str("Alpha"), "id": str("a")})
	s.widget(8, "list_item", property.Bag{"title": str("Beta"), "id": str("b")})
	s.widget(9, "search_bar", property.Bag{"placeholder": str("Filter apps")})
	s.children(3, 4, 5, 6)
	s.children(2, 9, 3, 7, 8)
	s.children(1, 2)
	return s
}

func TestListView(t *testing.T) {
	m, rt := newTestModel(t, 80, 20)
	m, _ = send(m, listScript().commit(1))

	st := state(t, m)
	assert.Equal(t, "list", st.screen.kind())
	for id, err := range rt.replies {
		assert.NoError(t, err, "request %d", id)
	}
	assert.Equal(t, "Filter apps", st.search.Placeholder)

	cur, ok := st.listFocus.Current()
	require.True(t, ok)
	assert.Equal(t, "a", cur)
	assert.Equal(t, []string{"a"}, rt.listFocus)

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyDown})
	cur, _ = state(t, m).listFocus.Current()
	assert.Equal(t, "b", cur)
	assert.Equal(t, []string{"a", "b"}, rt.listFocus)

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, []string{"a", "b"}, rt.listFocus, "no move past the last item")

	view := m.View()
	assert.Contains(t, view, "Alpha")
	assert.Contains(t, view, "Beta")
	assert.Contains(t, view, "Open")
}

func TestListKeysFireEvents(t *testing.T) {
	m, rt := newTestModel(t, 80, 20)
	m, _ = send(m, listScript().commit(1))

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	ev := rt.lastEvent(t)
	assert.Equal(t, widget.ID(4), ev.WidgetID)
	assert.Equal(t, "onAction", ev.EventName)

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
	assert.Equal(t, widget.ID(5), rt.lastEvent(t).WidgetID)

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, widget.ID(6), rt.lastEvent(t).WidgetID, "assigned shortcut")

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	ev = rt.lastEvent(t)
	assert.Equal(t, widget.ID(9), ev.WidgetID)
	assert.Equal(t, "onChange", ev.EventName)
	require.Len(t, ev.Arguments, 1)
	assert.True(t, ev.Arguments[0].Equal(str("x")))
	assert.Equal(t, "x", state(t, m).search.Value())
}

func TestActionPanel(t *testing.T) {
	m, rt := newTestModel(t, 80, 20)
	m, _ = send(m, listScript().commit(1))

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyCtrlK})
	st := state(t, m)
	require.True(t, st.panelOpen)
	cur, _ := st.panelFocus.Current()
	assert.Equal(t, 0, cur)
	assert.Contains(t, m.View(), "Reveal")

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, widget.ID(5), rt.lastEvent(t).WidgetID)
	assert.False(t, state(t, m).panelOpen)

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyCtrlK})
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, state(t, m).panelOpen)
	assert.Equal(t, 1, rt.eventCount())
}

func TestEscQuits(t *testing.T) {
	m, _ := newTestModel(t, 80, 20)
	m, _ = send(m, listScript().commit(1))

	_, msgs := send(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Contains(t, msgs, tea.QuitMsg{})
}

func TestRejectedCommandIsReplied(t *testing.T) {
	m, rt := newTestModel(t, 80, 20)
	s := &script{}
	s.widget(1, "list_item", nil)
	m, _ = send(m, commandsMsg{requests: s.reqs})

	assert.ErrorIs(t, rt.replies[1], widget.ErrMissingRequiredProp)
	assert.Equal(t, "", state(t, m).screen.kind())
}

func TestRuntimeExitQuits(t *testing.T) {
	m, _ := newTestModel(t, 80, 20)
	_, msgs := send(m, runtimeClosedMsg{})
	assert.Contains(t, msgs, tea.QuitMsg{})
}

func TestListScrollsFocusIntoView(t *testing.T) {
	m, _ := newTestModel(t, 80, 10)

	s := &script{}
	s.add(runtime.CreateWidget{ID: 1, Type: component.WirePrefix + "root"})
	s.widget(2, "list", nil)
	var items []widget.ID
	for i := 0; i < 30; i++ {
		id := widget.ID(100 + i)
		s.widget(id, "list_item", property.Bag{"title": str("Item")})
		items = append(items, id)
	}
	s.children(2, items...)
	s.children(1, 2)
	m, _ = send(m, s.commit(1))
	assert.Equal(t, 6, state(t, m).viewport.Height)

	for i := 0; i < 6; i++ {
		m, _ = send(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	// item 6 sits on row 6; one row of padding below it in a six-row
	// viewport needs offset 2
	assert.Equal(t, 2, state(t, m).viewport.YOffset)

	for i := 0; i < 6; i++ {
		m, _ = send(m, tea.KeyMsg{Type: tea.KeyUp})
	}
	assert.Equal(t, 0, state(t, m).viewport.YOffset)
}

func TestGridNavigation(t *testing.T) {
	m, rt := newTestModel(t, 80, 30)

	s := &script{}
	s.add(runtime.CreateWidget{ID: 1, Type: component.WirePrefix + "root"})
	s.widget(2, "grid", property.Bag{"columns": property.Number(2)})
	s.widget(3, "grid_item", property.Bag{"id": str("g1"), "title": str("One")})
	s.widget(4, "grid_item", property.Bag{"id": str("g2"), "title": str("Two")})
	s.widget(5, "grid_item", property.Bag{"id": str("g3"), "title": str("Three")})
	s.children(2, 3, 4, 5)
	s.children(1, 2)
	m, _ = send(m, s.commit(1))

	current := func() string {
		k, _ := state(t, m).gridFocus.Current()
		return k
	}
	assert.Equal(t, "g1", current())
	assert.Equal(t, [][]string{{"g1", "g2"}, {"g3"}}, state(t, m).screen.gridRows())

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "g2", current())
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "g3", current(), "column clamps to the short row")
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "g3", current())
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "g1", current())
	assert.Equal(t, []string{"g1", "g2", "g3", "g1"}, rt.gridFocus)

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	ev := rt.lastEvent(t)
	assert.Equal(t, widget.ID(3), ev.WidgetID, "no actions: enter clicks the item")
	assert.Equal(t, "onClick", ev.EventName)
	assert.Contains(t, m.View(), "Three")
}

func TestDuplicateItemIDs(t *testing.T) {
	m, rt := newTestModel(t, 80, 30)

	s := &script{}
	s.add(runtime.CreateWidget{ID: 1, Type: component.WirePrefix + "root"})
	s.widget(2, "grid", property.Bag{"columns": property.Number(2)})
	s.widget(3, "grid_item", property.Bag{"id": str("g1"), "title": str("One")})
	s.widget(4, "grid_item", property.Bag{"id": str("g1"), "title": str("Again")})
	s.widget(5, "grid_item", property.Bag{"title": str("Unnamed")})
	s.widget(6, "grid_item", property.Bag{"id": str("5"), "title": str("Five")})
	s.children(2, 3, 4, 5, 6)
	s.children(1, 2)
	m, _ = send(m, s.commit(1))

	st := state(t, m)
	assert.Equal(t, [][]string{{"g1", "#5"}, {"5"}}, st.screen.gridRows())
	assert.Equal(t, 3, st.screen.gridItems.Len())
	assert.NotContains(t, m.View(), "Again")

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, []string{"g1", "#5", "5"}, rt.gridFocus)
}

func TestDuplicateListItemIsNotDrawn(t *testing.T) {
	m, _ := newTestModel(t, 80, 30)

	s := &script{}
	s.add(runtime.CreateWidget{ID: 1, Type: component.WirePrefix + "root"})
	s.widget(2, "list", nil)
	s.widget(3, "list_item", property.Bag{"title": str("Alpha"), "id": str("a")})
	s.widget(4, "list_item", property.Bag{"title": str("Again"), "id": str("a")})
	s.children(2, 3, 4)
	s.children(1, 2)
	m, _ = send(m, s.commit(1))

	assert.Equal(t, 1, state(t, m).screen.listItems.Len())
	view := m.View()
	assert.Contains(t, view, "Alpha")
	assert.NotContains(t, view, "Again")
}

func TestFormFields(t *testing.T) {
	m, rt := newTestModel(t, 80, 30)

	s := &script{}
	s.add(runtime.CreateWidget{ID: 1, Type: component.WirePrefix + "root"})
	s.widget(2, "form", nil)
	s.widget(3, "text_field", property.Bag{"label": str("Name"), "value": str("Al")})
	s.widget(4, "checkbox", property.Bag{"title": str("Remember")})
	s.widget(5, "select", property.Bag{"label": str("Color")})
	s.widget(6, "select_item", property.Bag{"value": str("red")})
	s.text(7, "Red")
	s.widget(8, "select_item", property.Bag{"value": str("blue")})
	s.text(9, "Blue")
	s.children(6, 7)
	s.children(8, 9)
	s.children(5, 6, 8)
	s.children(2, 3, 4, 5)
	s.children(1, 2)
	m, _ = send(m, s.commit(1))

	st := state(t, m)
	assert.Equal(t, "Al", st.fields[3].input.Value())
	assert.True(t, st.fields[3].input.Focused())

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	ev := rt.lastEvent(t)
	assert.Equal(t, widget.ID(3), ev.WidgetID)
	assert.True(t, ev.Arguments[0].Equal(str("Alx")))

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = send(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	ev = rt.lastEvent(t)
	assert.Equal(t, widget.ID(4), ev.WidgetID)
	assert.True(t, ev.Arguments[0].Equal(property.Bool(true)))

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyRight})
	ev = rt.lastEvent(t)
	assert.Equal(t, widget.ID(5), ev.WidgetID)
	assert.True(t, ev.Arguments[0].Equal(str("red")))

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.True(t, rt.lastEvent(t).Arguments[0].Equal(str("blue")), "wraps around")
	assert.Contains(t, m.View(), "Blue")
}

func TestSearchValueFollowsPlugin(t *testing.T) {
	m, _ := newTestModel(t, 80, 20)
	m, _ = send(m, listScript().commit(1))
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")})
	assert.Equal(t, "ab", state(t, m).search.Value())

	s := &script{next: 100}
	s.widget(10, "search_bar", property.Bag{"value": str("reset")})
	s.children(2, 10, 3, 7, 8)
	m, _ = send(m, commandsMsg{requests: s.reqs})
	assert.Equal(t, "reset", state(t, m).search.Value())
}
