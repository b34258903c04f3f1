package ui

import (
	"encoding/json"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"

	"github.com/yanmxa/gauntlet/internal/actionpanel"
	"github.com/yanmxa/gauntlet/internal/focus"
	"github.com/yanmxa/gauntlet/internal/log"
	"github.com/yanmxa/gauntlet/internal/property"
	"github.com/yanmxa/gauntlet/internal/runtime"
	"github.com/yanmxa/gauntlet/internal/tree"
	"github.com/yanmxa/gauntlet/internal/widget"
)

// handleCommands applies a burst of plugin commands in arrival order,
// replies to each and renders once.
func (m *model) handleCommands(msg commandsMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	for _, req := range msg.requests {
		start := time.Now()
		err := runtime.Apply(m.tree, req.Command)
		log.LogCommand(req.Command.Method(), req.ID, time.Since(start), err)
		log.WriteDevCommand(req.ID, req.Command.Method(), json.RawMessage(req.Params), err)
		cmds = append(cmds, m.reply(req, err))
	}

	cmds = append(cmds, m.rebuild())

	if msg.closed {
		cmds = append(cmds, tea.Quit)
	} else {
		cmds = append(cmds, waitForCommands(m.rt.Commands()))
	}
	return m, tea.Batch(cmds...)
}

func (m *model) reply(req runtime.Request, err error) tea.Cmd {
	rt := m.rt
	return func() tea.Msg {
		if replyErr := rt.Reply(req, err); replyErr != nil {
			return runtimeErrMsg{err: replyErr}
		}
		return nil
	}
}

// rebuild takes a new snapshot of the committed view and reconciles local
// state with it.
func (m *model) rebuild() tea.Cmd {
	start := time.Now()

	root, _ := m.tree.View(m.location)
	prevKind := m.screen.kind()
	prevView := m.screen.view
	m.screen = newScreen(root, m.shortcuts)

	if m.screen.kind() != prevKind || (prevView != nil && m.screen.view != nil && prevView.ID != m.screen.view.ID) {
		m.listFocus.Unfocus()
		m.gridFocus.Unfocus()
		m.formFocus.Unfocus()
		m.viewport.GotoTop()
	}

	var cmds []tea.Cmd
	m.syncSearch()
	m.syncFields()
	cmds = append(cmds, m.syncFocus(), m.syncSpinner())

	if m.panelOpen && len(m.screen.panel.Actions()) == 0 {
		m.panelOpen = false
	}

	m.refresh()
	log.LogRender(m.location.String(), m.tree.Len(), time.Since(start))
	return tea.Batch(cmds...)
}

// syncSearch copies the search bar value into the input when the plugin
// changed it.
func (m *model) syncSearch() {
	if m.screen.search == nil {
		m.searchProp = property.Undefined()
		return
	}
	if ph, ok := m.screen.search.Props.OptString("placeholder"); ok {
		m.search.Placeholder = ph
	}
	v := m.screen.search.Props.Value("value")
	if v.Equal(m.searchProp) {
		return
	}
	m.searchProp = v
	m.logger.Debug("Search value set by plugin", log.ValueField("value", v))
	if s, ok := v.AsString(); ok && s != m.search.Value() {
		m.search.SetValue(s)
	}
}

func (m *model) syncFields() {
	seen := make(map[widget.ID]bool)
	for pair := m.screen.fields.Oldest(); pair != nil; pair = pair.Next() {
		n := pair.Value
		seen[n.ID] = true

		st, ok := m.fields[n.ID]
		if !ok {
			st = newFieldState(n)
			m.fields[n.ID] = st
		}
		v := n.Props.Value("value")
		if v.Equal(st.prop) {
			continue
		}
		st.prop = v
		switch n.Component.InternalName {
		case "checkbox":
			st.checked, _ = v.AsBool()
		case "select":
			st.selected, _ = v.AsString()
		default:
			s, _ := v.AsString()
			st.input.SetValue(s)
		}
	}
	for id := range m.fields {
		if !seen[id] {
			delete(m.fields, id)
		}
	}
}

func newFieldState(n *tree.Node) *fieldState {
	ti := textinput.New()
	ti.Prompt = ""
	ti.PlaceholderStyle = hintStyle
	switch n.Component.InternalName {
	case "password_field":
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	case "date_picker":
		ti.Placeholder = "YYYY-MM-DD"
		ti.CharLimit = 10
	}
	return &fieldState{input: ti, prop: property.Undefined()}
}

// syncFocus drops focus from items that went away and focuses the first
// item when nothing is focused.
func (m *model) syncFocus() tea.Cmd {
	var cmd tea.Cmd
	var changed bool
	switch m.screen.kind() {
	case "list":
		changed, cmd = keepFocus(m.listFocus, m.screen.listItems)
	case "grid":
		changed, cmd = keepFocus(m.gridFocus, m.screen.gridItems)
	case "form":
		_, cmd = keepFocus(m.formFocus, m.screen.fields)
		m.focusInputs()
	}
	if changed {
		return tea.Batch(cmd, m.notifyFocus())
	}
	return cmd
}

func keepFocus[K comparable, V any](h *focus.ScrollHandle[K, V], items *orderedmap.OrderedMap[K, V]) (bool, tea.Cmd) {
	if cur, ok := h.Current(); ok {
		if _, present := items.Get(cur); present {
			return false, nil
		}
		h.Unfocus()
	}
	first := items.Oldest()
	if first == nil {
		return false, nil
	}
	return true, h.FocusTarget(first.Key)
}

// focusChanged redraws the focus highlight and tells the plugin which item
// is selected.
func (m *model) focusChanged(scroll tea.Cmd) tea.Cmd {
	if scroll == nil {
		return nil
	}
	m.focusInputs()
	m.refresh()
	return tea.Batch(scroll, m.notifyFocus())
}

func (m *model) notifyFocus() tea.Cmd {
	if m.screen.view == nil {
		return nil
	}
	rt, viewID := m.rt, m.screen.view.ID

	var send func() error
	switch m.screen.kind() {
	case "list":
		k, ok := m.listFocus.Current()
		if !ok {
			return nil
		}
		send = func() error { return rt.FocusListItem(viewID, k) }
	case "grid":
		k, ok := m.gridFocus.Current()
		if !ok {
			return nil
		}
		send = func() error { return rt.FocusGridItem(viewID, k) }
	default:
		return nil
	}
	return func() tea.Msg {
		if err := send(); err != nil {
			return runtimeErrMsg{err: err}
		}
		return nil
	}
}

// focusInputs gives the cursor to the focused form field.
func (m *model) focusInputs() {
	cur, focused := m.formFocus.Current()
	for id, st := range m.fields {
		if focused && id == cur {
			st.input.Focus()
		} else {
			st.input.Blur()
		}
	}
}

func (m *model) focusedField() (*fieldState, bool) {
	if m.screen.kind() != "form" {
		return nil, false
	}
	cur, ok := m.formFocus.Current()
	if !ok {
		return nil, false
	}
	st, ok := m.fields[cur]
	return st, ok
}

func (m *model) focusedItem() *tree.Node {
	switch m.screen.kind() {
	case "list":
		n, _ := m.listFocus.Get(m.screen.listItems)
		return n
	case "grid":
		n, _ := m.gridFocus.Get(m.screen.gridItems)
		return n
	}
	return nil
}

func (m *model) syncSpinner() tea.Cmd {
	if m.screen.loading() && !m.spinning {
		m.spinning = true
		return m.spinner.Tick
	}
	return nil
}

func (m *model) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	if !m.screen.loading() {
		m.spinning = false
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// handleScrollRequest answers a focus move from the layout of the last
// render. Unknown geometry leaves the scroll position alone.
func (m *model) handleScrollRequest(msg focus.ScrollRequestMsg) (tea.Model, tea.Cmd) {
	if msg.Scrollable == scrollActions {
		if off, ok := m.layout.Resolve(msg, focus.Vector{Y: m.panelOffset}); ok {
			m.panelOffset = min(off, max(len(m.panelLines)-panelMaxVisible, 0))
		}
		return m, nil
	}
	if off, ok := m.layout.Resolve(msg, focus.Vector{Y: m.viewport.YOffset}); ok {
		m.viewport.SetYOffset(off)
	}
	return m, nil
}

func (m *model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	m.content.md = createMarkdownRenderer(msg.Width)
	m.viewport.Width = msg.Width
	m.viewport.Height = max(msg.Height-frameHeight, 1)
	m.search.Width = max(msg.Width-6, 1)
	for _, st := range m.fields {
		st.input.Width = max(msg.Width-4, 1)
	}

	m.refresh()
	return m, nil
}

// emit sends ev to the plugin runtime.
func (m *model) emit(ev widget.Event, err error) tea.Cmd {
	if err != nil {
		m.logger.Warn("Cannot build event", zap.Error(err))
		return nil
	}
	rt := m.rt
	return func() tea.Msg {
		if err := rt.SendEvent(ev); err != nil {
			return runtimeErrMsg{err: err}
		}
		return nil
	}
}

// runAction fires the onAction event of an action and closes the panel.
func (m *model) runAction(a actionpanel.Action) tea.Cmd {
	m.panelOpen = false
	n := m.screen.find(a.WidgetID)
	if n == nil {
		return nil
	}
	m.logger.Debug("Running action", zap.String("label", a.Label), zap.String("id", a.ID))
	return m.emit(widget.OnAction(&n.Widget))
}

// primary runs the first action, or clicks the focused item when the view
// has no actions.
func (m *model) primary() tea.Cmd {
	if actions := m.screen.panel.Actions(); len(actions) > 0 {
		return m.runAction(actions[0])
	}
	if n := m.focusedItem(); n != nil {
		return m.emit(widget.OnClick(&n.Widget))
	}
	return nil
}
