package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yanmxa/gauntlet/internal/actionpanel"
	"github.com/yanmxa/gauntlet/internal/tree"
	"github.com/yanmxa/gauntlet/internal/widget"
)

func (m *model) handleKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		return m, tea.Quit
	}

	if m.panelOpen {
		return m, m.handlePanelKey(msg)
	}

	switch {
	case key.Matches(msg, keys.ToggleActions):
		return m, m.openPanel()
	case key.Matches(msg, keys.Back):
		return m, tea.Quit
	}

	if m.screen.kind() == "form" {
		if cmd, ok := m.handleFormKey(msg); ok {
			return m, cmd
		}
	}

	if msg.String() == actionpanel.PrimaryKey {
		return m, m.primary()
	}
	if a, ok := m.screen.panel.Match(msg); ok {
		return m, m.runAction(a)
	}

	switch m.screen.kind() {
	case "list":
		switch {
		case key.Matches(msg, keys.Up):
			return m, m.focusChanged(m.listFocus.ListFocusUp(m.screen.listItems))
		case key.Matches(msg, keys.Down):
			return m, m.focusChanged(m.listFocus.ListFocusDown(m.screen.listItems))
		}
	case "grid":
		rows := m.screen.gridRows()
		switch {
		case key.Matches(msg, keys.Up):
			return m, m.focusChanged(m.gridFocus.GridFocusUp(rows))
		case key.Matches(msg, keys.Down):
			return m, m.focusChanged(m.gridFocus.GridFocusDown(rows))
		case key.Matches(msg, keys.Left):
			return m, m.focusChanged(m.gridFocus.GridFocusLeft(rows))
		case key.Matches(msg, keys.Right):
			return m, m.focusChanged(m.gridFocus.GridFocusRight(rows))
		}
	case "detail", "inline":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, m.updateSearch(msg)
}

// updateSearch feeds a key to the search bar and reports edits.
func (m *model) updateSearch(msg tea.KeyMsg) tea.Cmd {
	bar := m.screen.search
	if bar == nil {
		return nil
	}
	prev := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	value := m.search.Value()
	if value == prev {
		return cmd
	}
	return tea.Batch(cmd, m.emit(widget.OnChange(&bar.Widget, &value)))
}

func (m *model) openPanel() tea.Cmd {
	actions := m.screen.panel.Actions()
	if len(actions) == 0 {
		return nil
	}
	m.panelOpen = true
	m.panelOffset = 0
	m.panelFocus.Unfocus()
	scroll := m.panelFocus.FocusTarget(actions[0].ContainerID)
	m.refresh()
	return scroll
}

func (m *model) handlePanelKey(msg tea.KeyMsg) tea.Cmd {
	ordered := m.screen.panel.Ordered()

	var scroll tea.Cmd
	switch {
	case key.Matches(msg, keys.Back, keys.ToggleActions):
		m.panelOpen = false
		m.refresh()
		return nil
	case key.Matches(msg, keys.Up):
		scroll = m.panelFocus.ListFocusUp(ordered)
	case key.Matches(msg, keys.Down):
		scroll = m.panelFocus.ListFocusDown(ordered)
	case msg.String() == actionpanel.PrimaryKey:
		if a, ok := m.panelFocus.Get(ordered); ok {
			return m.runAction(a)
		}
		return nil
	default:
		if a, ok := m.screen.panel.Match(msg); ok {
			return m.runAction(a)
		}
		return nil
	}

	if scroll != nil {
		m.refresh()
	}
	return scroll
}

// handleFormKey moves between fields and edits the focused one. It reports
// false for keys the form leaves to the action bindings.
func (m *model) handleFormKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	fields := m.screen.fields
	switch {
	case key.Matches(msg, keys.NextField, keys.Down):
		return m.focusChanged(m.formFocus.ListFocusDown(fields)), true
	case key.Matches(msg, keys.PrevField, keys.Up):
		return m.focusChanged(m.formFocus.ListFocusUp(fields)), true
	}

	n, ok := m.formFocus.Get(fields)
	if !ok {
		return nil, false
	}
	st := m.fields[n.ID]
	if st == nil {
		return nil, false
	}

	switch n.Component.InternalName {
	case "checkbox":
		if key.Matches(msg, keys.Toggle) {
			st.checked = !st.checked
			m.refresh()
			return m.emit(widget.OnToggle(&n.Widget, st.checked)), true
		}
	case "select":
		switch {
		case key.Matches(msg, keys.Left):
			return m.cycleSelect(n, st, -1), true
		case key.Matches(msg, keys.Right):
			return m.cycleSelect(n, st, 1), true
		}
	default:
		if msg.String() == actionpanel.PrimaryKey || msg.String() == actionpanel.SecondaryKey {
			return nil, false
		}
		prev := st.input.Value()
		var cmd tea.Cmd
		st.input, cmd = st.input.Update(msg)
		value := st.input.Value()
		if value == prev {
			return cmd, true
		}
		m.refresh()
		return tea.Batch(cmd, m.emit(widget.OnChange(&n.Widget, &value))), true
	}
	return nil, false
}

// cycleSelect moves the selection of a Select by dir, wrapping around.
func (m *model) cycleSelect(n *tree.Node, st *fieldState, dir int) tea.Cmd {
	options := n.All("select_item")
	if len(options) == 0 {
		return nil
	}
	idx := -1
	for i, o := range options {
		if o.Props.String("value") == st.selected {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && dir > 0:
		idx = 0
	case idx < 0:
		idx = len(options) - 1
	default:
		idx = (idx + dir + len(options)) % len(options)
	}
	value := options[idx].Props.String("value")
	st.selected = value
	m.refresh()
	return m.emit(widget.OnChange(&n.Widget, &value))
}
