package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yanmxa/gauntlet/internal/actionpanel"
	"github.com/yanmxa/gauntlet/internal/focus"
	"github.com/yanmxa/gauntlet/internal/tree"
)

// renderBody draws the view for the viewport and records item rects.
func (m *model) renderBody(width int) string {
	switch m.screen.kind() {
	case "detail":
		return m.content.detail(m.screen.view, width)
	case "list":
		return m.renderList(width)
	case "grid":
		return m.renderGrid(width)
	case "form":
		return m.renderForm(width)
	case "inline":
		return m.renderInline(width)
	case "":
		return hintStyle.Render("  Waiting for the plugin to render...")
	}
	return ""
}

func (m *model) renderList(width int) string {
	if m.screen.listItems.Len() == 0 {
		return m.renderEmpty(width)
	}

	listWidth := width
	if m.screen.detail != nil {
		listWidth = max(width/3, minWrapWidth)
	}

	c := newCanvas(m.layout)
	focused, _ := m.listFocus.Current()
	for _, child := range m.screen.view.Nodes {
		switch {
		case child.Is("list_item"):
			m.listItem(c, child, focused, listWidth)
		case child.Is("list_section"):
			items := child.All("list_item")
			if len(items) == 0 {
				continue
			}
			if len(c.lines) > 0 {
				c.blank()
			}
			c.add(sectionHeader(child, listWidth))
			for _, item := range items {
				m.listItem(c, item, focused, listWidth)
			}
		}
	}

	if m.screen.detail == nil {
		return c.String()
	}
	list := lipgloss.NewStyle().Width(listWidth).Render(c.String())
	detailWidth := max(width-listWidth-3, minWrapWidth)
	detail := m.content.detail(m.screen.detail, detailWidth)
	sep := detailSepStyle.Render(strings.TrimSuffix(strings.Repeat("│\n", max(lipgloss.Height(list), lipgloss.Height(detail))), "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, list, " ", sep, " ", detail)
}

func (m *model) listItem(c *canvas, n *tree.Node, focused string, width int) {
	k := itemKey(n)
	if owner, _ := m.screen.listItems.Get(k); owner != n {
		return
	}
	title := n.Props.String("title")
	line := truncate(title, width-2)
	if sub, ok := n.Props.OptString("subtitle"); ok && sub != "" {
		if rest := width - 4 - lipgloss.Width(line); rest > 0 {
			line += "  " + subtitleStyle.Render(truncate(sub, rest))
		}
	}

	style := itemStyle
	if k == focused {
		style = focusedItemStyle
	}
	c.item(focus.TargetID(scrollList, k), style.Width(width).Render(line))
}

func sectionHeader(n *tree.Node, width int) string {
	header := n.Props.String("title")
	if sub, ok := n.Props.OptString("subtitle"); ok && sub != "" {
		header += "  " + sub
	}
	return sectionTitleStyle.Render(truncate(header, width-1))
}

func (m *model) renderGrid(width int) string {
	if m.screen.gridItems.Len() == 0 {
		return m.renderEmpty(width)
	}

	c := newCanvas(m.layout)
	focused, _ := m.gridFocus.Current()
	for _, sec := range m.screen.gridSections {
		if len(sec.keys) == 0 {
			continue
		}
		if sec.node != nil {
			if len(c.lines) > 0 {
				c.blank()
			}
			c.add(sectionHeader(sec.node, width))
		}

		cellWidth := max(width/sec.columns, 6)
		inner := cellWidth - 2
		for start := 0; start < len(sec.keys); start += sec.columns {
			row := sec.keys[start:min(start+sec.columns, len(sec.keys))]
			cells := make([]string, 0, len(row))
			for _, k := range row {
				n, _ := m.screen.gridItems.Get(k)
				cells = append(cells, gridCell(n, inner, k == focused))
			}
			r := c.add(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
			for i, k := range row {
				m.layout.Record(focus.TargetID(scrollGrid, k), focus.Rect{
					X: i * cellWidth, Y: r.Y, Width: cellWidth, Height: r.Height,
				})
			}
		}
	}
	return c.String()
}

// gridCell draws a bordered cell of three lines: content preview, title
// and subtitle.
func gridCell(n *tree.Node, inner int, focused bool) string {
	textWidth := max(inner-2, 1)

	preview := ""
	if content := n.First("content"); content != nil {
		preview, _, _ = strings.Cut(strings.TrimSpace(content.PlainText()), "\n")
	}
	title, _ := n.Props.OptString("title")
	sub, _ := n.Props.OptString("subtitle")

	body := strings.Join([]string{
		textStyle.Render(truncate(preview, textWidth)),
		titleStyle.Render(truncate(title, textWidth)),
		subtitleStyle.Render(truncate(sub, textWidth)),
	}, "\n")

	style := gridCellStyle
	if focused {
		style = gridFocusedCellStyle
	}
	return style.Width(inner).Render(body)
}

func (m *model) renderEmpty(width int) string {
	n := m.screen.empty
	if n == nil {
		return hintStyle.Render("  No results")
	}
	lines := []string{emptyTitleStyle.Render(n.Props.String("title"))}
	if desc, ok := n.Props.OptString("description"); ok && desc != "" {
		lines = append(lines, hintStyle.Render(desc))
	}
	block := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.Place(width, max(m.viewport.Height, lipgloss.Height(block)), lipgloss.Center, lipgloss.Center, block)
}

func (m *model) renderForm(width int) string {
	c := newCanvas(m.layout)
	focused, _ := m.formFocus.Current()
	for _, child := range m.screen.view.Nodes {
		if child.Is("separator") {
			c.add(separatorStyle.Render(strings.Repeat("─", width)))
			continue
		}
		st, ok := m.fields[child.ID]
		if !ok {
			continue
		}

		labelStyle := fieldLabelStyle
		if child.ID == focused {
			labelStyle = focusedFieldLabelStyle
		}
		label, _ := child.Props.OptString("label")

		var value string
		switch child.Component.InternalName {
		case "checkbox":
			box := "[ ]"
			if st.checked {
				box = checkedStyle.Render("[x]")
			}
			title, _ := child.Props.OptString("title")
			value = box + " " + textStyle.Render(title)
		case "select":
			value = "‹ " + textStyle.Render(selectLabel(child, st.selected)) + " ›"
		default:
			value = st.input.View()
		}

		c.item(focus.TargetID(scrollForm, child.ID), labelStyle.Render(label)+"\n"+value)
		c.blank()
	}
	return c.String()
}

func selectLabel(n *tree.Node, selected string) string {
	for _, o := range n.All("select_item") {
		if o.Props.String("value") == selected {
			return o.PlainText()
		}
	}
	return "Select..."
}

// renderInline draws the Content children side by side, split by the
// inline separators.
func (m *model) renderInline(width int) string {
	var contents int
	for _, child := range m.screen.view.Nodes {
		if child.Is("content") {
			contents++
		}
	}
	if contents == 0 {
		return ""
	}
	colWidth := max((width-3*(contents-1))/contents, minWrapWidth)

	var parts []string
	for _, child := range m.screen.view.Nodes {
		switch {
		case child.Is("content"):
			parts = append(parts, lipgloss.NewStyle().Width(colWidth).Render(m.content.content(child, colWidth)))
		case child.Is("inline_separator"):
			icon, ok := child.Props.OptString("icon")
			if !ok || icon == "" {
				icon = "│"
			}
			parts = append(parts, " "+detailSepStyle.Render(icon)+" ")
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (m *model) renderTopBar() string {
	var left string
	if m.screen.search != nil {
		left = promptStyle.Render("❯ ") + m.search.View()
	} else {
		left = titleStyle.Render(m.title)
	}

	right := ""
	if m.screen.loading() {
		right = m.spinner.View()
	}
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func (m *model) renderBottomBar() string {
	left := hintStyle.Render(m.title)
	if m.err != nil {
		left = errorStyle.Render(m.err.Error())
	}

	var hints []string
	actions := m.screen.panel.Actions()
	if len(actions) > 0 {
		hints = append(hints, textStyle.Render(actions[0].Label)+" "+keyHintStyle.Render("↵"))
	}
	if len(actions) > 1 {
		hints = append(hints, hintStyle.Render("Actions")+" "+keyHintStyle.Render(keys.ToggleActions.Help().Key))
	}
	right := strings.Join(hints, "  ")

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// renderPanelLines draws every action of the panel; the visible window is
// chosen by panelOffset.
func (m *model) renderPanelLines(width int) []string {
	c := newCanvas(m.layout)
	focused, _ := m.panelFocus.Current()

	keyOf := make(map[int]string)
	for _, b := range m.screen.panel.Bindings() {
		keyOf[b.Action.ContainerID] = b.Key.Help().Key
	}

	var walk func(items []actionpanel.Item)
	walk = func(items []actionpanel.Item) {
		for _, item := range items {
			switch it := item.(type) {
			case actionpanel.Action:
				hint := keyOf[it.ContainerID]
				label := truncate(it.Label, width-lipgloss.Width(hint)-3)
				gap := max(width-lipgloss.Width(label)-lipgloss.Width(hint)-1, 1)
				line := label + strings.Repeat(" ", gap) + hint
				style := itemStyle
				if it.ContainerID == focused {
					style = focusedItemStyle
				}
				c.item(focus.TargetID(scrollActions, it.ContainerID), style.Width(width).Render(line))
			case actionpanel.Section:
				if it.Title != "" {
					c.add(panelSectionStyle.Render(truncate(it.Title, width)))
				}
				walk(it.Items)
			}
		}
	}
	if m.screen.panel != nil {
		walk(m.screen.panel.Items)
	}
	return c.lines
}

// renderPanel overlays the action panel on the bottom right of the body.
func (m *model) renderPanel() string {
	end := min(m.panelOffset+panelMaxVisible, len(m.panelLines))
	visible := m.panelLines[min(m.panelOffset, end):end]

	title := "Actions"
	if m.screen.panel != nil && m.screen.panel.Title != "" {
		title = m.screen.panel.Title
	}
	content := panelTitleStyle.Render(title) + "\n" + strings.Join(visible, "\n")
	if len(m.panelLines) > panelMaxVisible {
		content += "\n" + hintStyle.Render(fmt.Sprintf("%d/%d", end, len(m.panelLines)))
	}

	box := panelBorderStyle.Width(panelWidth - 2).Render(content)
	return lipgloss.Place(m.width, m.viewport.Height, lipgloss.Right, lipgloss.Bottom, box)
}
