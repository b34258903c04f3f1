package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/yanmxa/gauntlet/internal/component"
	"github.com/yanmxa/gauntlet/internal/tree"
)

func createMarkdownRenderer(width int) *glamour.TermRenderer {
	wrapWidth := max(width-4, minWrapWidth)

	var compactStyle ansi.StyleConfig
	if IsDarkTheme() {
		compactStyle = styles.DarkStyleConfig
	} else {
		compactStyle = styles.LightStyleConfig
	}

	uintPtr := func(u uint) *uint { return &u }
	compactStyle.Document.Margin = uintPtr(0)
	compactStyle.Paragraph.Margin = uintPtr(0)
	compactStyle.CodeBlock.Margin = uintPtr(0)

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithStyles(compactStyle),
		glamour.WithWordWrap(wrapWidth),
	)
	return renderer
}

// contentRenderer draws Content, Metadata and Detail widgets.
type contentRenderer struct {
	md *glamour.TermRenderer
}

// detail lays content out on the left and metadata on the right.
func (r contentRenderer) detail(n *tree.Node, width int) string {
	content := n.First("content")
	metadata := n.First("metadata")

	switch {
	case content != nil && metadata != nil:
		metaWidth := max(width/3, minWrapWidth)
		contentWidth := max(width-metaWidth-3, minWrapWidth)
		left := lipgloss.NewStyle().Width(contentWidth).Render(r.content(content, contentWidth))
		right := lipgloss.NewStyle().Width(metaWidth).Render(r.metadata(metadata, metaWidth))
		sep := detailSepStyle.Render(strings.TrimSuffix(strings.Repeat("│\n", max(lipgloss.Height(left), lipgloss.Height(right))), "\n"))
		return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", sep, " ", right)
	case content != nil:
		return r.content(content, width)
	case metadata != nil:
		return r.metadata(metadata, width)
	}
	return ""
}

// content renders the blocks of a Content widget separated by blank lines.
func (r contentRenderer) content(n *tree.Node, width int) string {
	var blocks []string
	for _, child := range n.Nodes {
		if b := r.block(child, width, tree.RenderContext{}); b != "" {
			blocks = append(blocks, b)
		}
	}
	return strings.Join(blocks, "\n\n")
}

func (r contentRenderer) block(n *tree.Node, width int, ctx tree.RenderContext) string {
	switch name := n.Component.InternalName; name {
	case "paragraph":
		return lipgloss.NewStyle().Width(width).Render(r.inline(n, ctx))
	case "link":
		return r.inline(n, ctx)
	case "image":
		return imageStyle.Render("[image]")
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := int(name[1] - '0')
		return lipgloss.NewStyle().Width(width).Render(r.inline(n, ctx.InHeading(level)))
	case "horizontal_break":
		return separatorStyle.Render(strings.Repeat("─", width))
	case "code_block":
		return r.code(n.PlainText())
	}
	return ""
}

// inline renders text parts and links of a paragraph or heading.
func (r contentRenderer) inline(n *tree.Node, ctx tree.RenderContext) string {
	style := textStyle
	if ctx.Heading > 0 {
		style = headingStyles[ctx.Heading-1]
	}

	var sb strings.Builder
	var walk func(*tree.Node)
	walk = func(n *tree.Node) {
		switch {
		case n.Component.Kind == component.KindTextPart:
			sb.WriteString(style.Render(n.Widget.Text))
		case n.Is("link"):
			sb.WriteString(linkStyle.Render(n.PlainText()))
		default:
			for _, c := range n.Nodes {
				walk(c)
			}
		}
	}
	walk(n)
	return sb.String()
}

func (r contentRenderer) code(src string) string {
	if r.md == nil {
		return textStyle.Render(src)
	}
	out, err := r.md.Render("```\n" + src + "\n```\n")
	if err != nil {
		return textStyle.Render(src)
	}
	return strings.Trim(out, "\n")
}

// metadata renders one labelled entry per line.
func (r contentRenderer) metadata(n *tree.Node, width int) string {
	var lines []string
	for _, child := range n.Nodes {
		label := metaLabelStyle.Render(child.Props.String("label"))
		switch child.Component.InternalName {
		case "metadata_value":
			lines = append(lines, label, textStyle.Render(child.PlainText()), "")
		case "metadata_link":
			lines = append(lines, label, linkStyle.Render(child.PlainText()), "")
		case "metadata_icon":
			lines = append(lines, label, textStyle.Render(child.Props.String("icon")), "")
		case "metadata_tag_list":
			var tags []string
			for _, tag := range child.All("metadata_tag_item") {
				tags = append(tags, tagStyle.Render(tag.PlainText()))
			}
			lines = append(lines, label, lipgloss.NewStyle().Width(width).Render(strings.Join(tags, " ")), "")
		case "metadata_separator":
			lines = append(lines, separatorStyle.Render(strings.Repeat("─", width)), "")
		}
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
