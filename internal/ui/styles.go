package ui

import "github.com/charmbracelet/lipgloss"

// Frame styles
var (
	separatorStyle lipgloss.Style
	titleStyle     lipgloss.Style
	hintStyle      lipgloss.Style
	keyHintStyle   lipgloss.Style
	spinnerStyle   lipgloss.Style
	errorStyle     lipgloss.Style
	promptStyle    lipgloss.Style
)

// List and grid styles
var (
	itemStyle            lipgloss.Style
	focusedItemStyle     lipgloss.Style
	subtitleStyle        lipgloss.Style
	sectionTitleStyle    lipgloss.Style
	gridCellStyle        lipgloss.Style
	gridFocusedCellStyle lipgloss.Style
	emptyTitleStyle      lipgloss.Style
)

// Content styles
var (
	textStyle      lipgloss.Style
	linkStyle      lipgloss.Style
	imageStyle     lipgloss.Style
	headingStyles  [6]lipgloss.Style
	metaLabelStyle lipgloss.Style
	tagStyle       lipgloss.Style
	detailSepStyle lipgloss.Style
)

// Form and action panel styles
var (
	fieldLabelStyle        lipgloss.Style
	focusedFieldLabelStyle lipgloss.Style
	checkedStyle           lipgloss.Style
	panelBorderStyle       lipgloss.Style
	panelTitleStyle        lipgloss.Style
	panelSectionStyle      lipgloss.Style
)

func initStyles() {
	t := CurrentTheme

	separatorStyle = lipgloss.NewStyle().
		Faint(true).
		Foreground(t.Separator)

	titleStyle = lipgloss.NewStyle().
		Foreground(t.TextBright).
		Bold(true)

	hintStyle = lipgloss.NewStyle().
		Foreground(t.Muted)

	keyHintStyle = lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Background).
		Padding(0, 1)

	spinnerStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	errorStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	promptStyle = lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	itemStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		PaddingLeft(1)

	focusedItemStyle = lipgloss.NewStyle().
		Foreground(t.TextBright).
		Background(t.Selection).
		Bold(true).
		PaddingLeft(1)

	subtitleStyle = lipgloss.NewStyle().
		Foreground(t.TextDim)

	sectionTitleStyle = lipgloss.NewStyle().
		Foreground(t.Muted).
		Bold(true).
		PaddingLeft(1)

	gridCellStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	gridFocusedCellStyle = gridCellStyle.
		BorderForeground(t.Accent)

	emptyTitleStyle = lipgloss.NewStyle().
		Foreground(t.TextBright).
		Bold(true)

	textStyle = lipgloss.NewStyle().
		Foreground(t.Text)

	linkStyle = lipgloss.NewStyle().
		Foreground(t.Primary).
		Underline(true)

	imageStyle = lipgloss.NewStyle().
		Foreground(t.Muted).
		Italic(true)

	for i := range headingStyles {
		headingStyles[i] = lipgloss.NewStyle().
			Foreground(t.TextBright).
			Bold(true)
	}
	headingStyles[0] = headingStyles[0].Underline(true)
	headingStyles[4] = headingStyles[4].Foreground(t.TextDim)
	headingStyles[5] = headingStyles[5].Foreground(t.TextDim).Bold(false)

	metaLabelStyle = lipgloss.NewStyle().
		Foreground(t.TextDim)

	tagStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Background).
		Padding(0, 1)

	detailSepStyle = lipgloss.NewStyle().
		Foreground(t.Separator)

	fieldLabelStyle = lipgloss.NewStyle().
		Foreground(t.TextDim)

	focusedFieldLabelStyle = lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	checkedStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	panelBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().
		Foreground(t.TextBright).
		Bold(true)

	panelSectionStyle = lipgloss.NewStyle().
		Foreground(t.Muted)
}
