package ui

const (
	defaultWidth       = 80
	defaultHeight      = 24
	minWrapWidth       = 20
	defaultGridColumns = 5
	panelMaxVisible    = 10
	panelWidth         = 44
	frameHeight        = 4 // top bar, bottom bar and two separators
)

// Scrollable names used as focus.Layout keys.
const (
	scrollList    = "list"
	scrollGrid    = "grid"
	scrollForm    = "form"
	scrollActions = "actions"
)
