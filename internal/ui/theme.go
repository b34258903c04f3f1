package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme holds all color definitions for the UI
type Theme struct {
	// Base colors
	Muted     lipgloss.Color // muted text, placeholders
	Accent    lipgloss.Color // spinner, focused grid cells
	Primary   lipgloss.Color // links, section titles
	Separator lipgloss.Color // separator lines

	// Text colors
	Text       lipgloss.Color // normal text
	TextDim    lipgloss.Color // subtitles, metadata labels
	TextBright lipgloss.Color // focused text

	// Semantic colors
	Success lipgloss.Color // checked boxes
	Error   lipgloss.Color // runtime errors
	Warning lipgloss.Color // loading

	// UI element colors
	Border     lipgloss.Color // borders
	Background lipgloss.Color // tags, key hints
	Selection  lipgloss.Color // focused row background
}

// DarkTheme is the color palette for dark terminals
var DarkTheme = Theme{
	Muted:     lipgloss.Color("#6B7280"),
	Accent:    lipgloss.Color("#F59E0B"),
	Primary:   lipgloss.Color("#60A5FA"),
	Separator: lipgloss.Color("#4B5563"),

	Text:       lipgloss.Color("#D1D5DB"),
	TextDim:    lipgloss.Color("#9CA3AF"),
	TextBright: lipgloss.Color("#FFFFFF"),

	Success: lipgloss.Color("#10B981"),
	Error:   lipgloss.Color("#EF4444"),
	Warning: lipgloss.Color("#FBBF24"),

	Border:     lipgloss.Color("#374151"),
	Background: lipgloss.Color("#1F2937"),
	Selection:  lipgloss.Color("#374151"),
}

// LightTheme is the color palette for light terminals
var LightTheme = Theme{
	Muted:     lipgloss.Color("#6B7280"),
	Accent:    lipgloss.Color("#D97706"),
	Primary:   lipgloss.Color("#2563EB"),
	Separator: lipgloss.Color("#D1D5DB"),

	Text:       lipgloss.Color("#1F2937"),
	TextDim:    lipgloss.Color("#4B5563"),
	TextBright: lipgloss.Color("#111827"),

	Success: lipgloss.Color("#059669"),
	Error:   lipgloss.Color("#DC2626"),
	Warning: lipgloss.Color("#B45309"),

	Border:     lipgloss.Color("#E5E7EB"),
	Background: lipgloss.Color("#F3F4F6"),
	Selection:  lipgloss.Color("#E5E7EB"),
}

// CurrentTheme holds the active theme
var CurrentTheme Theme

// isDarkBackground caches the result of background detection
var isDarkBackground bool

func init() {
	isDarkBackground = lipgloss.HasDarkBackground()
	SetTheme("auto")
}

// SetTheme selects "dark", "light" or "auto" (terminal background) and
// rebuilds the styles.
func SetTheme(name string) {
	switch name {
	case "dark":
		CurrentTheme = DarkTheme
	case "light":
		CurrentTheme = LightTheme
	default:
		if isDarkBackground {
			CurrentTheme = DarkTheme
		} else {
			CurrentTheme = LightTheme
		}
	}
	initStyles()
}

// IsDarkTheme reports whether the active theme is the dark one.
func IsDarkTheme() bool {
	return CurrentTheme == DarkTheme
}
