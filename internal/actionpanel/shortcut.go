package actionpanel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// ShortcutKind selects the modifier of a shortcut.
type ShortcutKind string

const (
	// KindMain uses ctrl.
	KindMain ShortcutKind = "main"
	// KindAlternative uses alt.
	KindAlternative ShortcutKind = "alternative"
)

func (k ShortcutKind) modifier() string {
	if k == KindAlternative {
		return "alt"
	}
	return "ctrl"
}

// Shortcut is a keyboard shortcut assigned to an action.
type Shortcut struct {
	Key  string       `json:"key" toml:"key"`
	Kind ShortcutKind `json:"kind" toml:"kind"`
}

// ParseShortcut parses "ctrl+k" or "alt+k".
func ParseShortcut(s string) (Shortcut, error) {
	mod, k, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "+")
	if !ok || k == "" {
		return Shortcut{}, fmt.Errorf("invalid shortcut %q: want ctrl+<key> or alt+<key>", s)
	}
	switch mod {
	case "ctrl":
		return Shortcut{Key: k, Kind: KindMain}, nil
	case "alt":
		return Shortcut{Key: k, Kind: KindAlternative}, nil
	default:
		return Shortcut{}, fmt.Errorf("invalid shortcut %q: unknown modifier %q", s, mod)
	}
}

// Validate checks the kind and key.
func (s Shortcut) Validate() error {
	if s.Key == "" {
		return fmt.Errorf("shortcut key is empty")
	}
	switch s.Kind {
	case KindMain, KindAlternative:
		return nil
	default:
		return fmt.Errorf("unknown shortcut kind %q", s.Kind)
	}
}

// String returns the key name as bubbletea reports it.
func (s Shortcut) String() string {
	return s.Kind.modifier() + "+" + strings.ToLower(s.Key)
}

// Binding returns a key binding labelled with help.
func (s Shortcut) Binding(help string) key.Binding {
	return key.NewBinding(key.WithKeys(s.String()), key.WithHelp(s.String(), help))
}

// Fixed keys of the first two actions.
const (
	PrimaryKey   = "enter"
	SecondaryKey = "alt+enter"
)

// PrimaryBinding returns the binding of the first action.
func PrimaryBinding(help string) key.Binding {
	return key.NewBinding(key.WithKeys(PrimaryKey), key.WithHelp("enter", help))
}

// SecondaryBinding returns the binding of the second action.
func SecondaryBinding(help string) key.Binding {
	return key.NewBinding(key.WithKeys(SecondaryKey), key.WithHelp("alt+enter", help))
}
