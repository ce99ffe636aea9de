package plugin

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lingmo/lingmoui/internal/input/key"
)

// KeySequence is a single shortcut: modifiers plus one key name.
type KeySequence struct {
	Modifiers key.Modifier
	Key       string
}

// ParseKeySequence parses shortcuts such as "Ctrl+Shift+P" or "Home".
func ParseKeySequence(s string) (KeySequence, error) {
	parts := strings.Split(strings.TrimSpace(s), "+")
	name := strings.TrimSpace(parts[len(parts)-1])
	if name == "" {
		return KeySequence{}, fmt.Errorf("plugin: empty key in shortcut %q", s)
	}

	var mods key.Modifier
	for _, p := range parts[:len(parts)-1] {
		m := key.ModifierFromName(p)
		if m == key.ModNone {
			return KeySequence{}, fmt.Errorf("plugin: unknown modifier %q in shortcut %q", p, s)
		}
		mods |= m
	}
	return KeySequence{Modifiers: mods, Key: name}, nil
}

func (k KeySequence) String() string {
	if k.Modifiers.IsEmpty() {
		return k.Key
	}
	return k.Modifiers.String() + "+" + k.Key
}

// Icon names a themed icon, or points at an image source.
type Icon struct {
	Name   string
	Source string
}

// Action is a user-triggerable command with its shortcuts, the primary one
// first.
type Action struct {
	Text      string
	Icon      Icon
	Shortcuts []KeySequence
}

// ActionHelper answers questions views ask about actions.
type ActionHelper struct{}

// AlternateShortcuts returns every shortcut of a except the primary one.
func (ActionHelper) AlternateShortcuts(a *Action) []KeySequence {
	if a == nil || len(a.Shortcuts) <= 1 {
		return nil
	}
	return slices.Clone(a.Shortcuts[1:])
}

// IconName returns the themed icon name of icon, empty for image sources.
func (ActionHelper) IconName(icon Icon) string {
	return icon.Name
}
