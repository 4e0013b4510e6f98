package core

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// KeyCode represents non-character keys
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEscape

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	KeyDelete
)

// KeyModifiers represents modifier keys held during a keystroke
type KeyModifiers uint8

const (
	ModNone KeyModifiers = 0
	ModCtrl KeyModifiers = 1 << iota
	ModAlt
	ModShift
)

// KeyEvent represents a keyboard input event. Printable keys carry a Rune,
// special keys carry a Key code and a zero Rune.
type KeyEvent struct {
	Rune      rune
	Key       KeyCode
	Modifiers KeyModifiers
}

var keyNames = map[string]KeyCode{
	"Enter":      KeyEnter,
	"Tab":        KeyTab,
	"Backspace":  KeyBackspace,
	"Escape":     KeyEscape,
	"Esc":        KeyEscape,
	"ArrowUp":    KeyUp,
	"ArrowDown":  KeyDown,
	"ArrowLeft":  KeyLeft,
	"ArrowRight": KeyRight,
	"Delete":     KeyDelete,
}

// RuneKey builds the event for a single printable character.
func RuneKey(r rune) KeyEvent {
	return KeyEvent{Rune: r}
}

// SpecialKey builds the event for a non-character key.
func SpecialKey(code KeyCode) KeyEvent {
	return KeyEvent{Key: code}
}

// ParseKey converts a key name as produced by browser-style input layers
// ("Escape", "Enter", "a", "(") into a KeyEvent. Unknown multi-character
// names map to KeyUnknown, which every mode rejects.
func ParseKey(name string) KeyEvent {
	if code, ok := keyNames[name]; ok {
		return SpecialKey(code)
	}

	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return RuneKey(r)
	}

	return SpecialKey(KeyUnknown)
}

// ParseKeys splits a sequence of space separated key names.
func ParseKeys(seq string) []KeyEvent {
	fields := strings.Fields(seq)
	keys := make([]KeyEvent, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, ParseKey(f))
	}
	return keys
}

// IsPrintable reports whether the event is a plain character with no
// Ctrl/Alt modifier.
func (k KeyEvent) IsPrintable() bool {
	return k.Rune != 0 && k.Modifiers&(ModCtrl|ModAlt) == 0
}

// String returns a string representation of a Key
func (k KeyEvent) String() string {
	var parts []string

	if k.Modifiers&ModCtrl != 0 {
		parts = append(parts, "Ctrl")
	}
	if k.Modifiers&ModAlt != 0 {
		parts = append(parts, "Alt")
	}
	if k.Modifiers&ModShift != 0 {
		parts = append(parts, "Shift")
	}

	if k.Rune != 0 {
		parts = append(parts, string(k.Rune))
	} else {
		switch k.Key {
		case KeyEnter:
			parts = append(parts, "Enter")
		case KeyTab:
			parts = append(parts, "Tab")
		case KeyBackspace:
			parts = append(parts, "Backspace")
		case KeyEscape:
			parts = append(parts, "Escape")
		case KeyUp:
			parts = append(parts, "Up")
		case KeyDown:
			parts = append(parts, "Down")
		case KeyLeft:
			parts = append(parts, "Left")
		case KeyRight:
			parts = append(parts, "Right")
		case KeyDelete:
			parts = append(parts, "Delete")
		case KeyUnknown:
			parts = append(parts, "Unknown")
		default:
			parts = append(parts, fmt.Sprintf("SpecialKey(%d)", k.Key))
		}
	}

	return strings.Join(parts, "+")
}
