package key

import (
	"fmt"
	"strings"
)

// Key identifies a logical keyboard key.
type Key uint8

const (
	// KeyUnknown is the translation of any device code without a mapping.
	KeyUnknown Key = iota

	// Letters
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	// Digits (top row)
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Control keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeySpace

	// Modifiers
	KeyShift
	KeyCtrl
	KeyAlt
	KeyCapsLock

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Punctuation
	KeyMinus
	KeyEquals
	KeyLeftBracket
	KeyRightBracket
	KeyBackslash
	KeySemicolon
	KeyApostrophe
	KeyGrave
	KeyComma
	KeyPeriod
	KeySlash

	keyCount
)

// Count is the number of distinct keys, KeyUnknown included.
const Count = int(keyCount)

var names = [keyCount]string{
	KeyUnknown:      "Unknown",
	KeyF1:           "F1",
	KeyF2:           "F2",
	KeyF3:           "F3",
	KeyF4:           "F4",
	KeyF5:           "F5",
	KeyF6:           "F6",
	KeyF7:           "F7",
	KeyF8:           "F8",
	KeyF9:           "F9",
	KeyF10:          "F10",
	KeyF11:          "F11",
	KeyF12:          "F12",
	KeyEscape:       "Escape",
	KeyEnter:        "Enter",
	KeyTab:          "Tab",
	KeyBackspace:    "Backspace",
	KeySpace:        "Space",
	KeyShift:        "Shift",
	KeyCtrl:         "Ctrl",
	KeyAlt:          "Alt",
	KeyCapsLock:     "CapsLock",
	KeyUp:           "Up",
	KeyDown:         "Down",
	KeyLeft:         "Left",
	KeyRight:        "Right",
	KeyMinus:        "Minus",
	KeyEquals:       "Equals",
	KeyLeftBracket:  "LeftBracket",
	KeyRightBracket: "RightBracket",
	KeyBackslash:    "Backslash",
	KeySemicolon:    "Semicolon",
	KeyApostrophe:   "Apostrophe",
	KeyGrave:        "Grave",
	KeyComma:        "Comma",
	KeyPeriod:       "Period",
	KeySlash:        "Slash",
}

var byName map[string]Key

func init() {
	for k := KeyA; k <= KeyZ; k++ {
		names[k] = string(rune('A' + int(k-KeyA)))
	}
	for k := Key0; k <= Key9; k++ {
		names[k] = string(rune('0' + int(k-Key0)))
	}

	byName = make(map[string]Key, len(names))
	for k, n := range names {
		byName[strings.ToLower(n)] = Key(k)
	}
}

// String returns a human-readable name for the key.
func (k Key) String() string {
	if k >= keyCount {
		return fmt.Sprintf("Key(%d)", k)
	}
	return names[k]
}

// Valid reports whether k is a queryable key (not KeyUnknown, in range).
func (k Key) Valid() bool {
	return k > KeyUnknown && k < keyCount
}

// IsLetter returns true for KeyA through KeyZ.
func (k Key) IsLetter() bool {
	return k >= KeyA && k <= KeyZ
}

// IsDigit returns true for Key0 through Key9.
func (k Key) IsDigit() bool {
	return k >= Key0 && k <= Key9
}

// IsFunctionKey returns true if this is a function key (F1-F12).
func (k Key) IsFunctionKey() bool {
	return k >= KeyF1 && k <= KeyF12
}

// IsArrowKey returns true if this is an arrow key.
func (k Key) IsArrowKey() bool {
	return k >= KeyUp && k <= KeyRight
}

// IsModifier returns true for Shift, Ctrl, Alt and CapsLock.
func (k Key) IsModifier() bool {
	return k >= KeyShift && k <= KeyCapsLock
}

// Parse looks a key up by name, case-insensitively. Single characters
// ("a", "7", "/") resolve through FromRune.
func Parse(name string) (Key, bool) {
	if k, ok := byName[strings.ToLower(strings.TrimSpace(name))]; ok && k.Valid() {
		return k, true
	}
	if r := []rune(name); len(r) == 1 {
		if k := FromRune(r[0]); k.Valid() {
			return k, true
		}
	}
	return KeyUnknown, false
}

// FromRune maps a printable character to the key that produces it on a US
// layout. Upper and lower case letters map to the same key.
func FromRune(r rune) Key {
	switch {
	case r >= 'a' && r <= 'z':
		return KeyA + Key(r-'a')
	case r >= 'A' && r <= 'Z':
		return KeyA + Key(r-'A')
	case r >= '0' && r <= '9':
		return Key0 + Key(r-'0')
	}

	switch r {
	case ' ':
		return KeySpace
	case '-':
		return KeyMinus
	case '=':
		return KeyEquals
	case '[':
		return KeyLeftBracket
	case ']':
		return KeyRightBracket
	case '\\':
		return KeyBackslash
	case ';':
		return KeySemicolon
	case '\'':
		return KeyApostrophe
	case '`':
		return KeyGrave
	case ',':
		return KeyComma
	case '.':
		return KeyPeriod
	case '/':
		return KeySlash
	case '\t':
		return KeyTab
	case '\r', '\n':
		return KeyEnter
	default:
		return KeyUnknown
	}
}
