package key

import (
	"testing"
)

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyUnknown, "Unknown"},
		{KeyA, "A"},
		{KeyZ, "Z"},
		{Key0, "0"},
		{Key9, "9"},
		{KeyEscape, "Escape"},
		{KeyEnter, "Enter"},
		{KeyF1, "F1"},
		{KeyF12, "F12"},
		{KeySpace, "Space"},
		{KeyLeftBracket, "LeftBracket"},
		{KeySlash, "Slash"},
		{Key(200), "Key(200)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("Key.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeyValid(t *testing.T) {
	if KeyUnknown.Valid() {
		t.Error("KeyUnknown must not be valid")
	}
	if Key(keyCount).Valid() {
		t.Error("out of range key must not be valid")
	}
	for k := KeyA; k < keyCount; k++ {
		if !k.Valid() {
			t.Errorf("%v should be valid", k)
		}
	}
}

func TestKeyClassification(t *testing.T) {
	tests := []struct {
		key                                    Key
		letter, digit, function, arrow, modifr bool
	}{
		{KeyA, true, false, false, false, false},
		{Key5, false, true, false, false, false},
		{KeyF7, false, false, true, false, false},
		{KeyLeft, false, false, false, true, false},
		{KeyCtrl, false, false, false, false, true},
		{KeyComma, false, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			if got := tt.key.IsLetter(); got != tt.letter {
				t.Errorf("IsLetter() = %v, want %v", got, tt.letter)
			}
			if got := tt.key.IsDigit(); got != tt.digit {
				t.Errorf("IsDigit() = %v, want %v", got, tt.digit)
			}
			if got := tt.key.IsFunctionKey(); got != tt.function {
				t.Errorf("IsFunctionKey() = %v, want %v", got, tt.function)
			}
			if got := tt.key.IsArrowKey(); got != tt.arrow {
				t.Errorf("IsArrowKey() = %v, want %v", got, tt.arrow)
			}
			if got := tt.key.IsModifier(); got != tt.modifr {
				t.Errorf("IsModifier() = %v, want %v", got, tt.modifr)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Key
		ok   bool
	}{
		{"q", KeyQ, true},
		{"Q", KeyQ, true},
		{"escape", KeyEscape, true},
		{"ESCAPE", KeyEscape, true},
		{"f10", KeyF10, true},
		{"7", Key7, true},
		{"/", KeySlash, true},
		{"leftbracket", KeyLeftBracket, true},
		{"unknown", KeyUnknown, false},
		{"hyper", KeyUnknown, false},
		{"", KeyUnknown, false},
	}

	for _, tt := range tests {
		got, ok := Parse(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Parse(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFromRune(t *testing.T) {
	tests := []struct {
		r    rune
		want Key
	}{
		{'a', KeyA},
		{'W', KeyW},
		{'0', Key0},
		{' ', KeySpace},
		{'-', KeyMinus},
		{'`', KeyGrave},
		{'\'', KeyApostrophe},
		{'!', KeyUnknown},
		{'ä', KeyUnknown},
	}

	for _, tt := range tests {
		if got := FromRune(tt.r); got != tt.want {
			t.Errorf("FromRune(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}
