package backend

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/wobl/internal/input/key"
)

// namedKeys maps tcell's non-rune keys. Ctrl+H, Ctrl+I and Ctrl+M share
// codes with Backspace, Tab and Enter, so they arrive as those keys.
var namedKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBacktab:    key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
}

// translateKey returns the keys a tcell key event stands for: the main
// key followed by any modifiers. Keys outside the supported set yield nil.
func translateKey(ev *tcell.EventKey) []key.Key {
	var keys []key.Key
	mods := ev.Modifiers()

	k := ev.Key()
	switch {
	case k == tcell.KeyRune:
		r := ev.Rune()
		base := key.FromRune(r)
		if base == key.KeyUnknown {
			return nil
		}
		keys = append(keys, base)
		if unicode.IsUpper(r) {
			mods |= tcell.ModShift
		}
	case namedKeys[k] != key.KeyUnknown:
		keys = append(keys, namedKeys[k])
		if k == tcell.KeyBacktab {
			mods |= tcell.ModShift
		}
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		keys = append(keys, key.KeyA+key.Key(k-tcell.KeyCtrlA))
		mods |= tcell.ModCtrl
	default:
		return nil
	}

	if mods&tcell.ModShift != 0 {
		keys = append(keys, key.KeyShift)
	}
	if mods&tcell.ModCtrl != 0 {
		keys = append(keys, key.KeyCtrl)
	}
	if mods&tcell.ModAlt != 0 {
		keys = append(keys, key.KeyAlt)
	}
	return keys
}
