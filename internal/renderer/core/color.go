package core

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color represents a color value.
// Supports true color (RGB), terminal palette colors and the device default.
type Color struct {
	R, G, B uint8
	// If Indexed is true, R contains the palette index (0-255).
	// G and B are always zero in indexed mode.
	Indexed bool
	// Default indicates this is the device's default color (reset).
	Default bool
}

// ColorReset is the device's default color.
var ColorReset = Color{Default: true}

// Named terminal colors. They live in the first 16 palette slots so a
// terminal renders them with its own theme.
var (
	ColorBlack       = ColorFromIndex(0)
	ColorDarkRed     = ColorFromIndex(1)
	ColorDarkGreen   = ColorFromIndex(2)
	ColorDarkYellow  = ColorFromIndex(3)
	ColorDarkBlue    = ColorFromIndex(4)
	ColorDarkMagenta = ColorFromIndex(5)
	ColorDarkCyan    = ColorFromIndex(6)
	ColorGrey        = ColorFromIndex(7)
	ColorDarkGrey    = ColorFromIndex(8)
	ColorRed         = ColorFromIndex(9)
	ColorGreen       = ColorFromIndex(10)
	ColorYellow      = ColorFromIndex(11)
	ColorBlue        = ColorFromIndex(12)
	ColorMagenta     = ColorFromIndex(13)
	ColorCyan        = ColorFromIndex(14)
	ColorWhite       = ColorFromIndex(15)
)

// namedRGB is the fixed realization of the named tier on devices without a
// palette of their own.
var namedRGB = [16][3]uint8{
	{0, 0, 0},       // Black
	{128, 0, 0},     // DarkRed
	{0, 128, 0},     // DarkGreen
	{128, 128, 0},   // DarkYellow
	{0, 0, 128},     // DarkBlue
	{128, 0, 128},   // DarkMagenta
	{0, 128, 128},   // DarkCyan
	{192, 192, 192}, // Grey
	{128, 128, 128}, // DarkGrey
	{255, 0, 0},     // Red
	{0, 255, 0},     // Green
	{255, 255, 0},   // Yellow
	{0, 0, 255},     // Blue
	{255, 0, 255},   // Magenta
	{0, 255, 255},   // Cyan
	{255, 255, 255}, // White
}

var colorNames = map[string]Color{
	"reset":       ColorReset,
	"default":     ColorReset,
	"black":       ColorBlack,
	"darkred":     ColorDarkRed,
	"darkgreen":   ColorDarkGreen,
	"darkyellow":  ColorDarkYellow,
	"darkblue":    ColorDarkBlue,
	"darkmagenta": ColorDarkMagenta,
	"darkcyan":    ColorDarkCyan,
	"grey":        ColorGrey,
	"gray":        ColorGrey,
	"darkgrey":    ColorDarkGrey,
	"darkgray":    ColorDarkGrey,
	"red":         ColorRed,
	"green":       ColorGreen,
	"yellow":      ColorYellow,
	"blue":        ColorBlue,
	"magenta":     ColorMagenta,
	"cyan":        ColorCyan,
	"white":       ColorWhite,
}

// ColorFromRGB creates a true color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromIndex creates an indexed palette color.
func ColorFromIndex(index uint8) Color {
	return Color{R: index, Indexed: true}
}

// ColorFromSlice creates a true color from up to three channels.
// Missing channels are zero; extra values are ignored.
func ColorFromSlice(v []uint8) Color {
	var ch [3]uint8
	copy(ch[:], v)
	return ColorFromRGB(ch[0], ch[1], ch[2])
}

// ColorFromHex creates a color from a hex string.
// Supports formats: "#RGB", "#RRGGBB", "RGB", "RRGGBB".
func ColorFromHex(hex string) (Color, error) {
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if len(hex) != 4 && len(hex) != 7 {
		return Color{}, fmt.Errorf("invalid hex color length: %s", hex)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color: %s", hex)
	}
	r, g, b := c.RGB255()
	return ColorFromRGB(r, g, b), nil
}

// ParseColor accepts a color name ("red", "darkgrey", "reset"), a hex
// string, or "idx:N" for a palette slot.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colorNames[s]; ok {
		return c, nil
	}
	if rest, ok := strings.CutPrefix(s, "idx:"); ok {
		var n int
		if _, err := fmt.Sscanf(rest, "%d", &n); err != nil || n < 0 || n > 255 {
			return Color{}, fmt.Errorf("invalid palette index: %s", rest)
		}
		return ColorFromIndex(uint8(n)), nil
	}
	return ColorFromHex(s)
}

// IsDefault returns true if this is the default/reset color.
func (c Color) IsDefault() bool {
	return c.Default
}

// Equals returns true if two colors are structurally equal.
func (c Color) Equals(other Color) bool {
	return c == other
}

// RGB resolves the color to concrete channels. The default color resolves
// to black, named colors use a fixed table and the remaining palette slots
// are decoded as 3-3-2 bit channels.
func (c Color) RGB() (r, g, b uint8) {
	switch {
	case c.Default:
		return 0, 0, 0
	case !c.Indexed:
		return c.R, c.G, c.B
	case c.R < 16:
		v := namedRGB[c.R]
		return v[0], v[1], v[2]
	default:
		v := c.R
		return ((v >> 5) & 0b111) * 36, ((v >> 2) & 0b111) * 36, (v & 0b11) * 85
	}
}

// Blend mixes two colors in RGB space.
// Amount 0.0 = c, 1.0 = other.
func (c Color) Blend(other Color, amount float64) Color {
	if amount <= 0 {
		return c
	}
	if amount >= 1 {
		return other
	}
	mixed := toColorful(c).BlendRgb(toColorful(other), amount).Clamped()
	r, g, b := mixed.RGB255()
	return ColorFromRGB(r, g, b)
}

// ToHex returns the "#rrggbb" form of the resolved color.
func (c Color) ToHex() string {
	return toColorful(c).Hex()
}

// String returns a string representation of the color.
func (c Color) String() string {
	if c.Default {
		return "reset"
	}
	if c.Indexed {
		return fmt.Sprintf("idx(%d)", c.R)
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func toColorful(c Color) colorful.Color {
	r, g, b := c.RGB()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}
