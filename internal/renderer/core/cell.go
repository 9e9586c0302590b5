package core

import "unicode/utf8"

// Cell is one grid position's renderable content.
// Cells are values; use == (or Equals) for structural comparison.
type Cell struct {
	// Grapheme is a single user-perceived character. It may hold a base
	// rune followed by combining marks.
	Grapheme string

	Fg    Color
	Bg    Color
	Attrs Attribute
}

// emptyCell is the canonical blank used to initialize and clear buffers.
var emptyCell = Cell{
	Grapheme: " ",
	Fg:       ColorReset,
	Bg:       ColorReset,
	Attrs:    AttrNone,
}

// EmptyCell returns the canonical blank cell.
func EmptyCell() Cell {
	return emptyCell
}

// NewCell creates a cell holding a single rune.
func NewCell(r rune, fg, bg Color, attrs Attribute) Cell {
	return Cell{Grapheme: string(r), Fg: fg, Bg: bg, Attrs: attrs}
}

// NewGraphemeCell creates a cell from a grapheme cluster.
// An empty grapheme renders as a space.
func NewGraphemeCell(g string, fg, bg Color, attrs Attribute) Cell {
	if g == "" {
		g = " "
	}
	return Cell{Grapheme: g, Fg: fg, Bg: bg, Attrs: attrs}
}

// Rune returns the base rune of the grapheme.
func (c Cell) Rune() rune {
	if c.Grapheme == "" {
		return ' '
	}
	r, _ := utf8.DecodeRuneInString(c.Grapheme)
	return r
}

// Combining returns the runes following the base rune, or nil.
func (c Cell) Combining() []rune {
	if c.Grapheme == "" {
		return nil
	}
	_, size := utf8.DecodeRuneInString(c.Grapheme)
	if size >= len(c.Grapheme) {
		return nil
	}
	return []rune(c.Grapheme[size:])
}

// IsEmpty returns true if this is the canonical blank cell.
func (c Cell) IsEmpty() bool {
	return c == emptyCell
}

// Equals returns true if two cells are identical.
func (c Cell) Equals(other Cell) bool {
	return c == other
}
