package core

import "strings"

// Attribute is a set of independent rendering modifiers.
// Order is irrelevant and adding a modifier twice has no effect.
type Attribute uint16

// Text attribute flags.
const (
	AttrNone          Attribute = 0
	AttrBold          Attribute = 1 << iota
	AttrDim                     // Faint/dim text
	AttrItalic                  // Italic text
	AttrUnderline               // Underlined text
	AttrBlink                   // Blinking text (rarely supported)
	AttrReverse                 // Reverse video (swap fg/bg)
	AttrStrikethrough           // Strikethrough text
	AttrHidden                  // Hidden/invisible text
	AttrReset                   // Discard any modifiers the device carries over
)

var attributeNames = []struct {
	attr Attribute
	name string
}{
	{AttrBold, "bold"},
	{AttrDim, "dim"},
	{AttrItalic, "italic"},
	{AttrUnderline, "underline"},
	{AttrBlink, "blink"},
	{AttrReverse, "reverse"},
	{AttrStrikethrough, "strikethrough"},
	{AttrHidden, "hidden"},
	{AttrReset, "reset"},
}

// Attributes builds a set from individual modifiers.
func Attributes(attrs ...Attribute) Attribute {
	var set Attribute
	for _, a := range attrs {
		set |= a
	}
	return set
}

// ParseAttribute looks up a modifier by its lower-case name.
func ParseAttribute(name string) (Attribute, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, an := range attributeNames {
		if an.name == name {
			return an.attr, true
		}
	}
	return AttrNone, false
}

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Without returns a new attribute set with the given attribute removed.
func (a Attribute) Without(attr Attribute) Attribute {
	return a &^ attr
}

// String lists the set members joined by "|".
func (a Attribute) String() string {
	if a == AttrNone {
		return "none"
	}
	var parts []string
	for _, an := range attributeNames {
		if a.Has(an.attr) {
			parts = append(parts, an.name)
		}
	}
	return strings.Join(parts, "|")
}
