// Package dirty tracks which grid rows changed since the last present.
// Adjacent rows coalesce into spans so the renderer can skip clean rows
// without scanning them.
package dirty

// Span is a run of dirty rows.
type Span struct {
	// Start is the first row of the span (inclusive).
	Start int

	// End is the row after the last one (exclusive).
	End int
}

// NewSpan creates a span covering rows start through end-1.
// Reversed bounds are swapped.
func NewSpan(start, end int) Span {
	if end < start {
		start, end = end, start
	}
	return Span{Start: start, End: end}
}

// Len returns the number of rows in the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty returns true if the span covers no rows.
func (s Span) IsEmpty() bool {
	return s.End <= s.Start
}

// Contains returns true if row lies within the span.
func (s Span) Contains(row int) bool {
	return row >= s.Start && row < s.End
}

// Touches returns true if the spans overlap or are adjacent.
func (s Span) Touches(other Span) bool {
	return s.Start <= other.End && other.Start <= s.End
}

// Merge combines two touching spans.
// Returns false if the spans neither overlap nor touch.
func (s Span) Merge(other Span) (Span, bool) {
	if !s.Touches(other) {
		return s, false
	}
	return Span{Start: min(s.Start, other.Start), End: max(s.End, other.End)}, true
}
