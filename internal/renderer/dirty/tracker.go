package dirty

// Tracker records dirty rows of a fixed-height grid.
//
// A Tracker is not safe for concurrent use.
type Tracker struct {
	height int
	rows   []bool
	count  int
}

// NewTracker creates a tracker for a grid with the given number of rows.
// A negative height is treated as zero.
func NewTracker(height int) *Tracker {
	if height < 0 {
		height = 0
	}
	return &Tracker{
		height: height,
		rows:   make([]bool, height),
	}
}

// Height returns the number of rows tracked.
func (t *Tracker) Height() int {
	return t.height
}

// MarkRow marks a single row as dirty. Rows outside the grid are ignored.
func (t *Tracker) MarkRow(row int) {
	if row < 0 || row >= t.height || t.rows[row] {
		return
	}
	t.rows[row] = true
	t.count++
}

// MarkSpan marks every row of the span as dirty, clamped to the grid.
func (t *Tracker) MarkSpan(s Span) {
	for row := max(s.Start, 0); row < min(s.End, t.height); row++ {
		t.MarkRow(row)
	}
}

// MarkAll marks the whole grid as dirty.
func (t *Tracker) MarkAll() {
	t.MarkSpan(Span{Start: 0, End: t.height})
}

// IsRowDirty returns true if the row is marked.
func (t *Tracker) IsRowDirty(row int) bool {
	return row >= 0 && row < t.height && t.rows[row]
}

// IsDirty returns true if any row is marked.
func (t *Tracker) IsDirty() bool {
	return t.count > 0
}

// Count returns the number of dirty rows.
func (t *Tracker) Count() int {
	return t.count
}

// Spans returns the dirty rows coalesced into ascending, non-touching spans.
func (t *Tracker) Spans() []Span {
	if t.count == 0 {
		return nil
	}
	var spans []Span
	start := -1
	for row, dirty := range t.rows {
		switch {
		case dirty && start < 0:
			start = row
		case !dirty && start >= 0:
			spans = append(spans, Span{Start: start, End: row})
			start = -1
		}
	}
	if start >= 0 {
		spans = append(spans, Span{Start: start, End: t.height})
	}
	return spans
}

// Clear unmarks the rows of a span, typically after they were presented.
func (t *Tracker) Clear(s Span) {
	for row := max(s.Start, 0); row < min(s.End, t.height); row++ {
		if t.rows[row] {
			t.rows[row] = false
			t.count--
		}
	}
}

// Reset unmarks every row.
func (t *Tracker) Reset() {
	clear(t.rows)
	t.count = 0
}
