package cell

import "strings"

// Printer turns style transitions into text. The terminal implementation
// lives in internal/sgr; Plain is the no-op implementation.
type Printer interface {
	// Apply returns the prefix that switches from the standard style to s.
	Apply(s Style) string
	// ApplyDiff returns the shortest text that switches from prev to next.
	ApplyDiff(prev, next Style) string
	// Cancel returns the suffix that switches from s back to the standard style.
	Cancel(s Style) string
}

// Plain is a Printer that emits no styling at all.
type Plain struct{}

func (Plain) Apply(Style) string            { return "" }
func (Plain) ApplyDiff(Style, Style) string { return "" }
func (Plain) Cancel(Style) string           { return "" }

// Row is one fully rendered line of cells. A Row owns its cells: the
// constructor copies, and the accessors never expose the backing slice.
type Row struct {
	cells []Cell
}

// NewRow copies cells into a new Row.
func NewRow(cells []Cell) Row {
	return Row{cells: CopyLine(cells)}
}

// Len returns the number of cells.
func (r Row) Len() int {
	return len(r.cells)
}

// At returns the cell at column i.
func (r Row) At(i int) Cell {
	return r.cells[i]
}

// Rune returns the character at column i.
func (r Row) Rune(i int) rune {
	return r.cells[i].Rune
}

// Style returns the style at column i.
func (r Row) Style(i int) Style {
	return r.cells[i].Style
}

// Cells returns a copy of the row's cells.
func (r Row) Cells() []Cell {
	return CopyLine(r.cells)
}

// Text returns the raw characters without styling.
func (r Row) Text() string {
	var b strings.Builder
	b.Grow(len(r.cells))
	for _, c := range r.cells {
		b.WriteRune(c.Rune)
	}
	return b.String()
}

// Equal reports whether both rows hold the same characters and styles.
func (r Row) Equal(o Row) bool {
	if len(r.cells) != len(o.cells) {
		return false
	}
	for i := range r.cells {
		if r.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// String renders the row through p. A transition is emitted only when the
// style changes from one cell to the next, starting from the standard style,
// and the last style is cancelled at the end of the row.
func (r Row) String(p Printer) string {
	var b strings.Builder
	b.Grow(len(r.cells) * 2)
	prev := Standard()
	for _, c := range r.cells {
		if c.Style != prev {
			b.WriteString(p.ApplyDiff(prev, c.Style))
			prev = c.Style
		}
		b.WriteRune(c.Rune)
	}
	b.WriteString(p.Cancel(prev))
	return b.String()
}
