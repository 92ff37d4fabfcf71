// Package frame defines the capability shared by everything that renders to
// fixed-width rows: text boxes and canvases.
package frame

import (
	"iter"
	"strings"

	"github.com/zscript/textframe/internal/cell"
)

// Frame is a rectangular source of rows.
type Frame interface {
	Width() int
	// Height may require a full layout pass; it is not cached.
	Height() int
	// SetWidth attempts a width change and reports whether it was accepted.
	SetWidth(width int) bool
	// Rows produces every row, each exactly Width() cells wide. Each call
	// starts a fresh pass.
	Rows() iter.Seq[cell.Row]
}

// Render converts every row to text through p, one line per row.
func Render(f Frame, p cell.Printer) string {
	var b strings.Builder
	for row := range f.Rows() {
		b.WriteString(row.String(p))
		b.WriteByte('\n')
	}
	return b.String()
}

// Collect materializes all rows of f.
func Collect(f Frame) []cell.Row {
	var rows []cell.Row
	for row := range f.Rows() {
		rows = append(rows, row)
	}
	return rows
}

// Lines returns the unstyled text of every row.
func Lines(f Frame) []string {
	var lines []string
	for row := range f.Rows() {
		lines = append(lines, row.Text())
	}
	return lines
}
