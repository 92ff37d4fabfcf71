// Package canvas composites frames, characters and connector lines onto a
// fixed-size grid of styled cells.
package canvas

import (
	"iter"

	"github.com/zscript/textframe/internal/cell"
	"github.com/zscript/textframe/internal/frame"
)

var _ frame.Frame = (*Canvas)(nil)

// Canvas is a fixed-size buffer of styled cells. Drawing writes straight into
// the buffer; later writes overwrite earlier ones. Positions outside the grid
// are not checked and panic.
type Canvas struct {
	width  int
	height int
	cells  [][]cell.Cell
}

// New creates a canvas filled with blank cells.
func New(width, height int) *Canvas {
	rows := make([][]cell.Cell, height)
	for y := range rows {
		rows[y] = cell.MakeBlankLine(width)
	}
	return &Canvas{
		width:  width,
		height: height,
		cells:  rows,
	}
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// SetWidth always fails: a canvas keeps the size it was created with.
func (c *Canvas) SetWidth(int) bool { return false }

// Rows yields a copy of every grid row, top to bottom.
func (c *Canvas) Rows() iter.Seq[cell.Row] {
	return func(yield func(cell.Row) bool) {
		for _, line := range c.cells {
			if !yield(cell.NewRow(line)) {
				return
			}
		}
	}
}

func (c *Canvas) set(x, y int, r rune, style cell.Style) {
	c.cells[y][x] = cell.Cell{Rune: r, Style: style}
}

// AddCharacter writes a single styled character.
func (c *Canvas) AddCharacter(style cell.Style, r rune, x, y int) {
	c.set(x, y, r, style)
}

// AddFrame copies every cell of f with its top-left corner at (x, y). The
// frame is laid out once; it must fit inside the canvas.
func (c *Canvas) AddFrame(f frame.Frame, x, y int) {
	row := y
	for r := range f.Rows() {
		copy(c.cells[row][x:x+r.Len()], r.Cells())
		row++
	}
}
