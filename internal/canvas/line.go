package canvas

import "github.com/zscript/textframe/internal/cell"

// VerticalBias places the vertical run of a line that is taller than it is
// wide.
type VerticalBias uint8

const (
	// VerticalBalanced splits the diagonals around a vertical run in the
	// middle column.
	VerticalBalanced VerticalBias = iota
	// FavorStart runs vertically from the start point, then slants.
	FavorStart
	// FavorEnd slants first, then runs vertically into the end point.
	FavorEnd
)

// HorizontalBias places the horizontal run of a line that is wider than it is
// tall.
type HorizontalBias uint8

const (
	// HorizontalBalanced slants at both ends with a horizontal run in the
	// middle row.
	HorizontalBalanced HorizontalBias = iota
	// FavorTop runs along the upper row, then slants down.
	FavorTop
	// FavorBottom slants down, then runs along the lower row.
	FavorBottom
)

// LineStrategy picks the elbow shape for lines that are neither straight nor
// pure diagonals. Top and bottom refer to the upper and lower endpoint after
// ordering; start and end refer to the endpoints as given when the line runs
// downwards, and to the swapped endpoints otherwise.
type LineStrategy struct {
	Vertical   VerticalBias
	Horizontal HorizontalBias
}

// NewLineStrategy builds a strategy from independent flags. Start wins over
// end and top wins over bottom; with neither flag set the run is balanced.
func NewLineStrategy(favorStart, favorEnd, favorTop, favorBottom bool) LineStrategy {
	var s LineStrategy
	switch {
	case favorStart:
		s.Vertical = FavorStart
	case favorEnd:
		s.Vertical = FavorEnd
	}
	switch {
	case favorTop:
		s.Horizontal = FavorTop
	case favorBottom:
		s.Horizontal = FavorBottom
	}
	return s
}

// AddLine draws a connector between (x1, y1) and (x2, y2). The endpoints
// themselves are left untouched so that callers can mark them separately.
func (c *Canvas) AddLine(style cell.Style, x1, y1, x2, y2 int, strategy LineStrategy) {
	if y2 < y1 {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}
	l := lineDrawer{c: c, style: style, x1: x1, y1: y1, x2: x2, y2: y2, right: x2 > x1, dir: -1}
	if l.right {
		l.dir = 1
	}
	l.draw(strategy)
}

// lineDrawer holds one line with y1 <= y2.
type lineDrawer struct {
	c      *Canvas
	style  cell.Style
	x1, y1 int
	x2, y2 int
	right  bool
	dir    int
}

func (l *lineDrawer) put(x, y int, r rune) {
	l.c.set(x, y, r, l.style)
}

// slant is the diagonal glyph for the line's direction.
func (l *lineDrawer) slant() rune {
	if l.right {
		return '\\'
	}
	return '/'
}

// diagonal draws n diagonal steps after (x, y), moving one row down and one
// column towards the end point each step.
func (l *lineDrawer) diagonal(y, x, n int) {
	for i := 1; i <= n; i++ {
		l.put(x+l.dir*i, y+i, l.slant())
	}
}

func (l *lineDrawer) draw(strategy LineStrategy) {
	x1, y1, x2, y2 := l.x1, l.y1, l.x2, l.y2
	dx := x2 - x1
	if dx < 0 {
		dx = -dx
	}

	switch {
	case y1 == y2:
		for x := min(x1, x2) + 1; x < max(x1, x2); x++ {
			l.put(x, y1, '-')
		}
		return
	case x1 == x2:
		for y := y1 + 1; y < y2; y++ {
			l.put(x1, y, '|')
		}
		return
	case y2-y1 == dx:
		if dx == 1 {
			l.put(x1, y2, '\'')
		} else {
			l.diagonal(y1, x1, dx-1)
		}
		return
	}

	// Interior extents, excluding both endpoints.
	vLen := y2 - y1 - 1
	hLen := dx - 1
	if vLen > hLen {
		l.drawSteep(strategy.Vertical, vLen, hLen)
	} else {
		l.drawShallow(strategy.Horizontal, vLen, hLen)
	}
}

// drawSteep handles lines taller than they are wide: a vertical run joined
// to hLen diagonal steps.
func (l *lineDrawer) drawSteep(bias VerticalBias, vLen, hLen int) {
	x1, y1, x2, y2 := l.x1, l.y1, l.x2, l.y2
	switch bias {
	case FavorStart:
		run := vLen - hLen + 1
		if hLen == 0 {
			run--
		}
		for i := 1; i < run; i++ {
			l.put(x1, y1+i, '|')
		}
		if hLen == 0 {
			l.put(x1, y1+run, l.slant())
		}
		l.diagonal(y2-hLen-1, x1, hLen)

	case FavorEnd:
		run := vLen - hLen
		if hLen == 0 {
			run--
		}
		for i := 0; i < run; i++ {
			l.put(x2, y2-i-1, '|')
		}
		if hLen == 0 {
			l.put(x2, y2-run-1, l.slant())
		}
		l.diagonal(y1, x1, hLen)

	default:
		half := (hLen + 1) / 2
		middle := x1 + (l.dir*(hLen+2))/2
		l.diagonal(y1, x1, half)
		for y := y1 + half + 1; y < y2-half; y++ {
			l.put(middle, y, '|')
		}
		if hLen == 0 {
			l.put(middle, y1+1, l.slant())
		}
		l.diagonal(y2-half-1, middle-l.dir, half)
	}
}

// drawShallow handles lines at least as wide as they are tall: vLen diagonal
// steps joined to a horizontal run with '.' and '`' corners.
func (l *lineDrawer) drawShallow(bias HorizontalBias, vLen, hLen int) {
	x1, y1, x2, y2 := l.x1, l.y1, l.x2, l.y2
	dir := l.dir
	flat := hLen - vLen
	switch bias {
	case FavorTop:
		l.diagonal(y1, x2-dir*(vLen+1), vLen)
		for i := 1; i < flat; i++ {
			l.put(x1+dir*i, y1, '-')
		}
		l.put(x1+dir*flat, y1, '.')
		if vLen == 0 {
			l.put(x1+dir*flat, y2, '`')
		}

	case FavorBottom:
		l.diagonal(y1, x1, vLen)
		for i := 1; i < flat; i++ {
			l.put(x2-dir*i, y2, '-')
		}
		l.put(x2-dir*flat, y2, '`')

	default:
		half := vLen / 2
		l.diagonal(y1, x1, half)
		l.diagonal(y2-half-1, x2-dir*(half+1), half)
		mid := (y1 + y2) / 2
		if vLen%2 == 1 {
			for i := half + 2; i < hLen-(half-1); i++ {
				l.put(x1+dir*i, mid, '-')
			}
			l.put(x1+dir*(half+1), mid, '`')
			l.put(x2-dir*(half+1), mid, '.')
		} else {
			for i := half + 1; i < hLen-(half+1)+2; i++ {
				l.put(x1+dir*i, mid, '_')
			}
		}
	}
}
