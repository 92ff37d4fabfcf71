package textbox

import (
	"iter"
	"unicode"

	"github.com/zscript/textframe/internal/cell"
)

// minTextColumns is the space always left for text after the indent so that
// every row makes progress, however deep the indent.
const minTextColumns = 2

// Rows lays the box out and yields one row per wrapped line. Pending text is
// committed first. Nothing is cached: each pass reflects the box as it is
// when the pass starts.
func (b *TextBox) Rows() iter.Seq[cell.Row] {
	b.flush()
	return func(yield func(cell.Row) bool) {
		c := b.newCursor()
		for {
			row, ok := c.next()
			if !ok || !yield(row) {
				return
			}
		}
	}
}

// rowCursor walks line -> segment -> character, carrying the position inside
// a partially placed segment from one row to the next.
type rowCursor struct {
	lines        []*line
	width        int
	indentString []rune
	indentStyle  cell.Style
	indentOnWrap int

	lineIdx int
	segIdx  int
	pos     int
	// cont is set when the next row continues a wrapped logical line.
	cont bool
}

func (b *TextBox) newCursor() *rowCursor {
	b.flush()
	return &rowCursor{
		lines:        b.lines,
		width:        b.width,
		indentString: b.indentString,
		indentStyle:  b.indentStyle,
		indentOnWrap: b.indentOnWrap,
	}
}

// advance moves to the next logical line that still has text to place.
// Lines without any segments produce no rows.
func (c *rowCursor) advance() bool {
	for c.lineIdx < len(c.lines) {
		if c.segIdx < len(c.lines[c.lineIdx].segments) {
			return true
		}
		c.lineIdx++
		c.segIdx, c.pos, c.cont = 0, 0, false
	}
	return false
}

// next materializes one row.
func (c *rowCursor) next() (cell.Row, bool) {
	if !c.advance() {
		return cell.Row{}, false
	}
	cells := cell.MakeBlankLine(c.width)
	l := c.lines[c.lineIdx]

	depth := l.indent
	if c.cont {
		depth += c.indentOnWrap
	}
	col := c.writeIndent(cells, depth)

	budget := c.width - col
	// Whitespace is dropped only where a segment resumes mid-way.
	skipSpace := c.cont && c.pos > 0
	placed := false
	for {
		seg := l.segments[c.segIdx]
		if skipSpace {
			for c.pos < len(seg.text) && unicode.IsSpace(seg.text[c.pos]) {
				c.pos++
			}
			skipSpace = false
		}

		rest := len(seg.text) - c.pos
		if rest <= budget {
			col = place(cells, col, seg.text[c.pos:], seg.style)
			budget -= rest
			placed = placed || rest > 0
			c.segIdx++
			c.pos = 0
			if c.segIdx == len(l.segments) {
				break
			}
			if budget == 0 {
				// The next segment starts on a continuation row.
				c.cont = true
				break
			}
			continue
		}

		end, hyphen := breakPoint(seg.text, c.pos, budget)
		if hyphen && end == c.pos && !placed {
			// A single free column: place one character rather than
			// hyphenating forever.
			end, hyphen = c.pos+1, false
		}
		col = place(cells, col, seg.text[c.pos:end], seg.style)
		if hyphen {
			cells[col] = cell.Cell{Rune: '-', Style: seg.style}
		}
		c.pos = end
		c.cont = true
		break
	}
	return cell.NewRow(cells), true
}

// writeIndent writes depth repetitions of the indent string, clipped to leave
// minTextColumns free, and returns the next free column.
func (c *rowCursor) writeIndent(cells []cell.Cell, depth int) int {
	limit := c.width - minTextColumns
	col := 0
	for i := 0; i < depth; i++ {
		for _, r := range c.indentString {
			if col >= limit {
				return col
			}
			cells[col] = cell.Cell{Rune: r, Style: c.indentStyle}
			col++
		}
	}
	return col
}

func place(cells []cell.Cell, col int, text []rune, style cell.Style) int {
	for _, r := range text {
		cells[col] = cell.Cell{Rune: r, Style: style}
		col++
	}
	return col
}

// breakPoint chooses where to split text that does not fit in budget columns
// starting at pos. It returns the end of the text to place on this row and
// whether a hyphen must follow it.
//
// Preference order: the last whitespace at or before pos+budget (dropped by
// the skip on the next row); the end of the last run of non letter/digit
// characters before the limit; otherwise budget-1 characters and a hyphen.
func breakPoint(text []rune, pos, budget int) (int, bool) {
	limit := pos + budget
	i := limit
	for i > pos && !unicode.IsSpace(text[i]) {
		i--
	}
	if i > pos {
		return i, false
	}

	i = limit - 1
	for i > pos && isWordRune(text[i]) {
		i--
	}
	if i > pos {
		return i + 1, false
	}
	return limit - 1, true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
