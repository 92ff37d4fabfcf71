// Package textbox lays out styled text into fixed-width rows, wrapping on
// whitespace, on punctuation, or with a hyphen as a last resort.
package textbox

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zscript/textframe/internal/bytestring"
	"github.com/zscript/textframe/internal/cell"
	"github.com/zscript/textframe/internal/frame"
)

const (
	// DefaultWidth is the width of a new box.
	DefaultWidth = 80
	// MinTextWidth is the narrowest text area SetWidth accepts on any line.
	MinTextWidth = 10
)

var _ frame.Frame = (*TextBox)(nil)

// segment is a run of text sharing one style.
type segment struct {
	style cell.Style
	text  []rune
}

// line is one logical line (paragraph) before wrapping.
type line struct {
	indent   int
	segments []segment
}

// TextBox accumulates styled logical lines and wraps them to its width on
// every read. Text is appended to a pending buffer which is committed as a
// segment when the style or line changes, or when the box is read.
type TextBox struct {
	lines []*line

	indentString []rune
	indentStyle  cell.Style
	indentOnWrap int

	pendingStyle cell.Style
	pending      strings.Builder

	width int
}

// New creates an empty box with the given indent string.
func New(indentString string) *TextBox {
	return &TextBox{
		indentString: []rune(indentString),
		width:        DefaultWidth,
	}
}

// SetIndentOnWrap sets the extra indent applied to rows produced by wrapping.
func (b *TextBox) SetIndentOnWrap(n int) *TextBox {
	b.indentOnWrap = n
	return b
}

// SetIndentString replaces the indent string and resets its style.
func (b *TextBox) SetIndentString(s string) *TextBox {
	return b.SetStyledIndentString(s, cell.Standard())
}

// SetStyledIndentString replaces the indent string and its style.
func (b *TextBox) SetStyledIndentString(s string, style cell.Style) *TextBox {
	b.indentString = []rune(s)
	b.indentStyle = style
	return b
}

func (b *TextBox) lastLine() *line {
	if len(b.lines) == 0 {
		b.lines = append(b.lines, &line{})
	}
	return b.lines[len(b.lines)-1]
}

// flush commits the pending buffer to the last line.
func (b *TextBox) flush() {
	if b.pending.Len() != 0 {
		l := b.lastLine()
		l.segments = append(l.segments, segment{style: b.pendingStyle, text: []rune(b.pending.String())})
	}
	b.pending.Reset()
}

// SetStyle commits pending text and switches the style for later appends.
func (b *TextBox) SetStyle(style cell.Style) *TextBox {
	b.flush()
	b.pendingStyle = style
	return b
}

// StartNewLineIndent commits pending text and starts a logical line with the
// given indent. The style reverts to standard.
func (b *TextBox) StartNewLineIndent(indent int) *TextBox {
	b.flush()
	b.pendingStyle = cell.Standard()
	b.lines = append(b.lines, &line{indent: indent})
	return b
}

// StartNewLine is StartNewLineIndent using the previous line's indent, or 0
// for the first line.
func (b *TextBox) StartNewLine() *TextBox {
	b.flush()
	indent := 0
	if len(b.lines) != 0 {
		indent = b.lastLine().indent
	}
	return b.StartNewLineIndent(indent)
}

// Width returns the row width.
func (b *TextBox) Width() int {
	return b.width
}

// Height lays out the whole box and counts the rows.
func (b *TextBox) Height() int {
	height := 0
	for range b.Rows() {
		height++
	}
	return height
}

// SetWidth changes the width if every logical line keeps at least
// MinTextWidth columns after its indent. Otherwise nothing changes.
func (b *TextBox) SetWidth(width int) bool {
	b.flush()
	if width < 1 {
		return false
	}
	indentLen := len(b.indentString)
	for _, l := range b.lines {
		if width-l.indent*indentLen < MinTextWidth {
			return false
		}
	}
	b.width = width
	return true
}

// Append adds text in the current style.
func (b *TextBox) Append(s string) *TextBox {
	b.pending.WriteString(s)
	return b
}

// AppendRune adds a single character.
func (b *TextBox) AppendRune(r rune) *TextBox {
	b.pending.WriteRune(r)
	return b
}

// AppendRunes adds a run of characters.
func (b *TextBox) AppendRunes(rs []rune) *TextBox {
	for _, r := range rs {
		b.pending.WriteRune(r)
	}
	return b
}

// AppendInt adds a decimal integer.
func (b *TextBox) AppendInt(v int64) *TextBox {
	b.pending.WriteString(strconv.FormatInt(v, 10))
	return b
}

// AppendUint adds an unsigned decimal integer.
func (b *TextBox) AppendUint(v uint64) *TextBox {
	b.pending.WriteString(strconv.FormatUint(v, 10))
	return b
}

// AppendFloat adds the shortest decimal form of v.
func (b *TextBox) AppendFloat(v float64) *TextBox {
	b.pending.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	return b
}

// AppendBool adds "true" or "false".
func (b *TextBox) AppendBool(v bool) *TextBox {
	b.pending.WriteString(strconv.FormatBool(v))
	return b
}

// AppendValue adds v formatted with %v.
func (b *TextBox) AppendValue(v any) *TextBox {
	fmt.Fprint(&b.pending, v)
	return b
}

// Appendf adds formatted text.
func (b *TextBox) Appendf(format string, args ...any) *TextBox {
	fmt.Fprintf(&b.pending, format, args...)
	return b
}

// AppendHex adds v in lowercase hex, zero padded to minDigits. Other leading
// zeros are suppressed.
func (b *TextBox) AppendHex(v uint32, minDigits int) *TextBox {
	var bs bytestring.Builder
	bs.AppendHex(v, minDigits)
	b.pending.WriteString(bs.String())
	return b
}

// AppendHexPair adds v (0x00-0xff) as exactly two hex digits.
func (b *TextBox) AppendHexPair(v int) error {
	var bs bytestring.Builder
	if err := bs.AppendHexPair(v); err != nil {
		return err
	}
	b.pending.WriteString(bs.String())
	return nil
}

// AppendNumeric adds v (0-0xffff) in hex with all leading zeros suppressed;
// zero adds nothing.
func (b *TextBox) AppendNumeric(v int) error {
	var bs bytestring.Builder
	if err := bs.AppendNumeric(v); err != nil {
		return err
	}
	b.pending.WriteString(bs.String())
	return nil
}

// AppendNumericKeepZero is AppendNumeric except that zero adds "0".
func (b *TextBox) AppendNumericKeepZero(v int) error {
	var bs bytestring.Builder
	if err := bs.AppendNumericKeepZero(v); err != nil {
		return err
	}
	b.pending.WriteString(bs.String())
	return nil
}
