package textbox

import (
	"errors"
	"strings"
	"testing"

	"github.com/zscript/textframe/internal/bytestring"
	"github.com/zscript/textframe/internal/cell"
	"github.com/zscript/textframe/internal/frame"
)

func trimmedLines(f frame.Frame) []string {
	var out []string
	for _, l := range frame.Lines(f) {
		out = append(out, strings.TrimRight(l, " "))
	}
	return out
}

func assertLines(t *testing.T, b *TextBox, want ...string) {
	t.Helper()
	got := trimmedLines(b)
	if len(got) != len(want) {
		t.Fatalf("expected %d rows %q, got %d rows %q", len(want), want, len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: expected %q, got %q", i, want[i], got[i])
		}
	}
	if h := b.Height(); h != len(want) {
		t.Fatalf("expected height %d, got %d", len(want), h)
	}
	for row := range b.Rows() {
		if row.Len() != b.Width() {
			t.Fatalf("expected every row to be %d wide, got %d", b.Width(), row.Len())
		}
	}
}

func assertStyleRange(t *testing.T, row cell.Row, from, to int, want cell.Style) {
	t.Helper()
	for i := from; i < to; i++ {
		if got := row.Style(i); got != want {
			t.Fatalf("column %d of %q: expected style %+v, got %+v", i, row.Text(), want, got)
		}
	}
}

func TestBasicLinesAndStyles(t *testing.T) {
	red := cell.NewStyle(cell.Red, cell.Red, true)
	b := New("  ")
	b.SetWidth(100)
	b.Append("Test data")
	b.StartNewLineIndent(1)
	b.Append("More data")
	b.StartNewLine()
	b.Append("Yet more data")
	b.StartNewLineIndent(0)
	b.Append("non-red ")
	b.SetStyle(red)
	b.Append("Red-on-red data")

	assertLines(t, b, "Test data", "  More data", "  Yet more data", "non-red Red-on-red data")

	rows := frame.Collect(b)
	for i := 0; i < 3; i++ {
		assertStyleRange(t, rows[i], 0, 100, cell.Standard())
	}
	last := rows[3]
	assertStyleRange(t, last, 0, 8, cell.Standard())
	assertStyleRange(t, last, 8, 23, red)
	assertStyleRange(t, last, 23, 100, cell.Standard())
}

func TestWrapping(t *testing.T) {
	tests := []struct {
		name         string
		indentString string
		indentOnWrap int
		text         string
		want         []string
	}{
		{
			name:         "whitespace",
			indentString: "  ",
			text:         "Some text which should wrap nicely",
			want:         []string{"Some text which", "should wrap nicely"},
		},
		{
			name:         "indent on wrap",
			indentString: "--",
			indentOnWrap: 2,
			text:         "Some text which should wrap nicely",
			want:         []string{"Some text which", "----should wrap", "----nicely"},
		},
		{
			name:         "punctuation",
			indentString: "  ",
			indentOnWrap: 2,
			text:         "Some.text.which.should.wrap.nicely",
			want:         []string{"Some.text.which.", "    should.wrap.", "    nicely"},
		},
		{
			name:         "hyphen",
			indentString: "  ",
			indentOnWrap: 2,
			text:         "SomeTextWhichShouldWrapNicely",
			want:         []string{"SomeTextWhichShould-", "    WrapNicely"},
		},
		{
			name:         "all kinds",
			indentString: "  ",
			indentOnWrap: 1,
			text:         "This should be easy to wrap, where.this.is.much.harder.but.still.possible.if.barely AndHereWeHaveToResortToHyphens",
			want: []string{
				"This should be easy",
				"  to wrap,",
				"  where.this.is.",
				"  much.harder.but.",
				"  still.possible.if.",
				"  barely",
				"  AndHereWeHaveToRe-",
				"  sortToHyphens",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New("")
			b.SetIndentString(tt.indentString)
			b.SetIndentOnWrap(tt.indentOnWrap)
			if !b.SetWidth(20) {
				t.Fatalf("expected SetWidth(20) to succeed")
			}
			b.Append(tt.text)
			assertLines(t, b, tt.want...)
		})
	}
}

func TestWrapKeepsTextStyle(t *testing.T) {
	red := cell.NewStyle(cell.Red, cell.Blue, true)
	b := New("  ").SetIndentOnWrap(1)
	b.SetWidth(20)
	b.SetStyle(red)
	b.Append("Some text which should wrap at least a little")

	assertLines(t, b, "Some text which", "  should wrap at", "  least a little")
	rows := frame.Collect(b)
	assertStyleRange(t, rows[0], 0, 15, red)
	assertStyleRange(t, rows[0], 15, 20, cell.Standard())
	assertStyleRange(t, rows[1], 0, 2, cell.Standard())
	assertStyleRange(t, rows[1], 2, 16, red)
	assertStyleRange(t, rows[2], 0, 2, cell.Standard())
	assertStyleRange(t, rows[2], 2, 16, red)
}

func TestStyledIndent(t *testing.T) {
	red := cell.NewStyle(cell.Red, cell.Purple, true)
	b := New("  ").SetIndentOnWrap(1)
	b.SetWidth(20)
	b.SetStyledIndentString("  ", red)
	b.Append("Some text which should wrap at least a little")

	assertLines(t, b, "Some text which", "  should wrap at", "  least a little")
	rows := frame.Collect(b)
	assertStyleRange(t, rows[0], 0, 20, cell.Standard())
	for _, row := range rows[1:] {
		assertStyleRange(t, row, 0, 2, red)
		assertStyleRange(t, row, 2, 20, cell.Standard())
	}
}

func TestSetWidth(t *testing.T) {
	b := New("  ").SetIndentOnWrap(1)
	b.SetWidth(100)
	b.Append("This should be easy to wrap, where.this.is.much.harder.but.still.possible.if.barely AndHereWeHaveToResortToHyphens")
	if got := b.Height(); got != 2 {
		t.Fatalf("expected 2 rows at width 100, got %d", got)
	}
	if !b.SetWidth(20) {
		t.Fatalf("expected SetWidth(20) to succeed")
	}
	if b.SetWidth(5) {
		t.Fatalf("expected SetWidth(5) to be rejected")
	}
	if b.Width() != 20 {
		t.Fatalf("expected width to stay 20, got %d", b.Width())
	}
	if got := b.Height(); got != 8 {
		t.Fatalf("expected height to be recomputed as 8, got %d", got)
	}
}

func TestSetWidthChecksIndentedLines(t *testing.T) {
	b := New("  ")
	b.Append("top")
	b.StartNewLineIndent(40)
	b.Append("deep")

	if b.SetWidth(75) {
		t.Fatalf("expected SetWidth(75) to be rejected: 80 columns of indent")
	}
	if b.Width() != DefaultWidth {
		t.Fatalf("expected width unchanged, got %d", b.Width())
	}
	if !b.SetWidth(90) {
		t.Fatalf("expected SetWidth(90) to leave exactly 10 columns and succeed")
	}
	if b.SetWidth(0) {
		t.Fatalf("expected SetWidth(0) to be rejected")
	}
}

func TestVariedAppends(t *testing.T) {
	b := New("::").SetIndentOnWrap(1)
	b.SetWidth(10)
	b.StartNewLine().AppendInt(100000)
	b.StartNewLine().AppendFloat(1023.5)
	b.StartNewLine().AppendInt(21474098543342)
	b.StartNewLine().AppendRune('A')
	b.StartNewLine().AppendBool(true)
	b.StartNewLine().AppendRunes([]rune("Some text"))
	b.StartNewLine().AppendRunes([]rune("Some demo text")[5:])
	b.StartNewLine().AppendValue(27)
	b.StartNewLine().Appendf("%s-%d", "id", 7)
	b.StartNewLine().AppendUint(42)
	b.StartNewLine().AppendHex(0x24abdf, 0)
	b.StartNewLine().AppendHex(0x2, 0)
	b.StartNewLine().AppendHex(0x0, 0)
	b.StartNewLine().AppendHex(0x2, 4)

	assertLines(t, b,
		"100000",
		"1023.5",
		"214740985-",
		"::43342",
		"A",
		"true",
		"Some text",
		"demo text",
		"27",
		"id-7",
		"42",
		"24abdf",
		"2",
		"0002",
	)
}

func TestNumericAppends(t *testing.T) {
	b := New("")
	b.SetWidth(20)
	if err := b.AppendNumeric(0); err != nil {
		t.Fatalf("AppendNumeric(0) error = %v", err)
	}
	if b.Height() != 0 {
		t.Fatalf("expected zero to add nothing")
	}
	if err := b.AppendNumericKeepZero(0); err != nil {
		t.Fatalf("AppendNumericKeepZero(0) error = %v", err)
	}
	b.Append(" ")
	if err := b.AppendNumeric(0xbeef); err != nil {
		t.Fatalf("AppendNumeric error = %v", err)
	}
	b.Append(" ")
	if err := b.AppendHexPair(0x7); err != nil {
		t.Fatalf("AppendHexPair error = %v", err)
	}
	assertLines(t, b, "0 beef 07")

	if err := b.AppendHexPair(0x100); !errors.Is(err, bytestring.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if err := b.AppendNumeric(-1); !errors.Is(err, bytestring.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	assertLines(t, b, "0 beef 07")
}

func TestEmptyLinesProduceNoRows(t *testing.T) {
	b := New("  ")
	if b.Height() != 0 {
		t.Fatalf("expected empty box to have no rows")
	}
	b.StartNewLine()
	b.StartNewLine()
	b.SetStyle(cell.NewStyle(cell.Green, cell.Default, false))
	if b.Height() != 0 {
		t.Fatalf("expected lines without text to have no rows")
	}
	b.Append("x")
	assertLines(t, b, "x")
}

func TestSegmentEndingAtRowBoundary(t *testing.T) {
	red := cell.NewStyle(cell.Red, cell.Default, false)
	b := New("")
	b.SetWidth(10)
	b.Append("abcdefghij")
	b.SetStyle(red)
	b.Append(" klm")

	assertLines(t, b, "abcdefghij", " klm")
	rows := frame.Collect(b)
	assertStyleRange(t, rows[1], 0, 4, red)
}

func TestBareHyphenKeepsNextSegmentSpace(t *testing.T) {
	red := cell.NewStyle(cell.Red, cell.Default, false)
	b := New("")
	b.SetWidth(10)
	b.Append("abcdefghi")
	b.SetStyle(red)
	b.Append(" jk lmnopq")

	assertLines(t, b, "abcdefghi-", " jk lmnopq")
	rows := frame.Collect(b)
	assertStyleRange(t, rows[0], 9, 10, red)
	assertStyleRange(t, rows[1], 0, 10, red)
}

func TestMidSegmentResumeSkipsSpace(t *testing.T) {
	b := New("")
	b.SetWidth(10)
	b.Append("abcdefgh    ijklmnop qr")

	assertLines(t, b, "abcdefgh", "ijklmnop", "qr")
}

func TestDeepIndentStillMakesProgress(t *testing.T) {
	b := New("  ")
	b.SetWidth(20)
	b.StartNewLineIndent(30)
	b.Append("abcdef")

	rows := frame.Collect(b)
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}
	want := []string{"a-", "b-", "c-", "d-", "ef"}
	for i, row := range rows {
		if row.Len() != 20 {
			t.Fatalf("row %d: expected width 20, got %d", i, row.Len())
		}
		if got := row.Text()[18:]; got != want[i] {
			t.Fatalf("row %d: expected text %q after clipped indent, got %q", i, want[i], got)
		}
	}
}

func TestNarrowBoxPlacesOneCharacterPerRow(t *testing.T) {
	b := New("")
	if !b.SetWidth(1) {
		t.Fatalf("expected SetWidth(1) on an empty box to succeed")
	}
	b.Append("abc")
	assertLines(t, b, "a", "b", "c")
}

func TestRowsIsRestartable(t *testing.T) {
	b := New("")
	b.SetWidth(10)
	b.Append("one two three")

	first := frame.Lines(b)
	second := frame.Lines(b)
	if strings.Join(first, "|") != strings.Join(second, "|") {
		t.Fatalf("expected identical passes, got %q and %q", first, second)
	}

	n := 0
	for range b.Rows() {
		n++
		break
	}
	if n != 1 {
		t.Fatalf("expected early break to stop iteration")
	}

	b.Append(" four five")
	if got := b.Height(); got != 3 {
		t.Fatalf("expected height to follow later appends, got %d", got)
	}
}
