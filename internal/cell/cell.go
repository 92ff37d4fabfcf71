package cell

// Color is one of the eight basic terminal colors, or the terminal default.
type Color uint8

const (
	// Default is the zero value so a zero Style is the standard style.
	Default Color = iota
	Black
	Red
	Green
	Yellow
	Blue
	Purple
	Cyan
	White
)

var colorNames = [...]string{
	Default: "default",
	Black:   "black",
	Red:     "red",
	Green:   "green",
	Yellow:  "yellow",
	Blue:    "blue",
	Purple:  "purple",
	Cyan:    "cyan",
	White:   "white",
}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "unknown"
}

// ParseColor maps a lowercase color name to a Color.
func ParseColor(name string) (Color, bool) {
	for i, n := range colorNames {
		if n == name {
			return Color(i), true
		}
	}
	return Default, false
}

// Style holds the attributes shared by a run of characters. Styles are plain
// values and compare with ==.
type Style struct {
	Fg   Color
	Bg   Color
	Bold bool
}

// Standard returns the default style: default colors, not bold.
func Standard() Style {
	return Style{}
}

// NewStyle builds a style from its parts.
func NewStyle(fg, bg Color, bold bool) Style {
	return Style{Fg: fg, Bg: bg, Bold: bold}
}

// IsStandard reports whether s is the default style.
func (s Style) IsStandard() bool {
	return s == Style{}
}

// Cell is a single character position.
type Cell struct {
	Rune  rune
	Style Style
}

// Blank returns a space in the standard style.
func Blank() Cell {
	return Cell{Rune: ' '}
}

// MakeBlankLine creates a line of blank cells.
func MakeBlankLine(width int) []Cell {
	line := make([]Cell, width)
	for i := range line {
		line[i] = Blank()
	}
	return line
}

// CopyLine deep copies a line
func CopyLine(src []Cell) []Cell {
	dst := make([]Cell, len(src))
	copy(dst, src)
	return dst
}
