// Package sgr renders cell styles as ANSI SGR escape sequences.
package sgr

import (
	"github.com/charmbracelet/x/ansi"

	"github.com/zscript/textframe/internal/cell"
)

// Printer implements cell.Printer for ANSI terminals. Each transition is a
// single SGR sequence; an unchanged style produces no output.
type Printer struct{}

var _ cell.Printer = Printer{}

var basicColors = [...]ansi.BasicColor{
	cell.Black:  ansi.Black,
	cell.Red:    ansi.Red,
	cell.Green:  ansi.Green,
	cell.Yellow: ansi.Yellow,
	cell.Blue:   ansi.Blue,
	cell.Purple: ansi.Magenta,
	cell.Cyan:   ansi.Cyan,
	cell.White:  ansi.White,
}

// toANSI maps a color to its x/ansi value; Default maps to nil, which x/ansi
// renders as the terminal default (39/49).
func toANSI(c cell.Color) ansi.Color {
	if c == cell.Default || int(c) >= len(basicColors) {
		return nil
	}
	return basicColors[c]
}

func sequence(s ansi.Style) string {
	if len(s) == 0 {
		return ""
	}
	return s.String()
}

// Apply returns the sequence switching from the standard style to s.
func (Printer) Apply(s cell.Style) string {
	return sequence(applyAttrs(nil, s))
}

func applyAttrs(seq ansi.Style, s cell.Style) ansi.Style {
	if s.Fg != cell.Default {
		seq = seq.ForegroundColor(toANSI(s.Fg))
	}
	if s.Bg != cell.Default {
		seq = seq.BackgroundColor(toANSI(s.Bg))
	}
	if s.Bold {
		seq = seq.Bold()
	}
	return seq
}

// ApplyDiff returns the sequence switching from prev to next. Bold can only
// be cleared by a full reset, after which next is applied from scratch.
func (Printer) ApplyDiff(prev, next cell.Style) string {
	if prev.Bold && !next.Bold {
		return sequence(applyAttrs(ansi.Style{}.Reset(), next))
	}
	var seq ansi.Style
	if next.Bold && !prev.Bold {
		seq = seq.Bold()
	}
	if next.Fg != prev.Fg {
		seq = seq.ForegroundColor(toANSI(next.Fg))
	}
	if next.Bg != prev.Bg {
		seq = seq.BackgroundColor(toANSI(next.Bg))
	}
	return sequence(seq)
}

// Cancel returns the sequence switching from s back to the standard style.
func (Printer) Cancel(s cell.Style) string {
	if s.Bold {
		return sequence(ansi.Style{}.Reset())
	}
	var seq ansi.Style
	if s.Fg != cell.Default {
		seq = seq.DefaultForegroundColor()
	}
	if s.Bg != cell.Default {
		seq = seq.DefaultBackgroundColor()
	}
	return sequence(seq)
}
