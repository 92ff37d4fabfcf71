// Package scene describes diagrams as JSON documents and builds them onto a
// canvas: text boxes first, then connector lines, then single characters so
// that endpoint markers sit on top of the lines that reach them.
package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/zscript/textframe/internal/canvas"
	"github.com/zscript/textframe/internal/cell"
	"github.com/zscript/textframe/internal/textbox"
	"github.com/zscript/textframe/internal/validation"
)

// MaxSize bounds scene dimensions.
const MaxSize = 1000

// StyleSpec is a named style.
type StyleSpec struct {
	Fg   string `json:"fg,omitempty"`
	Bg   string `json:"bg,omitempty"`
	Bold bool   `json:"bold,omitempty"`
}

// Run is text in one style.
type Run struct {
	Style string `json:"style,omitempty"`
	Text  string `json:"text"`
}

// Line is one logical line of a box.
type Line struct {
	Indent int   `json:"indent,omitempty"`
	Runs   []Run `json:"runs"`
}

// Box is a wrapped text box placed on the canvas.
type Box struct {
	X            int    `json:"x"`
	Y            int    `json:"y"`
	Width        int    `json:"width"`
	Indent       string `json:"indent,omitempty"`
	IndentStyle  string `json:"indent_style,omitempty"`
	IndentOnWrap int    `json:"indent_on_wrap,omitempty"`
	Lines        []Line `json:"lines"`
}

// Char is a single marker character.
type Char struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Char  string `json:"char"`
	Style string `json:"style,omitempty"`
}

// Connector is a line between two grid points.
type Connector struct {
	From       [2]int `json:"from"`
	To         [2]int `json:"to"`
	Style      string `json:"style,omitempty"`
	Vertical   string `json:"vertical,omitempty"`   // start, end or balanced
	Horizontal string `json:"horizontal,omitempty"` // top, bottom or balanced
}

// Scene is a complete diagram.
type Scene struct {
	Width  int                  `json:"width"`
	Height int                  `json:"height"`
	Styles map[string]StyleSpec `json:"styles,omitempty"`
	Boxes  []Box                `json:"boxes,omitempty"`
	Lines  []Connector          `json:"lines,omitempty"`
	Chars  []Char               `json:"chars,omitempty"`
}

// Parse decodes and validates a scene. Unknown keys are rejected so that
// typos do not silently drop elements.
func Parse(data []byte) (*Scene, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var s Scene
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and parses the scene file at path.
func Load(path string) (*Scene, error) {
	if err := validation.ValidateScenePath(path); err != nil {
		return nil, err
	}
	path, err := validation.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Build draws the scene onto a new canvas.
func (s *Scene) Build() (*canvas.Canvas, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	c := canvas.New(s.Width, s.Height)

	for i, b := range s.Boxes {
		box, err := s.layoutBox(b)
		if err != nil {
			return nil, validation.WithPrefix(fmt.Sprintf("boxes[%d]", i), err)
		}
		if h := box.Height(); b.Y+h > s.Height {
			return nil, &validation.ValidationError{
				Field:   fmt.Sprintf("boxes[%d]", i),
				Message: fmt.Sprintf("wraps to %d rows and does not fit below y=%d", h, b.Y),
			}
		}
		c.AddFrame(box, b.X, b.Y)
	}

	for _, l := range s.Lines {
		c.AddLine(s.style(l.Style), l.From[0], l.From[1], l.To[0], l.To[1], strategyFor(l))
	}

	for _, ch := range s.Chars {
		c.AddCharacter(s.style(ch.Style), []rune(ch.Char)[0], ch.X, ch.Y)
	}
	return c, nil
}

func (s *Scene) layoutBox(b Box) (*textbox.TextBox, error) {
	box := textbox.New("")
	box.SetStyledIndentString(b.Indent, s.style(b.IndentStyle))
	box.SetIndentOnWrap(b.IndentOnWrap)
	for _, l := range b.Lines {
		box.StartNewLineIndent(l.Indent)
		for _, r := range l.Runs {
			box.SetStyle(s.style(r.Style))
			box.Append(r.Text)
		}
	}
	if !box.SetWidth(b.Width) {
		return nil, &validation.ValidationError{
			Field:   "width",
			Message: fmt.Sprintf("indents leave fewer than %d columns of text", textbox.MinTextWidth),
		}
	}
	return box, nil
}

// style resolves a style name; the empty name is the standard style.
func (s *Scene) style(name string) cell.Style {
	spec, ok := s.Styles[name]
	if !ok {
		return cell.Standard()
	}
	fg, _ := cell.ParseColor(spec.Fg)
	bg, _ := cell.ParseColor(spec.Bg)
	return cell.NewStyle(fg, bg, spec.Bold)
}

func strategyFor(l Connector) canvas.LineStrategy {
	return canvas.NewLineStrategy(l.Vertical == "start", l.Vertical == "end", l.Horizontal == "top", l.Horizontal == "bottom")
}
