package scene

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/zscript/textframe/internal/validation"
)

// Validate checks dimensions, style references and that every element lies
// inside the canvas. Box heights depend on wrapping and are checked by Build.
func (s *Scene) Validate() error {
	if err := validation.ValidateSize("width", s.Width, MaxSize); err != nil {
		return err
	}
	if err := validation.ValidateSize("height", s.Height, MaxSize); err != nil {
		return err
	}

	names := make([]string, 0, len(s.Styles))
	for name := range s.Styles {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := s.validateStyle(name, s.Styles[name]); err != nil {
			return err
		}
	}

	for i, b := range s.Boxes {
		if err := s.validateBox(b); err != nil {
			return validation.WithPrefix(fmt.Sprintf("boxes[%d]", i), err)
		}
	}
	for i, l := range s.Lines {
		if err := s.validateConnector(l); err != nil {
			return validation.WithPrefix(fmt.Sprintf("lines[%d]", i), err)
		}
	}
	for i, ch := range s.Chars {
		if err := s.validateChar(ch); err != nil {
			return validation.WithPrefix(fmt.Sprintf("chars[%d]", i), err)
		}
	}
	return nil
}

func (s *Scene) validateStyle(name string, spec StyleSpec) error {
	prefix := fmt.Sprintf("styles[%s]", name)
	if err := validation.ValidateStyleName(name); err != nil {
		return validation.WithPrefix(prefix, err)
	}
	if err := validation.ValidateColor("fg", spec.Fg); err != nil {
		return validation.WithPrefix(prefix, err)
	}
	if err := validation.ValidateColor("bg", spec.Bg); err != nil {
		return validation.WithPrefix(prefix, err)
	}
	return nil
}

func (s *Scene) checkStyleRef(field, name string) error {
	if name == "" {
		return nil
	}
	if _, ok := s.Styles[name]; !ok {
		return &validation.ValidationError{Field: field, Message: fmt.Sprintf("unknown style '%s'", name)}
	}
	return nil
}

func (s *Scene) checkPoint(field string, x, y int) error {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return &validation.ValidationError{
			Field:   field,
			Message: fmt.Sprintf("(%d,%d) is outside the %dx%d canvas", x, y, s.Width, s.Height),
		}
	}
	return nil
}

func (s *Scene) validateBox(b Box) error {
	if err := s.checkPoint("position", b.X, b.Y); err != nil {
		return err
	}
	if err := validation.ValidateSize("width", b.Width, s.Width); err != nil {
		return err
	}
	if b.X+b.Width > s.Width {
		return &validation.ValidationError{
			Field:   "width",
			Message: fmt.Sprintf("box at x=%d with width %d overflows the canvas", b.X, b.Width),
		}
	}
	if err := validation.ValidateGlyphs("indent", b.Indent); err != nil {
		return err
	}
	if err := s.checkStyleRef("indent_style", b.IndentStyle); err != nil {
		return err
	}
	if err := validation.ValidateNonNegative("indent_on_wrap", b.IndentOnWrap); err != nil {
		return err
	}
	for i, l := range b.Lines {
		prefix := fmt.Sprintf("lines[%d]", i)
		if err := validation.ValidateNonNegative("indent", l.Indent); err != nil {
			return validation.WithPrefix(prefix, err)
		}
		for j, r := range l.Runs {
			runPrefix := fmt.Sprintf("%s.runs[%d]", prefix, j)
			if err := s.checkStyleRef("style", r.Style); err != nil {
				return validation.WithPrefix(runPrefix, err)
			}
			if err := validation.ValidateGlyphs("text", r.Text); err != nil {
				return validation.WithPrefix(runPrefix, err)
			}
		}
	}
	return nil
}

func (s *Scene) validateConnector(l Connector) error {
	if err := s.checkPoint("from", l.From[0], l.From[1]); err != nil {
		return err
	}
	if err := s.checkPoint("to", l.To[0], l.To[1]); err != nil {
		return err
	}
	if err := s.checkStyleRef("style", l.Style); err != nil {
		return err
	}
	switch l.Vertical {
	case "", "start", "end", "balanced":
	default:
		return &validation.ValidationError{Field: "vertical", Message: fmt.Sprintf("unknown bias '%s' (want start, end or balanced)", l.Vertical)}
	}
	switch l.Horizontal {
	case "", "top", "bottom", "balanced":
	default:
		return &validation.ValidationError{Field: "horizontal", Message: fmt.Sprintf("unknown bias '%s' (want top, bottom or balanced)", l.Horizontal)}
	}
	return nil
}

func (s *Scene) validateChar(ch Char) error {
	if err := s.checkPoint("position", ch.X, ch.Y); err != nil {
		return err
	}
	if utf8.RuneCountInString(ch.Char) != 1 {
		return &validation.ValidationError{Field: "char", Message: "must be exactly one character"}
	}
	if err := validation.ValidateGlyphs("char", ch.Char); err != nil {
		return err
	}
	return s.checkStyleRef("style", ch.Style)
}
