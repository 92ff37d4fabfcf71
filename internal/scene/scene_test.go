package scene

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zscript/textframe/internal/canvas"
	"github.com/zscript/textframe/internal/cell"
	"github.com/zscript/textframe/internal/frame"
	"github.com/zscript/textframe/internal/validation"
)

const smallScene = `{
  "width": 16, "height": 4,
  "styles": {"node": {"fg": "green", "bold": true}},
  "boxes": [{"x": 0, "y": 0, "width": 12,
             "lines": [{"runs": [{"style": "node", "text": "hello"}, {"text": " world"}]}]}],
  "lines": [{"from": [0, 3], "to": [15, 3]}],
  "chars": [{"x": 0, "y": 3, "char": "O", "style": "node"},
            {"x": 15, "y": 3, "char": "O", "style": "node"}]
}`

func trimmed(f frame.Frame) []string {
	lines := frame.Lines(f)
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}

func build(t *testing.T, s *Scene) *canvas.Canvas {
	t.Helper()
	c, err := s.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return c
}

func TestParseBuildsScene(t *testing.T) {
	s, err := Parse([]byte(smallScene))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	c := build(t, s)

	want := []string{"hello world", "", "", "O--------------O"}
	got := trimmed(c)
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	rows := frame.Collect(c)
	node := cell.NewStyle(cell.Green, cell.Default, true)
	checks := []struct {
		x, y int
		want cell.Style
	}{
		{0, 0, node},
		{4, 0, node},
		{6, 0, cell.Standard()},
		{0, 3, node},
		{1, 3, cell.Standard()},
		{15, 3, node},
	}
	for _, tt := range checks {
		if got := rows[tt.y].Style(tt.x); got != tt.want {
			t.Fatalf("cell (%d,%d): expected %+v, got %+v", tt.x, tt.y, tt.want, got)
		}
	}
}

func TestParseRejectsInvalidScenes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{"zero width", `{"width": 0, "height": 5}`, "width"},
		{"too tall", `{"width": 5, "height": 1001}`, "height"},
		{"bad style name", `{"width": 10, "height": 5, "styles": {"-x": {}}}`, "styles[-x].name"},
		{"bad color", `{"width": 10, "height": 5, "styles": {"x": {"fg": "magenta"}}}`, "styles[x].fg"},
		{
			"unknown run style",
			`{"width": 20, "height": 5, "boxes": [{"x": 0, "y": 0, "width": 12, "lines": [{"runs": [{"style": "nope", "text": "a"}]}]}]}`,
			"boxes[0].lines[0].runs[0].style",
		},
		{
			"wide text",
			`{"width": 20, "height": 5, "boxes": [{"x": 0, "y": 0, "width": 12, "lines": [{"runs": [{"text": "中"}]}]}]}`,
			"boxes[0].lines[0].runs[0].text",
		},
		{
			"negative line indent",
			`{"width": 20, "height": 5, "boxes": [{"x": 0, "y": 0, "width": 12, "lines": [{"indent": -1, "runs": []}]}]}`,
			"boxes[0].lines[0].indent",
		},
		{"box overflows", `{"width": 10, "height": 5, "boxes": [{"x": 5, "y": 0, "width": 10, "lines": []}]}`, "boxes[0].width"},
		{"box outside", `{"width": 10, "height": 5, "boxes": [{"x": 0, "y": 5, "width": 10, "lines": []}]}`, "boxes[0].position"},
		{"line outside", `{"width": 10, "height": 5, "lines": [{"from": [0, 0], "to": [10, 0]}]}`, "lines[0].to"},
		{"bad bias", `{"width": 10, "height": 5, "lines": [{"from": [0, 0], "to": [4, 4], "vertical": "up"}]}`, "lines[0].vertical"},
		{"two characters", `{"width": 10, "height": 5, "chars": [{"x": 0, "y": 0, "char": "OO"}]}`, "chars[0].char"},
		{"empty character", `{"width": 10, "height": 5, "chars": [{"x": 0, "y": 0, "char": ""}]}`, "chars[0].char"},
		{"control character", `{"width": 10, "height": 5, "chars": [{"x": 0, "y": 0, "char": "\t"}]}`, "chars[0].char"},
		{"char outside", `{"width": 10, "height": 5, "chars": [{"x": -1, "y": 0, "char": "O"}]}`, "chars[0].position"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			var ve *validation.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected a ValidationError, got %v", err)
			}
			if ve.Field != tt.field {
				t.Fatalf("expected field %q, got %q (%v)", tt.field, ve.Field, err)
			}
		})
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte(`{"width": 10, "height": 5, "colour": "red"}`))
	if err == nil || !strings.Contains(err.Error(), "colour") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if _, err := Parse([]byte(`{"width": 10,`)); err == nil {
		t.Fatalf("expected error for truncated JSON")
	}
}

func TestBuildRejectsBoxTooTall(t *testing.T) {
	s := &Scene{
		Width:  12,
		Height: 2,
		Boxes: []Box{{Width: 12, Lines: []Line{
			{Runs: []Run{{Text: "one two three four five six"}}},
		}}},
	}
	_, err := s.Build()
	var ve *validation.ValidationError
	if !errors.As(err, &ve) || ve.Field != "boxes[0]" {
		t.Fatalf("expected boxes[0] error, got %v", err)
	}
}

func TestBuildRejectsDeepIndent(t *testing.T) {
	s := &Scene{
		Width:  12,
		Height: 5,
		Boxes: []Box{{Width: 12, Indent: "  ", Lines: []Line{
			{Indent: 2, Runs: []Run{{Text: "deep"}}},
		}}},
	}
	_, err := s.Build()
	var ve *validation.ValidationError
	if !errors.As(err, &ve) || ve.Field != "boxes[0].width" {
		t.Fatalf("expected boxes[0].width error, got %v", err)
	}
}

func TestCharsDrawnOverLines(t *testing.T) {
	s := &Scene{
		Width:  6,
		Height: 1,
		Lines:  []Connector{{From: [2]int{0, 0}, To: [2]int{5, 0}}},
		Chars:  []Char{{X: 2, Y: 0, Char: "+"}},
	}
	got := trimmed(build(t, s))
	if got[0] != " -+--" {
		t.Fatalf("expected %q, got %q", " -+--", got[0])
	}
}

func TestStrategyFor(t *testing.T) {
	tests := []struct {
		vertical, horizontal string
		want                 canvas.LineStrategy
	}{
		{"", "", canvas.LineStrategy{}},
		{"balanced", "balanced", canvas.LineStrategy{}},
		{"start", "top", canvas.LineStrategy{Vertical: canvas.FavorStart, Horizontal: canvas.FavorTop}},
		{"end", "bottom", canvas.LineStrategy{Vertical: canvas.FavorEnd, Horizontal: canvas.FavorBottom}},
	}
	for _, tt := range tests {
		got := strategyFor(Connector{Vertical: tt.vertical, Horizontal: tt.horizontal})
		if got != tt.want {
			t.Fatalf("strategyFor(%q, %q): expected %+v, got %+v", tt.vertical, tt.horizontal, tt.want, got)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "scene.json")
	if err := os.WriteFile(good, []byte(smallScene), 0o644); err != nil {
		t.Fatalf("write scene: %v", err)
	}
	s, err := Load(good)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Width != 16 || s.Height != 4 || len(s.Chars) != 2 {
		t.Fatalf("unexpected scene %+v", s)
	}

	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"width": 0, "height": 1}`), 0o644); err != nil {
		t.Fatalf("write scene: %v", err)
	}
	_, err = Load(bad)
	if err == nil || !strings.Contains(err.Error(), bad) {
		t.Fatalf("expected error naming %s, got %v", bad, err)
	}
	var ve *validation.ValidationError
	if !errors.As(err, &ve) || ve.Field != "width" {
		t.Fatalf("expected wrapped width error, got %v", err)
	}
}

func TestDemoBuilds(t *testing.T) {
	c := build(t, Demo())
	if c.Width() != 60 || c.Height() != 16 {
		t.Fatalf("expected 60x16, got %dx%d", c.Width(), c.Height())
	}
	got := trimmed(c)

	for _, title := range []string{"TextBox", "Canvas", "Terminal"} {
		if !strings.Contains(strings.Join(got, "\n"), title) {
			t.Fatalf("expected %q in demo:\n%s", title, strings.Join(got, "\n"))
		}
	}
	if want := " TextBox" + strings.Repeat(" ", 32) + "Canvas"; got[1] != want {
		t.Fatalf("row 1: expected %q, got %q", want, got[1])
	}
	if want := strings.Repeat(" ", 10) + `\` + strings.Repeat(" ", 36) + "/"; got[8] != want {
		t.Fatalf("row 8: expected %q, got %q", want, got[8])
	}
	want := strings.Repeat(" ", 12) + "`" + strings.Repeat("-", 16) + "O" + strings.Repeat("-", 15) + "`"
	if got[10] != want {
		t.Fatalf("row 10: expected %q, got %q", want, got[10])
	}
	if want := strings.Repeat(" ", 21) + "  SGR colours via"; got[12] != want {
		t.Fatalf("row 12: expected %q, got %q", want, got[12])
	}
}
