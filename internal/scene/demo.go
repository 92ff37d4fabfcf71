package scene

// Demo returns the built-in example diagram shown by `textframe demo`.
func Demo() *Scene {
	label := func(title, body string) []Line {
		return []Line{
			{Runs: []Run{{Style: "title", Text: title}}},
			{Indent: 1, Runs: []Run{{Text: body}}},
		}
	}
	return &Scene{
		Width:  60,
		Height: 16,
		Styles: map[string]StyleSpec{
			"title": {Fg: "cyan", Bold: true},
			"edge":  {Fg: "green"},
			"node":  {Fg: "yellow", Bold: true},
			"tag":   {Fg: "purple"},
		},
		Boxes: []Box{
			{X: 1, Y: 1, Width: 18, Indent: "  ", IndentOnWrap: 1,
				Lines: label("TextBox", "wraps styled runs, hyphenating long words")},
			{X: 40, Y: 1, Width: 18, Indent: "  ", IndentOnWrap: 1,
				Lines: label("Canvas", "composites frames and connectors")},
			{X: 21, Y: 11, Width: 18, Indent: "  ", IndentStyle: "tag", IndentOnWrap: 1,
				Lines: label("Terminal", "SGR colours via x/ansi")},
		},
		Lines: []Connector{
			{From: [2]int{9, 7}, To: [2]int{29, 10}, Style: "edge", Horizontal: "bottom"},
			{From: [2]int{48, 7}, To: [2]int{29, 10}, Style: "edge", Horizontal: "bottom"},
		},
		Chars: []Char{
			{X: 9, Y: 7, Char: "O", Style: "node"},
			{X: 48, Y: 7, Char: "O", Style: "node"},
			{X: 29, Y: 10, Char: "O", Style: "node"},
		},
	}
}
