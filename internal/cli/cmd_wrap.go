package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zscript/textframe/internal/frame"
	"github.com/zscript/textframe/internal/logging"
	"github.com/zscript/textframe/internal/textbox"
	"github.com/zscript/textframe/internal/validation"
)

func (a *app) buildWrapCommand() *cobra.Command {
	var (
		width        int
		indent       string
		indentOnWrap int
	)
	cmd := &cobra.Command{
		Use:   "wrap [file|-]",
		Short: "Word-wrap plain text to a fixed width",
		Long: `Word-wrap plain text to a fixed width.

Paragraphs are separated by blank lines. Each leading tab or pair of spaces
on a paragraph's first line nests it one indent level deeper.`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := a.cfg.Render
			if cmd.Flags().Changed("width") {
				settings.Width = width
			}
			if cmd.Flags().Changed("indent") {
				settings.IndentString = indent
			}
			if cmd.Flags().Changed("indent-on-wrap") {
				settings.IndentOnWrap = indentOnWrap
			}
			check := *a.cfg
			check.Render = settings
			if err := check.Validate(); err != nil {
				return usageError{err}
			}

			name, input, err := a.readInput(args)
			if err != nil {
				return err
			}
			box, err := wrapText(validation.SanitizeText(input), settings.Width, settings.IndentString, settings.IndentOnWrap)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			logging.Debug("wrapped %s to %d rows at width %d", name, box.Height(), settings.Width)
			for _, l := range frame.Lines(box) {
				fmt.Fprintln(a.stdout, strings.TrimRight(l, " "))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "Row width (default from config)")
	cmd.Flags().StringVar(&indent, "indent", "", "Indent string for one level (default from config)")
	cmd.Flags().IntVar(&indentOnWrap, "indent-on-wrap", 0, "Extra indent levels on wrapped rows (default from config)")
	return cmd
}

func (a *app) readInput(args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(a.stdin)
		return "stdin", string(data), err
	}
	path, err := validation.ExpandHome(args[0])
	if err != nil {
		return args[0], "", err
	}
	data, err := os.ReadFile(path)
	return args[0], string(data), err
}

func wrapText(input string, width int, indent string, indentOnWrap int) (*textbox.TextBox, error) {
	box := textbox.New(indent).SetIndentOnWrap(indentOnWrap)
	for _, p := range paragraphs(input) {
		if err := validation.ValidateGlyphs(fmt.Sprintf("line %d", p.line), p.text); err != nil {
			return nil, err
		}
		box.StartNewLineIndent(p.indent).Append(p.text)
	}
	if !box.SetWidth(width) {
		return nil, fmt.Errorf("indents leave fewer than %d columns at width %d", textbox.MinTextWidth, width)
	}
	return box, nil
}

type paragraph struct {
	indent int
	text   string
	line   int // first input line, 1-based
}

// paragraphs splits text on blank lines and joins the words of each
// paragraph with single spaces.
func paragraphs(text string) []paragraph {
	var (
		out   []paragraph
		cur   *paragraph
		words []string
	)
	flush := func() {
		if cur == nil {
			return
		}
		cur.text = strings.Join(words, " ")
		out = append(out, *cur)
		cur, words = nil, nil
	}
	for i, ln := range strings.Split(text, "\n") {
		if strings.TrimSpace(ln) == "" {
			flush()
			continue
		}
		if cur == nil {
			cur = &paragraph{indent: indentLevel(ln), line: i + 1}
		}
		words = append(words, strings.Fields(ln)...)
	}
	flush()
	return out
}

// indentLevel counts one level per leading tab or pair of spaces.
func indentLevel(line string) int {
	tabs, spaces := 0, 0
	for _, r := range line {
		switch r {
		case '\t':
			tabs++
		case ' ':
			spaces++
		default:
			return tabs + spaces/2
		}
	}
	return tabs + spaces/2
}
