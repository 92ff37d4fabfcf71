package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/zscript/textframe/internal/canvas"
	"github.com/zscript/textframe/internal/cell"
	"github.com/zscript/textframe/internal/frame"
	"github.com/zscript/textframe/internal/logging"
	"github.com/zscript/textframe/internal/sgr"
	"github.com/zscript/textframe/internal/validation"
)

var (
	colorError  = lipgloss.Color("#f7768e")
	colorAccent = lipgloss.Color("#7aa2f7")
	colorMuted  = lipgloss.Color("#565f89")
)

// Errorf prints a human-readable error to w.
func Errorf(w io.Writer, color bool, format string, args ...any) {
	prefix := "Error:"
	if color {
		prefix = lipgloss.NewStyle().Bold(true).Foreground(colorError).Render(prefix)
	}
	fmt.Fprintf(w, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}

func notef(w io.Writer, color bool, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if color {
		msg = lipgloss.NewStyle().Foreground(colorMuted).Render(msg)
	}
	fmt.Fprintln(w, msg)
}

// outputOptions are the flags shared by commands that print a canvas.
type outputOptions struct {
	color  string
	border bool
	copy   bool
}

func addOutputFlags(cmd *cobra.Command, opts *outputOptions) {
	cmd.Flags().StringVar(&opts.color, "color", "", "Colorize output: auto, always or never (default from config)")
	cmd.Flags().BoolVar(&opts.border, "border", false, "Draw a border around the output")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the uncolored output to the clipboard")
}

func (o outputOptions) validate() error {
	if o.color == "" {
		return nil
	}
	if err := validation.ValidateColorMode(o.color); err != nil {
		return usageError{err}
	}
	return nil
}

// colorEnabled resolves a color mode; an empty mode falls back to config.
func (a *app) colorEnabled(mode string, w io.Writer) bool {
	if mode == "" && a.cfg != nil {
		mode = a.cfg.Render.Color
	}
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return a.isTerminal(w)
}

func printerFor(color bool) cell.Printer {
	if color {
		return sgr.Printer{}
	}
	return cell.Plain{}
}

func withBorder(text string, color bool) string {
	style := lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
	if color {
		style = style.BorderForeground(colorAccent)
	}
	return style.Render(strings.TrimSuffix(text, "\n")) + "\n"
}

// show prints a built canvas according to opts.
func (a *app) show(c *canvas.Canvas, opts outputOptions) error {
	color := a.colorEnabled(opts.color, a.stdout)
	text := frame.Render(c, printerFor(color))
	if opts.border {
		text = withBorder(text, color)
	}
	if _, err := io.WriteString(a.stdout, text); err != nil {
		return err
	}
	logging.Debug("rendered %dx%d canvas (color=%t border=%t)", c.Width(), c.Height(), color, opts.border)

	if opts.copy {
		if err := a.copyText(frame.Render(c, cell.Plain{})); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		notef(a.stderr, a.colorEnabled(opts.color, a.stderr), "copied %d rows to the clipboard", c.Height())
	}
	return nil
}
