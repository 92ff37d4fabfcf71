package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zscript/textframe/internal/logging"
)

func (a *app) buildConfigCommand() *cobra.Command {
	var (
		width        int
		indent       string
		indentOnWrap int
		color        string
		save         bool
	)
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or update the render defaults",
		Long: `Show the effective settings after applying the config file.

Flags override individual settings; --save writes the result back to the
config file so later runs pick it up.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *a.cfg
			if cmd.Flags().Changed("width") {
				cfg.Render.Width = width
			}
			if cmd.Flags().Changed("indent") {
				cfg.Render.IndentString = indent
			}
			if cmd.Flags().Changed("indent-on-wrap") {
				cfg.Render.IndentOnWrap = indentOnWrap
			}
			if cmd.Flags().Changed("color") {
				cfg.Render.Color = color
			}
			if err := cfg.Validate(); err != nil {
				return usageError{err}
			}

			if save {
				if err := cfg.Paths.EnsureDirectories(); err != nil {
					return fmt.Errorf("create config directory: %w", err)
				}
				if err := cfg.Save(); err != nil {
					return fmt.Errorf("save config: %w", err)
				}
				logging.Info("saved settings to %s", cfg.Paths.ConfigPath)
				notef(a.stderr, a.colorEnabled("", a.stderr), "saved %s", cfg.Paths.ConfigPath)
			}

			fmt.Fprintf(a.stdout, "config:         %s\n", cfg.Paths.ConfigPath)
			fmt.Fprintf(a.stdout, "width:          %d\n", cfg.Render.Width)
			fmt.Fprintf(a.stdout, "indent:         %q\n", cfg.Render.IndentString)
			fmt.Fprintf(a.stdout, "indent_on_wrap: %d\n", cfg.Render.IndentOnWrap)
			fmt.Fprintf(a.stdout, "color:          %s\n", cfg.Render.Color)
			fmt.Fprintf(a.stdout, "log_level:      %s\n", cfg.LogLevel)
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "Default wrap width")
	cmd.Flags().StringVar(&indent, "indent", "", "Indent string for one nesting level")
	cmd.Flags().IntVar(&indentOnWrap, "indent-on-wrap", 0, "Extra indent levels on continuation rows")
	cmd.Flags().StringVar(&color, "color", "", "Default color mode: auto, always or never")
	cmd.Flags().BoolVar(&save, "save", false, "Write the settings to the config file")
	return cmd
}
