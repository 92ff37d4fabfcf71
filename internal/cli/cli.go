package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/zscript/textframe/internal/config"
	"github.com/zscript/textframe/internal/logging"
	"github.com/zscript/textframe/internal/safego"
	"github.com/zscript/textframe/internal/validation"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// app carries the streams and settings shared by every command.
type app struct {
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	version string

	configPath string
	logLevel   string
	cfg        *config.Config

	isTerminal func(w io.Writer) bool
	copyText   func(text string) error
	newWatcher func(onChanged func(string)) (sceneWatcher, error)
}

func newApp(stdin io.Reader, stdout, stderr io.Writer, version string) *app {
	return &app{
		stdin:      stdin,
		stdout:     stdout,
		stderr:     stderr,
		version:    version,
		isTerminal: isTerminal,
		copyText:   clipboard.WriteAll,
		newWatcher: newFileWatcher,
	}
}

// Run executes the textframe CLI. It returns a process exit code.
func Run(args []string, version string) int {
	return newApp(os.Stdin, os.Stdout, os.Stderr, version).run(context.Background(), args)
}

func (a *app) run(ctx context.Context, args []string) int {
	root := a.buildRootCommand()
	root.SetArgs(args)
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	cmd, err := root.ExecuteContextC(ctx)
	defer func() {
		_ = logging.Close()
	}()
	if err == nil {
		return ExitOK
	}

	logging.WithError(err, cmd.CommandPath())
	Errorf(a.stderr, a.colorEnabled("", a.stderr), "%v", err)
	if isUsageError(err) {
		fmt.Fprintf(a.stderr, "Usage: %s\n", cmd.UseLine())
		return ExitUsage
	}
	return ExitError
}

func (a *app) buildRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "textframe",
		Short: "Render styled text boxes and connector diagrams as terminal text",
		Long: `textframe - lay out wrapped text and ASCII connectors on a character grid

Commands:
  textframe render scene.json   Render a scene file
  textframe wrap [file]         Word-wrap plain text
  textframe demo                Render the built-in example
  textframe config              Show or save the render defaults`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetHelpCommand(&cobra.Command{Hidden: true})
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default ~/.textframe/config.json)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error or off")

	root.AddCommand(a.buildRenderCommand())
	root.AddCommand(a.buildWrapCommand())
	root.AddCommand(a.buildDemoCommand())
	root.AddCommand(a.buildConfigCommand())
	root.AddCommand(a.buildVersionCommand())
	return root
}

// setup loads config and starts logging before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		if err := validation.ValidateLogLevel(a.logLevel); err != nil {
			return usageError{err}
		}
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if level != logging.LevelOff {
		if err := logging.Initialize(cfg.Paths.LogDir, level); err != nil {
			// Logging is best effort; rendering still works without it.
			fmt.Fprintf(a.stderr, "warning: logging disabled: %v\n", err)
		}
	}
	safego.SetPanicHandler(a.reportPanic)
	logging.Info("%s (version %s)", cmd.CommandPath(), a.version)
	return nil
}

// reportPanic points the user at the log file holding the stack trace.
func (a *app) reportPanic(name string, _ any, _ []byte) {
	if path := logging.Path(); path != "" {
		notef(a.stderr, a.colorEnabled("", a.stderr), "stack trace for %s written to %s", name, path)
	}
}

func (a *app) buildVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  usageArgs(cobra.NoArgs),
		// version must work even with a broken config file.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(a.stdout, "textframe %s\n", a.version)
			return nil
		},
	}
}

// usageError marks errors caused by how the command was invoked.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

func isUsageError(err error) bool {
	var ue usageError
	if errors.As(err, &ue) {
		return true
	}
	// cobra reports unknown subcommands before any hook runs.
	return strings.HasPrefix(err.Error(), "unknown command")
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}
