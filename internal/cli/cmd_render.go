package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/zscript/textframe/internal/logging"
	"github.com/zscript/textframe/internal/safego"
	"github.com/zscript/textframe/internal/scene"
	"github.com/zscript/textframe/internal/watch"
)

func (a *app) buildRenderCommand() *cobra.Command {
	var opts outputOptions
	var watchFile bool
	cmd := &cobra.Command{
		Use:   "render <scene.json>",
		Short: "Render a scene file",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			if err := a.renderFile(args[0], opts); err != nil {
				return err
			}
			if !watchFile {
				return nil
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watchScene(ctx, args[0], opts)
		},
	}
	addOutputFlags(cmd, &opts)
	cmd.Flags().BoolVar(&watchFile, "watch", false, "Re-render whenever the scene file changes")
	return cmd
}

func (a *app) renderFile(path string, opts outputOptions) error {
	s, err := scene.Load(path)
	if err != nil {
		return err
	}
	logging.Info("loaded scene %s (%dx%d, %d boxes, %d lines, %d chars)",
		path, s.Width, s.Height, len(s.Boxes), len(s.Lines), len(s.Chars))
	c, err := s.Build()
	if err != nil {
		return err
	}
	return a.show(c, opts)
}

// sceneWatcher is the part of watch.FileWatcher that watchScene drives.
type sceneWatcher interface {
	Watch(path string) error
	Run(ctx context.Context) error
	Close() error
}

func newFileWatcher(onChanged func(string)) (sceneWatcher, error) {
	fw, err := watch.NewFileWatcher(onChanged)
	if err != nil {
		return nil, err
	}
	return fw, nil
}

// watchScene re-renders path on every change until ctx is done or the
// watcher fails. Render failures are reported and the previous output stays
// on screen.
func (a *app) watchScene(ctx context.Context, path string, opts outputOptions) error {
	changes := make(chan struct{}, 1)
	fw, err := a.newWatcher(func(string) {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = fw.Close()
	}()
	if err := fw.Watch(path); err != nil {
		return err
	}

	stopped := safego.Go("watch "+path, func() error {
		if err := fw.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	notef(a.stderr, a.colorEnabled(opts.color, a.stderr), "watching %s (ctrl-c to stop)", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-stopped:
			if ctx.Err() != nil {
				return nil
			}
			if err == nil {
				err = errors.New("watcher closed")
			}
			return fmt.Errorf("watch %s: %w", path, err)
		case <-changes:
			err := safego.Call("render "+path, func() error {
				if a.isTerminal(a.stdout) {
					_, _ = io.WriteString(a.stdout, ansi.EraseEntireScreen+ansi.CursorHomePosition)
				}
				return a.renderFile(path, opts)
			})
			if err != nil {
				logging.WithError(err, "re-render "+path)
				Errorf(a.stderr, a.colorEnabled(opts.color, a.stderr), "%v", err)
			}
		}
	}
}

func (a *app) buildDemoCommand() *cobra.Command {
	var opts outputOptions
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Render the built-in example diagram",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			c, err := scene.Demo().Build()
			if err != nil {
				return err
			}
			return a.show(c, opts)
		},
	}
	addOutputFlags(cmd, &opts)
	return cmd
}
