package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ddd/internal/driver"
	"ddd/internal/project"
	"ddd/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] [dir...]",
	Short: "Rebuild contract files whenever they change",
	Long: `Watch builds every directory once, then regenerates a source's output each
time its content changes. Saving a file without changing it does nothing.
Removing a source removes its generated file.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Int("jobs", 0, "max parallel files for the initial build (0=auto)")
	watchCmd.Flags().Duration("debounce", 0, "delay before processing changes (default from project file)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	dirs := args
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	for _, dir := range dirs {
		if !project.IsDir(dir) {
			return fmt.Errorf("%s is not a directory", dir)
		}
	}
	s, err := loadSettings(cmd, dirs[0])
	if err != nil {
		return err
	}
	defer func() { _ = s.logger.Sync() }()

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}
	if debounce > 0 {
		s.cfg.Watch.Debounce = debounce
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := driver.NewBuilder(s.cfg, driver.BuildOptions{
		Jobs:           jobs,
		MaxDiagnostics: s.maxDiagnostics,
		Logger:         s.logger,
	})
	if err != nil {
		return err
	}

	return watchDirs(ctx, dirs, s, func(ctx context.Context, dir string) (*watch.Watcher, error) {
		return startWatcher(ctx, dir, b, s)
	})
}

// watchDirs starts one watcher per directory and runs them until ctx ends or
// one of them fails. A failed start stops the watchers already running.
func watchDirs(ctx context.Context, dirs []string, s *settings, start func(context.Context, string) (*watch.Watcher, error)) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	for _, dir := range dirs {
		w, err := start(gctx, dir)
		if err != nil {
			cancel()
			_ = g.Wait()
			return err
		}
		g.Go(func() error { return w.Run(gctx) })
		g.Go(func() error {
			for evt := range w.Events() {
				if evt.Err == nil && evt.Op == watch.OpBuild && !s.quiet {
					fmt.Fprintf(os.Stdout, "rebuilt %s\n", evt.Path)
				}
			}
			return nil
		})
	}
	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// startWatcher runs the initial build of dir and returns a watcher primed
// with every source it saw.
func startWatcher(ctx context.Context, dir string, b *driver.Builder, s *settings) (*watch.Watcher, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	summary, err := b.BuildDir(ctx, root)
	if summary == nil {
		return nil, err
	}
	sources := make([]string, 0, len(summary.Files))
	for _, fr := range summary.Files {
		sources = append(sources, fr.Source)
		if fr.Err != nil {
			printFileResult(os.Stderr, fr, s)
		}
	}
	if err != nil {
		s.logger.Warn("Initial build finished with errors", zap.String("root", root), zap.Int("failed", summary.Failed))
	}

	w, err := watch.New(watch.Config{
		Root:     root,
		Include:  s.cfg.Project.Include,
		Exclude:  s.cfg.Project.Exclude,
		Debounce: s.cfg.Watch.Debounce,
		Logger:   s.logger,
		OnRemove: func(path string) {
			out := project.OutputPath(path, s.cfg.Project.OutputExt)
			if err := os.Remove(out); err != nil && !errors.Is(err, os.ErrNotExist) {
				s.logger.Warn("Unable to remove output", zap.String("output", out), zap.Error(err))
			}
		},
	}, func(ctx context.Context, path string) error {
		fr := b.BuildFile(ctx, path)
		if fr.Err != nil {
			printFileResult(os.Stderr, fr, s)
			return fr.Err
		}
		if fr.Written {
			_, err := b.WriteCompanions(filepath.Dir(fr.Output))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	w.Prime(sources...)
	return w, nil
}
