package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ddd/internal/buildpipeline"
	"ddd/internal/driver"
	"ddd/internal/project"
	"ddd/internal/ui"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [path]",
	Short: "Generate code for a contract file or a project directory",
	Long: `Build compiles a single .ddd file or every source matched by the project
include patterns under a directory, writing one output file next to each source.
Outputs whose content did not change are left untouched.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().Int("jobs", 0, "max parallel files (0=auto)")
	buildCmd.Flags().String("ui", "", "progress UI (auto|on|off, default $DDD_UI or auto)")
	buildCmd.Flags().Bool("stdout", false, "print generated code instead of writing it (single file only)")
	buildCmd.Flags().Bool("dry-run", false, "compile without writing any file")
}

func runBuild(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	s, err := loadSettings(cmd, startDirFor(target))
	if err != nil {
		return err
	}
	defer func() { _ = s.logger.Sync() }()

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readProgressMode(uiFlag)
	if err != nil {
		return err
	}
	toStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return fmt.Errorf("failed to get stdout flag: %w", err)
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}

	opts := driver.BuildOptions{
		Jobs:           jobs,
		DryRun:         dryRun || toStdout,
		MaxDiagnostics: s.maxDiagnostics,
		Logger:         s.logger,
	}

	if !project.IsDir(target) {
		return buildFile(cmd.Context(), target, s, opts, toStdout)
	}
	if toStdout {
		return fmt.Errorf("--stdout needs a single file, %s is a directory", target)
	}
	return buildDir(cmd.Context(), target, s, opts, useProgressUI(mode, s, os.Stdout))
}

func buildFile(ctx context.Context, path string, s *settings, opts driver.BuildOptions, toStdout bool) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	b, err := driver.NewBuilder(s.cfg, opts)
	if err != nil {
		return err
	}
	fr := b.BuildFile(ctx, abs)
	printFileResult(os.Stderr, fr, s)
	if fr.Err != nil {
		return fr.Err
	}
	if toStdout {
		fmt.Fprint(os.Stdout, fr.Result.Output)
	} else if !opts.DryRun {
		if _, err := b.WriteCompanions(filepath.Dir(fr.Output)); err != nil {
			return err
		}
		if !s.quiet {
			state := "unchanged"
			if fr.Written {
				state = "written"
			}
			fmt.Fprintf(os.Stdout, "%s (%s)\n", fr.Output, state)
		}
	}
	if s.timings {
		fmt.Fprint(os.Stderr, fr.Result.Timer.Summary())
	}
	return nil
}

func buildDir(ctx context.Context, dir string, s *settings, opts driver.BuildOptions, useTUI bool) error {
	var (
		summary *driver.Summary
		err     error
	)
	if useTUI {
		events := make(chan buildpipeline.Event, 64)
		opts.Sink = buildpipeline.ChannelSink{Ch: events}
		done := make(chan struct{})
		go func() {
			defer close(done)
			defer close(events)
			summary, err = driver.BuildDir(ctx, dir, s.cfg, opts)
		}()
		if uiErr := ui.Run(fmt.Sprintf("build %s", dir), events, os.Stdout); uiErr != nil {
			// UI умер, но сборку всё равно дожидаемся
			for range events {
			}
		}
		<-done
	} else {
		summary, err = driver.BuildDir(ctx, dir, s.cfg, opts)
	}
	if summary == nil {
		return err
	}

	for _, fr := range summary.Files {
		if fr.Err != nil {
			printFileResult(os.Stderr, fr, s)
		}
	}
	if !s.quiet {
		fmt.Fprintf(os.Stdout, "%d files: %d written, %d unchanged, %d failed (%.1f ms)\n",
			len(summary.Files), summary.Written, summary.Unchanged, summary.Failed, toMillis(summary.Elapsed))
	}
	if s.timings {
		var total buildpipeline.Timings
		for _, fr := range summary.Files {
			if fr.Result == nil {
				continue
			}
			for _, stage := range buildpipeline.Stages {
				total.Set(stage, total.Duration(stage)+fr.Result.Timings.Duration(stage))
			}
		}
		printStageTimings(os.Stderr, total)
	}
	if err != nil && summary.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", summary.Failed, len(summary.Files))
	}
	return err
}
