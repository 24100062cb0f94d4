package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ddd/internal/logging"
	"ddd/internal/project"
)

// settings collects global flags and the resolved project configuration.
type settings struct {
	cfg            project.Config
	root           string
	manifest       string
	logger         *zap.Logger
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
}

func colorEnabled(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}

// loadSettings resolves the project file for startDir, or the --config path
// when given, and builds the logger from it.
func loadSettings(cmd *cobra.Command, startDir string) (*settings, error) {
	flags := cmd.Root().PersistentFlags()
	s := &settings{color: colorEnabled(cmd, os.Stderr)}
	var err error
	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if s.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	if configPath != "" {
		cfg, err := project.Load(configPath)
		if err != nil {
			return nil, err
		}
		abs, err := filepath.Abs(configPath)
		if err != nil {
			return nil, err
		}
		s.cfg, s.manifest, s.root = cfg, abs, filepath.Dir(abs)
	} else {
		m, _, err := project.LoadManifest(startDir)
		if err != nil {
			return nil, err
		}
		s.cfg, s.manifest, s.root = m.Config, m.Path, m.Root
	}

	level, err := flags.GetString("log-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-level flag: %w", err)
	}
	if level != "" {
		s.cfg.Log.Level = level
	}
	if s.quiet {
		s.cfg.Log.Level = logging.LevelNone
	}
	color := colorEnabled(cmd, os.Stdout)
	s.logger, err = logging.New(logging.Options{Level: s.cfg.Log.Level, Color: &color})
	if err != nil {
		return nil, err
	}
	if s.manifest != "" {
		s.logger.Debug("Using project file", zap.String("path", s.manifest))
	}
	return s, nil
}

// startDirFor returns the directory a manifest search should begin in.
func startDirFor(path string) string {
	if path == "" {
		return "."
	}
	if project.IsDir(path) {
		return path
	}
	return filepath.Dir(path)
}
