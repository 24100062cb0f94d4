package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestNames are the project file names searched for, in priority order.
var ManifestNames = []string{"ddd.toml", "ddd.yaml", "ddd.yml"}

// FindManifest walks up from startDir to locate a project manifest.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range ManifestNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Manifest is a located and decoded project file.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// LoadManifest finds the manifest above startDir and decodes it. Without a
// manifest it returns defaults rooted at startDir and ok=false.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		root, err := filepath.Abs(startDir)
		if err != nil {
			return nil, false, fmt.Errorf("failed to resolve start directory: %w", err)
		}
		return &Manifest{Root: root, Config: DefaultConfig()}, false, nil
	}
	cfg, err := Load(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}
