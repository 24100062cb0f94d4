package driver

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// writeIfChanged replaces path with content unless the file already holds
// exactly those bytes. The write goes through a temp file and a rename so a
// concurrent reader never sees a partial file.
func writeIfChanged(path string, content []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(existing, content):
		return false, nil
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, ".ddd-*")
	if err != nil {
		return false, fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmp := f.Name()
	defer func() {
		// no-op after a successful rename
		_ = os.Remove(tmp)
	}()
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return false, fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("failed to close %s: %w", tmp, err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil { // #nosec G302 -- generated sources are meant to be shared
		return false, fmt.Errorf("failed to chmod %s: %w", tmp, err)
	}
	// Атомарная замена
	if err := os.Rename(tmp, path); err != nil {
		return false, fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return true, nil
}
