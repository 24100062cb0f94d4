package project

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Discover returns the absolute paths of every file under root matched by an
// include pattern and by no exclude pattern, sorted.
func Discover(root string, include, exclude []string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	fsys := os.DirFS(absRoot)
	seen := make(map[string]bool)
	var out []string
	for _, pattern := range include {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid include pattern %q", pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, rel := range matches {
			if seen[rel] {
				continue
			}
			seen[rel] = true
			excluded, err := matchAny(exclude, rel)
			if err != nil {
				return nil, err
			}
			if !excluded {
				out = append(out, filepath.Join(absRoot, filepath.FromSlash(rel)))
			}
		}
	}
	slices.Sort(out)
	return out, nil
}

// Matches reports whether path, absolute or relative to root, is selected by
// the include and exclude patterns.
func Matches(root, path string, include, exclude []string) (bool, error) {
	rel := path
	if filepath.IsAbs(path) {
		r, err := filepath.Rel(root, path)
		if err != nil {
			return false, err
		}
		rel = r
	}
	rel = filepath.ToSlash(rel)
	if strings.HasPrefix(rel, "../") {
		return false, nil
	}
	in, err := matchAny(include, rel)
	if err != nil || !in {
		return false, err
	}
	out, err := matchAny(exclude, rel)
	return !out, err
}

func matchAny(patterns []string, rel string) (bool, error) {
	for _, p := range patterns {
		ok, err := doublestar.Match(p, rel)
		if err != nil {
			return false, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// OutputPath replaces the extension of src with ext.
func OutputPath(src, ext string) string {
	return strings.TrimSuffix(src, filepath.Ext(src)) + ext
}

// IsDir is a small helper shared by the CLI and the watcher.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
