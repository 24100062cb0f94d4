package diagfmt

import (
	"path/filepath"
	"strings"
)

func displayPath(path string, mode PathMode, base string) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeRelative:
		if rel, ok := relative(path, base); ok {
			return rel
		}
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeAuto:
		if rel, ok := relative(path, base); ok && !strings.HasPrefix(rel, "../") {
			return rel
		}
	}
	return path
}

func relative(path, base string) (string, bool) {
	if base == "" || !filepath.IsAbs(path) {
		return path, base == ""
	}
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
