package diagfmt

import (
	"path/filepath"
	"strings"
)

func formatPath(p string, mode PathMode, base string) string {
	if p == "" {
		return ""
	}
	switch mode {
	case PathModeBasename:
		return filepath.Base(p)
	case PathModeAbsolute:
		if abs, err := filepath.Abs(p); err == nil {
			return abs
		}
		return p
	case PathModeRelative:
		if rel, ok := relTo(p, base); ok {
			return rel
		}
		return p
	default:
		if rel, ok := relTo(p, base); ok && !strings.HasPrefix(rel, "..") {
			return rel
		}
		return p
	}
}

func relTo(p, base string) (string, bool) {
	if base == "" {
		return "", false
	}
	absP, err := filepath.Abs(p)
	if err != nil {
		return "", false
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(absBase, absP)
	if err != nil {
		return "", false
	}
	return rel, true
}
