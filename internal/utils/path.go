package utils

import (
	"path/filepath"
	"strings"
)

// SlashRel returns target relative to base using forward slashes.
// When target does not live below base (or base is empty) the cleaned,
// slash-separated absolute form of target is returned instead.
func SlashRel(base, target string) string {
	if base != "" {
		if rel, err := filepath.Rel(base, target); err == nil && !escapes(rel) {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(filepath.Clean(target))
}

// RelWithin returns target relative to base using forward slashes, and
// false when base is empty or target is not below it.
func RelWithin(base, target string) (string, bool) {
	if base == "" {
		return "", false
	}
	rel, err := filepath.Rel(base, target)
	if err != nil || escapes(rel) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// IsHiddenName reports whether a single path element is hidden (dot-prefixed).
// "." and ".." are not names and never count as hidden.
func IsHiddenName(name string) bool {
	return name != "." && name != ".." && strings.HasPrefix(name, ".")
}

func escapes(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
