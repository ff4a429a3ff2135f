package manifest

import (
	"strings"
	"unicode/utf8"
)

const separators = `/\`

// Classify tags every raw entry with its role and group key. Order is
// preserved. Malformed relative paths are Ignored instead of failing the
// batch.
func Classify(raw []RawEntry) []FileEntry {
	entries := make([]FileEntry, 0, len(raw))
	for _, r := range raw {
		entry := FileEntry{
			AbsolutePath: r.AbsolutePath,
			RelativePath: r.RelativePath,
			Role:         Ignored,
		}
		if wellFormed(r.RelativePath) {
			entry.GroupKey, entry.Role = splitPath(r.RelativePath)
		}
		entries = append(entries, entry)
	}
	return entries
}

// RoleOf classifies a single relative path.
func RoleOf(relativePath string) Role {
	if !wellFormed(relativePath) {
		return Ignored
	}
	_, role := splitPath(relativePath)
	return role
}

func splitPath(rel string) (groupKey string, role Role) {
	base := rel
	if i := strings.LastIndexAny(rel, separators); i >= 0 {
		groupKey = rel[:i]
		base = rel[i+1:]
	}

	switch {
	case base == "Makefile":
		role = BuildScript
	case strings.HasSuffix(base, ".c"), strings.HasSuffix(base, ".cpp"):
		role = CompileSource
	case strings.HasSuffix(base, ".h"):
		role = HeaderInterface
	default:
		return "", Ignored
	}
	return groupKey, role
}

// wellFormed rejects paths that are not plain relative file paths.
func wellFormed(rel string) bool {
	if rel == "" || !validXML(rel) {
		return false
	}
	if strings.ContainsAny(rel[:1], separators) {
		return false
	}
	// drive letters and volume-relative paths
	if strings.ContainsRune(rel, ':') {
		return false
	}

	segments := strings.FieldsFunc(rel, isSeparator)
	// doubled or trailing separators leave an empty segment behind
	if len(segments) != strings.Count(rel, "/")+strings.Count(rel, `\`)+1 {
		return false
	}
	for _, s := range segments {
		if s == "." || s == ".." {
			return false
		}
	}
	return true
}

// validXML reports whether s is valid UTF-8 made only of characters XML 1.0
// can carry. Anything else could not be emitted verbatim.
func validXML(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		switch {
		case r == '\t', r == '\n', r == '\r':
		case r < 0x20:
			return false
		case r >= 0xD800 && r <= 0xDFFF, r == 0xFFFE, r == 0xFFFF:
			return false
		}
	}
	return true
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}
