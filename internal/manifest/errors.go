package manifest

import "fmt"

// DuplicateEntryError is returned when two included entries share a
// relative path.
type DuplicateEntryError struct {
	Path string
}

func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("duplicate relative path %q", e.Path)
}

// InconsistentGroupingError means the filters document would reference a
// group that was never declared, or two groups would share an identifier.
// It points at a bug in group derivation, not at bad input.
type InconsistentGroupingError struct {
	Key    string
	Path   string
	Reason string
}

func (e *InconsistentGroupingError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("inconsistent grouping for %q (group %q): %s", e.Path, e.Key, e.Reason)
	}
	return fmt.Sprintf("inconsistent grouping for group %q: %s", e.Key, e.Reason)
}

// CheckDuplicates fails on the first relative path that appears twice among
// included entries. Ignored entries never conflict.
func CheckDuplicates(entries []FileEntry) error {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if !e.Included() {
			continue
		}
		if _, ok := seen[e.RelativePath]; ok {
			return &DuplicateEntryError{Path: e.RelativePath}
		}
		seen[e.RelativePath] = struct{}{}
	}
	return nil
}
