package discovery

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultIgnoreDirs are skipped unless WalkOptions.IgnoreDirs says otherwise.
var DefaultIgnoreDirs = []string{
	".git", ".svn", ".hg",
	".vs", ".vscode", ".idea",
	"node_modules",
	"obj", "Debug", "bin", "x64",
}

// WalkOptions configures directory traversal behavior
type WalkOptions struct {
	IgnoreDirs     []string // Directory names to skip; nil means DefaultIgnoreDirs
	IgnorePatterns []string // File name patterns to skip (e.g., "*.o")
	IncludeHidden  bool     // Include dot files and dot directories
}

// Walk traverses root in lexical order and calls visitor for every file and
// directory that is not ignored. Return filepath.SkipDir from visitor to
// skip a directory.
func Walk(root string, opts WalkOptions, visitor func(path string, d fs.DirEntry) error) error {
	ignoreDirs := opts.IgnoreDirs
	if ignoreDirs == nil {
		ignoreDirs = DefaultIgnoreDirs
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return visitor(path, d)
		}

		name := d.Name()
		if !opts.IncludeHidden && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if slices.Contains(ignoreDirs, name) {
				return filepath.SkipDir
			}
			return visitor(path, d)
		}

		for _, pattern := range opts.IgnorePatterns {
			if matched, _ := filepath.Match(pattern, name); matched {
				return nil
			}
		}

		return visitor(path, d)
	})
}
