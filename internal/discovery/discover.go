package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/simonhull/firebird-suite/wren/internal/manifest"
)

// MakefileName is the build script the project is anchored on.
const MakefileName = "Makefile"

// ErrNoMakefile is returned when a tree holds no Makefile.
var ErrNoMakefile = errors.New("no Makefile found")

// PathStyle selects the separator used in relative paths.
type PathStyle string

const (
	WindowsStyle PathStyle = "windows"
	PosixStyle   PathStyle = "posix"
)

// ParsePathStyle accepts "windows" or "posix" (any case).
func ParsePathStyle(s string) (PathStyle, error) {
	switch style := PathStyle(strings.ToLower(strings.TrimSpace(s))); style {
	case WindowsStyle, PosixStyle:
		return style, nil
	case "":
		return WindowsStyle, nil
	default:
		return "", fmt.Errorf("unknown path style %q (want windows or posix)", s)
	}
}

// Convert rewrites a slash-separated path into the style.
func (s PathStyle) Convert(slashPath string) string {
	if s == PosixStyle {
		return slashPath
	}
	return strings.ReplaceAll(slashPath, "/", `\`)
}

// Options configures Discover.
type Options struct {
	WalkOptions
	Style PathStyle // defaults to WindowsStyle
}

// Discover lists every regular file under root, sorted by relative path.
func Discover(root string, opts Options) ([]manifest.RawEntry, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", root, err)
	}

	style := opts.Style
	if style == "" {
		style = WindowsStyle
	}

	var entries []manifest.RawEntry
	err = Walk(absRoot, opts.WalkOptions, func(path string, d fs.DirEntry) error {
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return err
		}
		entries = append(entries, manifest.RawEntry{
			AbsolutePath: path,
			RelativePath: style.Convert(filepath.ToSlash(rel)),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].RelativePath < entries[j].RelativePath
	})
	return entries, nil
}

// FindMakefile returns the Makefile closest to dir. Among Makefiles at the
// same depth the lexically first wins. dir may also name a Makefile
// directly.
func FindMakefile(dir string, opts WalkOptions) (string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		if info.Name() == MakefileName {
			return filepath.Abs(dir)
		}
		return "", fmt.Errorf("%s is not a directory or a Makefile", dir)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	found, depth := "", -1
	err = Walk(absDir, opts, func(path string, d fs.DirEntry) error {
		if d.IsDir() {
			if depth >= 0 && pathDepth(absDir, path)+1 >= depth {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != MakefileName {
			return nil
		}
		if dd := pathDepth(absDir, path); depth < 0 || dd < depth {
			found, depth = path, dd
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("searching %s: %w", dir, err)
	}
	if found == "" {
		return "", fmt.Errorf("%w in %s", ErrNoMakefile, dir)
	}
	return found, nil
}

func pathDepth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(filepath.ToSlash(rel), "/")
}
