package discovery

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/simonhull/firebird-suite/wren/internal/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func relPaths(entries []manifest.RawEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.RelativePath)
	}
	return out
}

func TestDiscover_PathStyles(t *testing.T) {
	root := makeTree(t, "Makefile", "src/main.c", "src/util/util.h", "README.md")

	tests := []struct {
		style PathStyle
		want  []string
	}{
		{WindowsStyle, []string{"Makefile", "README.md", `src\main.c`, `src\util\util.h`}},
		{PosixStyle, []string{"Makefile", "README.md", "src/main.c", "src/util/util.h"}},
		{"", []string{"Makefile", "README.md", `src\main.c`, `src\util\util.h`}},
	}

	for _, tt := range tests {
		t.Run(string(tt.style), func(t *testing.T) {
			entries, err := Discover(root, Options{Style: tt.style})
			require.NoError(t, err)
			assert.Equal(t, tt.want, relPaths(entries))
		})
	}
}

func TestDiscover_AbsolutePaths(t *testing.T) {
	root := makeTree(t, "src/main.c")

	entries, err := Discover(root, Options{Style: PosixStyle})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.True(t, filepath.IsAbs(entries[0].AbsolutePath))
	_, err = os.Stat(entries[0].AbsolutePath)
	assert.NoError(t, err)
}

func TestDiscover_FeedsClassifier(t *testing.T) {
	root := makeTree(t, "Makefile", "src/a.c", "src/a.h", "obj/a.o", "notes.txt")

	raw, err := Discover(root, Options{Style: PosixStyle})
	require.NoError(t, err)

	entries := manifest.Classify(raw)
	var included []string
	for _, e := range entries {
		if e.Included() {
			included = append(included, e.RelativePath)
		}
	}
	assert.Equal(t, []string{"Makefile", "src/a.c", "src/a.h"}, included)
}

func TestDiscover_MissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"), Options{})
	assert.Error(t, err)
}

func TestFindMakefile(t *testing.T) {
	t.Run("prefers the shallowest", func(t *testing.T) {
		root := makeTree(t, "Build/Makefile", "Makefile", "a/b/Makefile")

		got, err := FindMakefile(root, WalkOptions{})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "Makefile"), got)
	})

	t.Run("lexical order breaks ties", func(t *testing.T) {
		root := makeTree(t, "b/Makefile", "a/Makefile", "a/deeper/Makefile")

		got, err := FindMakefile(root, WalkOptions{})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "a", "Makefile"), got)
	})

	t.Run("file argument", func(t *testing.T) {
		root := makeTree(t, "sub/Makefile")

		got, err := FindMakefile(filepath.Join(root, "sub", "Makefile"), WalkOptions{})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "sub", "Makefile"), got)
	})

	t.Run("other file argument", func(t *testing.T) {
		root := makeTree(t, "main.c")

		_, err := FindMakefile(filepath.Join(root, "main.c"), WalkOptions{})
		assert.Error(t, err)
	})

	t.Run("none found", func(t *testing.T) {
		root := makeTree(t, "src/main.c", "makefile")

		_, err := FindMakefile(root, WalkOptions{})
		assert.True(t, errors.Is(err, ErrNoMakefile))
	})

	t.Run("ignored directories are not searched", func(t *testing.T) {
		root := makeTree(t, "obj/Makefile")

		_, err := FindMakefile(root, WalkOptions{})
		assert.ErrorIs(t, err, ErrNoMakefile)
	})
}

func TestParsePathStyle(t *testing.T) {
	style, err := ParsePathStyle("POSIX")
	require.NoError(t, err)
	assert.Equal(t, PosixStyle, style)

	style, err = ParsePathStyle("")
	require.NoError(t, err)
	assert.Equal(t, WindowsStyle, style)

	_, err = ParsePathStyle("mac")
	assert.Error(t, err)
}
