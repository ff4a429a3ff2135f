package generator

import (
	"bytes"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/term"
)

// Lipgloss styles for diff output
var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("22"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("52"))
)

// DiffOptions configures how diffs are generated and displayed.
type DiffOptions struct {
	// ContextLines is the number of unchanged lines to show around changes.
	// Default: 3
	ContextLines int

	// MaxWidth truncates long lines. Zero means the terminal width (80 when
	// stdout is not a terminal).
	MaxWidth int

	// Plain disables colouring.
	Plain bool
}

// Diff returns a unified diff between existing and generated content.
// Identical content yields an empty string.
func Diff(path string, existing, generated []byte, opts *DiffOptions) string {
	if opts == nil {
		opts = &DiffOptions{}
	}
	if opts.ContextLines == 0 {
		opts.ContextLines = 3
	}
	width := opts.MaxWidth
	if width == 0 {
		width = terminalWidth()
	}

	if bytes.Equal(existing, generated) {
		return ""
	}
	if isBinary(existing) || isBinary(generated) {
		return "Binary files differ\n"
	}

	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(normalizeNewlines(existing)),
		B:        difflib.SplitLines(normalizeNewlines(generated)),
		FromFile: path + " (existing)",
		ToFile:   path + " (generated)",
		Context:  opts.ContextLines,
	})
	if err != nil || text == "" {
		return ""
	}

	var buf strings.Builder
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		line = truncateLine(strings.TrimRight(line, "\n"), width)
		if !opts.Plain {
			line = styleLine(line)
		}
		buf.WriteString(line + "\n")
	}
	return buf.String()
}

func styleLine(line string) string {
	switch {
	case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
		return headerStyle.Render(line)
	case strings.HasPrefix(line, "@@"):
		return hunkStyle.Render(line)
	case strings.HasPrefix(line, "+"):
		return addedStyle.Render(line)
	case strings.HasPrefix(line, "-"):
		return removedStyle.Render(line)
	default:
		return line
	}
}

// normalizeNewlines drops carriage returns so CRLF and LF files compare by content
func normalizeNewlines(data []byte) string {
	return strings.ReplaceAll(string(data), "\r\n", "\n")
}

// isBinary checks if content appears to be binary (contains null bytes)
func isBinary(data []byte) bool {
	checkLen := len(data)
	if checkLen > 8192 {
		checkLen = 8192
	}
	return bytes.IndexByte(data[:checkLen], 0) != -1
}

// truncateLine truncates a line if it's too long, adding "..." indicator
func truncateLine(s string, maxWidth int) string {
	if maxWidth <= 3 || utf8.RuneCountInString(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxWidth-3]) + "..."
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
