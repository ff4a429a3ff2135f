// Package output prints styled messages for the wren CLI.
//
// Messages go to an injected writer, so commands and tests own where they
// end up:
//
//	console := output.New(cmd.OutOrStdout(), verbose)
//	console.Success("Generated project file: app.vcxproj")
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Console writes styled messages to one writer.
type Console struct {
	w       io.Writer
	verbose bool
}

// New returns a console writing to w (stdout when nil).
func New(w io.Writer, verbose bool) *Console {
	if w == nil {
		w = os.Stdout
	}
	return &Console{w: w, verbose: verbose}
}

// Writer is where the console prints.
func (c *Console) Writer() io.Writer {
	return c.w
}

// IsVerbose reports whether Verbose messages are shown.
func (c *Console) IsVerbose() bool {
	return c.verbose
}

// Success prints a completed operation.
func (c *Console) Success(msg string) {
	c.styled(successStyle, "🪶 ", msg)
}

// Error prints a failure that needs attention.
func (c *Console) Error(msg string) {
	c.styled(errorStyle, "❌ ", msg)
}

// Warn prints something that did not stop the command.
func (c *Console) Warn(msg string) {
	c.styled(warnStyle, "⚠️  ", msg)
}

// Info prints a status update.
func (c *Console) Info(msg string) {
	c.styled(infoStyle, "ℹ️  ", msg)
}

// Step prints an indented sub-item in gray.
//
// Example:
//
//	console.Info("Next steps:")
//	console.Step("wren build")
func (c *Console) Step(msg string) {
	c.println(stepStyle.Render("   " + msg))
}

// Verbose prints debug detail only in verbose mode.
func (c *Console) Verbose(msg string) {
	if c.verbose {
		c.println(stepStyle.Render("🔍 " + msg))
	}
}

// Plain prints msg without styling, for tool output passed through as-is.
func (c *Console) Plain(msg string) {
	c.println(msg)
}

// styled renders the first line of msg with style. Following lines, such as
// captured tool output, are printed as they are.
func (c *Console) styled(style lipgloss.Style, prefix, msg string) {
	head, rest, multi := strings.Cut(msg, "\n")
	c.println(style.Render(prefix + head))
	if multi {
		c.println(rest)
	}
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.w, s)
}
