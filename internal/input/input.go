// Package input asks the user questions on a terminal.
//
// A Prompter reads answers from an injected reader, which keeps commands
// testable:
//
//	p := input.New(os.Stdin, os.Stdout)
//	name := p.Prompt("Project name", "GeneratedProject")
package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Prompter reads answers line by line.
type Prompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// New returns a prompter. Nil arguments fall back to stdin and stdout.
func New(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{reader: bufio.NewReader(in), out: out}
}

// Prompt asks for text input. Pressing Enter returns defaultValue, and so
// does a closed input.
//
// Example:
//
//	name := p.Prompt("Project name", "GeneratedProject")
//	// Displays: Project name (GeneratedProject): _
func (p *Prompter) Prompt(message, defaultValue string) string {
	if defaultValue != "" {
		fmt.Fprint(p.out, promptStyle.Render(message)+" "+
			hintStyle.Render(fmt.Sprintf("(%s)", defaultValue))+": ")
	} else {
		fmt.Fprint(p.out, promptStyle.Render(message)+": ")
	}

	answer, ok := p.readLine()
	if !ok || answer == "" {
		return defaultValue
	}
	return answer
}

// Confirm asks a yes/no question. Enter or a closed input returns
// defaultYes.
//
// Example:
//
//	if p.Confirm("Open the project now?", false) { ... }
//	// Displays: Open the project now? [y/N]: _
func (p *Prompter) Confirm(message string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	fmt.Fprint(p.out, promptStyle.Render(message)+" "+hintStyle.Render(hint)+": ")

	answer, ok := p.readLine()
	if !ok || answer == "" {
		return defaultYes
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

// readLine returns the trimmed line. A final line without newline still
// counts; ok is false only when nothing was read.
func (p *Prompter) readLine() (string, bool) {
	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}
