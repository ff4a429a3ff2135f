package generator

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned when the user cancels conflict resolution.
var ErrCancelled = errors.New("generation cancelled")

// ConflictResolution represents what to do with an existing file
type ConflictResolution int

const (
	Skip ConflictResolution = iota
	Overwrite
	ShowDiff
	Cancel
)

func (c ConflictResolution) String() string {
	switch c {
	case Skip:
		return "skip"
	case Overwrite:
		return "overwrite"
	case ShowDiff:
		return "diff"
	case Cancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// ConflictStrategy determines how to resolve conflicts
type ConflictStrategy interface {
	Resolve(path string, existing, newer []byte) (ConflictResolution, error)
}

var (
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Resolver decides what happens to generated files that already exist.
type Resolver struct {
	strategy ConflictStrategy
	prompt   ConflictStrategy // asked again after a diff was shown
	out      io.Writer
}

// NewResolver creates a conflict resolver with the specified flags.
// Interactive prompts read from in and write to out (stdin and stdout when
// nil). Returns error if --force is combined with --skip or --diff.
func NewResolver(force, skip, diff bool, in io.Reader, out io.Writer) (*Resolver, error) {
	if force && (skip || diff) {
		return nil, fmt.Errorf("--force cannot be combined with --skip or --diff")
	}
	if skip && diff {
		return nil, fmt.Errorf("--skip cannot be combined with --diff")
	}

	if out == nil {
		out = os.Stdout
	}
	return &Resolver{
		strategy: selectStrategy(force, skip, diff, in, out),
		prompt:   &InteractiveStrategy{In: in, Out: out},
		out:      out,
	}, nil
}

// NewResolverWithStrategy is used when the caller supplies its own strategy
// (tests, non-interactive hosts).
func NewResolverWithStrategy(strategy ConflictStrategy, out io.Writer) *Resolver {
	if out == nil {
		out = io.Discard
	}
	return &Resolver{strategy: strategy, prompt: strategy, out: out}
}

// ResolveConflict determines what to do with a file that already exists.
func (r *Resolver) ResolveConflict(path string, existing, newer []byte) (ConflictResolution, error) {
	return r.strategy.Resolve(path, existing, newer)
}

// Plan is the outcome of resolving a batch of writes.
type Plan struct {
	Ops       []Operation
	Skipped   []string // existing files kept by choice
	Unchanged []string // existing files whose content already matches
}

// Prepare checks every write against the file system and returns the
// operations that should run. Files whose content would not change are
// left alone without asking.
func (r *Resolver) Prepare(writes []*WriteFileOp) (*Plan, error) {
	plan := &Plan{}

	for _, op := range writes {
		existing, err := os.ReadFile(op.Path)
		if errors.Is(err, os.ErrNotExist) {
			plan.Ops = append(plan.Ops, op)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading existing %s: %w", op.Path, err)
		}

		if bytes.Equal(existing, op.Content) {
			plan.Unchanged = append(plan.Unchanged, op.Path)
			continue
		}

		resolution, err := r.resolveLoop(op.Path, existing, op.Content)
		if err != nil {
			return nil, err
		}

		switch resolution {
		case Overwrite:
			op.Overwrite = true
			plan.Ops = append(plan.Ops, op)
		case Skip:
			plan.Skipped = append(plan.Skipped, op.Path)
		default:
			return nil, ErrCancelled
		}
	}

	return plan, nil
}

// resolveLoop keeps asking while the answer is "show diff"
func (r *Resolver) resolveLoop(path string, existing, newer []byte) (ConflictResolution, error) {
	strategy := r.strategy
	for {
		resolution, err := strategy.Resolve(path, existing, newer)
		if err != nil {
			return Cancel, err
		}
		if resolution != ShowDiff {
			return resolution, nil
		}
		fmt.Fprint(r.out, Diff(path, existing, newer, nil))
		strategy = r.prompt
	}
}

func selectStrategy(force, skip, diff bool, in io.Reader, out io.Writer) ConflictStrategy {
	switch {
	case force:
		return &ForceStrategy{}
	case skip:
		return &SkipStrategy{}
	case diff:
		return &DiffStrategy{In: in, Out: out}
	default:
		return &InteractiveStrategy{In: in, Out: out}
	}
}

// ForceStrategy always overwrites
type ForceStrategy struct{}

func (s *ForceStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	return Overwrite, nil
}

// SkipStrategy always keeps the existing file
type SkipStrategy struct{}

func (s *SkipStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	return Skip, nil
}

// DiffStrategy prints the diff first, then asks
type DiffStrategy struct {
	In  io.Reader
	Out io.Writer
}

func (s *DiffStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	fmt.Fprint(s.Out, Diff(path, existing, newer, nil))
	interactive := &InteractiveStrategy{In: s.In, Out: s.Out}
	return interactive.Resolve(path, existing, newer)
}

// InteractiveStrategy shows a keyboard-driven menu
type InteractiveStrategy struct {
	In  io.Reader
	Out io.Writer
}

func (s *InteractiveStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	var opts []tea.ProgramOption
	if s.In != nil {
		opts = append(opts, tea.WithInput(s.In))
	}
	if s.Out != nil {
		opts = append(opts, tea.WithOutput(s.Out))
	}

	p := tea.NewProgram(newConflictMenu(path, len(existing), len(newer)), opts...)
	final, err := p.Run()
	if err != nil {
		return Cancel, fmt.Errorf("failed to show menu: %w", err)
	}

	menu := final.(conflictMenu)
	if menu.selected == nil {
		return Cancel, nil
	}
	return *menu.selected, nil
}

type menuChoice struct {
	label      string
	resolution ConflictResolution
}

var conflictChoices = []menuChoice{
	{"Overwrite with generated content", Overwrite},
	{"Keep existing file", Skip},
	{"Show diff", ShowDiff},
	{"Cancel generation", Cancel},
}

// conflictMenu is the bubbletea model for the conflict prompt
type conflictMenu struct {
	path         string
	existingSize int
	newSize      int
	cursor       int
	selected     *ConflictResolution
}

func newConflictMenu(path string, existingSize, newSize int) conflictMenu {
	return conflictMenu{path: path, existingSize: existingSize, newSize: newSize}
}

func (m conflictMenu) Init() tea.Cmd {
	return nil
}

func (m conflictMenu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(conflictChoices)-1 {
			m.cursor++
		}
	case "o":
		return m.choose(Overwrite)
	case "s":
		return m.choose(Skip)
	case "d":
		return m.choose(ShowDiff)
	case "enter":
		return m.choose(conflictChoices[m.cursor].resolution)
	}
	return m, nil
}

func (m conflictMenu) choose(r ConflictResolution) (tea.Model, tea.Cmd) {
	m.selected = &r
	return m, tea.Quit
}

func (m conflictMenu) View() string {
	if m.selected != nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(warningStyle.Render("File already exists: ") + m.path + "\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("    existing %d bytes, generated %d bytes", m.existingSize, m.newSize)) + "\n\n")

	for i, c := range conflictChoices {
		if i == m.cursor {
			b.WriteString("  " + selectedStyle.Render("> "+c.label) + "\n")
		} else {
			b.WriteString("    " + c.label + "\n")
		}
	}
	b.WriteString("\n" + mutedStyle.Render("    [↑/↓] move  [enter] select  [o/s/d] shortcut  [q] cancel") + "\n")
	return b.String()
}
