package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Executor runs external commands
type Executor struct {
	stdout  io.Writer
	stderr  io.Writer
	env     []string
	dir     string
	spinner bool

	// For mocking in tests
	commandFunc func(name string, args ...string) *exec.Cmd
}

// Options configures command execution
type Options struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Env     []string // Additional environment variables
	Dir     string   // Working directory
	Spinner bool     // Show a spinner while capturing, when stderr is a terminal
}

// Result is the outcome of a captured command.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports a zero exit code.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// NewExecutor creates an executor with sensible defaults
func NewExecutor(opts *Options) *Executor {
	if opts == nil {
		opts = &Options{}
	}

	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Executor{
		stdout:      stdout,
		stderr:      stderr,
		env:         opts.Env,
		dir:         opts.Dir,
		spinner:     opts.Spinner,
		commandFunc: exec.Command,
	}
}

// WithDir returns a copy of the executor that runs in dir.
func (e *Executor) WithDir(dir string) *Executor {
	clone := *e
	clone.dir = dir
	return &clone
}

// Run executes a command with its output connected to the executor's writers.
func (e *Executor) Run(ctx context.Context, name string, args ...string) error {
	_, err := e.run(ctx, e.stdout, e.stderr, name, args...)
	return err
}

// Capture runs a command to completion and collects its output. A non-zero
// exit is reported in the Result; only failing to start, or cancellation,
// is an error.
func (e *Executor) Capture(ctx context.Context, name string, args ...string) (*Result, error) {
	if e.spinner && isTerminal(e.stderr) {
		return e.captureWithSpinner(ctx, fmt.Sprintf("Running %s", name), name, args...)
	}
	return e.capture(ctx, name, args...)
}

// Start launches a command and returns without waiting for it, for GUI
// programs that outlive the CLI.
func (e *Executor) Start(ctx context.Context, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cmd := e.commandFunc(name, args...)
	if e.dir != "" {
		cmd.Dir = e.dir
	}
	if len(e.env) > 0 {
		cmd.Env = append(cmdEnv(cmd), e.env...)
	}

	if err := cmd.Start(); err != nil {
		if isCommandNotFound(err) {
			return enhanceError(err, name)
		}
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	return cmd.Process.Release()
}

// CaptureTo is Capture that also streams output to stdout and stderr while
// the command runs.
func (e *Executor) CaptureTo(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) (*Result, error) {
	return e.collect(ctx, stdout, stderr, name, args...)
}

func (e *Executor) capture(ctx context.Context, name string, args ...string) (*Result, error) {
	return e.collect(ctx, nil, nil, name, args...)
}

func (e *Executor) collect(ctx context.Context, streamOut, streamErr io.Writer, name string, args ...string) (*Result, error) {
	var stdout, stderr bytes.Buffer

	var outW, errW io.Writer = &stdout, &stderr
	if streamOut != nil {
		outW = NewTeeWriter(&stdout, streamOut)
	}
	if streamErr != nil {
		errW = NewTeeWriter(&stderr, streamErr)
	}

	code, err := e.run(ctx, outW, errW, name, args...)

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return nil, err
	}
	return &Result{ExitCode: code, Stdout: stdout.String(), Stderr: stderr.String()}, nil
}

// run starts the command and waits for it. The exit code is -1 when the
// process never finished.
func (e *Executor) run(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) (int, error) {
	cmd := e.commandFunc(name, args...)

	if e.dir != "" {
		cmd.Dir = e.dir
	}
	if len(e.env) > 0 {
		cmd.Env = append(cmdEnv(cmd), e.env...)
	}

	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		if isCommandNotFound(err) {
			return -1, enhanceError(err, name)
		}
		return -1, fmt.Errorf("failed to start %s: %w", name, err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- cmd.Wait()
	}()

	select {
	case <-ctx.Done():
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
		<-errCh
		return -1, fmt.Errorf("%s cancelled: %w", name, ctx.Err())
	case err := <-errCh:
		if err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				return exitErr.ExitCode(), fmt.Errorf("%s failed: %w", name, err)
			}
			return -1, fmt.Errorf("%s failed: %w", name, err)
		}
		return 0, nil
	}
}

// cmdEnv keeps an environment already set on cmd (test helpers do that).
func cmdEnv(cmd *exec.Cmd) []string {
	if cmd.Env != nil {
		return cmd.Env
	}
	return os.Environ()
}

// captureWithSpinner captures a command while a spinner runs on stderr.
func (e *Executor) captureWithSpinner(ctx context.Context, message, name string, args ...string) (*Result, error) {
	p := tea.NewProgram(newSpinnerModel(message), tea.WithOutput(e.stderr), tea.WithInput(nil))

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		_, _ = p.Run()
	}()

	res, err := e.capture(ctx, name, args...)

	failed := err != nil || !res.Success()
	p.Send(spinnerDoneMsg{failed: failed})
	<-finished

	return res, err
}

// spinnerModel is the bubbletea model for the spinner
type spinnerModel struct {
	spinner spinner.Model
	message string
	done    bool
	failed  bool
}

type spinnerDoneMsg struct {
	failed bool
}

func newSpinnerModel(message string) *spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return &spinnerModel{spinner: s, message: message}
}

func (m *spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerDoneMsg:
		m.done = true
		m.failed = msg.failed
		return m, tea.Quit
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *spinnerModel) View() string {
	if m.done {
		if m.failed {
			return fmt.Sprintf("❌ %s\n", m.message)
		}
		return fmt.Sprintf("✅ %s\n", m.message)
	}
	return fmt.Sprintf("%s %s...", m.spinner.View(), m.message)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// isCommandNotFound checks if an error indicates a command was not found
func isCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, exec.ErrNotFound) ||
		strings.Contains(err.Error(), "executable file not found") ||
		strings.Contains(err.Error(), "command not found")
}

// enhanceError adds helpful message for missing commands
func enhanceError(err error, cmd string) error {
	return fmt.Errorf("%w\n💡 Command '%s' not found. Please install it and try again", err, cmd)
}
