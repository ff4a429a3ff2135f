package exec

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DefaultMakeCommand is looked up on PATH when no command is configured.
const DefaultMakeCommand = "make"

// MakeRunner runs make against a Makefile.
type MakeRunner struct {
	executor *Executor
	command  string
	args     []string

	// For mocking in tests
	lookPath func(file string) (string, error)
}

// NewMakeRunner returns a runner for command (DefaultMakeCommand when
// empty). args are passed before any per-build arguments.
func NewMakeRunner(executor *Executor, command string, args ...string) *MakeRunner {
	if command == "" {
		command = DefaultMakeCommand
	}
	return &MakeRunner{
		executor: executor,
		command:  command,
		args:     args,
		lookPath: exec.LookPath,
	}
}

// Resolve finds the make binary.
func (r *MakeRunner) Resolve() (string, error) {
	path, err := r.lookPath(r.command)
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH: %w", r.command, err)
	}
	return path, nil
}

// Build runs make on makefile in the Makefile's directory and captures the
// output.
func (r *MakeRunner) Build(ctx context.Context, makefile string, extra ...string) (*BuildReport, error) {
	return r.build(ctx, makefile, nil, extra)
}

// Stream is Build with output also shown live on w, one prefixed line at a
// time.
func (r *MakeRunner) Stream(ctx context.Context, makefile string, w io.Writer, extra ...string) (*BuildReport, error) {
	return r.build(ctx, makefile, w, extra)
}

func (r *MakeRunner) build(ctx context.Context, makefile string, live io.Writer, extra []string) (*BuildReport, error) {
	bin, err := r.Resolve()
	if err != nil {
		return nil, err
	}

	makefile, err = filepath.Abs(makefile)
	if err != nil {
		return nil, err
	}

	args := append([]string{"-f", makefile}, r.args...)
	args = append(args, extra...)

	executor := r.executor.WithDir(filepath.Dir(makefile))

	var res *Result
	if live != nil {
		live = &syncWriter{w: live}
		stdout := NewStreamingWriter(live, "│ ", lipgloss.Color("245"))
		stderr := NewStreamingWriter(live, "│ ", lipgloss.Color("203"))
		res, err = executor.CaptureTo(ctx, stdout, stderr, bin, args...)
		_ = stdout.Flush()
		_ = stderr.Flush()
	} else {
		res, err = executor.Capture(ctx, bin, args...)
	}
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", filepath.Base(bin), err)
	}

	return &BuildReport{
		Makefile: makefile,
		Command:  append([]string{bin}, args...),
		Result:   *res,
	}, nil
}

// BuildReport is what a make run produced.
type BuildReport struct {
	Makefile string
	Command  []string
	Result
}

// CommandLine is the command as it would be typed.
func (b *BuildReport) CommandLine() string {
	return strings.Join(b.Command, " ")
}

// Messages are the lines reported to the user. Captured output is left
// out when withOutput is false, for runs that already streamed it.
func (b *BuildReport) Messages(withOutput bool) []string {
	msgs := []string{fmt.Sprintf("Make command exited with code: %d", b.ExitCode)}

	if !b.Success() {
		if errs := nonEmptyLines(b.Stderr); errs != "" && withOutput {
			msgs = append(msgs, "Errors:\n"+errs)
		} else if errs == "" {
			msgs = append(msgs, "Errors: No additional error details available.")
		}
		return msgs
	}

	msgs = append(msgs, "Makefile build completed successfully.")
	if withOutput {
		msgs = append(msgs, "Output:\n"+nonEmptyLines(b.Stdout))
	}
	return msgs
}

// nonEmptyLines drops blank lines and the trailing newline.
func nonEmptyLines(s string) string {
	var kept []string
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
