package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCommand re-runs the test binary as a fake tool
func mockCommand(name string, args ...string) *exec.Cmd {
	cs := []string{"-test.run=TestHelperProcess", "--", filepath.Base(name)}
	cs = append(cs, args...)
	cmd := exec.Command(os.Args[0], cs...)
	cmd.Env = []string{"GO_WANT_HELPER_PROCESS=1"}
	return cmd
}

// TestHelperProcess is the fake tool behind mockCommand
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for i, arg := range args {
		if arg == "--" {
			args = args[i+1:]
			break
		}
	}
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "no command specified\n")
		os.Exit(1)
	}

	switch args[0] {
	case "echo":
		fmt.Println(strings.Join(args[1:], " "))
		os.Exit(0)
	case "env":
		fmt.Println(os.Getenv(args[1]))
		os.Exit(0)
	case "pwd":
		wd, _ := os.Getwd()
		fmt.Println(wd)
		os.Exit(0)
	case "sleep":
		time.Sleep(10 * time.Second)
		os.Exit(0)
	case "error":
		fmt.Fprintf(os.Stderr, "error occurred\n")
		os.Exit(3)
	case "make":
		helperMake(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		os.Exit(1)
	}
}

// helperMake fakes make: the Makefile name picks the behavior.
func helperMake(args []string) {
	if len(args) < 2 || args[0] != "-f" {
		fmt.Fprintf(os.Stderr, "usage: make -f FILE\n")
		os.Exit(2)
	}
	makefile := filepath.Base(filepath.Dir(args[1]))
	wd, _ := os.Getwd()

	switch makefile {
	case "broken":
		fmt.Fprintf(os.Stderr, "main.c:1: error: expected ';'\n\nmake: *** [all] Error 1\n")
		os.Exit(2)
	case "quiet":
		os.Exit(2)
	default:
		fmt.Printf("cc -o hello main.c\n\nin %s\n", filepath.Base(wd))
		if len(args) > 2 {
			fmt.Printf("targets: %s\n", strings.Join(args[2:], " "))
		}
		os.Exit(0)
	}
}

func newMockExecutor(stdout, stderr *bytes.Buffer) *Executor {
	opts := &Options{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	if stdout != nil {
		opts.Stdout = stdout
	}
	if stderr != nil {
		opts.Stderr = stderr
	}
	e := NewExecutor(opts)
	e.commandFunc = mockCommand
	return e
}

func TestNewExecutor(t *testing.T) {
	executor := NewExecutor(nil)
	assert.Equal(t, os.Stdout, executor.stdout)
	assert.Equal(t, os.Stderr, executor.stderr)
	assert.NotNil(t, executor.commandFunc)

	var stdout, stderr bytes.Buffer
	executor = NewExecutor(&Options{
		Stdout:  &stdout,
		Stderr:  &stderr,
		Env:     []string{"TEST=1"},
		Dir:     "/tmp",
		Spinner: true,
	})
	assert.Equal(t, &stdout, executor.stdout)
	assert.Equal(t, &stderr, executor.stderr)
	assert.Equal(t, []string{"TEST=1"}, executor.env)
	assert.Equal(t, "/tmp", executor.dir)
	assert.True(t, executor.spinner)
}

func TestExecutor_Run(t *testing.T) {
	var stdout bytes.Buffer
	executor := newMockExecutor(&stdout, nil)

	err := executor.Run(context.Background(), "echo", "hello", "world")
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", stdout.String())
}

func TestExecutor_RunWithError(t *testing.T) {
	var stderr bytes.Buffer
	executor := newMockExecutor(nil, &stderr)

	err := executor.Run(context.Background(), "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error failed")
	assert.Contains(t, stderr.String(), "error occurred")
}

func TestExecutor_Capture(t *testing.T) {
	executor := newMockExecutor(nil, nil)

	t.Run("success", func(t *testing.T) {
		res, err := executor.Capture(context.Background(), "echo", "hi")
		require.NoError(t, err)
		assert.True(t, res.Success())
		assert.Equal(t, "hi\n", res.Stdout)
		assert.Empty(t, res.Stderr)
	})

	t.Run("non-zero exit is a result", func(t *testing.T) {
		res, err := executor.Capture(context.Background(), "error")
		require.NoError(t, err)
		assert.Equal(t, 3, res.ExitCode)
		assert.False(t, res.Success())
		assert.Equal(t, "error occurred\n", res.Stderr)
	})
}

func TestExecutor_CaptureTo(t *testing.T) {
	var live bytes.Buffer
	executor := newMockExecutor(nil, nil)

	res, err := executor.CaptureTo(context.Background(), &live, &live, "echo", "streamed")
	require.NoError(t, err)
	assert.Equal(t, "streamed\n", res.Stdout)
	assert.Equal(t, "streamed\n", live.String())
}

func TestExecutor_StartFailure(t *testing.T) {
	executor := NewExecutor(&Options{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})

	_, err := executor.Capture(context.Background(), "wren-definitely-not-installed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Command 'wren-definitely-not-installed' not found")
}

func TestExecutor_Cancelled(t *testing.T) {
	executor := newMockExecutor(nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := executor.Capture(ctx, "sleep")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cancelled")
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestExecutor_Environment(t *testing.T) {
	executor := NewExecutor(&Options{Env: []string{"WREN_TEST_VAR=test_value"}})
	executor.commandFunc = mockCommand

	res, err := executor.Capture(context.Background(), "env", "WREN_TEST_VAR")
	require.NoError(t, err)
	assert.Equal(t, "test_value\n", res.Stdout)
}

func TestExecutor_WithDir(t *testing.T) {
	dir := t.TempDir()
	executor := newMockExecutor(nil, nil)

	res, err := executor.WithDir(dir).Capture(context.Background(), "pwd")
	require.NoError(t, err)

	got, err := filepath.EvalSymlinks(strings.TrimSpace(res.Stdout))
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Empty(t, executor.dir, "WithDir must not modify the original")
}

func TestExecutor_Start(t *testing.T) {
	executor := newMockExecutor(nil, nil)
	require.NoError(t, executor.Start(context.Background(), "echo", "detached"))

	err := NewExecutor(nil).Start(context.Background(), "wren-definitely-not-installed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, executor.Start(ctx, "echo"), context.Canceled)
}

func TestSpinnerModel(t *testing.T) {
	m := newSpinnerModel("Running make")
	assert.Contains(t, m.View(), "Running make...")

	model, cmd := m.Update(spinnerDoneMsg{failed: false})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Equal(t, "✅ Running make\n", model.View())

	m = newSpinnerModel("Running make")
	model, _ = m.Update(spinnerDoneMsg{failed: true})
	assert.Equal(t, "❌ Running make\n", model.View())
}

func TestEnhanceError(t *testing.T) {
	enhanced := enhanceError(fmt.Errorf("command not found"), "some-command")
	assert.Contains(t, enhanced.Error(), "Command 'some-command' not found")
	assert.Contains(t, enhanced.Error(), "Please install it")
}

func TestIsCommandNotFound(t *testing.T) {
	assert.False(t, isCommandNotFound(nil))
	assert.True(t, isCommandNotFound(exec.ErrNotFound))
	assert.True(t, isCommandNotFound(fmt.Errorf("wrapped: %w", exec.ErrNotFound)))
	assert.True(t, isCommandNotFound(errors.New("sh: make: command not found")))
	assert.False(t, isCommandNotFound(errors.New("permission denied")))
}

func TestStreamingWriter(t *testing.T) {
	var output bytes.Buffer
	writer := NewStreamingWriter(&output, "[prefix] ", "205")

	n, err := writer.Write([]byte("Hello"))
	assert.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Empty(t, output.String())

	n, err = writer.Write([]byte(" World\r\n"))
	assert.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Contains(t, output.String(), "[prefix] Hello World")
	assert.NotContains(t, output.String(), "\r")

	output.Reset()
	n, err = writer.Write([]byte("Line1\nLine2\nPartial"))
	assert.NoError(t, err)
	assert.Equal(t, 19, n)
	assert.Contains(t, output.String(), "[prefix] Line1")
	assert.Contains(t, output.String(), "[prefix] Line2")
	assert.NotContains(t, output.String(), "Partial")

	require.NoError(t, writer.Flush())
	assert.Contains(t, output.String(), "[prefix] Partial")
	require.NoError(t, writer.Flush())
}

func TestTeeWriter(t *testing.T) {
	var output1, output2 bytes.Buffer
	writer := NewTeeWriter(&output1, &output2)

	n, err := writer.Write([]byte("Hello World"))
	assert.NoError(t, err)
	assert.Equal(t, 11, n)
	assert.Equal(t, "Hello World", output1.String())
	assert.Equal(t, "Hello World", output2.String())
}
