package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMake writes an executable shell script standing in for make and a
// config pointing at it.
func fakeMake(t *testing.T, dir, script string) {
	t.Helper()
	skipOnWindows(t)

	bin := filepath.Join(t.TempDir(), "fake-make")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"+script), 0755))
	writeConfig(t, dir, "make:\n  command: "+bin+"\n")
}

func setupBuild(t *testing.T, script string) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	makeTree(t, dir, map[string]string{"Makefile": "all:\n"})
	fakeMake(t, dir, script)
	return dir
}

func TestBuildCmd_Success(t *testing.T) {
	setupBuild(t, "echo 'cc -o hello main.c'\necho\necho done\n")

	out, err := runCLI(t, "", "build")

	require.NoError(t, err)
	assert.Contains(t, out, "Make command exited with code: 0")
	assert.Contains(t, out, "Makefile build completed successfully.")
	assert.Contains(t, out, "Output:\ncc -o hello main.c\ndone")
}

func TestBuildCmd_Failure(t *testing.T) {
	tests := []struct {
		name     string
		script   string
		code     int
		expected string
	}{
		{
			name:     "with stderr",
			script:   "echo 'main.c:1: error' >&2\nexit 2\n",
			code:     2,
			expected: "Errors:\nmain.c:1: error",
		},
		{
			name:     "silent failure",
			script:   "exit 3\n",
			code:     3,
			expected: "Errors: No additional error details available.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupBuild(t, tt.script)

			out, err := runCLI(t, "", "build")

			requireExitCode(t, err, tt.code)
			assert.Contains(t, out, "Make command exited with code: ")
			assert.Contains(t, out, tt.expected)
			assert.NotContains(t, out, "completed successfully")
		})
	}
}

func TestBuildCmd_PassesArguments(t *testing.T) {
	dir := setupBuild(t, "echo \"args: $*\"\necho \"cwd: $(pwd)\"\n")
	makeTree(t, dir, map[string]string{"sub/Makefile": "all:\n"})

	out, err := runCLI(t, "", "build", "sub", "--", "-j2", "all")

	require.NoError(t, err)
	subMakefile := filepath.Join(dir, "sub", "Makefile")
	assert.Contains(t, out, "args: -f "+subMakefile+" -j2 all")
	assert.Contains(t, out, "cwd: ")
	assert.Contains(t, out, "sub")
}

func TestBuildCmd_MakefileArgument(t *testing.T) {
	dir := setupBuild(t, "echo \"args: $*\"\n")
	makeTree(t, dir, map[string]string{"build.mk": "all:\n"})

	out, err := runCLI(t, "", "build", "build.mk")

	require.NoError(t, err)
	assert.Contains(t, out, "args: -f "+filepath.Join(dir, "build.mk"))
}

func TestBuildCmd_Stream(t *testing.T) {
	setupBuild(t, "echo compiling\necho warning >&2\n")

	out, err := runCLI(t, "", "build", "--stream")

	require.NoError(t, err)
	assert.Contains(t, out, "│ compiling")
	assert.Contains(t, out, "│ warning")
	assert.Contains(t, out, "Makefile build completed successfully.")
	assert.NotContains(t, out, "Output:")
}

func TestBuildCmd_NoMakefile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	out, err := runCLI(t, "", "build")

	requireExitCode(t, err, 1)
	assert.Contains(t, out, "No Makefile found.")
}

func TestBuildCmd_NoActiveDocument(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	out, err := runCLI(t, "", "build", "missing")

	requireExitCode(t, err, 1)
	assert.Contains(t, out, "No active document found.")
}

func TestBuildCmd_MakeNotInstalled(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	makeTree(t, dir, map[string]string{"Makefile": "all:\n"})
	writeConfig(t, dir, "make:\n  command: wren-no-such-make\n")

	out, err := runCLI(t, "", "build")

	requireExitCode(t, err, 1)
	assert.Contains(t, out, "Error executing make command: wren-no-such-make not found in PATH")
}

func TestBuildCmd_TooManyArguments(t *testing.T) {
	_, err := runCLI(t, "", "build", "a", "b")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "at most one")
}

func TestBuildCmd_LogFile(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	chdir(t, dir)
	makeTree(t, dir, map[string]string{"Makefile": "all:\n"})

	bin := filepath.Join(t.TempDir(), "fake-make")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\necho ok\n"), 0755))
	logPath := filepath.Join(dir, "build.log")
	writeConfig(t, dir, "make:\n  command: "+bin+"\nlog:\n  file: "+logPath+"\n")

	_, err := runCLI(t, "", "build")
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	log := string(data)
	assert.Contains(t, log, "[INFO] make finished")
	assert.Contains(t, log, "exit_code=0")
	assert.Contains(t, log, "Makefile build completed successfully.")
}
