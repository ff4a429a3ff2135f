package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedLogger(level Level) (*standardLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewLogger(level, &buf).(*standardLogger)
	l.sink.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return l, &buf
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name          string
		level         Level
		logFunc       func(Logger, string)
		expectedInLog bool
	}{
		{"debug at debug", LevelDebug, func(l Logger, m string) { l.Debug(m) }, true},
		{"debug at info", LevelInfo, func(l Logger, m string) { l.Debug(m) }, false},
		{"info at info", LevelInfo, func(l Logger, m string) { l.Info(m) }, true},
		{"info at warn", LevelWarn, func(l Logger, m string) { l.Info(m) }, false},
		{"warn at warn", LevelWarn, func(l Logger, m string) { l.Warn(m) }, true},
		{"error at warn", LevelWarn, func(l Logger, m string) { l.Error(m) }, true},
		{"error at silent", LevelSilent, func(l Logger, m string) { l.Error(m) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, buf := fixedLogger(tt.level)
			tt.logFunc(l, "test message")
			assert.Equal(t, tt.expectedInLog, strings.Contains(buf.String(), "test message"))
		})
	}
}

func TestLogger_Format(t *testing.T) {
	l, buf := fixedLogger(LevelInfo)

	l.Info("make finished", F("exit_code", 2), F("makefile", `C:\p\Makefile`))

	assert.Equal(t, "2026-01-02 03:04:05 [INFO] make finished | exit_code=2 makefile=C:\\p\\Makefile\n", buf.String())
}

func TestLogger_QuotesValuesWithSpaces(t *testing.T) {
	l, buf := fixedLogger(LevelInfo)

	l.Warn("output", F("text", "two words\nnext"))

	assert.Contains(t, buf.String(), `text="two words\nnext"`)
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestLogger_WithFields(t *testing.T) {
	l, buf := fixedLogger(LevelInfo)

	child := l.WithFields(F("command", "build"))
	child.Info("started", F("pid", 42))
	l.Info("parent")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "started | command=build pid=42"))
	assert.True(t, strings.HasSuffix(lines[1], "[INFO] parent"))
}

func TestLogger_SetLevelAppliesToDerived(t *testing.T) {
	l, buf := fixedLogger(LevelInfo)
	child := l.WithFields(F("k", "v"))

	l.SetLevel(LevelError)
	child.Info("hidden")
	assert.Empty(t, buf.String())

	child.SetLevel(LevelDebug)
	l.Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestOpenFile_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "wren.log")

	for _, msg := range []string{"first", "second"} {
		l, closer, err := OpenFile(path, LevelInfo)
		require.NoError(t, err)
		l.Info(msg)
		require.NoError(t, closer.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[INFO] first")
	assert.Contains(t, string(data), "[INFO] second")
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{
		"debug": LevelDebug, "INFO": LevelInfo, "": LevelInfo,
		"warning": LevelWarn, "error": LevelError, "off": LevelSilent,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestSilentLogger(t *testing.T) {
	l := NewSilentLogger()
	l.Error("nothing")
	assert.NotNil(t, l.WithFields(F("a", 1)))
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "UNKNOWN", Level(99).String())
}
