package exec

import (
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// StreamingWriter styles and prefixes output line by line. It is safe for
// concurrent use, so stdout and stderr of one process can share it.
type StreamingWriter struct {
	mu     sync.Mutex
	prefix string
	style  lipgloss.Style
	writer io.Writer
	buffer []byte // incomplete last line
}

// NewStreamingWriter creates a formatted output writer
func NewStreamingWriter(writer io.Writer, prefix string, color lipgloss.Color) *StreamingWriter {
	return &StreamingWriter{
		prefix: prefix,
		style:  lipgloss.NewStyle().Foreground(color),
		writer: writer,
	}
}

// Write formats and writes complete lines, buffering the rest.
func (s *StreamingWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buffer = append(s.buffer, p...)
	for {
		i := strings.IndexByte(string(s.buffer), '\n')
		if i < 0 {
			break
		}
		line := strings.TrimSuffix(string(s.buffer[:i]), "\r")
		s.buffer = s.buffer[i+1:]
		if _, err := io.WriteString(s.writer, s.formatLine(line)+"\n"); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

// Flush writes any remaining buffered content
func (s *StreamingWriter) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.buffer) == 0 {
		return nil
	}
	_, err := io.WriteString(s.writer, s.formatLine(string(s.buffer))+"\n")
	s.buffer = s.buffer[:0]
	return err
}

func (s *StreamingWriter) formatLine(line string) string {
	return s.style.Render(s.prefix + line)
}

// TeeWriter writes to multiple writers simultaneously
type TeeWriter struct {
	writers []io.Writer
}

// NewTeeWriter creates a writer that duplicates output to multiple writers
func NewTeeWriter(writers ...io.Writer) *TeeWriter {
	return &TeeWriter{writers: writers}
}

// Write writes to all underlying writers
func (t *TeeWriter) Write(p []byte) (int, error) {
	for _, w := range t.writers {
		if n, err := w.Write(p); err != nil {
			return n, err
		}
	}
	return len(p), nil
}

// syncWriter serializes writes from several streams onto one writer.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
