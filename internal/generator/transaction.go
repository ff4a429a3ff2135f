package generator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Transaction represents a set of file writes that can be committed or rolled back
type Transaction struct {
	operations []fileOperation
	written    []backup
	committed  bool

	// For mocking in tests
	writeFile func(name string, data []byte, perm os.FileMode) error
}

// fileOperation represents a single staged file write
type fileOperation struct {
	path    string
	content []byte
	mode    os.FileMode
}

// backup remembers what a path looked like before the transaction wrote it
type backup struct {
	path    string
	existed bool
	content []byte
	mode    os.FileMode
}

// NewTransaction creates a new file transaction
func NewTransaction() *Transaction {
	return &Transaction{
		operations: make([]fileOperation, 0),
		writeFile:  os.WriteFile,
	}
}

// AddFile stages a file write (doesn't write yet)
func (t *Transaction) AddFile(path string, content []byte, mode os.FileMode) {
	t.operations = append(t.operations, fileOperation{
		path:    path,
		content: content,
		mode:    mode,
	})
}

// Len returns the number of staged writes
func (t *Transaction) Len() int {
	return len(t.operations)
}

// Commit writes all staged files to disk.
// If any write fails, every file already written is restored.
func (t *Transaction) Commit() error {
	if t.committed {
		return fmt.Errorf("transaction already committed")
	}

	for _, op := range t.operations {
		prev, err := snapshot(op.path)
		if err != nil {
			t.rollback()
			return err
		}
		// recorded before touching the path: a failed write may already
		// have truncated it
		t.written = append(t.written, prev)

		dir := filepath.Dir(op.path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.rollback()
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}

		if err := t.writeFile(op.path, op.content, op.mode); err != nil {
			t.rollback()
			return fmt.Errorf("failed to write file %s: %w", op.path, err)
		}
	}

	t.committed = true
	return nil
}

// Rollback restores everything written so far. It is a no-op after a
// successful Commit, so it is safe to defer.
func (t *Transaction) Rollback() {
	if !t.committed {
		t.rollback()
	}
}

// rollback restores in reverse order, best effort
func (t *Transaction) rollback() {
	for i := len(t.written) - 1; i >= 0; i-- {
		b := t.written[i]
		if b.existed {
			_ = os.WriteFile(b.path, b.content, b.mode)
		} else {
			_ = os.Remove(b.path)
		}
	}
	t.written = nil
}

func snapshot(path string) (backup, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return backup{path: path}, nil
	}
	if err != nil {
		return backup{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return backup{}, fmt.Errorf("cannot write %s: is a directory", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return backup{}, fmt.Errorf("failed to back up %s: %w", path, err)
	}
	return backup{path: path, existed: true, content: content, mode: info.Mode().Perm()}, nil
}
