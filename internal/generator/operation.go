package generator

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Operation represents a file system operation that can be validated and executed.
//
// Validate checks if the operation would succeed without executing it.
// force=true skips conflict checks (e.g., file already exists).
//
// Execute stages the operation into the transaction. Nothing reaches disk
// until the transaction commits.
//
// Description returns a human-readable description for output (e.g., "Create app.vcxproj (2345 bytes)").
type Operation interface {
	Validate(ctx context.Context, force bool) error
	Execute(ctx context.Context, tx *Transaction) error
	Description() string
}

// WriteFileOp creates or replaces a file.
//
// Validation behavior:
//   - Creates parent directories if they don't exist (via os.MkdirAll)
//   - Checks for file conflicts unless force=true or Overwrite is set
//   - Allows empty content (zero bytes) but rejects nil content
type WriteFileOp struct {
	Path      string      // File path to write
	Content   []byte      // File content (can be empty, must not be nil)
	Mode      fs.FileMode // File permissions (e.g., 0644)
	Overwrite bool        // Replacement was already approved by conflict resolution
}

func (op *WriteFileOp) Validate(ctx context.Context, force bool) error {
	dir := filepath.Dir(op.Path)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}

	if !force && !op.Overwrite {
		if _, err := os.Stat(op.Path); err == nil {
			return fmt.Errorf("file already exists: %s", op.Path)
		}
	}

	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}

	return nil
}

func (op *WriteFileOp) Execute(ctx context.Context, tx *Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx.AddFile(op.Path, op.Content, op.Mode)
	return nil
}

func (op *WriteFileOp) Description() string {
	verb := "Create"
	if op.Overwrite {
		verb = "Overwrite"
	}
	return fmt.Sprintf("%s %s (%d bytes)", verb, op.Path, len(op.Content))
}
