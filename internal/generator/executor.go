package generator

import (
	"context"
	"fmt"
	"io"
	"os"
)

// ExecuteOptions configures execution behavior
type ExecuteOptions struct {
	DryRun bool
	Force  bool
	Writer io.Writer // Where to write output (defaults to os.Stdout)
}

// Execute validates every operation, then stages them into one transaction
// and commits it. Either all files are written or none are.
func Execute(ctx context.Context, ops []Operation, opts ExecuteOptions) error {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	// Phase 1: Validate all operations
	for _, op := range ops {
		if err := op.Validate(ctx, opts.Force); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	if opts.DryRun {
		for _, op := range ops {
			fmt.Fprintf(opts.Writer, "✓ [DRY RUN] %s\n", op.Description())
		}
		return nil
	}

	// Phase 2: Stage and commit
	tx := NewTransaction()
	defer tx.Rollback()

	for _, op := range ops {
		if err := op.Execute(ctx, tx); err != nil {
			return fmt.Errorf("execution failed: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}

	for _, op := range ops {
		fmt.Fprintf(opts.Writer, "✓ %s\n", op.Description())
	}
	return nil
}
