// Package generator writes generated files safely.
//
// # Features
//
//   - Command and text templating with helper functions
//   - Conflict resolution for existing files (interactive, --force, --skip, --diff)
//   - Unified diffs between existing and generated content
//   - Transactions so related files are written together or not at all
//
// # Transactions
//
// Files that only make sense together (a project and its filters file)
// are staged into one transaction:
//
//	tx := generator.NewTransaction()
//	tx.AddFile("app.vcxproj", project, 0644)
//	tx.AddFile("app.vcxproj.filters", filters, 0644)
//
//	if err := tx.Commit(); err != nil {
//	    // every file touched so far has been restored
//	    return err
//	}
//
// If any write fails, files created by the transaction are removed and
// files it overwrote get their previous content back.
package generator
