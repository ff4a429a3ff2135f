// Package manifest turns a flat file listing into a Visual Studio makefile
// project.
//
// The pipeline is pure and runs in three steps:
//
//	entries := manifest.Classify(raw)             // tag roles and group keys
//	groups, err := manifest.DeriveGroups(entries) // distinct directories
//	r, err := manifest.NewRenderer(settings)
//	project, err := r.RenderManifest(entries)
//	filters, err := r.RenderGroupDocument(entries, groups)
//
// Generate runs all of it, including the duplicate check.
//
// # Roles
//
//   - .c and .cpp files compile (ClCompile)
//   - .h files are headers (ClInclude)
//   - files named Makefile are build scripts (None)
//
// Everything else is ignored and never reaches the output, and so is any
// relative path that is malformed or holds characters XML cannot carry.
// Relative paths are emitted exactly as given; either slash or backslash
// separates directories.
//
// # Identifiers
//
// Group and project identifiers are name-based UUIDs, so rendering the same
// input twice produces the same bytes.
package manifest
