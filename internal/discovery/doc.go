// Package discovery finds the files a project is generated from.
//
// Walk traverses a tree while skipping version control, IDE and build
// output directories:
//
//	err := discovery.Walk(".", discovery.WalkOptions{
//	    IgnorePatterns: []string{"*.tmp"},
//	}, func(path string, d fs.DirEntry) error {
//	    fmt.Println(path)
//	    return nil
//	})
//
// Discover turns a tree into the raw listing the manifest package
// classifies, with relative paths in Windows or POSIX style:
//
//	raw, err := discovery.Discover(root, discovery.Options{Style: discovery.WindowsStyle})
package discovery
