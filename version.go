// Package wren runs Makefile builds and generates Visual Studio makefile
// projects from source trees.
package wren

// Version is the wren release.
const Version = "0.1.0"
