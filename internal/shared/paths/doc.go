// Package paths guards access to the managed project directory.
//
// A Root is canonicalized once when it is created. Every lookup joins a
// single file name onto it, resolves symlinks when the target exists and
// checks that the result is still inside the root:
//
//	root, err := paths.NewRoot("./projects")
//	file, err := root.Resolve("demo.project")
//
// Names with separators or dot segments are rejected before the
// filesystem is consulted.
package paths
