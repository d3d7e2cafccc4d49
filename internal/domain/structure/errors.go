package structure

import "errors"

var (
	// ErrPathNotFound indicates a segment of the path does not exist
	ErrPathNotFound = errors.New("path not found")

	// ErrInvalidPath indicates a path that cannot address a node, such as
	// one that descends through a file or names the root as a leaf
	ErrInvalidPath = errors.New("invalid path")

	// ErrNodeExists indicates a sibling with the same name already exists
	ErrNodeExists = errors.New("node already exists")

	// ErrPathConflict indicates an intermediate segment is a file
	ErrPathConflict = errors.New("path conflicts with a file")

	// ErrMalformed indicates a serialized tree that violates the node rules
	ErrMalformed = errors.New("malformed structure")
)
