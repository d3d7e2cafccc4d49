package project

import "errors"

var (
	// ErrInvalidName indicates a name that is malformed or escapes the
	// managed directory
	ErrInvalidName = errors.New("invalid project name")

	// ErrInvalidSpec indicates create input that fails validation
	ErrInvalidSpec = errors.New("invalid project spec")

	// ErrNotFound indicates no project exists with the name
	ErrNotFound = errors.New("project not found")

	// ErrDuplicateProject indicates a project with the name already exists
	ErrDuplicateProject = errors.New("project already exists")

	// ErrDeleteFailed indicates the archive could not be removed
	ErrDeleteFailed = errors.New("delete failed")
)
