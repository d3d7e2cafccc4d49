package manifest

import "errors"

var (
	// ErrInvalidDocument indicates a spec or document with missing or
	// malformed fields
	ErrInvalidDocument = errors.New("invalid document")

	// ErrMalformed indicates an encoded document that cannot be decoded
	ErrMalformed = errors.New("malformed document")
)
