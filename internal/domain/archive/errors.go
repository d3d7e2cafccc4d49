package archive

import "errors"

var (
	// ErrArchiveNotFound indicates no archive exists for the name
	ErrArchiveNotFound = errors.New("archive not found")

	// ErrAlreadyExists indicates an archive with the name already exists
	ErrAlreadyExists = errors.New("archive already exists")

	// ErrCorruptArchive indicates a file that is not a readable zip
	ErrCorruptArchive = errors.New("corrupt archive")

	// ErrMissingMetadata indicates an archive without an info.json entry
	ErrMissingMetadata = errors.New("missing metadata")

	// ErrCorruptMetadata indicates an info.json entry that cannot be decoded
	ErrCorruptMetadata = errors.New("corrupt metadata")

	// ErrInconsistentArchive indicates a structure tree that does not match
	// the archive entries
	ErrInconsistentArchive = errors.New("inconsistent archive")

	// ErrWriteFailed indicates the new archive could not be written
	ErrWriteFailed = errors.New("archive write failed")

	// ErrStorageUnavailable indicates writes are suspended after repeated
	// write failures
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrContentTooLarge indicates file content over MaxContentSize
	ErrContentTooLarge = errors.New("content too large")
)
