package scanner

// Sentinel errors for scan operations. Fatal scan errors are ClassifiedError
// values wrapping one of these, so callers can use errors.Is.

import "errors"

var (
	// ErrNotFound indicates the source path does not exist.
	ErrNotFound = errors.New("source folder not found")

	// ErrNotADirectory indicates the source path exists but is not a folder.
	ErrNotADirectory = errors.New("source path is not a directory")

	// ErrEntryUnreadable indicates a single entry could not be read during the walk.
	ErrEntryUnreadable = errors.New("entry unreadable")

	// ErrBrokenSymlink indicates a symlink whose target cannot be resolved.
	ErrBrokenSymlink = errors.New("broken symlink")
)
