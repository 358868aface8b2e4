package site

import "errors"

var (
	// ErrNoContent is the cause of the error returned for a folder without files.
	ErrNoContent = errors.New("no files found in folder")
	// ErrOutputWrite is the cause of every fatal output tree failure.
	ErrOutputWrite = errors.New("cannot write site output")
	// ErrDuplicateURLPath marks a document skipped because an earlier one
	// already maps to the same output path.
	ErrDuplicateURLPath = errors.New("output path already taken")
	// ErrReservedPath marks a source file skipped because a bundled asset
	// owns its output path.
	ErrReservedPath = errors.New("path reserved for a bundled asset")
)
