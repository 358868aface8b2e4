// Package errors provides the classified error primitives used across moss.
//
// Generation distinguishes two kinds of failure. Errors that stop any output
// from being produced (a bad source path, an empty folder, an unwritable
// output tree) are returned as fatal ClassifiedError values. Failures that
// only affect a single unit of content are collected as Warning values next
// to a successful result.
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryOutput, "cannot write stylesheet").
//		Fatal().
//		WithContext("path", cssPath).
//		WithCause(writeErr).
//		Build()
package errors
