// Package apperr defines the sentinel errors shared across the archive.
package apperr

import "errors"

var (
	// ErrNotFound reports a lookup miss. Callers use it for branching;
	// it is not necessarily surfaced as a failure.
	ErrNotFound = errors.New("not found")
	// ErrConflict reports a duplicate primary link insert without the
	// merge flag.
	ErrConflict = errors.New("conflict")
	// ErrValidation reports malformed input, such as an invalid tag or
	// a non-web URL scheme.
	ErrValidation = errors.New("invalid input")
	// ErrFetch reports a network, timeout, or parse failure from the
	// content extractor.
	ErrFetch = errors.New("fetch failed")
)
