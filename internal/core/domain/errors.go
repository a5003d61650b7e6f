package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates a file whose format is unknown
	// or has no registered extractor.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrNoContent indicates decomposition yielded zero usable sections.
	ErrNoContent = errors.New("no usable content")

	// ErrMissingMetadata indicates title or author could not be resolved
	// after the full metadata cascade.
	ErrMissingMetadata = errors.New("missing metadata")

	// ErrDuplicateItem indicates an identity collision with conflicting,
	// non-mergeable data.
	ErrDuplicateItem = errors.New("duplicate item")

	// ErrCatalogInconsistency indicates a catalog entry whose path does
	// not resolve to a valid manifest. Recoverable via catalog rebuild.
	ErrCatalogInconsistency = errors.New("catalog inconsistency")
)

// ParseError indicates an extractor failed on unreadable content.
// It carries the file path and wraps the underlying cause.
type ParseError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError wraps err as a ParseError for the given path.
func NewParseError(path string, err error) *ParseError {
	return &ParseError{Path: path, Err: err}
}
