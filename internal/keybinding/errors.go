package keybinding

import (
	"errors"
	"fmt"
)

// Errors returned by key-binding store operations.
var (
	// ErrProfileNotFound indicates the profile is not in the scanned set.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("key-binding store is closed")
)

// ParseError represents an error while parsing a profile file.
type ParseError struct {
	// Path is the file path that failed to parse.
	Path string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
