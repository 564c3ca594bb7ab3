package settings

import (
	"errors"
	"fmt"
)

// Errors returned by controller operations.
var (
	// ErrAlreadyAttached indicates Attach was called on an attached
	// controller.
	ErrAlreadyAttached = errors.New("controller is already attached")

	// ErrNotAttached indicates an operation that needs brokers was
	// called on a detached controller.
	ErrNotAttached = errors.New("controller is not attached")
)

// UnknownProfileError indicates a profile selection that is not in the
// available set. The presentation model is left unchanged.
type UnknownProfileError struct {
	// Filename is the rejected profile file name.
	Filename string
}

// Error implements the error interface.
func (e *UnknownProfileError) Error() string {
	return fmt.Sprintf("unknown profile %q", e.Filename)
}
