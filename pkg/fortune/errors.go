package fortune

import "fmt"

// GenerationError reports a failure of the external quote/format
// pipeline. It names the command that failed and wraps the underlying
// execution error.
type GenerationError struct {
	Command string
	Err     error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	return fmt.Sprintf("generating fortune: %s: %v", e.Command, e.Err)
}

// Unwrap returns the underlying execution error.
func (e *GenerationError) Unwrap() error { return e.Err }
