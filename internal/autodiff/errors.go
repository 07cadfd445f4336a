package autodiff

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrZeroOrder           = errors.New("differentiation order must be at least 1")
	ErrOrderExceeded       = errors.New("requested order exceeds differentiation order")
	ErrMismatchedArguments = errors.New("variable and order lists differ in length")
	ErrStaleVariable       = errors.New("variable belongs to a cleared tape generation")
	ErrForeignVariable     = errors.New("variable belongs to another tape")
	ErrInvalidQuery        = errors.New("malformed derivative query")
)

// QueryError describes a rejected derivative query.
type QueryError struct {
	Err  error // One of the sentinel errors above.
	Got  int   // Offending value (requested order, list length).
	Want int   // Limit it was checked against.
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	switch {
	case errors.Is(e.Err, ErrOrderExceeded):
		return fmt.Sprintf("%v: requested %d, computed %d", e.Err, e.Got, e.Want)
	case errors.Is(e.Err, ErrMismatchedArguments):
		return fmt.Sprintf("%v: %d variables, %d orders", e.Err, e.Got, e.Want)
	default:
		return e.Err.Error()
	}
}

// Unwrap returns the sentinel error.
func (e *QueryError) Unwrap() error {
	return e.Err
}
