package calc

import "errors"

var (
	// ErrUnsupportedOperation is returned when the registry has no
	// implementation for the requested identifier.
	ErrUnsupportedOperation = errors.New("Operation not supported")

	// ErrDivisionByZero is returned by DivideFunc for a zero divisor.
	ErrDivisionByZero = errors.New("Division by zero")
)
