package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a call runs past its timeout.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrNotFunction is returned when a global expected to be a function
	// is missing or has another type.
	ErrNotFunction = errors.New("lua global is not a function")

	// ErrBadResult is returned when a script returns something other than
	// a finite number.
	ErrBadResult = errors.New("lua function did not return a number")
)
