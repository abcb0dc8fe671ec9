package coderange

import (
	"errors"
	"fmt"
)

// ErrMalformedRange indicates a range whose end precedes its start.
var ErrMalformedRange = errors.New("malformed range")

// MalformedError reports the ranges rejected by ConsolidateChecked.
type MalformedError struct {
	// Indexes are the positions of the rejected ranges in the input.
	Indexes []int
	// Ranges are the rejected ranges, in input order.
	Ranges []Range
}

// Error implements the error interface.
func (e *MalformedError) Error() string {
	if len(e.Ranges) == 1 {
		return fmt.Sprintf("malformed range %s at index %d", e.Ranges[0], e.Indexes[0])
	}
	return fmt.Sprintf("%d malformed ranges (first %s at index %d)", len(e.Ranges), e.Ranges[0], e.Indexes[0])
}

// Unwrap returns ErrMalformedRange so callers can use errors.Is.
func (e *MalformedError) Unwrap() error {
	return ErrMalformedRange
}
