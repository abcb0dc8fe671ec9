package transition

import "errors"

// Errors returned by transition operations.
var (
	// ErrNotReady indicates the highlighter did not become ready before the
	// context was done.
	ErrNotReady = errors.New("highlighter not ready")

	// ErrUnknownTiming indicates a timing function name is not registered.
	ErrUnknownTiming = errors.New("unknown timing function")

	// ErrUnknownAlgorithm indicates a diff algorithm name is not supported.
	ErrUnknownAlgorithm = errors.New("unknown diff algorithm")
)
