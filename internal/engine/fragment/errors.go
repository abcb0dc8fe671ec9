package fragment

import "errors"

var (
	// ErrUnsupportedNode indicates a node shape that cannot be turned into
	// a fragment.
	ErrUnsupportedNode = errors.New("unsupported node")

	// ErrNilScope indicates a nil scope was passed where one is required.
	ErrNilScope = errors.New("nil scope")
)
