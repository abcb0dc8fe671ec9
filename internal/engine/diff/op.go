package diff

// None marks a missing source or target index.
const None = -1

// Kind classifies a diff operation.
type Kind uint8

const (
	// Keep indicates an item present, unchanged, on both sides.
	Keep Kind = iota

	// Change indicates an aligned pair that differs, or an unpaired item
	// produced by Align.
	Change

	// Insert indicates an item only present in the target.
	Insert

	// Delete indicates an item only present in the source.
	Delete

	// Move indicates an item that was relocated.
	Move
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case Keep:
		return "keep"
	case Change:
		return "change"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Move:
		return "move"
	default:
		return "unknown"
	}
}

// Op is a single diff operation. Ops are ordered so that replaying them
// against the source reconstructs the target.
type Op struct {
	// Source is the index in the source sequence, or None.
	Source int

	// Target is the index in the target sequence, or None.
	Target int

	// Kind classifies the operation.
	//
	// A Move appears twice: once where the item left the source
	// (Target == None) and once where it arrived in the target
	// (both indexes set).
	Kind Kind
}

// IsArrival returns true for the target-side half of a Move.
func (op Op) IsArrival() bool {
	return op.Kind == Move && op.Target != None
}

// Result is the outcome of a line diff.
type Result struct {
	// Ops are the operations in order.
	Ops []Op

	// Kept is the number of Keep operations.
	Kept int

	// Deleted is the number of Delete operations.
	Deleted int

	// Inserted is the number of Insert operations.
	Inserted int

	// Moved is the number of move pairs.
	Moved int
}

// HasChanges returns true if the sequences differ.
func (r Result) HasChanges() bool {
	return r.Deleted > 0 || r.Inserted > 0 || r.Moved > 0
}

// Apply replays ops and returns the reconstructed target sequence.
func Apply[T any](a, b []T, ops []Op) []T {
	out := make([]T, 0, len(b))
	for _, op := range ops {
		switch op.Kind {
		case Keep:
			out = append(out, a[op.Source])
		case Insert, Change, Move:
			if op.Target != None {
				out = append(out, b[op.Target])
			}
		}
	}
	return out
}
