package fragment

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Handle identifies a scope. Handles are assigned at construction and survive
// any rebuild of the surrounding tree.
type Handle uuid.UUID

// NewHandle returns a new random handle.
func NewHandle() Handle {
	return Handle(uuid.New())
}

// String returns the canonical text form of the handle.
func (h Handle) String() string {
	return uuid.UUID(h).String()
}

// IsZero returns true for the zero handle.
func (h Handle) IsZero() bool {
	return h == Handle(uuid.Nil)
}

// Progress is a blend factor in [0, 1], read fresh on every traversal.
type Progress interface {
	Value() float64
}

// Fixed is a constant progress value.
type Fixed float64

// Value returns f.
func (f Fixed) Value() float64 { return float64(f) }

// ProgressFunc adapts a function to the Progress interface.
type ProgressFunc func() float64

// Value calls f.
func (f ProgressFunc) Value() float64 { return f() }

// Scope is an internal node of a content tree.
type Scope struct {
	ID       Handle
	Progress Progress
	Nodes    []Node
}

func (*Scope) isNode() {}

// NewScope creates a scope with a fresh handle. A nil progress is treated as
// Fixed(0).
func NewScope(progress Progress, nodes ...Node) *Scope {
	if progress == nil {
		progress = Fixed(0)
	}
	return &Scope{ID: NewHandle(), Progress: progress, Nodes: nodes}
}

// FromText creates a scope holding a single literal.
func FromText(text string) *Scope {
	return NewScope(Fixed(0), Literal(text))
}

// Value returns the progress of the scope clamped to [0, 1].
func (s *Scope) Value() float64 {
	if s == nil || s.Progress == nil {
		return 0
	}
	v := s.Progress.Value()
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// Resolve returns the text of the tree before or after the transition.
func Resolve(s *Scope, after bool) string {
	return ResolveFunc(s, func(*Scope) bool { return after })
}

// ResolveFunc is like Resolve but decides per scope which side to take.
func ResolveFunc(s *Scope, isAfter func(*Scope) bool) string {
	var sb strings.Builder
	resolve(&sb, s, isAfter)
	return sb.String()
}

func resolve(sb *strings.Builder, s *Scope, isAfter func(*Scope) bool) {
	if s == nil {
		return
	}
	after := isAfter(s)
	for _, node := range s.Nodes {
		if child, ok := node.(*Scope); ok {
			resolve(sb, child, isAfter)
			continue
		}
		sb.WriteString(text(node, after))
	}
}

// Find returns the scope with the given handle, or nil.
func Find(s *Scope, id Handle) *Scope {
	if s == nil {
		return nil
	}
	if s.ID == id {
		return s
	}
	for _, node := range s.Nodes {
		if child, ok := node.(*Scope); ok {
			if found := Find(child, id); found != nil {
				return found
			}
		}
	}
	return nil
}

// ReplaceNode returns a copy of root in which the descendant scope with the
// given handle is replaced by node. Only the scopes on the path to the
// replaced node are copied; all other subtrees are shared. The root itself is
// never replaced. The boolean result reports whether the handle was found;
// if not, root is returned unchanged.
func ReplaceNode(root *Scope, id Handle, node Node) (*Scope, bool) {
	if root == nil {
		return nil, false
	}
	for i, n := range root.Nodes {
		child, ok := n.(*Scope)
		if !ok {
			continue
		}

		var replacement Node
		if child.ID == id {
			replacement = node
		} else if rebuilt, found := ReplaceNode(child, id, node); found {
			replacement = rebuilt
		} else {
			continue
		}

		nodes := make([]Node, len(root.Nodes))
		copy(nodes, root.Nodes)
		nodes[i] = replacement
		return &Scope{ID: root.ID, Progress: root.Progress, Nodes: nodes}, true
	}
	return root, false
}

// WithNodes returns a copy of s holding nodes, keeping its handle and
// progress.
func (s *Scope) WithNodes(nodes ...Node) *Scope {
	return &Scope{ID: s.ID, Progress: s.Progress, Nodes: nodes}
}

// MeasureScope returns a copy of the tree in which every leaf has been
// normalized into a Fragment. Handles and progress values are preserved.
func MeasureScope(s *Scope, m Measurer) (*Scope, error) {
	if s == nil {
		return nil, ErrNilScope
	}
	nodes := make([]Node, len(s.Nodes))
	for i, node := range s.Nodes {
		if child, ok := node.(*Scope); ok {
			measured, err := MeasureScope(child, m)
			if err != nil {
				return nil, err
			}
			nodes[i] = measured
			continue
		}
		frag, err := Normalize(node, m)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		nodes[i] = frag
	}
	return s.WithNodes(nodes...), nil
}
