package fragment

import "fmt"

// Node is an element of a scope: a Literal, Token, Pair, Fragment or *Scope.
type Node interface {
	isNode()
}

// Literal is plain text that does not change during a transition.
type Literal string

func (Literal) isNode() {}

// Pair is unmeasured before and after content. Each side is a Literal or a
// Token.
type Pair struct {
	Before Node
	After  Node
}

func (Pair) isNode() {}

// Fragment is a measured piece of content before and after a transition.
type Fragment struct {
	Before Token
	After  Token
}

func (Fragment) isNode() {}

// Static creates a fragment that is the same on both sides.
func Static(tok Token) Fragment {
	return Fragment{Before: tok, After: tok}
}

// IsStatic returns true if the content does not change.
func (f Fragment) IsStatic() bool {
	return f.Before.Content == f.After.Content
}

// Insert creates a pair that grows from nothing into text.
func Insert(text string) Pair {
	return Pair{Before: Literal(""), After: Literal(text)}
}

// Remove creates a pair that shrinks from text into nothing.
func Remove(text string) Pair {
	return Pair{Before: Literal(text), After: Literal("")}
}

// Replace creates a pair that turns before into after.
func Replace(before, after string) Pair {
	return Pair{Before: Literal(before), After: Literal(after)}
}

// Normalize converts a leaf node into a Fragment, measuring any
// unmeasured text with m. Scopes are not leaves and are rejected.
func Normalize(node Node, m Measurer) (Fragment, error) {
	switch n := node.(type) {
	case Literal:
		return Static(m.Measure(string(n))), nil
	case Token:
		return Static(n), nil
	case Fragment:
		return n, nil
	case Pair:
		before, err := side(n.Before, m)
		if err != nil {
			return Fragment{}, fmt.Errorf("before: %w", err)
		}
		after, err := side(n.After, m)
		if err != nil {
			return Fragment{}, fmt.Errorf("after: %w", err)
		}
		return Fragment{Before: before, After: after}, nil
	default:
		return Fragment{}, fmt.Errorf("%w: %T", ErrUnsupportedNode, node)
	}
}

func side(node Node, m Measurer) (Token, error) {
	switch n := node.(type) {
	case Literal:
		return m.Measure(string(n)), nil
	case Token:
		return n, nil
	case nil:
		return m.Measure(""), nil
	default:
		return Token{}, fmt.Errorf("%w: %T", ErrUnsupportedNode, node)
	}
}

// text returns the before or after text of a leaf.
func text(node Node, after bool) string {
	switch n := node.(type) {
	case Literal:
		return string(n)
	case Token:
		return n.Content
	case Fragment:
		if after {
			return n.After.Content
		}
		return n.Before.Content
	case Pair:
		if after {
			return text(n.After, after)
		}
		return text(n.Before, after)
	default:
		return ""
	}
}
