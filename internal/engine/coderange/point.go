package coderange

import (
	"fmt"
	"math"
)

// Unbounded is the sentinel for an open-ended row or column.
// It compares greater than every other coordinate.
const Unbounded = math.MaxInt

// Point is a row and column position. Both are 0-indexed and either may be
// Unbounded.
type Point struct {
	Row    int
	Column int
}

// Origin is the first position of every document.
var Origin = Point{}

// End is the position after everything, (∞, ∞).
var End = Point{Row: Unbounded, Column: Unbounded}

// NewPoint creates a point.
func NewPoint(row, column int) Point {
	return Point{Row: row, Column: column}
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%s:%s)", coord(p.Row), coord(p.Column))
}

func coord(v int) string {
	if v == Unbounded {
		return "∞"
	}
	return fmt.Sprintf("%d", v)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other,
// comparing rows first.
func (p Point) Compare(other Point) int {
	if p.Row < other.Row {
		return -1
	}
	if p.Row > other.Row {
		return 1
	}
	if p.Column < other.Column {
		return -1
	}
	if p.Column > other.Column {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Point) Before(other Point) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Point) After(other Point) bool {
	return p.Compare(other) > 0
}

func minPoint(a, b Point) Point {
	if b.Before(a) {
		return b
	}
	return a
}

func maxPoint(a, b Point) Point {
	if b.After(a) {
		return b
	}
	return a
}
