package coderange

import "fmt"

// Range is a half-open span of points: Start is inclusive, End is exclusive.
type Range struct {
	Start Point
	End   Point
}

// NewRange creates a range from two points.
func NewRange(start, end Point) Range {
	return Range{Start: start, End: end}
}

// Lines creates a range that spans whole lines.
// If to is omitted, the range covers only line from.
func Lines(from int, to ...int) Range {
	last := from
	if len(to) > 0 {
		last = to[0]
	}
	return Range{
		Start: Point{Row: from, Column: 0},
		End:   Point{Row: last, Column: Unbounded},
	}
}

// Word creates a range covering length columns of a line starting at column.
// If length is omitted, the range covers the rest of the line.
func Word(line, column int, length ...int) Range {
	end := Unbounded
	if len(length) > 0 {
		end = column + length[0]
	}
	return Range{
		Start: Point{Row: line, Column: column},
		End:   Point{Row: line, Column: end},
	}
}

// PointToPoint creates a range from explicit start and end coordinates.
func PointToPoint(startLine, startColumn, endLine, endColumn int) Range {
	return Range{
		Start: Point{Row: startLine, Column: startColumn},
		End:   Point{Row: endLine, Column: endColumn},
	}
}

// Of collects ranges into a slice, which reads better at call sites that
// build selections inline.
func Of(ranges ...Range) []Range {
	return ranges
}

// Everything is the range covering the whole document.
func Everything() Range {
	return Range{Start: Origin, End: End}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%s-%s)", r.Start, r.End)
}

// IsValid returns true if start does not come after end.
func (r Range) IsValid() bool {
	return r.Start.Compare(r.End) <= 0
}

// IsEmpty returns true if start equals end.
func (r Range) IsEmpty() bool {
	return r.Start.Compare(r.End) == 0
}

// Contains returns true if p lies inside r.
func (r Range) Contains(p Point) bool {
	return Contains(p, r)
}

// Contains reports whether point p lies inside range r.
// The start is inclusive and the end exclusive; Unbounded coordinates
// compare as positive infinity.
func Contains(p Point, r Range) bool {
	afterStart := (p.Row == r.Start.Row && p.Column >= r.Start.Column) || p.Row > r.Start.Row
	beforeEnd := (p.Row == r.End.Row && p.Column < r.End.Column) || p.Row < r.End.Row
	return afterStart && beforeEnd
}

// overlaps implements the merge rule: either endpoint of one range lies
// inside the other.
func overlaps(a, b Range) bool {
	return Contains(a.Start, b) || Contains(a.End, b) ||
		Contains(b.Start, a) || Contains(b.End, a)
}

func union(a, b Range) Range {
	return Range{
		Start: minPoint(a.Start, b.Start),
		End:   maxPoint(a.End, b.End),
	}
}
