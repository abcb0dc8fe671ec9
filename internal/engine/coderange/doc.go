// Package coderange implements an algebra of half-open (row, column) ranges
// over a block of source text.
//
// Ranges are used to describe selections and highlighted regions of code.
// Rows and columns are 0-indexed and either may be Unbounded, which behaves
// as positive infinity in every comparison:
//
//	coderange.Lines(2)             // the whole of line 2
//	coderange.Lines(2, 4)          // lines 2 through 4
//	coderange.Word(3, 4, 5)        // five columns of line 3 starting at column 4
//	coderange.PointToPoint(0, 0, coderange.Unbounded, coderange.Unbounded) // everything
//
// Range Semantics:
//
// A point (r, c) lies inside the range [(r0, c0), (r1, c1)) iff
//
//	((r == r0 && c >= c0) || r > r0) && ((r == r1 && c < c1) || r < r1)
//
// which makes the start inclusive and the end exclusive, and lets an unbounded
// end column accept any column of the final line.
//
// Set Operations:
//
//   - Consolidate merges overlapping ranges into a minimal set of maximal ranges
//   - Invert returns the complement of a consolidated set over the whole document
//
// Range values are owned by the caller. Nothing in this package retains them.
package coderange
