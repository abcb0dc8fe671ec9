// Package core provides the draw primitives shared by the traversal engine
// and the display backends.
//
// A traversal emits DrawOp values to a Canvas. Each op carries a run of text,
// a position in cells and rows, a color and an opacity. Backends decide how
// to realise opacity: the terminal backend composites the color over its
// background, the Recorder keeps the raw values for tests and dumps.
package core
