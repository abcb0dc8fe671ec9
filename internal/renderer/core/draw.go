package core

import (
	"fmt"
	"math"
	"strings"
)

// Size is a measured extent in device units.
type Size struct {
	W, H float64
}

// Cells returns the size rounded up to whole cells of the given dimensions.
func (s Size) Cells(cellWidth, lineHeight float64) (width, height int) {
	if cellWidth <= 0 {
		cellWidth = 1
	}
	if lineHeight <= 0 {
		lineHeight = 1
	}
	return int(math.Ceil(s.W / cellWidth)), int(math.Ceil(s.H / lineHeight))
}

// DrawOp is a single run of text to draw.
type DrawOp struct {
	// Text is drawn on a single line; it never contains a newline.
	Text string

	// X is the horizontal position in cells.
	X float64

	// Y is the vertical position in rows. It may be fractional while
	// text slides between rows.
	Y float64

	// Color is the fill color.
	Color Color

	// Alpha is the opacity in [0, 1].
	Alpha float64
}

// String returns a compact representation of the op.
func (op DrawOp) String() string {
	return fmt.Sprintf("%q @(%.2f,%.2f) %s a=%.2f", op.Text, op.X, op.Y, op.Color, op.Alpha)
}

// Canvas receives draw operations.
type Canvas interface {
	FillText(op DrawOp)
}

// CanvasFunc adapts a function to the Canvas interface.
type CanvasFunc func(op DrawOp)

// FillText calls f.
func (f CanvasFunc) FillText(op DrawOp) { f(op) }

// Recorder is a Canvas that keeps every op it receives.
type Recorder struct {
	Ops []DrawOp
}

// FillText records op.
func (r *Recorder) FillText(op DrawOp) {
	r.Ops = append(r.Ops, op)
}

// Reset discards recorded ops.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

// Visible returns the recorded ops with a positive alpha.
func (r *Recorder) Visible() []DrawOp {
	var out []DrawOp
	for _, op := range r.Ops {
		if op.Alpha > 0 {
			out = append(out, op)
		}
	}
	return out
}

// Text reassembles the visible recorded text into lines by rounding each
// op to its nearest row and cell. Later ops overwrite earlier ones.
func (r *Recorder) Text() string {
	var rows [][]rune
	for _, op := range r.Visible() {
		y := int(math.Round(op.Y))
		x := int(math.Round(op.X))
		if y < 0 || x < 0 {
			continue
		}
		for len(rows) <= y {
			rows = append(rows, nil)
		}
		for _, ch := range op.Text {
			for len(rows[y]) <= x {
				rows[y] = append(rows[y], ' ')
			}
			rows[y][x] = ch
			x++
			if RuneWidth(ch) == 2 {
				if len(rows[y]) <= x {
					rows[y] = append(rows[y], 0)
				}
				rows[y][x] = 0
				x++
			}
		}
	}

	lines := make([]string, len(rows))
	for i, row := range rows {
		line := strings.ReplaceAll(string(row), "\x00", "")
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}
