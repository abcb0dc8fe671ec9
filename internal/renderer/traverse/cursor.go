package traverse

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/dshills/codemorph/internal/engine/coderange"
	"github.com/dshills/codemorph/internal/engine/fragment"
	"github.com/dshills/codemorph/internal/renderer/core"
)

// Cursor is the state of a single measure or draw pass. It is reused across
// frames by calling Reset before each pass.
type Cursor struct {
	opts Options

	x, y     float64
	maxWidth float64

	beforeIndex, afterIndex int
	beforePoint, afterPoint coderange.Point
}

// New creates a cursor ready for a pass.
func New(opts Options) *Cursor {
	c := &Cursor{}
	c.Reset(opts)
	return c
}

// Reset prepares the cursor for the next pass.
func (c *Cursor) Reset(opts Options) {
	*c = Cursor{opts: opts.withDefaults()}
}

// Position returns the current cursor position in cells and rows.
func (c *Cursor) Position() (x, y float64) {
	return c.x, c.y
}

// Offsets returns the character offsets reached in the before and after
// text.
func (c *Cursor) Offsets() (before, after int) {
	return c.beforeIndex, c.afterIndex
}

// MeasureSize measures the desired size of the tree. The result is read
// with Size.
func (c *Cursor) MeasureSize(scope *fragment.Scope) error {
	if scope == nil {
		return fragment.ErrNilScope
	}
	progress := scope.Value()
	for _, node := range scope.Nodes {
		if child, ok := node.(*fragment.Scope); ok {
			if err := c.MeasureSize(child); err != nil {
				return err
			}
			continue
		}

		frag, err := fragment.Normalize(node, c.opts.Measurer)
		if err != nil {
			return err
		}

		beforeMax := c.maxWidthWith(frag.Before)
		afterMax := c.maxWidthWith(frag.After)
		if w := blend(beforeMax, afterMax, progress); w > c.maxWidth {
			c.maxWidth = w
		}

		c.x = blend(c.endX(frag.Before), c.endX(frag.After), progress)

		if c.y == 0 {
			c.y = 1
		}
		c.y += blend(float64(frag.Before.Rows), float64(frag.After.Rows), progress)
	}
	return nil
}

// Size returns the size measured by MeasureSize in device units.
func (c *Cursor) Size() core.Size {
	return core.Size{
		W: c.maxWidth * c.opts.Measurer.CellWidth,
		H: c.y * c.opts.LineHeight,
	}
}

// DrawScope draws the tree to canvas.
func (c *Cursor) DrawScope(scope *fragment.Scope, canvas core.Canvas) error {
	if scope == nil {
		return fragment.ErrNilScope
	}
	progress := scope.Value()
	for _, node := range scope.Nodes {
		if child, ok := node.(*fragment.Scope); ok {
			if err := c.DrawScope(child, canvas); err != nil {
				return err
			}
			continue
		}

		frag, err := fragment.Normalize(node, c.opts.Measurer)
		if err != nil {
			return err
		}

		alpha, offsetY := 1.0, 0.0
		if !frag.IsStatic() {
			mirrored := math.Abs(progress-0.5) * 2
			alpha = clampRemap(1, 1-c.opts.Hold, 1, 0, mirrored)
			rows := math.Abs(float64(frag.After.Rows - frag.Before.Rows))
			offsetY = blend(rows/-4, 0, mirrored)
		}

		c.drawToken(frag, progress, c.x, c.y+offsetY, alpha, canvas)

		c.beforeIndex += utf8.RuneCountInString(frag.Before.Content)
		c.afterIndex += utf8.RuneCountInString(frag.After.Content)
		c.beforePoint = advance(c.beforePoint, frag.Before.Content)
		c.afterPoint = advance(c.afterPoint, frag.After.Content)

		c.y += blend(float64(frag.Before.Rows), float64(frag.After.Rows), progress)
		c.x = blend(c.endX(frag.Before), c.endX(frag.After), progress)
	}
	return nil
}

// drawToken draws the visible side of a fragment with its top-left corner
// at (x, y).
func (c *Cursor) drawToken(frag fragment.Fragment, progress, x, y, alpha float64, canvas core.Canvas) {
	useAfter := progress >= 0.5
	tok, point := frag.Before, c.beforePoint
	if useAfter {
		tok, point = frag.After, c.afterPoint
	}
	static := frag.IsStatic()
	content := tok.Content
	cached := c.hasCache(useAfter)

	col, row := x, 0.0
	width := 0
	i := 0 // rune index into content
	for b := 0; b < len(content); {
		if content[b] == '\n' {
			row++
			col = 0
			width = 0
			point = coderange.Point{Row: point.Row + 1, Column: 0}
			b++
			i++
			continue
		}

		color := c.opts.Fallback
		var run string
		if cached {
			before := c.opts.Highlighter.Highlight(c.beforeIndex+i, c.opts.Caches.Before)
			after := c.opts.Highlighter.Highlight(c.afterIndex+i, c.opts.Caches.After)
			h := before
			if useAfter {
				h = after
			}
			if h.Color != nil {
				color = *h.Color
			}
			if static && !sameColor(before.Color, after.Color) {
				color = c.colorOr(before.Color).Lerp(c.colorOr(after.Color), progress)
				// The blended color holds only while neither side changes.
				h.SkipAhead = min(max(before.SkipAhead, 1), max(after.SkipAhead, 1))
			}

			switch {
			case h.Color == nil && h.SkipAhead == 0:
				run = untilNewline(content[b:])
			case h.SkipAhead > 1:
				run = runes(content[b:], h.SkipAhead)
			default:
				run = grapheme(content[b:])
			}
		} else {
			run = grapheme(content[b:])
		}

		for _, part := range c.splitSelection(run, point) {
			canvas.FillText(core.DrawOp{
				Text:  part.text,
				X:     col + float64(width),
				Y:     y + row,
				Color: color,
				Alpha: alpha * part.alpha,
			})
			width += c.opts.Measurer.Cells(part.text)
		}

		n := utf8.RuneCountInString(run)
		point.Column += n
		b += len(run)
		i += n
	}
}

// hasCache reports whether the drawn side has a prepared highlight cache.
func (c *Cursor) hasCache(after bool) bool {
	if c.opts.Caches == nil {
		return false
	}
	if after {
		return c.opts.Caches.After != nil
	}
	return c.opts.Caches.Before != nil
}

type part struct {
	text  string
	alpha float64
}

// splitSelection splits a single-line run at selection boundaries. start is
// the point of the first character of the run.
func (c *Cursor) splitSelection(run string, start coderange.Point) []part {
	if len(c.opts.Selection) == 0 {
		return []part{{text: run, alpha: 1}}
	}

	var parts []part
	p := start
	from := 0
	inside := coderange.ContainsAny(p, c.opts.Selection)
	for i := range run {
		if in := coderange.ContainsAny(p, c.opts.Selection); in != inside {
			parts = append(parts, c.selectionPart(run[from:i], inside))
			from, inside = i, in
		}
		p.Column++
	}
	return append(parts, c.selectionPart(run[from:], inside))
}

func (c *Cursor) selectionPart(text string, inside bool) part {
	if inside {
		return part{text: text, alpha: 1}
	}
	return part{text: text, alpha: c.opts.DimAlpha}
}

func (c *Cursor) colorOr(color *core.Color) core.Color {
	if color == nil {
		return c.opts.Fallback
	}
	return *color
}

// endX returns where the cursor ends up after tok.
func (c *Cursor) endX(tok fragment.Token) float64 {
	if tok.Rows == 0 {
		return c.x + float64(tok.LastWidth)
	}
	return float64(tok.LastWidth)
}

func (c *Cursor) maxWidthWith(tok fragment.Token) float64 {
	return max(c.maxWidth, float64(tok.MaxWidth), c.x+float64(tok.FirstWidth))
}

func blend(from, to, t float64) float64 {
	return from + (to-from)*t
}

// clampRemap maps value from [fromA, toA] onto [fromB, toB], clamped to
// the target interval.
func clampRemap(fromA, toA, fromB, toB, value float64) float64 {
	if fromA == toA {
		return toB
	}
	t := (value - fromA) / (toA - fromA)
	t = math.Max(0, math.Min(1, t))
	return blend(fromB, toB, t)
}

// advance moves p past text.
func advance(p coderange.Point, text string) coderange.Point {
	for _, r := range text {
		if r == '\n' {
			p.Row++
			p.Column = 0
			continue
		}
		p.Column++
	}
	return p
}

func sameColor(a, b *core.Color) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equals(*b)
}

// grapheme returns the first grapheme cluster of s, never including a
// newline.
func grapheme(s string) string {
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s, -1)
	return untilNewline(cluster)
}

// untilNewline returns s up to, not including, the first newline.
func untilNewline(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// runes returns up to n runes of s, stopping before a newline.
func runes(s string, n int) string {
	s = untilNewline(s)
	for i := range s {
		if n == 0 {
			return s[:i]
		}
		n--
	}
	return s
}

// Measure measures scope with a fresh cursor.
func Measure(scope *fragment.Scope, opts Options) (core.Size, error) {
	c := New(opts)
	if err := c.MeasureSize(scope); err != nil {
		return core.Size{}, err
	}
	return c.Size(), nil
}

// Draw draws scope to canvas with a fresh cursor.
func Draw(scope *fragment.Scope, canvas core.Canvas, opts Options) error {
	return New(opts).DrawScope(scope, canvas)
}
