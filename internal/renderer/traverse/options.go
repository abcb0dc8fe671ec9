package traverse

import (
	"github.com/dshills/codemorph/internal/engine/coderange"
	"github.com/dshills/codemorph/internal/engine/fragment"
	"github.com/dshills/codemorph/internal/renderer/core"
	"github.com/dshills/codemorph/internal/renderer/highlight"
)

// DefaultHold is the fraction of the approach to the midpoint over which
// changing text fades.
const DefaultHold = 0.8

// Caches are the prepared highlight caches for both sides of a tree.
type Caches struct {
	Before highlight.Cache
	After  highlight.Cache
}

// Options configure a traversal.
type Options struct {
	// Measurer converts text into cells. The zero value measures terminal
	// cells with go-runewidth.
	Measurer fragment.Measurer

	// LineHeight is the height of a row in device units. Zero means 1.
	LineHeight float64

	// Hold is the fade fraction. Zero means DefaultHold.
	Hold float64

	// Fallback is the color of text without a highlight color.
	Fallback core.Color

	// Highlighter and Caches color the text. Highlighting is disabled if
	// either is nil, and a side whose cache is nil is drawn one grapheme
	// at a time in the fallback color.
	Highlighter highlight.Highlighter
	Caches      *Caches

	// Selection, when non-empty, dims every character outside the ranges.
	// Ranges should be consolidated.
	Selection []coderange.Range

	// DimAlpha is the opacity multiplier for characters outside Selection.
	DimAlpha float64
}

func (o Options) withDefaults() Options {
	if o.Measurer.CellWidth <= 0 || o.Measurer.WidthOf == nil {
		o.Measurer = fragment.RuneWidthMeasurer()
	}
	if o.LineHeight <= 0 {
		o.LineHeight = 1
	}
	if o.Hold <= 0 || o.Hold > 1 {
		o.Hold = DefaultHold
	}
	if o.Highlighter == nil || o.Caches != nil && o.Caches.Before == nil && o.Caches.After == nil {
		o.Caches = nil
	}
	return o
}
