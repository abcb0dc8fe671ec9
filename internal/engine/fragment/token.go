package fragment

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// WidthFunc returns the width of a single line of text in device units.
type WidthFunc func(text string) float64

// Token is a piece of text measured in monospace cells.
type Token struct {
	// Content is the text of the token.
	Content string

	// Rows is the number of newlines in Content.
	Rows int

	// FirstWidth is the width of the first line in cells.
	FirstWidth int

	// LastWidth is the width of the last line in cells.
	LastWidth int

	// MaxWidth is the widest line in cells.
	MaxWidth int

	// EndColumn is the number of characters on the last line.
	EndColumn int
}

func (Token) isNode() {}

// Measure splits text on newlines and measures it in cells of cellWidth
// device units. Widths are rounded to whole cells.
func Measure(text string, cellWidth float64, widthOf WidthFunc) Token {
	if cellWidth <= 0 {
		cellWidth = 1
	}
	cells := func(line string) int {
		return int(math.Round(widthOf(line) / cellWidth))
	}

	lines := strings.Split(text, "\n")
	last := lines[len(lines)-1]

	tok := Token{
		Content:    text,
		Rows:       len(lines) - 1,
		FirstWidth: cells(lines[0]),
		EndColumn:  utf8.RuneCountInString(last),
	}
	tok.LastWidth = tok.FirstWidth
	if len(lines) > 1 {
		tok.LastWidth = cells(last)
	}

	tok.MaxWidth = max(tok.FirstWidth, tok.LastWidth)
	for i := 1; i < len(lines)-1; i++ {
		if w := cells(lines[i]); w > tok.MaxWidth {
			tok.MaxWidth = w
		}
	}
	return tok
}

// Measurer measures text with a fixed cell width and width function.
type Measurer struct {
	// CellWidth is the width of a single monospace cell in device units.
	CellWidth float64

	// WidthOf measures a line of text in device units.
	WidthOf WidthFunc
}

// Measure measures text.
func (m Measurer) Measure(text string) Token {
	return Measure(text, m.CellWidth, m.widthFunc())
}

// Cells returns the rounded width of a single line of text in cells.
func (m Measurer) Cells(text string) int {
	cw := m.CellWidth
	if cw <= 0 {
		cw = 1
	}
	return int(math.Round(m.widthFunc()(text) / cw))
}

func (m Measurer) widthFunc() WidthFunc {
	if m.WidthOf != nil {
		return m.WidthOf
	}
	return RuneWidthMeasurer().WidthOf
}

// RuneWidthMeasurer returns a Measurer for terminal cells. Wide characters
// occupy two cells, combining marks none.
func RuneWidthMeasurer() Measurer {
	return runeWidthMeasurer(false)
}

// EastAsianMeasurer is like RuneWidthMeasurer but treats ambiguous-width
// characters as wide, as CJK locales do.
func EastAsianMeasurer() Measurer {
	return runeWidthMeasurer(true)
}

func runeWidthMeasurer(eastAsian bool) Measurer {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = eastAsian
	cond.StrictEmojiNeutral = !eastAsian
	return Measurer{
		CellWidth: 1,
		WidthOf: func(text string) float64 {
			return float64(cond.StringWidth(text))
		},
	}
}
