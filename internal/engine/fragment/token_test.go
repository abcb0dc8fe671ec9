package fragment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeasure(t *testing.T) {
	m := RuneWidthMeasurer()

	tests := []struct {
		name string
		text string
		want Token
	}{
		{"empty", "", Token{Content: ""}},
		{"single line", "hello", Token{Content: "hello", FirstWidth: 5, LastWidth: 5, MaxWidth: 5, EndColumn: 5}},
		{"two lines", "ab\ncde", Token{Content: "ab\ncde", Rows: 1, FirstWidth: 2, LastWidth: 3, MaxWidth: 3, EndColumn: 3}},
		{"wide interior", "a\nlonger line\nbc", Token{Content: "a\nlonger line\nbc", Rows: 2, FirstWidth: 1, LastWidth: 2, MaxWidth: 11, EndColumn: 2}},
		{"trailing newline", "abc\n", Token{Content: "abc\n", Rows: 1, FirstWidth: 3, LastWidth: 0, MaxWidth: 3, EndColumn: 0}},
		{"wide runes", "日本", Token{Content: "日本", FirstWidth: 4, LastWidth: 4, MaxWidth: 4, EndColumn: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Measure(tt.text))
		})
	}
}

func TestMeasureRoundsToCells(t *testing.T) {
	// 7.4 device units per character with a cell width of 7.4.
	width := func(s string) float64 { return float64(len(s)) * 7.4 }

	tok := Measure("abc\nde", 7.4, width)
	assert.Equal(t, 3, tok.FirstWidth)
	assert.Equal(t, 2, tok.LastWidth)

	// Half a cell rounds up.
	tok = Measure("x", 2, func(string) float64 { return 3 })
	assert.Equal(t, 2, tok.FirstWidth)
}

func TestMeasurerCells(t *testing.T) {
	m := RuneWidthMeasurer()
	assert.Equal(t, 3, m.Cells("abc"))
	assert.Equal(t, 2, m.Cells("日"))

	var zero Measurer
	assert.Equal(t, 3, zero.Cells("abc"))
	assert.Equal(t, 1, zero.Measure("x").FirstWidth)
}
