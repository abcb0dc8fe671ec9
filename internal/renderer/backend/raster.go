package backend

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/dshills/codemorph/internal/renderer/core"
)

// MinVisibleAlpha is the opacity below which an op is not rasterized.
const MinVisibleAlpha = 0.02

// Rasterize converts a draw op into cells and passes each one to set along
// with any combining runes of its grapheme cluster. Positions are rounded to
// the nearest cell. When the color cannot be composited over bg, faded text
// is marked dim instead.
func Rasterize(op core.DrawOp, bg core.Color, set func(x, y int, cell core.Cell, combining []rune)) {
	if op.Alpha < MinVisibleAlpha || op.Text == "" {
		return
	}

	x := int(math.Round(op.X))
	y := int(math.Round(op.Y))

	style := core.DefaultStyle().
		WithForeground(op.Color.Over(bg, op.Alpha)).
		WithBackground(bg)
	if op.Alpha < 0.5 && !canComposite(op.Color, bg) {
		style = style.WithAttributes(core.AttrDim)
	}

	state := -1
	rest := op.Text
	for rest != "" {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)

		width := runewidth.StringWidth(cluster)
		if width == 0 {
			continue
		}
		main, size := utf8.DecodeRuneInString(cluster)
		var combining []rune
		if size < len(cluster) {
			combining = []rune(cluster[size:])
		}

		set(x, y, core.Cell{Rune: main, Width: width, Style: style}, combining)
		for i := 1; i < width; i++ {
			cont := core.ContinuationCell()
			cont.Style = style
			set(x+i, y, cont, nil)
		}
		x += width
	}
}

func canComposite(c, bg core.Color) bool {
	return !c.Default && !c.Indexed && !bg.Default && !bg.Indexed
}

func cellsText(rows [][]core.Cell) string {
	lines := make([]string, len(rows))
	for y, row := range rows {
		var sb strings.Builder
		for _, cell := range row {
			if cell.IsContinuation() {
				continue
			}
			sb.WriteRune(cell.Rune)
		}
		lines[y] = strings.TrimRight(sb.String(), " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
