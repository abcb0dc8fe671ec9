package diff

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Myers computes a line diff of a against b with diffmatchpatch's Myers
// implementation. Each distinct line is encoded as a single rune so the
// diff runs over whole lines. Moves are never reported.
func Myers(a, b []string) Result {
	ids := make(map[string]rune, len(a)+len(b))
	encode := func(lines []string) []rune {
		out := make([]rune, len(lines))
		for i, line := range lines {
			id, ok := ids[line]
			if !ok {
				id = lineRune(len(ids))
				ids[line] = id
			}
			out[i] = id
		}
		return out
	}
	ra, rb := encode(a), encode(b)

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	diffs := dmp.DiffMainRunes(ra, rb, false)

	var res Result
	res.Ops = make([]Op, 0, max(len(a), len(b)))
	i, j := 0, 0
	for _, d := range diffs {
		count := utf8.RuneCountInString(d.Text)
		for k := 0; k < count; k++ {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				res.Ops = append(res.Ops, Op{Source: i, Target: j, Kind: Keep})
				res.Kept++
				i++
				j++
			case diffmatchpatch.DiffDelete:
				res.Ops = append(res.Ops, Op{Source: i, Target: None, Kind: Delete})
				res.Deleted++
				i++
			case diffmatchpatch.DiffInsert:
				res.Ops = append(res.Ops, Op{Source: None, Target: j, Kind: Insert})
				res.Inserted++
				j++
			}
		}
	}
	return res
}

// lineRune maps a line id to a valid, non-surrogate rune.
func lineRune(id int) rune {
	r := rune(id + 1)
	if r >= 0xD800 {
		r += 0x800
	}
	return r
}
