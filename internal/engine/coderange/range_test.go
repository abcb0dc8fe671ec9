package coderange

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContains(t *testing.T) {
	box := PointToPoint(0, 0, 100, 100)

	assert.True(t, Contains(NewPoint(50, 50), box), "inside both bounds")
	assert.True(t, Contains(NewPoint(50, 1000), box), "any column within interior lines")
	assert.True(t, Contains(NewPoint(50, 50), Everything()), "unbounded end")
	assert.False(t, Contains(NewPoint(100, 100), box), "end is exclusive")
	assert.True(t, Contains(NewPoint(0, 0), box), "start is inclusive")
	assert.True(t, Contains(NewPoint(100, 99), box))
	assert.False(t, Contains(End, Everything()))
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		got  Range
		want Range
	}{
		{"single line", Lines(3), PointToPoint(3, 0, 3, Unbounded)},
		{"line span", Lines(1, 4), PointToPoint(1, 0, 4, Unbounded)},
		{"word", Word(2, 4, 3), PointToPoint(2, 4, 2, 7)},
		{"rest of line", Word(2, 4), PointToPoint(2, 4, 2, Unbounded)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
			assert.True(t, tt.got.IsValid())
		})
	}

	assert.True(t, Contains(NewPoint(3, 500), Lines(3)))
	assert.False(t, Contains(NewPoint(4, 0), Lines(3)))
}

func TestConsolidateContained(t *testing.T) {
	outer := PointToPoint(0, 0, 100, 100)
	inner := PointToPoint(20, 0, 50, 0)

	assert.ElementsMatch(t, []Range{outer}, Consolidate([]Range{outer, inner}))
	assert.ElementsMatch(t, []Range{outer}, Consolidate([]Range{inner, outer}))
}

func TestConsolidateOverlapping(t *testing.T) {
	assert.ElementsMatch(t,
		[]Range{PointToPoint(0, 5, 0, 13)},
		Consolidate([]Range{PointToPoint(0, 5, 0, 10), PointToPoint(0, 7, 0, 13)}))
	assert.ElementsMatch(t,
		[]Range{PointToPoint(0, 5, 2, 13)},
		Consolidate([]Range{PointToPoint(0, 7, 2, 13), PointToPoint(0, 5, 2, 10)}))
}

func TestConsolidateDisjoint(t *testing.T) {
	got := Consolidate([]Range{
		PointToPoint(0, 5, 0, 10),
		PointToPoint(0, 7, 0, 13),
		PointToPoint(1, 5, 1, 10),
	})
	assert.ElementsMatch(t, []Range{PointToPoint(0, 5, 0, 13), PointToPoint(1, 5, 1, 10)}, got)
}

func TestConsolidateChain(t *testing.T) {
	// Each range only overlaps its neighbour; the union must still be one range.
	got := Consolidate([]Range{
		PointToPoint(4, 0, 6, 0),
		PointToPoint(0, 0, 2, 0),
		PointToPoint(1, 0, 5, 0),
	})
	assert.ElementsMatch(t, []Range{PointToPoint(0, 0, 6, 0)}, got)
}

func TestConsolidateIdempotent(t *testing.T) {
	inputs := [][]Range{
		nil,
		{Lines(1), Lines(3), Word(1, 2, 10)},
		{PointToPoint(0, 0, 100, 100), PointToPoint(20, 0, 50, 0), Word(200, 1)},
		{Lines(0, 2), Lines(2, 4), PointToPoint(9, 9, 9, 9)},
	}

	for _, in := range inputs {
		once := Consolidate(in)
		assert.ElementsMatch(t, once, Consolidate(once))
	}
}

func TestConsolidateMalformed(t *testing.T) {
	good := PointToPoint(0, 0, 1, 0)
	bad := PointToPoint(5, 0, 2, 0)

	got, err := ConsolidateChecked([]Range{good, bad})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedRange))

	var me *MalformedError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, []int{1}, me.Indexes)
	assert.Equal(t, []Range{good}, got, "well-formed ranges are unaffected")
	assert.Equal(t, []Range{good}, Consolidate([]Range{bad, good}))
}

func TestInvertEmpty(t *testing.T) {
	assert.Equal(t, []Range{PointToPoint(0, 0, Unbounded, Unbounded)}, Invert(nil))
}

func TestInvertGaps(t *testing.T) {
	got := Invert([]Range{PointToPoint(3, 0, 4, 0), PointToPoint(1, 2, 2, 0)})
	want := []Range{
		PointToPoint(0, 0, 1, 2),
		PointToPoint(2, 0, 3, 0),
		PointToPoint(4, 0, Unbounded, Unbounded),
	}
	assert.Equal(t, want, got)

	assert.Empty(t, Invert([]Range{Everything()}))
}

func TestInvertRoundTrip(t *testing.T) {
	inputs := [][]Range{
		{Lines(1), Word(3, 2, 4)},
		{PointToPoint(0, 0, 2, 5), PointToPoint(7, 1, 8, 0)},
		{Lines(5, 6), Lines(6, 9), Word(0, 3, 1)},
	}

	for _, in := range inputs {
		set := Consolidate(in)
		assert.ElementsMatch(t, set, Invert(Invert(set)))
	}
}
