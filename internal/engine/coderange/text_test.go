package coderange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOffset(t *testing.T) {
	text := "ab\ncdé\n\nf"

	tests := []struct {
		p    Point
		want int
	}{
		{NewPoint(0, 0), 0},
		{NewPoint(0, 2), 2},
		{NewPoint(0, Unbounded), 2},
		{NewPoint(1, 0), 3},
		{NewPoint(1, 3), 6},
		{NewPoint(1, 99), 6},
		{NewPoint(2, 0), 7},
		{NewPoint(3, 1), 9},
		{NewPoint(10, 0), 9},
		{End, 9},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Offset(text, tt.p), "Offset(%s)", tt.p)
	}
}

func TestPointAt(t *testing.T) {
	text := "ab\ncd"
	assert.Equal(t, NewPoint(0, 0), PointAt(text, 0))
	assert.Equal(t, NewPoint(0, 2), PointAt(text, 2))
	assert.Equal(t, NewPoint(1, 0), PointAt(text, 3))
	assert.Equal(t, NewPoint(1, 2), PointAt(text, 100))
}

func TestSplit(t *testing.T) {
	before, inside, after, err := Split("one\ntwo\nthree", Lines(1))
	require.NoError(t, err)
	assert.Equal(t, "one\n", before)
	assert.Equal(t, "two", inside)
	assert.Equal(t, "\nthree", after)

	_, _, _, err = Split("x", PointToPoint(1, 0, 0, 0))
	assert.ErrorIs(t, err, ErrMalformedRange)
}
