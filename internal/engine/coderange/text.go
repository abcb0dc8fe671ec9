package coderange

import (
	"strings"
	"unicode/utf8"
)

// Offset converts a point to a rune offset within text.
//
// A column past the end of its line (including Unbounded) resolves to the end
// of that line, before its newline. A row past the last line (including
// Unbounded) resolves to the end of the text.
func Offset(text string, p Point) int {
	if p.Row < 0 || p.Column < 0 {
		return 0
	}

	offset := 0
	row := 0
	rest := text
	for row < p.Row {
		i := strings.IndexByte(rest, '\n')
		if i < 0 {
			return utf8.RuneCountInString(text)
		}
		offset += utf8.RuneCountInString(rest[:i]) + 1
		rest = rest[i+1:]
		row++
	}

	line := rest
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		line = rest[:i]
	}
	width := utf8.RuneCountInString(line)
	if p.Column < width {
		return offset + p.Column
	}
	return offset + width
}

// PointAt converts a rune offset within text back to a point.
// Offsets past the end of the text resolve to the last position.
func PointAt(text string, offset int) Point {
	p := Point{}
	i := 0
	for _, r := range text {
		if i >= offset {
			break
		}
		if r == '\n' {
			p.Row++
			p.Column = 0
		} else {
			p.Column++
		}
		i++
	}
	return p
}

// Split cuts text into the parts before, inside and after r.
// It returns ErrMalformedRange if r ends before it starts.
func Split(text string, r Range) (before, inside, after string, err error) {
	if !r.IsValid() {
		return text, "", "", ErrMalformedRange
	}
	runes := []rune(text)
	start := Offset(text, r.Start)
	end := Offset(text, r.End)
	if end < start {
		end = start
	}
	return string(runes[:start]), string(runes[start:end]), string(runes[end:]), nil
}
