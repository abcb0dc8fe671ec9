package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/codemorph/internal/engine/coderange"
)

// ParseSelection parses a comma separated list of 1-based lines and
// inclusive line spans, such as "3,5-7", into consolidated whole-line
// ranges. An empty string selects nothing.
func ParseSelection(s string) ([]coderange.Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var ranges []coderange.Range
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		from, to, isSpan := strings.Cut(part, "-")

		first, err := parseLine(from)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidSelection, part, err)
		}
		last := first
		if isSpan {
			if last, err = parseLine(to); err != nil {
				return nil, fmt.Errorf("%w %q: %w", ErrInvalidSelection, part, err)
			}
		}
		ranges = append(ranges, coderange.Lines(first-1, last-1))
	}

	out, err := coderange.ConsolidateChecked(ranges)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidSelection, s, err)
	}
	return out, nil
}

func parseLine(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("line %d out of range", n)
	}
	return n, nil
}
