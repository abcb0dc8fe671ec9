package coderange

import "sort"

// Consolidate merges overlapping ranges until no two remaining ranges can be
// merged. The result is the union of the input as a set of maximal,
// non-overlapping ranges, sorted by start.
//
// Malformed ranges are dropped and never merged into other ranges.
// Use ConsolidateChecked to learn which ranges were rejected.
func Consolidate(ranges []Range) []Range {
	out, _ := ConsolidateChecked(ranges)
	return out
}

// ConsolidateChecked behaves like Consolidate but also returns a
// *MalformedError describing any rejected ranges.
func ConsolidateChecked(ranges []Range) ([]Range, error) {
	set := make([]Range, 0, len(ranges))
	var bad *MalformedError
	for i, r := range ranges {
		if !r.IsValid() {
			if bad == nil {
				bad = &MalformedError{}
			}
			bad.Indexes = append(bad.Indexes, i)
			bad.Ranges = append(bad.Ranges, r)
			continue
		}
		set = append(set, r)
	}
	sortRanges(set)

	for merged := true; merged; {
		merged = false
		for i := 0; i < len(set) && !merged; i++ {
			for j := i + 1; j < len(set); j++ {
				if overlaps(set[i], set[j]) {
					set[i] = union(set[i], set[j])
					set = append(set[:j], set[j+1:]...)
					merged = true
					break
				}
			}
		}
	}
	sortRanges(set)

	if bad != nil {
		return set, bad
	}
	return set, nil
}

// Invert returns the gaps of a consolidated range set over the domain
// [(0,0), (∞,∞)): the gap before the first range, the gaps between
// consecutive ranges and the gap after the last range. Zero-width gaps are
// omitted. An empty input yields a single range covering everything.
func Invert(ranges []Range) []Range {
	if len(ranges) == 0 {
		return []Range{Everything()}
	}

	sorted := make([]Range, len(ranges))
	copy(sorted, ranges)
	sortRanges(sorted)

	gaps := make([]Range, 0, len(sorted)+1)
	cursor := Origin
	for _, r := range sorted {
		if cursor.Before(r.Start) {
			gaps = append(gaps, Range{Start: cursor, End: r.Start})
		}
		cursor = maxPoint(cursor, r.End)
	}
	if cursor.Before(End) {
		gaps = append(gaps, Range{Start: cursor, End: End})
	}
	return gaps
}

// ContainsAny reports whether p lies inside any of the ranges.
func ContainsAny(p Point, ranges []Range) bool {
	for _, r := range ranges {
		if Contains(p, r) {
			return true
		}
	}
	return false
}

func sortRanges(ranges []Range) {
	sort.SliceStable(ranges, func(i, j int) bool {
		if c := ranges[i].Start.Compare(ranges[j].Start); c != 0 {
			return c < 0
		}
		return ranges[i].End.Before(ranges[j].End)
	})
}
