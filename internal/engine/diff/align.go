package diff

// Pair is one step of an alignment.
type Pair[T any] struct {
	Source    T
	Target    T
	HasSource bool
	HasTarget bool
	Kind      Kind
}

// Align computes a minimum edit distance alignment of a and b using ==.
func Align[T comparable](a, b []T) []Pair[T] {
	return AlignFunc(a, b, func(x, y T) bool { return x == y })
}

// AlignStrings aligns the runes of two strings.
func AlignStrings(a, b string) []Pair[rune] {
	return Align([]rune(a), []rune(b))
}

// AlignFunc computes a minimum edit distance alignment of a and b with
// insertion, deletion and substitution each costing 1.
//
// Backtracking from the final cell prefers, in order: a Keep of equal
// items, a substitution (Change with both sides), a deletion (Change with
// no target) and an insertion (Change with no source). The result lists
// every item of both inputs in their original order.
func AlignFunc[T any](a, b []T, eq func(T, T) bool) []Pair[T] {
	m, n := len(a), len(b)

	d := make([][]int, m+1)
	for i := range d {
		d[i] = make([]int, n+1)
		d[i][0] = i
	}
	for j := 1; j <= n; j++ {
		d[0][j] = j
	}
	for j := 1; j <= n; j++ {
		for i := 1; i <= m; i++ {
			if eq(a[i-1], b[j-1]) {
				d[i][j] = d[i-1][j-1]
			} else {
				d[i][j] = min(d[i-1][j], d[i][j-1], d[i-1][j-1]) + 1
			}
		}
	}

	pairs := make([]Pair[T], 0, max(m, n))
	i, j := m, n
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && eq(a[i-1], b[j-1]):
			pairs = append(pairs, Pair[T]{Source: a[i-1], Target: b[j-1], HasSource: true, HasTarget: true, Kind: Keep})
			i--
			j--
		case i > 0 && j > 0 && d[i][j] == d[i-1][j-1]+1:
			pairs = append(pairs, Pair[T]{Source: a[i-1], Target: b[j-1], HasSource: true, HasTarget: true, Kind: Change})
			i--
			j--
		case i > 0 && (j == 0 || d[i][j] == d[i-1][j]+1):
			pairs = append(pairs, Pair[T]{Source: a[i-1], HasSource: true, Kind: Change})
			i--
		default:
			pairs = append(pairs, Pair[T]{Target: b[j-1], HasTarget: true, Kind: Change})
			j--
		}
	}

	for l, r := 0, len(pairs)-1; l < r; l, r = l+1, r-1 {
		pairs[l], pairs[r] = pairs[r], pairs[l]
	}
	return pairs
}
