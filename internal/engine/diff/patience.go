package diff

import "sort"

// Option configures Patience.
type Option func(*options)

type options struct {
	moves bool
}

// WithMoves enables move detection: deleted and inserted items with the
// same content are paired and reported as Move operations.
func WithMoves() Option {
	return func(o *options) {
		o.moves = true
	}
}

// anchor is a candidate match of an item unique on both sides.
type anchor struct {
	a, b int
	prev *anchor
}

type patience[T comparable] struct {
	a, b   []T
	result Result

	// Result positions of deletions and insertions, for move detection.
	deletes []int
	inserts []int
}

// Patience computes a patience diff of a against b.
//
// Exactly matching prefixes and suffixes become Keep operations, items that
// occur exactly once on each side are chained with a longest increasing
// subsequence, and the gaps between the chained anchors are diffed
// recursively. A gap without anchors is emitted as deletions followed by
// insertions.
func Patience[T comparable](a, b []T, opts ...Option) Result {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	p := &patience[T]{a: a, b: b}
	p.result.Ops = make([]Op, 0, max(len(a), len(b)))
	p.diffRange(0, len(a), 0, len(b))

	if o.moves {
		p.detectMoves()
	}
	return p.result
}

func (p *patience[T]) keep(i, j int) {
	p.result.Ops = append(p.result.Ops, Op{Source: i, Target: j, Kind: Keep})
	p.result.Kept++
}

func (p *patience[T]) remove(i int) {
	p.deletes = append(p.deletes, len(p.result.Ops))
	p.result.Ops = append(p.result.Ops, Op{Source: i, Target: None, Kind: Delete})
	p.result.Deleted++
}

func (p *patience[T]) add(j int) {
	p.inserts = append(p.inserts, len(p.result.Ops))
	p.result.Ops = append(p.result.Ops, Op{Source: None, Target: j, Kind: Insert})
	p.result.Inserted++
}

// diffRange diffs a[aLo:aHi] against b[bLo:bHi].
func (p *patience[T]) diffRange(aLo, aHi, bLo, bHi int) {
	for aLo < aHi && bLo < bHi && p.a[aLo] == p.b[bLo] {
		p.keep(aLo, bLo)
		aLo++
		bLo++
	}

	// Matching suffix is emitted after the middle has been resolved.
	aEnd, bEnd := aHi, bHi
	for aLo < aEnd && bLo < bEnd && p.a[aEnd-1] == p.b[bEnd-1] {
		aEnd--
		bEnd--
	}

	anchors := p.uniqueCommon(aLo, aEnd, bLo, bEnd)
	if len(anchors) == 0 {
		for i := aLo; i < aEnd; i++ {
			p.remove(i)
		}
		for j := bLo; j < bEnd; j++ {
			p.add(j)
		}
	} else {
		nextA, nextB := aLo, bLo
		for _, an := range longestChain(anchors) {
			p.diffRange(nextA, an.a, nextB, an.b)
			p.keep(an.a, an.b)
			nextA, nextB = an.a+1, an.b+1
		}
		p.diffRange(nextA, aEnd, nextB, bEnd)
	}

	for i := 0; aEnd+i < aHi; i++ {
		p.keep(aEnd+i, bEnd+i)
	}
}

// uniqueCommon pairs the items that occur exactly once in a[aLo:aHi] and
// exactly once in b[bLo:bHi]. Anchors are returned in source order.
func (p *patience[T]) uniqueCommon(aLo, aHi, bLo, bHi int) []*anchor {
	if aLo >= aHi || bLo >= bHi {
		return nil
	}

	aCount := make(map[T]int, aHi-aLo)
	for i := aLo; i < aHi; i++ {
		aCount[p.a[i]]++
	}
	type seen struct {
		count int
		index int
	}
	bSeen := make(map[T]seen, bHi-bLo)
	for j := bLo; j < bHi; j++ {
		s := bSeen[p.b[j]]
		s.count++
		s.index = j
		bSeen[p.b[j]] = s
	}

	var anchors []*anchor
	for i := aLo; i < aHi; i++ {
		item := p.a[i]
		if aCount[item] != 1 {
			continue
		}
		if s, ok := bSeen[item]; ok && s.count == 1 {
			anchors = append(anchors, &anchor{a: i, b: s.index})
		}
	}
	return anchors
}

// longestChain returns the longest subsequence of anchors whose target
// indexes strictly increase, using patience sorting piles with back pointers.
func longestChain(anchors []*anchor) []*anchor {
	var piles []*anchor // top of each pile
	for _, an := range anchors {
		// Pile tops have increasing target indexes; find the first pile
		// whose top is not below this anchor.
		i := sort.Search(len(piles), func(k int) bool {
			return piles[k].b >= an.b
		})
		if i > 0 {
			an.prev = piles[i-1]
		}
		if i == len(piles) {
			piles = append(piles, an)
		} else {
			piles[i] = an
		}
	}
	if len(piles) == 0 {
		return nil
	}

	chain := make([]*anchor, 0, len(piles))
	for an := piles[len(piles)-1]; an != nil; an = an.prev {
		chain = append(chain, an)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// detectMoves pairs deletions with insertions of the same content.
//
// The deleted and inserted items are diffed against each other; every Keep
// in that secondary diff turns both entries into a Move. The unmatched
// remainders are diffed again until a round finds nothing. The number of
// rounds is bounded by the size of the smaller side.
func (p *patience[T]) detectMoves() {
	deletes, inserts := p.deletes, p.inserts
	rounds := min(len(deletes), len(inserts))

	for round := 0; round < rounds && len(deletes) > 0 && len(inserts) > 0; round++ {
		aItems := make([]T, len(deletes))
		for i, pos := range deletes {
			aItems[i] = p.a[p.result.Ops[pos].Source]
		}
		bItems := make([]T, len(inserts))
		for j, pos := range inserts {
			bItems[j] = p.b[p.result.Ops[pos].Target]
		}

		sub := Patience(aItems, bItems)
		if sub.Kept == 0 {
			return
		}

		var nextDeletes, nextInserts []int
		for _, op := range sub.Ops {
			switch op.Kind {
			case Keep:
				from := deletes[op.Source]
				to := inserts[op.Target]
				source := p.result.Ops[from].Source
				p.result.Ops[from] = Op{Source: source, Target: None, Kind: Move}
				p.result.Ops[to] = Op{Source: source, Target: p.result.Ops[to].Target, Kind: Move}
				p.result.Deleted--
				p.result.Inserted--
				p.result.Moved++
			case Delete:
				nextDeletes = append(nextDeletes, deletes[op.Source])
			case Insert:
				nextInserts = append(nextInserts, inserts[op.Target])
			}
		}
		deletes, inserts = nextDeletes, nextInserts
	}
}
