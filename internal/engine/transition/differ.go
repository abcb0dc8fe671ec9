package transition

import (
	"fmt"
	"strings"

	"github.com/dshills/codemorph/internal/engine/diff"
	"github.com/dshills/codemorph/internal/engine/fragment"
)

// Differ computes the nodes of a transition from before to after. The
// nodes must resolve to before on their before side and to after on
// their after side.
type Differ interface {
	Diff(before, after string, tokenize TokenizeFunc) []fragment.Node
}

// Algorithm selects the line diff used by LineDiffer.
type Algorithm string

// Supported line diff algorithms.
const (
	Patience Algorithm = "patience"
	Myers    Algorithm = "myers"
)

// ParseAlgorithm validates an algorithm name. An empty name selects
// Patience.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch a := Algorithm(strings.ToLower(strings.TrimSpace(name))); a {
	case "":
		return Patience, nil
	case Patience, Myers:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// LineDiffer diffs whole lines first and then aligns the tokens of every
// changed block, so unchanged words inside a modified line stay in place.
type LineDiffer struct {
	// Algorithm is the line diff; empty means Patience.
	Algorithm Algorithm

	// DetectMoves reports relocated lines as a removal at the old position
	// and an insertion at the new one instead of leaving them in place.
	// It only applies to Patience.
	DetectMoves bool
}

// Diff implements Differ. A nil tokenize splits changed blocks with Words.
func (d LineDiffer) Diff(before, after string, tokenize TokenizeFunc) []fragment.Node {
	if tokenize == nil {
		tokenize = Words
	}
	a, b := SplitLines(before), SplitLines(after)

	var res diff.Result
	switch {
	case d.Algorithm == Myers:
		res = diff.Myers(a, b)
	case d.DetectMoves:
		res = diff.Patience(a, b, diff.WithMoves())
	default:
		res = diff.Patience(a, b)
	}

	var e emitter
	var removed, added strings.Builder
	flushChange := func() {
		if removed.Len() == 0 && added.Len() == 0 {
			return
		}
		e.block(removed.String(), added.String(), tokenize)
		removed.Reset()
		added.Reset()
	}

	for _, op := range res.Ops {
		switch {
		case op.Kind == diff.Keep:
			flushChange()
			e.literal(a[op.Source])
		case op.Source != diff.None && op.Target == diff.None:
			removed.WriteString(a[op.Source])
		case op.Target != diff.None:
			added.WriteString(b[op.Target])
		}
	}
	flushChange()
	if len(e.nodes) == 0 {
		return []fragment.Node{fragment.Literal("")}
	}
	return e.nodes
}

// SplitLines splits text into lines that keep their trailing newline.
// The last line has no newline unless text ends with one, in which case
// there is no empty trailing line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// emitter accumulates nodes, merging adjacent literals and adjacent
// changes.
type emitter struct {
	nodes []fragment.Node
}

func (e *emitter) literal(text string) {
	if text == "" {
		return
	}
	if n := len(e.nodes); n > 0 {
		if prev, ok := e.nodes[n-1].(fragment.Literal); ok {
			e.nodes[n-1] = prev + fragment.Literal(text)
			return
		}
	}
	e.nodes = append(e.nodes, fragment.Literal(text))
}

func (e *emitter) change(before, after string) {
	if before == "" && after == "" {
		return
	}
	if n := len(e.nodes); n > 0 {
		if prev, ok := e.nodes[n-1].(fragment.Pair); ok {
			pb, _ := prev.Before.(fragment.Literal)
			pa, _ := prev.After.(fragment.Literal)
			e.nodes[n-1] = fragment.Replace(string(pb)+before, string(pa)+after)
			return
		}
	}
	e.nodes = append(e.nodes, fragment.Replace(before, after))
}

// block emits a changed region. Pure removals and insertions become a
// single pair; otherwise the tokens of both sides are aligned.
func (e *emitter) block(removed, added string, tokenize TokenizeFunc) {
	if removed == "" || added == "" {
		e.change(removed, added)
		return
	}

	for _, p := range diff.Align(split(removed, tokenize), split(added, tokenize)) {
		switch {
		case p.Kind == diff.Keep:
			e.literal(p.Source)
		case p.HasSource && p.HasTarget:
			e.change(p.Source, p.Target)
		case p.HasSource:
			e.change(p.Source, "")
		default:
			e.change("", p.Target)
		}
	}
}

// split tokenizes text, falling back to Words when the tokens do not
// reassemble the input.
func split(text string, tokenize TokenizeFunc) []string {
	tokens := tokenize(text)
	if strings.Join(tokens, "") != text {
		return Words(text)
	}
	return tokens
}
