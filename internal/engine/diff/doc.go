// Package diff computes structural differences between two sequences.
//
// Two engines are provided:
//
//   - Patience: a patience diff over arbitrary comparable items (usually lines).
//     It anchors on items that occur exactly once on each side, chains the
//     anchors with a longest increasing subsequence and recursively diffs the
//     gaps. With WithMoves it additionally pairs deleted and inserted items
//     that carry the same content and reports them as moves.
//   - Align: a minimum edit distance alignment used for the characters or
//     tokens inside a pair of changed lines.
//
// Myers offers an alternative line engine built on diffmatchpatch for
// callers that prefer the classic shortest edit script.
//
// Every engine is total: any two finite sequences, including empty ones,
// produce a result. Results are deterministic; nothing depends on map
// iteration order.
//
// Basic usage:
//
//	res := diff.Patience(oldLines, newLines, diff.WithMoves())
//	for _, op := range res.Ops {
//	    switch op.Kind {
//	    case diff.Keep:   // oldLines[op.Source] == newLines[op.Target]
//	    case diff.Delete: // oldLines[op.Source] removed
//	    case diff.Insert: // newLines[op.Target] added
//	    case diff.Move:   // departure (Target == None) or arrival
//	    }
//	}
package diff
