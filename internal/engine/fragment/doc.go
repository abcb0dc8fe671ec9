// Package fragment provides the measured content model rendered by a code
// morph.
//
// Content is organised as a tree. A Scope holds an ordered list of nodes and
// a Progress value in [0, 1]; leaves describe a piece of text before and after
// the transition:
//
//   - Literal: plain text that is identical on both sides
//   - Token: measured text that is identical on both sides
//   - Pair: unmeasured before/after text
//   - Fragment: measured before/after tokens
//
// Normalize turns any leaf into a Fragment. MeasureScope does the same for a
// whole tree so the measuring work happens once, when the tree is built,
// rather than once per frame.
//
// Trees are never mutated in place. Helpers such as ReplaceNode rebuild the
// path to the changed node and share every untouched subtree with the
// original. Scopes are identified by a Handle assigned at construction, so a
// transitional scope can be found again after its parent has been rebuilt.
package fragment
