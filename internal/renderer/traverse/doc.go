// Package traverse walks a fragment tree to lay out and draw morphing code.
//
// A Cursor makes two kinds of pass over a tree. MeasureSize computes the
// bounding size of the content, and DrawScope emits draw operations to a
// canvas. Both passes blend every leaf between its before and after state
// by the progress of the scope that holds it, so a tree can be rendered at
// any point of a transition without any state other than the tree itself.
//
// Layout is done in monospace cells horizontally and rows vertically. The
// cursor tracks two character offsets, one into the before text and one into
// the after text, so highlight lookups stay aligned with the text that was
// prepared for each side.
//
// Drawing rules for a leaf whose content changes:
//
//   - the before text is drawn while progress < 0.5, the after text from 0.5
//   - opacity fades out towards the midpoint and back in after it
//   - text that changes its row count slides up while it is faded
//
// Static leaves are always drawn at full opacity; if the highlighter colors
// them differently on each side, the color is blended instead.
package traverse
