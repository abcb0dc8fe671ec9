// Package transition turns text edits into animated fragment trees.
//
// A Differ compares the current text with the requested one and emits the
// nodes of a scope whose before side resolves to the old text and whose
// after side resolves to the new text. The Code controller owns the tree,
// starts a Transition for every tweened edit and collapses the transitional
// scope into plain text once the transition completes.
//
// Transitions are pull-based: the caller advances them with the frame time
// and renders the tree in between. Code is safe for concurrent use, but the
// tree it returns must be treated as read-only.
package transition
