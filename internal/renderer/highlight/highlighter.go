// Package highlight provides syntax coloring for morphing code.
//
// A Highlighter prepares an opaque Cache for a complete text and then answers
// per-offset color queries against it. Offsets are rune offsets into the
// prepared text. A Result may report SkipAhead, the number of characters
// starting at the offset that share its color, so callers can draw runs
// instead of single characters.
package highlight

import "github.com/dshills/codemorph/internal/renderer/core"

// Cache is the prepared, read-only state for one (text, dialect) pair.
// A nil Cache disables highlighting for that text.
type Cache any

// Result is the answer to a highlight query.
type Result struct {
	// Color is the color at the offset, or nil when the position has no
	// classification.
	Color *core.Color

	// SkipAhead is the number of characters from the offset that share
	// Color. Zero means unknown.
	SkipAhead int
}

// Highlighter colors prepared text.
type Highlighter interface {
	// Initialize reports whether the highlighter is ready. It is
	// idempotent and may be called repeatedly while warming up.
	Initialize() bool

	// Prepare builds the cache for text in the given dialect.
	// The result is deterministic for a given text and dialect.
	Prepare(text, dialect string) Cache

	// Highlight returns the color at a rune offset.
	Highlight(offset int, cache Cache) Result
}

// Tokenizer is an optional Highlighter capability that splits text into
// language-aware tokens. Concatenating the tokens yields the input.
type Tokenizer interface {
	Tokenize(text, dialect string) []string
}

// Logger receives non-fatal highlighting problems.
type Logger interface {
	Warn(msg string, keyvals ...any)
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...any) {}
