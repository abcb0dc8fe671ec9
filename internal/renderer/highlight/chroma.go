package highlight

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/dshills/codemorph/internal/renderer/core"
)

// Chroma is a Highlighter backed by chroma lexers.
//
// Token colors come from a chroma style when one is configured and defines
// a color for the token, and from the Theme otherwise.
type Chroma struct {
	mu sync.Mutex

	theme  *Theme
	style  *chroma.Style
	logger Logger

	// lexers caches lexer lookups by dialect, including misses.
	lexers map[string]chroma.Lexer

	// warnedTypes and warnedDialects make each warning fire once.
	warnedTypes    map[chroma.TokenType]bool
	warnedDialects map[string]bool
}

// ChromaOption configures a Chroma highlighter.
type ChromaOption func(*Chroma)

// WithTheme sets the theme.
func WithTheme(theme *Theme) ChromaOption {
	return func(c *Chroma) {
		if theme != nil {
			c.theme = theme
		}
	}
}

// WithThemeName selects a built-in theme or, failing that, a chroma style
// of the same name. Unknown names keep the default theme.
func WithThemeName(name string) ChromaOption {
	return func(c *Chroma) {
		if theme, ok := ThemeByName(name); ok {
			c.theme = theme
			return
		}
		if style, ok := styles.Registry[strings.ToLower(name)]; ok {
			c.style = style
		}
	}
}

// KnownTheme reports whether name selects a built-in theme or a chroma
// style.
func KnownTheme(name string) bool {
	if _, ok := ThemeByName(name); ok {
		return true
	}
	_, ok := styles.Registry[strings.ToLower(name)]
	return ok
}

// DetectDialect returns the name of the lexer matching a file name, or ""
// when no lexer claims it.
func DetectDialect(filename string) string {
	lexer := lexers.Match(filepath.Base(filename))
	if lexer == nil {
		return ""
	}
	return lexer.Config().Name
}

// WithLogger sets the logger for non-fatal problems.
func WithLogger(logger Logger) ChromaOption {
	return func(c *Chroma) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewChroma creates a chroma-backed highlighter.
func NewChroma(opts ...ChromaOption) *Chroma {
	c := &Chroma{
		theme:          DefaultTheme(),
		logger:         nopLogger{},
		lexers:         make(map[string]chroma.Lexer),
		warnedTypes:    make(map[chroma.TokenType]bool),
		warnedDialects: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Theme returns the active theme.
func (c *Chroma) Theme() *Theme {
	return c.theme
}

// Initialize reports readiness. Chroma lexers are registered at package
// initialisation so the highlighter is always ready.
func (c *Chroma) Initialize() bool {
	return true
}

type span struct {
	start, end int
	color      *core.Color
}

// spanTable is the Cache produced by Chroma.
type spanTable struct {
	spans []span
}

// Prepare tokenises text and builds a rune-offset color table.
// It returns nil if no lexer exists for dialect.
func (c *Chroma) Prepare(text, dialect string) Cache {
	tokens := c.tokenise(text, dialect)
	if tokens == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	table := &spanTable{}
	offset := 0
	for _, tok := range tokens {
		n := utf8.RuneCountInString(tok.Value)
		if n == 0 {
			continue
		}
		color := c.colorFor(tok.Type)
		if last := len(table.spans) - 1; last >= 0 && sameColor(table.spans[last].color, color) {
			table.spans[last].end += n
		} else {
			table.spans = append(table.spans, span{start: offset, end: offset + n, color: color})
		}
		offset += n
	}
	return table
}

// Highlight returns the color at offset.
func (c *Chroma) Highlight(offset int, cache Cache) Result {
	table, ok := cache.(*spanTable)
	if !ok || table == nil {
		return Result{}
	}

	i := sort.Search(len(table.spans), func(i int) bool {
		return table.spans[i].end > offset
	})
	if i == len(table.spans) || table.spans[i].start > offset {
		return Result{}
	}
	s := table.spans[i]
	return Result{Color: s.color, SkipAhead: s.end - offset}
}

// Tokenize splits text into lexer tokens. It returns nil if no lexer exists
// for dialect.
func (c *Chroma) Tokenize(text, dialect string) []string {
	tokens := c.tokenise(text, dialect)
	if tokens == nil {
		return nil
	}
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Value != "" {
			out = append(out, tok.Value)
		}
	}
	return out
}

// tokenise runs the lexer and trims any trailing newline the lexer added, so
// the token values always concatenate to text.
func (c *Chroma) tokenise(text, dialect string) []chroma.Token {
	lexer := c.lexer(dialect)
	if lexer == nil {
		return nil
	}

	it, err := lexer.Tokenise(&chroma.TokeniseOptions{State: "root"}, text)
	if err != nil {
		c.logger.Warn("tokenise failed", "dialect", dialect, "error", err)
		return nil
	}

	tokens := it.Tokens()
	surplus := 0
	for _, tok := range tokens {
		surplus += len(tok.Value)
	}
	surplus -= len(text)
	for surplus > 0 && len(tokens) > 0 {
		last := &tokens[len(tokens)-1]
		cut := min(surplus, len(last.Value))
		last.Value = last.Value[:len(last.Value)-cut]
		surplus -= cut
		if last.Value == "" {
			tokens = tokens[:len(tokens)-1]
		}
	}
	if tokens == nil {
		tokens = []chroma.Token{}
	}
	return tokens
}

func (c *Chroma) lexer(dialect string) chroma.Lexer {
	c.mu.Lock()
	defer c.mu.Unlock()

	if lexer, ok := c.lexers[dialect]; ok {
		return lexer
	}

	var lexer chroma.Lexer
	if dialect != "" {
		lexer = lexers.Get(dialect)
	}
	if lexer == nil {
		if !c.warnedDialects[dialect] {
			c.warnedDialects[dialect] = true
			c.logger.Warn("no lexer found for dialect", "dialect", dialect)
		}
	} else {
		lexer = chroma.Coalesce(lexer)
	}
	c.lexers[dialect] = lexer
	return lexer
}

// colorFor must be called with c.mu held.
func (c *Chroma) colorFor(tt chroma.TokenType) *core.Color {
	class, ok := Classify(tt)
	if !ok {
		if !c.warnedTypes[tt] {
			c.warnedTypes[tt] = true
			c.logger.Warn("unknown token classification", "type", tt.String())
		}
		return nil
	}

	if c.style != nil {
		if entry := c.style.Get(tt); entry.Colour.IsSet() {
			color := core.ColorFromRGB(entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue())
			return &color
		}
	}
	if class == ClassText {
		return nil
	}
	color := c.theme.ColorFor(class)
	return &color
}

func sameColor(a, b *core.Color) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equals(*b)
}
