package highlight

import (
	"fmt"
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Warn(msg string, keyvals ...any) {
	l.warnings = append(l.warnings, msg+" "+fmt.Sprint(keyvals...))
}

func TestChromaPrepareAndHighlight(t *testing.T) {
	h := NewChroma()
	require.True(t, h.Initialize())

	text := "package main\n"
	cache := h.Prepare(text, "go")
	require.NotNil(t, cache)

	res := h.Highlight(0, cache)
	require.NotNil(t, res.Color)
	assert.Equal(t, len("package"), res.SkipAhead)

	// Inside the first token the skip shrinks to the rest of it.
	res = h.Highlight(3, cache)
	assert.Equal(t, len("kage"), res.SkipAhead)

	// Past the end there is nothing.
	assert.Equal(t, Result{}, h.Highlight(len(text)+10, cache))
}

func TestChromaSpansCoverText(t *testing.T) {
	h := NewChroma()
	text := "func add(a, b int) int {\n\treturn a + b // sum\n}\n"
	cache := h.Prepare(text, "go")
	require.NotNil(t, cache)

	// Walking by SkipAhead visits every rune exactly once.
	offset := 0
	for offset < len(text) {
		res := h.Highlight(offset, cache)
		require.Positive(t, res.SkipAhead, "offset %d", offset)
		offset += res.SkipAhead
	}
	assert.Equal(t, len(text), offset)
}

func TestChromaCommentColor(t *testing.T) {
	h := NewChroma(WithTheme(DraculaTheme()))
	text := "// note\nx := 1"
	cache := h.Prepare(text, "go")
	require.NotNil(t, cache)

	res := h.Highlight(0, cache)
	require.NotNil(t, res.Color)
	assert.True(t, res.Color.Equals(DraculaTheme().ColorFor(ClassComment)))
}

func TestChromaUnknownDialect(t *testing.T) {
	log := &recordingLogger{}
	h := NewChroma(WithLogger(log))

	assert.Nil(t, h.Prepare("x", "no-such-language"))
	assert.Nil(t, h.Prepare("y", "no-such-language"))
	assert.Nil(t, h.Tokenize("y", "no-such-language"))
	require.Len(t, log.warnings, 1)
	assert.Contains(t, log.warnings[0], "no lexer found for dialect")

	assert.Equal(t, Result{}, h.Highlight(0, nil))
}

func TestChromaUnknownClassificationWarnsOnce(t *testing.T) {
	log := &recordingLogger{}
	h := NewChroma(WithLogger(log))

	h.mu.Lock()
	first := h.colorFor(chroma.GenericDeleted)
	second := h.colorFor(chroma.GenericDeleted)
	h.mu.Unlock()

	assert.Nil(t, first)
	assert.Nil(t, second)
	require.Len(t, log.warnings, 1)
	assert.Contains(t, log.warnings[0], "unknown token classification")
}

func TestChromaTokenizeRoundTrips(t *testing.T) {
	h := NewChroma()
	inputs := []string{
		"x := 1",
		"func f() {\n\treturn\n}\n",
		"s := \"héllo\" // ünïcode",
		"",
	}
	for _, in := range inputs {
		tokens := h.Tokenize(in, "go")
		assert.Equal(t, in, strings.Join(tokens, ""), "tokens of %q", in)
	}
}

func TestChromaStyleByName(t *testing.T) {
	h := NewChroma(WithThemeName("monokai"))
	assert.Equal(t, "Monokai", h.Theme().Name)

	// A chroma style that is not a built-in theme.
	h = NewChroma(WithThemeName("github"))
	assert.NotNil(t, h.style)
	assert.Equal(t, "Default Dark", h.Theme().Name)

	cache := h.Prepare("package main", "go")
	res := h.Highlight(0, cache)
	assert.NotNil(t, res.Color)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		tt   chroma.TokenType
		want Class
	}{
		{chroma.Comment, ClassComment},
		{chroma.CommentSingle, ClassComment},
		{chroma.CommentPreproc, ClassMeta},
		{chroma.Keyword, ClassKeyword},
		{chroma.KeywordType, ClassKeywordType},
		{chroma.LiteralString, ClassString},
		{chroma.LiteralStringDouble, ClassString},
		{chroma.LiteralStringEscape, ClassStringEscape},
		{chroma.LiteralNumberInteger, ClassNumber},
		{chroma.Operator, ClassOperator},
		{chroma.Punctuation, ClassPunctuation},
		{chroma.NameFunction, ClassFunction},
		{chroma.NameOther, ClassIdentifier},
		{chroma.TextWhitespace, ClassText},
	}
	for _, tt := range tests {
		got, ok := Classify(tt.tt)
		assert.True(t, ok, tt.tt.String())
		assert.Equal(t, tt.want, got, tt.tt.String())
	}

	_, ok := Classify(chroma.GenericHeading)
	assert.False(t, ok)
}

func TestThemeByName(t *testing.T) {
	for _, name := range ThemeNames() {
		theme, ok := ThemeByName(name)
		require.True(t, ok, name)
		assert.NotEmpty(t, theme.Colors)
	}
	_, ok := ThemeByName("nope")
	assert.False(t, ok)

	theme, ok := ThemeByName("DRACULA")
	require.True(t, ok)
	assert.True(t, theme.ColorFor(ClassIdentifier).Equals(theme.Foreground))
}

func TestKnownTheme(t *testing.T) {
	assert.True(t, KnownTheme("Monokai"))
	assert.True(t, KnownTheme("github"))
	assert.False(t, KnownTheme("no-such-theme"))
}

func TestDetectDialect(t *testing.T) {
	assert.Equal(t, "Go", DetectDialect("/tmp/src/main.go"))
	assert.Empty(t, DetectDialect("notes.unknownext"))
}
