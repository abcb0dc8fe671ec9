package transition

import (
	"time"

	"github.com/dshills/codemorph/internal/engine/fragment"
	"github.com/dshills/codemorph/internal/renderer/highlight"
)

// Default configuration values.
const (
	DefaultDuration     = 600 * time.Millisecond
	DefaultPollInterval = 10 * time.Millisecond
)

// Logger receives diagnostics from the controller.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}

// Option configures a Code during creation.
type Option func(*Code)

// WithHighlighter sets the highlighter used for readiness, caches and
// language-aware tokens.
func WithHighlighter(h highlight.Highlighter) Option {
	return func(c *Code) {
		c.highlighter = h
	}
}

// WithDialect sets the initial dialect.
func WithDialect(dialect string) Option {
	return func(c *Code) {
		c.dialect.Set(dialect)
	}
}

// WithDiffer replaces the default LineDiffer.
func WithDiffer(d Differ) Option {
	return func(c *Code) {
		if d != nil {
			c.differ = d
		}
	}
}

// WithMeasurer sets the measurer used to normalize the tree.
func WithMeasurer(m fragment.Measurer) Option {
	return func(c *Code) {
		c.measurer = m
	}
}

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(c *Code) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTiming sets the timing function of new transitions.
func WithTiming(fn TimingFunc) Option {
	return func(c *Code) {
		if fn != nil {
			c.timing = fn
		}
	}
}

// WithPollInterval sets how often readiness is re-checked.
func WithPollInterval(d time.Duration) Option {
	return func(c *Code) {
		if d > 0 {
			c.poll = d
		}
	}
}
