package config

import (
	"errors"
	"os"
	"strings"

	"github.com/dshills/codemorph/internal/engine/transition"
	"github.com/dshills/codemorph/internal/renderer/core"
	"github.com/dshills/codemorph/internal/renderer/highlight"
)

// LogLevels are the accepted values of logging.level.
var LogLevels = []string{"debug", "info", "warn", "warning", "error"}

// Validate checks every setting and returns all problems joined. Each
// problem is a *ValidationError.
func (c *Config) Validate() error {
	var errs []error
	add := func(path string, value any, code ValidationErrorCode, msg string) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value, Code: code})
	}

	r := c.Render
	if r.CellWidth <= 0 {
		add("render.cell_width", r.CellWidth, ErrCodeOutOfRange, "must be positive")
	}
	if r.LineHeight <= 0 {
		add("render.line_height", r.LineHeight, ErrCodeOutOfRange, "must be positive")
	}
	if r.Hold <= 0 || r.Hold > 1 {
		add("render.hold", r.Hold, ErrCodeOutOfRange, "must be in (0, 1]")
	}
	if _, err := core.ColorFromHex(r.FallbackColor); err != nil {
		add("render.fallback_color", r.FallbackColor, ErrCodeTypeMismatch, "must be a hex color such as #d4d4d4")
	}
	if r.DimAlpha < 0 || r.DimAlpha > 1 {
		add("render.dim_alpha", r.DimAlpha, ErrCodeOutOfRange, "must be in [0, 1]")
	}
	if r.FPS < 1 || r.FPS > 240 {
		add("render.fps", r.FPS, ErrCodeOutOfRange, "must be between 1 and 240")
	}

	t := c.Transition
	if t.Duration < 0 {
		add("transition.duration", t.Duration, ErrCodeOutOfRange, "must not be negative")
	}
	if t.TimingScript != "" {
		if _, err := os.Stat(t.TimingScript); err != nil {
			add("transition.timing_script", t.TimingScript, ErrCodeUnknown, "cannot be read")
		}
	} else if _, err := transition.TimingByName(t.Timing); err != nil {
		add("transition.timing", t.Timing, ErrCodeInvalidEnum,
			"must be one of "+strings.Join(transition.TimingNames(), ", "))
	}
	if _, err := transition.ParseAlgorithm(t.Differ); err != nil {
		add("transition.differ", t.Differ, ErrCodeInvalidEnum, "must be patience or myers")
	}

	if h := c.Highlight; h.Enabled && h.Theme != "" && !highlight.KnownTheme(h.Theme) {
		add("highlight.theme", h.Theme, ErrCodeInvalidEnum, "is neither a built-in theme nor a chroma style")
	}

	if !validLevel(c.Logging.Level) {
		add("logging.level", c.Logging.Level, ErrCodeInvalidEnum, "must be one of "+strings.Join(LogLevels, ", "))
	}

	if c.Watch.Debounce < 0 {
		add("watch.debounce", c.Watch.Debounce, ErrCodeOutOfRange, "must not be negative")
	}

	return errors.Join(errs...)
}

func validLevel(level string) bool {
	level = strings.ToLower(level)
	for _, l := range LogLevels {
		if l == level {
			return true
		}
	}
	return false
}
