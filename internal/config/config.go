package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the complete codemorph configuration.
type Config struct {
	Render     RenderConfig     `toml:"render"`
	Transition TransitionConfig `toml:"transition"`
	Highlight  HighlightConfig  `toml:"highlight"`
	Logging    LoggingConfig    `toml:"logging"`
	Watch      WatchConfig      `toml:"watch"`
}

// RenderConfig controls layout and drawing.
type RenderConfig struct {
	// CellWidth is the width of a monospace cell in device units.
	CellWidth float64 `toml:"cell_width"`
	// LineHeight is the height of a row in device units.
	LineHeight float64 `toml:"line_height"`
	// Hold is the fraction of the approach to the midpoint over which
	// changing text fades.
	Hold float64 `toml:"hold"`
	// FallbackColor is the hex color of text without a highlight color.
	FallbackColor string `toml:"fallback_color"`
	// DimAlpha is the opacity of text outside the selection.
	DimAlpha float64 `toml:"dim_alpha"`
	// FPS is the frame rate of playback.
	FPS int `toml:"fps"`
}

// TransitionConfig controls how edits animate.
type TransitionConfig struct {
	Duration Duration `toml:"duration"`
	// Timing names a built-in timing function.
	Timing string `toml:"timing"`
	// TimingScript is a Lua file defining ease(t). It takes precedence
	// over Timing.
	TimingScript string `toml:"timing_script"`
	// Differ is the line diff algorithm: patience or myers.
	Differ      string `toml:"differ"`
	DetectMoves bool   `toml:"detect_moves"`
}

// HighlightConfig controls syntax highlighting.
type HighlightConfig struct {
	Enabled bool `toml:"enabled"`
	// Dialect is the lexer name. Empty means detect from the file name.
	Dialect string `toml:"dialect"`
	Theme   string `toml:"theme"`
}

// LoggingConfig controls diagnostics.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	// Debounce is the quiet period after the last write before the file
	// is reloaded.
	Debounce Duration `toml:"debounce"`
}

// Duration is a time.Duration that reads and writes strings such as
// "600ms" in TOML.
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String returns the duration formatted by time.Duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			CellWidth:     1,
			LineHeight:    1,
			Hold:          0.8,
			FallbackColor: "#d4d4d4",
			DimAlpha:      0.4,
			FPS:           60,
		},
		Transition: TransitionConfig{
			Duration:    Duration(600 * time.Millisecond),
			Timing:      "ease-in-out-cubic",
			Differ:      "patience",
			DetectMoves: true,
		},
		Highlight: HighlightConfig{
			Enabled: true,
			Theme:   "default",
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
		Watch: WatchConfig{
			Debounce: Duration(100 * time.Millisecond),
		},
	}
}

// Load reads the TOML file at path over the defaults and applies
// environment overrides. A missing file, or an empty path, yields the
// defaults. The result is not validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := cfg.decode(data, path); err != nil {
				return nil, err
			}
		}
	}

	if err := cfg.ApplyEnv(os.Environ()); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(data, "<input>"); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte, path string) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	err := dec.Decode(c)
	if err == nil {
		return nil
	}

	var strict *toml.StrictMissingError
	if errors.As(err, &strict) && len(strict.Errors) > 0 {
		first := strict.Errors[0]
		return &ValidationError{
			Path:    strings.Join(first.Key(), "."),
			Message: "unknown setting in " + path,
			Code:    ErrCodeUnknownSetting,
		}
	}

	perr := &ParseError{Path: path, Message: err.Error(), Err: err}
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		perr.Line, perr.Column = derr.Position()
	}
	return perr
}

// Marshal encodes the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
