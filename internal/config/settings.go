package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// setting binds a dotted path to a field of Config.
type setting struct {
	get func(c *Config) any
	set func(c *Config, value string) error
}

var settings = map[string]setting{
	"render.cell_width":     floatSetting(func(c *Config) *float64 { return &c.Render.CellWidth }),
	"render.line_height":    floatSetting(func(c *Config) *float64 { return &c.Render.LineHeight }),
	"render.hold":           floatSetting(func(c *Config) *float64 { return &c.Render.Hold }),
	"render.fallback_color": stringSetting(func(c *Config) *string { return &c.Render.FallbackColor }),
	"render.dim_alpha":      floatSetting(func(c *Config) *float64 { return &c.Render.DimAlpha }),
	"render.fps":            intSetting(func(c *Config) *int { return &c.Render.FPS }),

	"transition.duration":      durationSetting(func(c *Config) *Duration { return &c.Transition.Duration }),
	"transition.timing":        stringSetting(func(c *Config) *string { return &c.Transition.Timing }),
	"transition.timing_script": stringSetting(func(c *Config) *string { return &c.Transition.TimingScript }),
	"transition.differ":        stringSetting(func(c *Config) *string { return &c.Transition.Differ }),
	"transition.detect_moves":  boolSetting(func(c *Config) *bool { return &c.Transition.DetectMoves }),

	"highlight.enabled": boolSetting(func(c *Config) *bool { return &c.Highlight.Enabled }),
	"highlight.dialect": stringSetting(func(c *Config) *string { return &c.Highlight.Dialect }),
	"highlight.theme":   stringSetting(func(c *Config) *string { return &c.Highlight.Theme }),

	"logging.level": stringSetting(func(c *Config) *string { return &c.Logging.Level }),

	"watch.debounce": durationSetting(func(c *Config) *Duration { return &c.Watch.Debounce }),
}

// Keys returns every setting path in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of a setting.
func (c *Config) Get(path string) (any, error) {
	s, ok := settings[normalizePath(path)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	return s.get(c), nil
}

// Set parses value into the setting at path.
func (c *Config) Set(path, value string) error {
	path = normalizePath(path)
	s, ok := settings[path]
	if !ok {
		return &ValidationError{Path: path, Message: "no such setting", Code: ErrCodeUnknownSetting}
	}
	if err := s.set(c, strings.TrimSpace(value)); err != nil {
		return &ValidationError{Path: path, Message: err.Error(), Value: value, Code: ErrCodeTypeMismatch}
	}
	return nil
}

// SetAll applies "path=value" assignments in order.
func (c *Config) SetAll(assignments []string) error {
	for _, a := range assignments {
		path, value, ok := strings.Cut(a, "=")
		if !ok {
			return &ValidationError{Path: a, Message: "expected path=value", Code: ErrCodeTypeMismatch}
		}
		if err := c.Set(path, value); err != nil {
			return err
		}
	}
	return nil
}

func normalizePath(path string) string {
	return strings.ToLower(strings.TrimSpace(path))
}

func floatSetting(field func(*Config) *float64) setting {
	return setting{
		get: func(c *Config) any { return *field(c) },
		set: func(c *Config, value string) error {
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return errors.New("expected a number")
			}
			*field(c) = v
			return nil
		},
	}
}

func intSetting(field func(*Config) *int) setting {
	return setting{
		get: func(c *Config) any { return *field(c) },
		set: func(c *Config, value string) error {
			v, err := strconv.Atoi(value)
			if err != nil {
				return errors.New("expected an integer")
			}
			*field(c) = v
			return nil
		},
	}
}

func boolSetting(field func(*Config) *bool) setting {
	return setting{
		get: func(c *Config) any { return *field(c) },
		set: func(c *Config, value string) error {
			v, err := strconv.ParseBool(value)
			if err != nil {
				return errors.New("expected true or false")
			}
			*field(c) = v
			return nil
		},
	}
}

func stringSetting(field func(*Config) *string) setting {
	return setting{
		get: func(c *Config) any { return *field(c) },
		set: func(c *Config, value string) error {
			*field(c) = value
			return nil
		},
	}
}

func durationSetting(field func(*Config) *Duration) setting {
	return setting{
		get: func(c *Config) any { return field(c).Std() },
		set: func(c *Config, value string) error {
			v, err := time.ParseDuration(value)
			if err != nil {
				return errors.New("expected a duration such as 600ms")
			}
			*field(c) = Duration(v)
			return nil
		},
	}
}
