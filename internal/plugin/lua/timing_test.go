package lua

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

type countingLogger struct {
	warnings int
}

func (l *countingLogger) Warn(string, ...any) { l.warnings++ }

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestLoadTimingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smoothstep.lua")
	script := "function ease(t)\n  return t * t * (3 - 2 * t)\nend\n"
	if err := os.WriteFile(path, []byte(script), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	timing, err := LoadTimingFile(path)
	if err != nil {
		t.Fatalf("LoadTimingFile() error = %v", err)
	}
	defer timing.Close()

	fn := timing.Func()
	tests := []struct{ in, want float64 }{
		{-1, 0},
		{0, 0},
		{0.25, 0.15625},
		{0.5, 0.5},
		{1, 1},
		{2, 1},
	}
	for _, tt := range tests {
		if got := fn(tt.in); !approx(got, tt.want) {
			t.Errorf("ease(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTiming_ClampsOutput(t *testing.T) {
	timing, err := LoadTimingString(`function ease(t) return t * 2 - 0.5 end`)
	if err != nil {
		t.Fatalf("LoadTimingString() error = %v", err)
	}
	defer timing.Close()

	fn := timing.Func()
	if got := fn(0.1); got != 0 {
		t.Errorf("ease(0.1) = %v, want 0", got)
	}
	if got := fn(0.9); got != 1 {
		t.Errorf("ease(0.9) = %v, want 1", got)
	}
}

func TestTiming_EasingModule(t *testing.T) {
	timing, err := LoadTimingString(`function ease(t) return easing.ease_in_cubic(t) end`)
	if err != nil {
		t.Fatalf("LoadTimingString() error = %v", err)
	}
	defer timing.Close()

	if got := timing.Func()(0.5); !approx(got, 0.125) {
		t.Errorf("ease(0.5) = %v, want 0.125", got)
	}
}

func TestLoadTiming_Errors(t *testing.T) {
	tests := []struct {
		name string
		code string
		want error
	}{
		{"no ease", `function other(t) return t end`, ErrNotFunction},
		{"ease not a function", `ease = 0.5`, ErrNotFunction},
		{"string result", `function ease(t) return "fast" end`, ErrBadResult},
		{"infinite result", `function ease(t) return 1 / 0 end`, ErrBadResult},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTimingString(tt.code)
			if !errors.Is(err, tt.want) {
				t.Errorf("LoadTimingString() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := LoadTimingString(`function ease(t`); err == nil {
		t.Error("LoadTimingString(syntax error) succeeded")
	}
	if _, err := LoadTimingFile(filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Error("LoadTimingFile(missing) succeeded")
	}
}

func TestTiming_RuntimeFailureFallsBackToLinear(t *testing.T) {
	timing, err := LoadTimingString(`
function ease(t)
  if t > 0.5 and t < 1 then error("boom") end
  return t
end`)
	if err != nil {
		t.Fatalf("LoadTimingString() error = %v", err)
	}
	defer timing.Close()

	logger := &countingLogger{}
	timing.SetLogger(logger)
	fn := timing.Func()

	if got := fn(0.75); got != 0.75 {
		t.Errorf("ease(0.75) = %v, want linear 0.75", got)
	}
	if got := fn(0.8); got != 0.8 {
		t.Errorf("ease(0.8) = %v, want linear 0.8", got)
	}
	if logger.warnings != 1 {
		t.Errorf("warnings = %d, want 1", logger.warnings)
	}
}
