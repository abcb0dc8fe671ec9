package lua

import (
	"fmt"
	"math"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/codemorph/internal/engine/transition"
)

// EaseFunc is the global a timing script must define.
const EaseFunc = "ease"

// Logger receives script failures during playback.
type Logger interface {
	Warn(msg string, args ...any)
}

// Timing is a timing function defined by a Lua script:
//
//	function ease(t)
//	  return t * t * (3 - 2 * t)
//	end
//
// The built-in curves are available to scripts as easing.linear,
// easing.ease_in_out_cubic and so on.
type Timing struct {
	state  *State
	source string
	logger Logger
	warned bool
}

// LoadTimingFile runs the script at path and checks that it defines ease.
func LoadTimingFile(path string, opts ...StateOption) (*Timing, error) {
	return loadTiming(path, func(s *State) error { return s.DoFile(path) }, opts)
}

// LoadTimingString runs a script held in memory.
func LoadTimingString(code string, opts ...StateOption) (*Timing, error) {
	return loadTiming("<string>", func(s *State) error { return s.DoString(code) }, opts)
}

func loadTiming(source string, load func(*State) error, opts []StateOption) (*Timing, error) {
	state := NewState(opts...)
	registerEasing(state)

	if err := load(state); err != nil {
		state.Close()
		return nil, fmt.Errorf("load timing script %s: %w", source, err)
	}
	if !state.IsFunction(EaseFunc) {
		state.Close()
		return nil, fmt.Errorf("timing script %s: %w: %s", source, ErrNotFunction, EaseFunc)
	}
	for _, t := range []float64{0, 1} {
		if _, err := callEase(state, t); err != nil {
			state.Close()
			return nil, fmt.Errorf("timing script %s: %w", source, err)
		}
	}
	return &Timing{state: state, source: source}, nil
}

// SetLogger sets where playback failures are reported.
func (t *Timing) SetLogger(l Logger) {
	t.logger = l
}

// Func returns the script as a clamped timing function. A call that fails
// during playback falls back to linear timing and is reported once.
func (t *Timing) Func() transition.TimingFunc {
	return transition.Clamped(func(x float64) float64 {
		v, err := callEase(t.state, x)
		if err != nil {
			if !t.warned && t.logger != nil {
				t.warned = true
				t.logger.Warn("timing script failed", "source", t.source, "error", err)
			}
			return x
		}
		return v
	})
}

// Close releases the Lua state.
func (t *Timing) Close() {
	t.state.Close()
}

func callEase(s *State, x float64) (float64, error) {
	v, err := s.CallNumber(EaseFunc, x)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: ease(%g) = %g", ErrBadResult, x, v)
	}
	return v, nil
}

// registerEasing exposes the built-in curves as the global easing table.
func registerEasing(s *State) {
	funcs := make(map[string]lua.LGFunction)
	for _, name := range transition.TimingNames() {
		fn, err := transition.TimingByName(name)
		if err != nil {
			continue
		}
		funcs[luaName(name)] = func(L *lua.LState) int {
			L.Push(lua.LNumber(fn(float64(L.CheckNumber(1)))))
			return 1
		}
	}
	s.RegisterModule("easing", funcs)
}

// luaName turns ease-in-out-cubic into ease_in_out_cubic.
func luaName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
