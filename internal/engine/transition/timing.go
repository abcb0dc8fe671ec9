package transition

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// TimingFunc maps linear progress in [0, 1] to eased progress.
type TimingFunc func(t float64) float64

// Linear returns t unchanged.
func Linear(t float64) float64 { return t }

// EaseInCubic starts slowly and accelerates.
func EaseInCubic(t float64) float64 { return t * t * t }

// EaseOutCubic starts quickly and decelerates.
func EaseOutCubic(t float64) float64 { return 1 - math.Pow(1-t, 3) }

// EaseInOutCubic accelerates until the midpoint and decelerates after it.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// DefaultTiming is the timing function used when none is configured.
var DefaultTiming TimingFunc = EaseInOutCubic

var timings = map[string]TimingFunc{
	"linear":            Linear,
	"ease-in-cubic":     EaseInCubic,
	"ease-out-cubic":    EaseOutCubic,
	"ease-in-out-cubic": EaseInOutCubic,
}

// TimingByName returns a built-in timing function. Names are matched
// case-insensitively and underscores are accepted in place of hyphens.
func TimingByName(name string) (TimingFunc, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	if key == "" {
		return DefaultTiming, nil
	}
	fn, ok := timings[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTiming, name)
	}
	return fn, nil
}

// TimingNames returns the names of the built-in timing functions.
func TimingNames() []string {
	names := make([]string, 0, len(timings))
	for name := range timings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clamped wraps fn so its input and output stay within [0, 1] and the
// endpoints map exactly to 0 and 1.
func Clamped(fn TimingFunc) TimingFunc {
	return func(t float64) float64 {
		switch {
		case t <= 0:
			return 0
		case t >= 1:
			return 1
		}
		v := fn(t)
		if math.IsNaN(v) {
			return t
		}
		return math.Max(0, math.Min(1, v))
	}
}
