package transition

import (
	"errors"
	"math"
	"testing"
)

func TestTimingEndpoints(t *testing.T) {
	for _, name := range TimingNames() {
		fn, err := TimingByName(name)
		if err != nil {
			t.Fatalf("TimingByName(%q): %v", name, err)
		}
		if got := fn(0); math.Abs(got) > 1e-9 {
			t.Errorf("%s(0) = %v, want 0", name, got)
		}
		if got := fn(1); math.Abs(got-1) > 1e-9 {
			t.Errorf("%s(1) = %v, want 1", name, got)
		}
	}
}

func TestEaseInOutCubicMidpoint(t *testing.T) {
	if got := EaseInOutCubic(0.5); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("EaseInOutCubic(0.5) = %v, want 0.5", got)
	}
	if got := EaseInOutCubic(0.25); math.Abs(got-0.0625) > 1e-9 {
		t.Errorf("EaseInOutCubic(0.25) = %v, want 0.0625", got)
	}
}

func TestTimingByName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"linear", false},
		{"Ease_In_Out_Cubic", false},
		{" ease-out-cubic ", false},
		{"", false},
		{"bounce", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := TimingByName(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownTiming) {
					t.Errorf("expected ErrUnknownTiming, got %v", err)
				}
				return
			}
			if err != nil || fn == nil {
				t.Errorf("unexpected error %v", err)
			}
		})
	}
}

func TestClamped(t *testing.T) {
	overshoot := Clamped(func(t float64) float64 { return t * 2 })
	broken := Clamped(func(float64) float64 { return math.NaN() })

	tests := []struct {
		fn   TimingFunc
		in   float64
		want float64
	}{
		{overshoot, -1, 0},
		{overshoot, 0.25, 0.5},
		{overshoot, 0.75, 1},
		{overshoot, 2, 1},
		{broken, 0.3, 0.3},
	}
	for _, tt := range tests {
		if got := tt.fn(tt.in); got != tt.want {
			t.Errorf("f(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
