package transition

import (
	"sync"
	"time"

	"github.com/dshills/codemorph/internal/engine/fragment"
)

// Clock is the progress of a transitional scope. It implements
// fragment.Progress and is safe for concurrent use.
type Clock struct {
	mu    sync.RWMutex
	value float64
}

// Value returns the current progress.
func (c *Clock) Value() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Set updates the progress.
func (c *Clock) Set(v float64) {
	c.mu.Lock()
	c.value = v
	c.mu.Unlock()
}

// State is the lifecycle state of a Transition.
type State int

const (
	Running State = iota
	Completed
	Cancelled
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Transition drives the progress of one transitional scope.
type Transition struct {
	mu       sync.Mutex
	id       fragment.Handle
	clock    *Clock
	timing   TimingFunc
	duration time.Duration
	elapsed  time.Duration
	target   string
	state    State
	done     chan struct{}
}

func newTransition(id fragment.Handle, clock *Clock, target string, duration time.Duration, timing TimingFunc) *Transition {
	if timing == nil {
		timing = DefaultTiming
	}
	return &Transition{
		id:       id,
		clock:    clock,
		timing:   Clamped(timing),
		duration: duration,
		target:   target,
		done:     make(chan struct{}),
	}
}

// Handle returns the handle of the transitional scope.
func (t *Transition) Handle() fragment.Handle {
	return t.id
}

// Target returns the text the scope resolves to once complete.
func (t *Transition) Target() string {
	return t.target
}

// Duration returns the configured duration.
func (t *Transition) Duration() time.Duration {
	return t.duration
}

// Advance moves the transition forward by dt and updates the scope's
// clock. It returns true once the transition has reached its end or
// is no longer running.
func (t *Transition) Advance(dt time.Duration) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != Running {
		return true
	}
	if dt > 0 {
		t.elapsed += dt
	}
	linear := t.linear()
	t.clock.Set(t.timing(linear))
	return linear >= 1
}

// Progress returns the linear fraction of the duration that has elapsed.
func (t *Transition) Progress() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.linear()
}

func (t *Transition) linear() float64 {
	if t.duration <= 0 || t.elapsed >= t.duration {
		return 1
	}
	return float64(t.elapsed) / float64(t.duration)
}

// Value returns the eased progress seen by the traversal.
func (t *Transition) Value() float64 {
	return t.clock.Value()
}

// State returns the lifecycle state.
func (t *Transition) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Done is closed when the transition completes or is cancelled.
func (t *Transition) Done() <-chan struct{} {
	return t.done
}

// finish moves the transition to a terminal state. It reports false if it
// already was in one.
func (t *Transition) finish(state State) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != Running {
		return false
	}
	t.state = state
	if state == Completed {
		t.elapsed = t.duration
		t.clock.Set(1)
	}
	close(t.done)
	return true
}
