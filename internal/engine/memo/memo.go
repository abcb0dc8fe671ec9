// Package memo provides explicit, version-stamped memoization.
//
// A Var holds a value and a version counter that is bumped on every Set. A
// Computed value declares the Versioned inputs it depends on and recomputes
// only when the combined version of those inputs differs from the one it saw
// last. There is no global dependency graph and nothing is recomputed eagerly.
//
// Values in this package are not safe for concurrent use.
package memo

// Version is a monotonically increasing change counter.
type Version uint64

// Versioned is anything with a version counter.
type Versioned interface {
	Version() Version
}

// Counter is a bare version counter for inputs that are not stored in a Var.
type Counter struct {
	v Version
}

// Bump increments the counter.
func (c *Counter) Bump() {
	c.v++
}

// Version returns the current version.
func (c *Counter) Version() Version {
	return c.v
}

// Var is a versioned value.
type Var[T any] struct {
	value T
	v     Version
}

// NewVar creates a Var holding value.
func NewVar[T any](value T) *Var[T] {
	return &Var[T]{value: value, v: 1}
}

// Get returns the current value.
func (x *Var[T]) Get() T {
	return x.value
}

// Set replaces the value and bumps the version.
func (x *Var[T]) Set(value T) {
	x.value = value
	x.v++
}

// Version returns the current version.
func (x *Var[T]) Version() Version {
	return x.v
}

// Computed is a derived value recomputed only when its inputs change.
type Computed[T any] struct {
	compute func() T
	inputs  []Versioned

	value  T
	seen   []Version
	valid  bool
	v      Version
	misses int
}

// NewComputed creates a derived value. compute is called lazily by Get.
func NewComputed[T any](compute func() T, inputs ...Versioned) *Computed[T] {
	return &Computed[T]{compute: compute, inputs: inputs}
}

// Get returns the cached value, recomputing it first if any input changed.
func (c *Computed[T]) Get() T {
	if c.stale() {
		c.value = c.compute()
		c.seen = c.snapshot(c.seen[:0])
		c.valid = true
		c.v++
		c.misses++
	}
	return c.value
}

// Version returns the version of the derived value. It changes each time
// the value is recomputed, so a Computed can itself be an input.
func (c *Computed[T]) Version() Version {
	c.Get()
	return c.v
}

// Invalidate forces the next Get to recompute.
func (c *Computed[T]) Invalidate() {
	c.valid = false
}

// Recomputes returns how many times the value has been computed.
func (c *Computed[T]) Recomputes() int {
	return c.misses
}

func (c *Computed[T]) stale() bool {
	if !c.valid || len(c.seen) != len(c.inputs) {
		return true
	}
	for i, in := range c.inputs {
		if in.Version() != c.seen[i] {
			return true
		}
	}
	return false
}

func (c *Computed[T]) snapshot(dst []Version) []Version {
	for _, in := range c.inputs {
		dst = append(dst, in.Version())
	}
	return dst
}
