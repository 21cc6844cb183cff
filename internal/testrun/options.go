package testrun

import (
	"time"

	"muster/internal/testgraph"
)

// Options configures a scheduler run. The zero value is not directly usable
// for MaxWorkers/DefaultTimeout - callers load a usable Options from
// internal/testconfig.Default() or internal/testconfig.Load.
type Options struct {
	// MaxWorkers is the hard ceiling on goroutines running tests, the
	// coordinator included: at most MaxWorkers-1 additional pool-worker
	// goroutines are spawned. Zero means "run everything on the caller's goroutine" - no workers
	// are spawned and Cancel becomes a no-op.
	MaxWorkers int

	// MinTestsPerThread sizes the pool: fewer tests per worker than this
	// collapses the preferred worker count down towards 1.
	MinTestsPerThread int

	// DefaultTimeout is used whenever a Definition's own Timeout is zero.
	DefaultTimeout time.Duration

	// MaximumTimeout clamps every test's effective timeout from above.
	MaximumTimeout time.Duration

	// MaximumConcurrency clamps every test's declared Concurrency downward.
	// The zero value, testgraph.Exclusive, would clamp everything down to
	// Exclusive, which is never the desired default - testconfig.Default
	// sets this explicitly to testgraph.Any.
	MaximumConcurrency testgraph.Concurrency

	// EnforcedConcurrency, if non-nil, overrides every test's effective
	// concurrency class outright, after clamping.
	EnforcedConcurrency *testgraph.Concurrency
}

// effectiveConcurrency computes a Definition's concurrency class after
// Options clamp/override, per spec.md 4.4.3.
func effectiveConcurrency(def *testgraph.Definition, opts Options) testgraph.Concurrency {
	c := def.Concurrency
	if c > opts.MaximumConcurrency {
		c = opts.MaximumConcurrency
	}
	if opts.EnforcedConcurrency != nil {
		c = *opts.EnforcedConcurrency
	}
	return c
}

// effectiveTimeout computes a Definition's timeout after Options default and
// clamp, per spec.md 4.4.5.
func effectiveTimeout(def *testgraph.Definition, opts Options) time.Duration {
	t := def.Timeout
	if t == 0 {
		t = opts.DefaultTimeout
	}
	if t < time.Millisecond {
		t = time.Millisecond
	}
	if opts.MaximumTimeout > 0 && t > opts.MaximumTimeout {
		t = opts.MaximumTimeout
	}
	return t
}
