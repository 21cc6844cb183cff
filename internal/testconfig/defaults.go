package testconfig

import "time"

// Default returns the configuration used when no config.yaml is present:
// a modest worker pool, a one-second default test timeout, a five-minute
// hard ceiling, and the Any concurrency ceiling (no clamp).
func Default() Config {
	return Config{
		MaxWorkers:         4,
		MinTestsPerThread:  4,
		DefaultTimeout:     Duration(time.Second),
		MaximumTimeout:     Duration(5 * time.Minute),
		MaximumConcurrency: "Any",
	}
}
