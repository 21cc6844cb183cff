package testconfig

import (
	"fmt"
	"time"

	"muster/internal/testgraph"
	"muster/internal/testrun"
)

// Duration wraps time.Duration to accept the usual Go duration strings
// ("30s", "1m30s") in YAML, the way operators actually write them, rather
// than raw nanosecond integers.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("testconfig: invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Config is the on-disk shape of a run configuration, unmarshalled from
// YAML and converted to testrun.Options via Config.Options.
type Config struct {
	MaxWorkers         int      `yaml:"maxWorkers"`
	MinTestsPerThread  int      `yaml:"minTestsPerThread"`
	DefaultTimeout     Duration `yaml:"defaultTimeout"`
	MaximumTimeout     Duration `yaml:"maximumTimeout"`
	MaximumConcurrency string   `yaml:"maximumConcurrency"`
}

// Options converts a validated Config into a testrun.Options. Callers
// should call Validate first; Options does not re-validate
// MaximumConcurrency and defaults an unrecognised value to Any.
func (c Config) Options() testrun.Options {
	return testrun.Options{
		MaxWorkers:         c.MaxWorkers,
		MinTestsPerThread:  c.MinTestsPerThread,
		DefaultTimeout:     time.Duration(c.DefaultTimeout),
		MaximumTimeout:     time.Duration(c.MaximumTimeout),
		MaximumConcurrency: parseConcurrency(c.MaximumConcurrency),
	}
}

func parseConcurrency(s string) testgraph.Concurrency {
	switch s {
	case "Exclusive":
		return testgraph.Exclusive
	case "Privileged":
		return testgraph.Privileged
	default:
		return testgraph.Any
	}
}
