package testconfig

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError is one field-level configuration problem.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Message)
}

// ValidationErrors aggregates every problem Validate found, so a malformed
// config is reported in one pass rather than one fix-rerun cycle at a time.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return fmt.Sprintf("invalid configuration: %s", strings.Join(parts, "; "))
}

// Validate checks c for internal consistency. A zero MaxWorkers or
// MinTestsPerThread is valid (MaxWorkers == 0 selects the synchronous
// runner); negative values and an unrecognised MaximumConcurrency are not.
func Validate(c Config) error {
	var errs ValidationErrors

	if c.MaxWorkers < 0 {
		errs.Add("maxWorkers", "must not be negative")
	}
	if c.MinTestsPerThread < 0 {
		errs.Add("minTestsPerThread", "must not be negative")
	}
	if time.Duration(c.DefaultTimeout) < 0 {
		errs.Add("defaultTimeout", "must not be negative")
	}
	if time.Duration(c.MaximumTimeout) < 0 {
		errs.Add("maximumTimeout", "must not be negative")
	}
	switch c.MaximumConcurrency {
	case "Exclusive", "Privileged", "Any", "":
	default:
		errs.Add("maximumConcurrency", fmt.Sprintf("must be one of Exclusive, Privileged, Any, got %q", c.MaximumConcurrency))
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (errs *ValidationErrors) Add(field, message string) {
	*errs = append(*errs, ValidationError{Field: field, Message: message})
}
