package testrun

import "muster/internal/testgraph"

// cohorts is the result of bucketing a test set by effective concurrency
// class, per spec.md 4.4.3.
type cohorts struct {
	exclusive  []*testgraph.Definition
	privileged []*testgraph.Definition
	any        []*testgraph.Definition
}

func partition(tests []*testgraph.Definition, opts Options) cohorts {
	var c cohorts
	for _, def := range tests {
		switch effectiveConcurrency(def, opts) {
		case testgraph.Exclusive:
			c.exclusive = append(c.exclusive, def)
		case testgraph.Privileged:
			c.privileged = append(c.privileged, def)
		default:
			c.any = append(c.any, def)
		}
	}
	return c
}

// poolWorkerCount computes how many additional pool-worker goroutines to
// spawn beyond the coordinator, per spec.md 4.4.4 step 2.
func poolWorkerCount(c cohorts, opts Options) int {
	perThread := opts.MinTestsPerThread
	if perThread < 1 {
		perThread = 1
	}
	preferred := (len(c.any) + len(c.privileged)) / perThread
	extra := preferred
	if max := opts.MaxWorkers - 1; extra > max {
		extra = max
	}
	if extra < 0 {
		extra = 0
	}
	return extra
}
