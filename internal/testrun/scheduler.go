package testrun

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"muster/internal/testgraph"
	"muster/internal/testreg"
	"muster/internal/teststatus"
	"muster/pkg/logging"
)

// State is the scheduler's lifecycle state: Idle -> Running -> Cancelling ->
// Idle.
type State int

const (
	Idle State = iota
	Running
	Cancelling
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case Cancelling:
		return "Cancelling"
	default:
		return "Unknown"
	}
}

// Scheduler accepts a set of tests plus Options, partitions them by
// concurrency class, and runs them under a worker pool sized from workload
// and configuration. A Scheduler owns only transient per-run state; the
// test graph and definitions it runs are read-only to it.
type Scheduler struct {
	mu        sync.RWMutex
	state     State
	store     *teststatus.Store
	scheduled map[*testgraph.Definition]struct{}
	cancel    context.CancelFunc
	runDone   chan struct{}
}

// NewScheduler creates a scheduler that publishes outcomes into store.
// Tests of the scheduler itself should always construct a fresh Scheduler
// and Store rather than share the process-wide instance.
func NewScheduler(store *teststatus.Store) *Scheduler {
	return &Scheduler{store: store}
}

// Run accepts an unordered set of leaves to execute. Run is rejected unless
// the scheduler is Idle: it first invokes Cancel and waits for the prior run
// to drain, and only fails if that did not restore Idle.
//
// With opts.MaxWorkers == 0, Run executes every test synchronously on the
// caller's goroutine and returns only once the whole set has completed. With
// opts.MaxWorkers > 0, Run spawns a coordinator goroutine and returns
// promptly; callers use Join to wait for completion.
func (s *Scheduler) Run(tests []*testgraph.Definition, opts Options) error {
	if err := s.prepare(tests); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.cancel = cancel
	s.runDone = make(chan struct{})
	s.mu.Unlock()

	if opts.MaxWorkers == 0 {
		s.drive(tests, opts, nil)
		s.finish()
		return nil
	}

	go func() {
		s.drive(tests, opts, ctx.Done())
		s.finish()
	}()
	return nil
}

// RunAll runs every leaf in reg.
func (s *Scheduler) RunAll(reg *testreg.Registry, opts Options) error {
	return s.Run(reg.AllLeaves(), opts)
}

// RunCategory runs every leaf in the subtree rooted at node.
func (s *Scheduler) RunCategory(node *testgraph.Node, opts Options) error {
	var defs []*testgraph.Definition
	node.VisitAllLeafDefinitions(func(d *testgraph.Definition) {
		defs = append(defs, d)
	})
	return s.Run(defs, opts)
}

// RunOne runs a single definition.
func (s *Scheduler) RunOne(def *testgraph.Definition, opts Options) error {
	return s.Run([]*testgraph.Definition{def}, opts)
}

// RunFailed re-runs every definition in reg whose status in lastRun was
// Failed. This supplements spec.md with the original source's "re-run
// failed tests" panel affordance; it is a thin wrapper around Run, not a
// new execution model.
func (s *Scheduler) RunFailed(reg *testreg.Registry, lastRun *teststatus.Store, opts Options) error {
	var failed []*testgraph.Definition
	for _, def := range reg.AllLeaves() {
		if lastRun.DetermineStatus(def.Node, s) == teststatus.Failed {
			failed = append(failed, def)
		}
	}
	return s.Run(failed, opts)
}

// Cancel requests cooperative stop and returns after signalling - it does
// not itself kill any in-flight test body, and does not block on the run
// draining.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	if s.state == Running {
		s.state = Cancelling
	}
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Join blocks until the current run completes or is abandoned. Join on an
// idle scheduler returns immediately.
func (s *Scheduler) Join() {
	s.mu.RLock()
	done := s.runDone
	s.mu.RUnlock()

	if done == nil {
		return
	}
	<-done
}

// IsScheduled reports whether def is a member of the currently scheduled
// set. The scheduled set is mutated only at the start/end of a run; readers
// may observe stale-but-conservative values, per spec.md 5.
func (s *Scheduler) IsScheduled(def *testgraph.Definition) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.scheduled[def]
	return ok
}

// IsRunning reports whether the scheduler is not Idle.
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state != Idle
}

func (s *Scheduler) prepare(tests []*testgraph.Definition) error {
	s.mu.Lock()
	notIdle := s.state != Idle
	s.mu.Unlock()

	if notIdle {
		s.Cancel()
		s.Join()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Idle {
		return fmt.Errorf("testrun: scheduler busy, cancel did not restore Idle state")
	}

	s.state = Running
	scheduled := make(map[*testgraph.Definition]struct{}, len(tests))
	for _, t := range tests {
		scheduled[t] = struct{}{}
	}
	s.scheduled = scheduled
	return nil
}

func (s *Scheduler) finish() {
	s.mu.Lock()
	s.state = Idle
	s.scheduled = nil
	done := s.runDone
	s.mu.Unlock()
	close(done)
}

// drive implements the execution ordering from spec.md 4.4.4. stopCh is nil
// for the synchronous (MaxWorkers == 0) path, which makes Cancel a no-op:
// a nil channel never becomes ready in a select, so no cooperative
// cancellation point in this path ever fires.
func (s *Scheduler) drive(tests []*testgraph.Definition, opts Options, stopCh <-chan struct{}) {
	c := partition(tests, opts)

	logging.Debug("testrun", "partitioned %d test(s): %d exclusive, %d privileged, %d any",
		len(tests), len(c.exclusive), len(c.privileged), len(c.any))

	runCohortSerially(c.exclusive, opts, s.store, stopCh)

	if opts.MaxWorkers == 0 {
		runCohortSerially(c.privileged, opts, s.store, stopCh)
		runCohortSerially(c.any, opts, s.store, stopCh)
		return
	}

	extra := poolWorkerCount(c, opts)
	logging.Debug("testrun", "spawning %d pool worker(s) for %d Any test(s)", extra, len(c.any))

	var idx atomic.Int64
	var workers sync.WaitGroup
	for i := 0; i < extra; i++ {
		workers.Add(1)
		go func() {
			defer workers.Done()
			poolWorkerLoop(c.any, &idx, opts, s.store, stopCh)
		}()
	}

	runCohortSerially(c.privileged, opts, s.store, stopCh)

	// The coordinator joins the pool by running the same loop itself,
	// against the same shared index - spec.md 4.4.4 step 5.
	poolWorkerLoop(c.any, &idx, opts, s.store, stopCh)

	workers.Wait()
}

func runCohortSerially(tests []*testgraph.Definition, opts Options, store *teststatus.Store, stopCh <-chan struct{}) {
	for _, def := range tests {
		select {
		case <-stopCh:
			return
		default:
		}
		runOne(def, opts, store, stopCh)
	}
}

func poolWorkerLoop(any []*testgraph.Definition, idx *atomic.Int64, opts Options, store *teststatus.Store, stopCh <-chan struct{}) {
	for {
		select {
		case <-stopCh:
			return
		default:
		}

		i := idx.Add(1) - 1
		if i >= int64(len(any)) {
			return
		}
		runOne(any[i], opts, store, stopCh)
	}
}
