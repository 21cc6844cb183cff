package testrun

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"muster/internal/testgraph"
	"muster/internal/testreg"
	"muster/internal/teststatus"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func defaultOptions() Options {
	return Options{
		MaxWorkers:         4,
		MinTestsPerThread:  1,
		DefaultTimeout:     time.Second,
		MaximumTimeout:     5 * time.Second,
		MaximumConcurrency: testgraph.Any,
	}
}

func leafDef(name string, concurrency testgraph.Concurrency, run func()) *testgraph.Definition {
	node := testgraph.NewNode(name, "scheduler_test.go", 1)
	def := &testgraph.Definition{Run: run, Node: node, Concurrency: concurrency}
	node.Definition = def
	return def
}

func TestScheduler_RunAllPassing_AllPassed(t *testing.T) {
	store := teststatus.NewStore()
	s := NewScheduler(store)

	var count atomic.Int64
	defs := []*testgraph.Definition{
		leafDef("A", testgraph.Any, func() { count.Add(1) }),
		leafDef("B", testgraph.Any, func() { count.Add(1) }),
		leafDef("C", testgraph.Exclusive, func() { count.Add(1) }),
	}

	require.NoError(t, s.Run(defs, defaultOptions()))
	s.Join()

	assert.Equal(t, int64(3), count.Load())
	for _, def := range defs {
		status := store.DetermineStatus(def.Node, s)
		assert.Equal(t, teststatus.Passed, status)
	}
	assert.False(t, s.IsRunning())
}

func TestScheduler_FailingAssertion_MarksFailed(t *testing.T) {
	store := teststatus.NewStore()
	s := NewScheduler(store)

	defs := []*testgraph.Definition{
		leafDef("Bad", testgraph.Any, func() {
			panic(&teststatus.Failure{Kind: teststatus.KindAssertion, Message: "boom"})
		}),
	}

	require.NoError(t, s.Run(defs, defaultOptions()))
	s.Join()

	assert.Equal(t, teststatus.Failed, store.DetermineStatus(defs[0].Node, s))
}

func TestScheduler_ExclusiveNeverOverlapsAnyOtherTest(t *testing.T) {
	store := teststatus.NewStore()
	s := NewScheduler(store)

	var active atomic.Int64
	var maxActive atomic.Int64
	track := func() func() {
		return func() {
			n := active.Add(1)
			for {
				cur := maxActive.Load()
				if n <= cur || maxActive.CompareAndSwap(cur, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			active.Add(-1)
		}
	}

	defs := []*testgraph.Definition{
		leafDef("Ex1", testgraph.Exclusive, track()),
		leafDef("Any1", testgraph.Any, track()),
		leafDef("Any2", testgraph.Any, track()),
		leafDef("Any3", testgraph.Any, track()),
	}

	opts := defaultOptions()
	opts.MaxWorkers = 4
	require.NoError(t, s.Run(defs, opts))
	s.Join()

	assert.LessOrEqual(t, maxActive.Load(), int64(3))
}

func TestScheduler_MaxWorkersZero_RunsSynchronously(t *testing.T) {
	store := teststatus.NewStore()
	s := NewScheduler(store)

	var order []string
	var mu sync.Mutex
	record := func(name string) func() {
		return func() {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
		}
	}

	defs := []*testgraph.Definition{
		leafDef("A", testgraph.Any, record("A")),
		leafDef("B", testgraph.Any, record("B")),
	}

	opts := defaultOptions()
	opts.MaxWorkers = 0

	err := s.Run(defs, opts)
	require.NoError(t, err)

	assert.False(t, s.IsRunning(), "Run with MaxWorkers == 0 must have completed before returning")
	assert.Len(t, order, 2)
}

func TestScheduler_Timeout_MarksFailedWithTimeoutKind(t *testing.T) {
	store := teststatus.NewStore()
	s := NewScheduler(store)

	release := make(chan struct{})
	defs := []*testgraph.Definition{
		func() *testgraph.Definition {
			node := testgraph.NewNode("Slow", "scheduler_test.go", 1)
			def := &testgraph.Definition{
				Node:        node,
				Concurrency: testgraph.Any,
				Timeout:     20 * time.Millisecond,
				Run:         func() { <-release },
			}
			node.Definition = def
			return def
		}(),
	}

	require.NoError(t, s.Run(defs, defaultOptions()))
	s.Join()

	result, ok := store.Fetch(defs[0].Node)
	require.True(t, ok)
	require.NotNil(t, result.Failure)
	assert.Equal(t, teststatus.KindTimeout, result.Failure.Kind)

	close(release)
}

func TestScheduler_Cancel_StopsRemainingAnyTests(t *testing.T) {
	store := teststatus.NewStore()
	s := NewScheduler(store)

	var ran atomic.Int64
	defs := make([]*testgraph.Definition, 0, 20)
	for i := 0; i < 20; i++ {
		defs = append(defs, leafDef("T", testgraph.Any, func() {
			ran.Add(1)
			time.Sleep(2 * time.Millisecond)
		}))
	}

	opts := defaultOptions()
	opts.MaxWorkers = 1
	require.NoError(t, s.Run(defs, opts))

	s.Cancel()
	s.Join()

	assert.Less(t, ran.Load(), int64(20))
	assert.False(t, s.IsRunning())
}

func TestScheduler_RunRejectsBusyUnlessCancelDrainsFirst(t *testing.T) {
	store := teststatus.NewStore()
	s := NewScheduler(store)

	release := make(chan struct{})
	opts := defaultOptions()

	first := []*testgraph.Definition{
		leafDef("Blocker", testgraph.Exclusive, func() { <-release }),
	}
	require.NoError(t, s.Run(first, opts))

	// The scheduler is still Running (Blocker has not returned). Run must
	// cancel the stuck prior run and wait for it to drain before starting
	// the new one.
	second := []*testgraph.Definition{
		leafDef("Other", testgraph.Any, func() {}),
	}
	err := s.Run(second, opts)
	require.NoError(t, err, "Run must invoke Cancel on the stuck prior run and succeed once it drains")
	s.Join()

	// Blocker's supervisor goroutine is abandoned (per the cancellation
	// path in runOne) but still blocked on release - close it so the
	// goroutine exits and TestMain's leak check stays clean.
	close(release)
}

func TestScheduler_IsScheduled_TrueDuringRunFalseAfter(t *testing.T) {
	store := teststatus.NewStore()
	s := NewScheduler(store)

	start := make(chan struct{})
	finish := make(chan struct{})
	def := leafDef("Watched", testgraph.Any, func() {
		close(start)
		<-finish
	})

	require.NoError(t, s.Run([]*testgraph.Definition{def}, defaultOptions()))
	<-start
	assert.True(t, s.IsScheduled(def))

	close(finish)
	s.Join()
	assert.False(t, s.IsScheduled(def))
}

func TestScheduler_RunFailed_OnlyReRunsFailedDefinitions(t *testing.T) {
	store := teststatus.NewStore()
	s := NewScheduler(store)
	reg := testreg.NewRegistry()

	var passRuns, failRuns atomic.Int64
	pass := leafDef("Pass", testgraph.Any, func() { passRuns.Add(1) })
	fail := leafDef("Fail", testgraph.Any, func() {
		failRuns.Add(1)
		panic(&teststatus.Failure{Kind: teststatus.KindAssertion, Message: "nope"})
	})
	reg.Graft("Cat", pass.Node)
	reg.Graft("Cat", fail.Node)

	require.NoError(t, s.Run(reg.AllLeaves(), defaultOptions()))
	s.Join()
	assert.Equal(t, int64(1), passRuns.Load())
	assert.Equal(t, int64(1), failRuns.Load())

	require.NoError(t, s.RunFailed(reg, store, defaultOptions()))
	s.Join()

	assert.Equal(t, int64(1), passRuns.Load(), "RunFailed must not re-run a passing definition")
	assert.Equal(t, int64(2), failRuns.Load(), "RunFailed must re-run the failing definition")
}
