package testrun

import (
	"fmt"
	"time"

	"muster/internal/testgraph"
	"muster/internal/teststatus"
)

// outcome is what the supervisor goroutine reports back to the watchdog
// loop. It carries no timestamps - the watchdog, not the supervisor, owns
// the Result's Start/End fields, so that the Result is only ever written
// from the single goroutine currently executing runOne, even if the
// supervisor itself is later abandoned.
type outcome struct {
	failure *teststatus.Failure
}

// runOne invokes one test body under the per-test watchdog described in
// spec.md 4.4.5. It blocks until the body returns, the effective timeout
// elapses, or stopCh fires - whichever happens first - and leaves result
// with exactly one of: no failure (pass), or one Failure record, plus both
// timestamps set.
func runOne(def *testgraph.Definition, opts Options, store *teststatus.Store, stopCh <-chan struct{}) {
	result := store.ResetForRun(def.Node)
	timeout := effectiveTimeout(def, opts)

	done := make(chan outcome, 1)
	result.Start = now()

	go func() {
		var oc outcome
		func() {
			defer func() {
				if r := recover(); r != nil {
					oc.failure = toFailure(r, def)
				}
			}()
			def.Run()
		}()
		done <- oc
	}()

	select {
	case oc := <-done:
		result.End = now()
		result.Failure = oc.failure

	case <-time.After(timeout):
		result.End = now()
		result.Failure = &teststatus.Failure{
			Kind:    teststatus.KindTimeout,
			Message: fmt.Sprintf("exceeded timeout duration of %s", timeout),
			File:    def.Node.File,
			Line:    def.Node.Line,
		}
		// The supervisor goroutine above is now detached: we do not wait
		// for it, and we never read from done again. It is not killed -
		// Go gives no such primitive - it is left to run to completion (or
		// forever) on its own; its eventual send into the buffered done
		// channel succeeds without a receiver and the goroutine exits.
		// See DESIGN.md, "Replacing forced thread termination".

	case <-stopCh:
		result.End = now()
		result.Failure = &teststatus.Failure{
			Kind:    teststatus.KindCancellation,
			Message: "cancelled",
			File:    def.Node.File,
			Line:    def.Node.Line,
		}
	}
}

// toFailure maps whatever the supervisor's recover() produced onto a
// *teststatus.Failure, implementing spec.md 4.4.5 step 2's three catch
// clauses: the framework's own failure type, a general error with a
// message, and anything else.
func toFailure(recovered any, def *testgraph.Definition) *teststatus.Failure {
	switch v := recovered.(type) {
	case *teststatus.Failure:
		return v
	case error:
		return &teststatus.Failure{
			Kind:    teststatus.KindUnexpected,
			Message: v.Error(),
			File:    def.Node.File,
			Line:    def.Node.Line,
		}
	default:
		return &teststatus.Failure{
			Kind:    teststatus.KindUnknown,
			Message: "unknown exception encountered",
			File:    def.Node.File,
			Line:    def.Node.Line,
		}
	}
}
