// Package testassert implements the fault barrier a test body asserts
// through. Go has no exception to raise and unwind through the way the
// original framework's AssertThat did; instead, a failing assertion panics
// with a *teststatus.Failure, which the runner's supervisor goroutine
// recovers at the per-test boundary (see internal/testrun). This is the
// language-neutral replacement spec.md 9 describes: "the body runs under a
// fault barrier... AssertThat writes the failure... and returns from the
// body via early exit; the runner checks the slot on return" - implemented
// here as panic/recover rather than a thread-local slot, since panic/recover
// already gives Go the unwind-on-first-failure semantics for free.
package testassert
