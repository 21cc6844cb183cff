package testassert

import (
	"fmt"
	"runtime"

	"muster/internal/teststatus"
)

// AssertThat asserts that cond is true. On failure it panics with a
// *teststatus.Failure carrying the stringified expr and the file/line of
// the call site - the runner's supervisor goroutine recovers this and
// records it without further interpretation.
func AssertThat(cond bool, expr string) {
	if cond {
		return
	}
	file, line := callerSite()
	panic(&teststatus.Failure{
		Kind:    teststatus.KindAssertion,
		Message: expr,
		File:    file,
		Line:    line,
	})
}

// Fail reports a deliberate, expected framework failure - used by
// value-source code that wants to report a data problem as a test failure
// rather than crash the generator.
func Fail(format string, args ...any) {
	file, line := callerSite()
	panic(&teststatus.Failure{
		Kind:    teststatus.KindExpectedFailure,
		Message: fmt.Sprintf(format, args...),
		File:    file,
		Line:    line,
	})
}

func callerSite() (string, int) {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "unknown", 0
	}
	return file, line
}
