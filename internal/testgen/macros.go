package testgen

import (
	"runtime"
	"strings"
	"time"

	"muster/internal/testgraph"
	"muster/internal/testreg"
	"muster/pkg/logging"
)

// MustDeclare wraps Declare for use from func init(): a declaration whose
// parameterised form yields zero tuples is a programmer error, and init-time
// registration is exactly where that error should abort the process rather
// than surface later as a confusing empty test run.
func MustDeclare(d Declaration) *testgraph.Node {
	node, err := Declare(d)
	if err != nil {
		logging.Error("testgen", err, "registration failed for %q", d.Name)
		panic(err)
	}
	return node
}

// TestOption configures a single Test declaration.
type TestOption func(*Declaration)

// WithValueCase adds one literal argument tuple.
func WithValueCase(v ...any) TestOption {
	return func(d *Declaration) {
		d.ValueCases = append(d.ValueCases, ArgTuple(v))
	}
}

// WithValueSource adds a nullary function producing a sequence of argument
// tuples, evaluated eagerly at registration time.
func WithValueSource(src ValueSource) TestOption {
	return func(d *Declaration) {
		d.ValueSources = append(d.ValueSources, src)
	}
}

// WithConcurrency sets the concurrency class applied to every definition
// this declaration produces.
func WithConcurrency(c testgraph.Concurrency) TestOption {
	return func(d *Declaration) { d.Concurrency = c }
}

// WithTimeout sets the per-test timeout override applied to every
// definition this declaration produces. Zero means "use the scheduler's
// default timeout".
func WithTimeout(timeout time.Duration) TestOption {
	return func(d *Declaration) { d.Timeout = timeout }
}

var categoryStack []string

// Category opens a named category, runs fn (which is expected to call Test
// for each test belonging to the category, and may nest further
// Categories), then closes it. This is the declarative grouping construct
// spec.md 6 asks for, grounded on the same closures-over-package-state shape
// cobra's command tree builds with init().
func Category(name string, fn func()) {
	categoryStack = append(categoryStack, name)
	defer func() { categoryStack = categoryStack[:len(categoryStack)-1] }()
	fn()
}

// currentCategory returns the full nested path of open Category blocks,
// "/"-joined from outermost to innermost, so that Registry.Graft builds (or
// reuses) a real chain of category nodes instead of keying on the innermost
// name alone - two categories both opening an inner category with the same
// name stay distinct subtrees when their outer names differ.
func currentCategory() string {
	if len(categoryStack) == 0 {
		return "Uncategorized"
	}
	return strings.Join(categoryStack, "/")
}

// Test declares one test body under the currently open Category (or
// "Uncategorized" if none is open), applies opts, expands it via
// MustDeclare, and grafts the resulting subtree into the process-wide
// registry.
func Test(name string, body any, opts ...TestOption) {
	file, line := callerSite()

	d := Declaration{
		Name: name,
		File: file,
		Line: line,
		Body: body,
	}
	for _, opt := range opts {
		opt(&d)
	}

	node := MustDeclare(d)
	testreg.Default().Graft(currentCategory(), node)
}

func callerSite() (string, int) {
	// Skip callerSite and Test itself to attribute the declaration to its
	// call site, the way the C++ macros captured __FILE__/__LINE__.
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "unknown", 0
	}
	return file, line
}
