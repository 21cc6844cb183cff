// Package testreg is the process-wide registry the generator grafts
// declarations into. It follows the constructor-injected-value pattern
// spec.md 9 recommends: NewRegistry always returns a fresh instance for
// tests of the framework itself, while Default lazily provides the
// singleton host code (the CLI, a future panel) binds to.
package testreg
