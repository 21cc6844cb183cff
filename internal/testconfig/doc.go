// Package testconfig loads and validates the run configuration that
// internal/testrun.Options is built from: worker counts, timeouts, and the
// concurrency clamp/override pair.
//
// Grounded on the teacher's internal/config package: a defaults constructor,
// a yaml.v3-backed loader that falls back to defaults when the file is
// absent, a validation pass returning an aggregate error, and an optional
// fsnotify-backed watch for live reload.
package testconfig
