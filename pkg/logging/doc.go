// Package logging provides the structured logging used across gotestd: the
// scheduler, registry, config loader, and CLI commands all log through this
// package rather than calling slog directly.
//
// # Log levels
//   - Debug: per-test scheduling detail (partition sizes, worker counts)
//   - Info: run lifecycle (start, cancel, completion)
//   - Warn: recoverable configuration problems (e.g. a config reload that
//     fails validation and is rejected in favor of the prior config)
//   - Error: failures that abort an operation
//
// # Usage
//
//	import "muster/pkg/logging"
//
//	logging.InitForCLI(logging.LevelInfo, os.Stdout)
//	logging.Info("testrun", "starting run of %d test(s)", len(tests))
//	logging.Error("testconfig", err, "failed to load %s", path)
//
// # Subsystems
//
// Log calls pass a subsystem string for filtering: "testrun" (scheduler),
// "testgen" (registration), "testgraph" (graph invariants), "testconfig"
// (config load/reload), "cmd" (CLI command handling).
//
// # Audit events
//
// Audit writes an operator-visible action as a single INFO-level line
// prefixed "[AUDIT]", independent of the configured filter level's effect
// on Debug/Info/Warn/Error.
package logging
