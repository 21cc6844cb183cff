// Package testrun is the scheduler and runner: it accepts a set of tests
// plus options, partitions the set by concurrency class, runs it under a
// worker pool sized from workload and configuration, and supervises each
// test with a watchdog goroutine that can detach (never reclaim) a stuck
// test body once its timeout elapses.
package testrun
