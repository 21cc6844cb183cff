// Package teststatus holds the per-test result store and the status
// resolver that rolls up scheduled/running/finished information from the
// scheduler into a single Status for any node in the test graph.
package teststatus
