// Package testreport renders the state of a test registry and its last
// recorded results - as a go-pretty table for interactive use, or through
// a user-supplied text/template (with sprig's function map) for scripting.
//
// Fetching status across several categories concurrently is done with
// golang.org/x/sync/errgroup: unlike the scheduler's Any cohort (where one
// test's failure must never cancel its cohort-mates), a report that can't
// resolve one category's status is not a report worth printing, so the
// first error here does cancel the rest of the group.
package testreport
