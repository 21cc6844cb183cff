package testreport

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"muster/internal/testgraph"
	"muster/internal/testreg"
	"muster/internal/teststatus"
)

// Row is one leaf's status as rendered for a report.
type Row struct {
	Path     string
	Status   teststatus.Status
	Duration time.Duration
	Failure  *teststatus.Failure
}

func rowFor(n *testgraph.Node, store *teststatus.Store, scheduled teststatus.ScheduledSetView) Row {
	row := Row{
		Path:   n.Path(),
		Status: store.DetermineStatus(n, scheduled),
	}
	if result, ok := store.Fetch(n); ok && result.End > result.Start {
		row.Duration = result.End - result.Start
		row.Failure = result.Failure
	}
	return row
}

// Rows returns one Row per leaf reachable from reg, sorted by path.
func Rows(reg *testreg.Registry, store *teststatus.Store, scheduled teststatus.ScheduledSetView) []Row {
	var leaves []*testgraph.Node
	reg.Root().VisitAllLeafDefinitions(func(d *testgraph.Definition) {
		leaves = append(leaves, d.Node)
	})

	rows := make([]Row, len(leaves))
	for i, n := range leaves {
		rows[i] = rowFor(n, store, scheduled)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Path < rows[j].Path })
	return rows
}

// FetchCategory returns the rows for a single named category.
func FetchCategory(reg *testreg.Registry, store *teststatus.Store, scheduled teststatus.ScheduledSetView, name string) ([]Row, error) {
	node, ok := reg.Category(name)
	if !ok {
		return nil, fmt.Errorf("testreport: unknown category %q", name)
	}

	var leaves []*testgraph.Node
	node.VisitAllLeafDefinitions(func(d *testgraph.Definition) {
		leaves = append(leaves, d.Node)
	})

	rows := make([]Row, len(leaves))
	for i, n := range leaves {
		rows[i] = rowFor(n, store, scheduled)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Path < rows[j].Path })
	return rows, nil
}

// FetchCategories resolves several categories concurrently, returning a map
// keyed by category name. Unlike the scheduler's Any cohort, a status
// lookup that cannot resolve one category makes the whole report
// unreliable - so the first error here cancels every other in-flight fetch.
func FetchCategories(ctx context.Context, reg *testreg.Registry, store *teststatus.Store, scheduled teststatus.ScheduledSetView, names []string) (map[string][]Row, error) {
	g, ctx := errgroup.WithContext(ctx)

	results := make([][]Row, len(names))
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			rows, err := FetchCategory(reg, store, scheduled, name)
			if err != nil {
				return err
			}
			results[i] = rows
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string][]Row, len(names))
	for i, name := range names {
		out[name] = results[i]
	}
	return out, nil
}
