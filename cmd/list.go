package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"muster/internal/testgraph"
	"muster/internal/testreg"
	"muster/internal/testreport"
)

var listAll bool

func newListCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "list",
		Short: "List every registered category and test",
		Long: `list prints the registry tree. With --all, it instead fetches and prints
the last recorded status of every top-level category, one table each,
resolved concurrently.`,
		RunE: runList,
	}
	c.Flags().BoolVar(&listAll, "all", false, "show last recorded status for every category instead of the plain tree")
	return c
}

func runList(cmd *cobra.Command, args []string) error {
	reg := testreg.Default()
	if listAll {
		return runListAll(cmd, reg)
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{
		text.Colors{text.FgHiBlue, text.Bold}.Sprint("CATEGORY"),
		text.Colors{text.FgHiBlue, text.Bold}.Sprint("TEST"),
		text.Colors{text.FgHiBlue, text.Bold}.Sprint("CONCURRENCY"),
	})

	var count int
	for _, category := range reg.Root().Children {
		category.VisitAllLeafDefinitions(func(d *testgraph.Definition) {
			count++
			t.AppendRow(table.Row{category.Name, d.Node.Path(), d.Concurrency.String()})
		})
	}

	t.Render()
	fmt.Fprintf(cmd.OutOrStdout(), "\n%s %d\n", text.FgHiBlue.Sprint("Total tests:"), count)
	return nil
}

// runListAll resolves every top-level category's status concurrently via
// testreport.FetchCategories and renders one table per category, in
// registration order.
func runListAll(cmd *cobra.Command, reg *testreg.Registry) error {
	store, err := loadLastRun()
	if err != nil {
		return err
	}

	names := make([]string, 0, len(reg.Root().Children))
	for _, category := range reg.Root().Children {
		names = append(names, category.Name)
	}

	byCategory, err := testreport.FetchCategories(cmd.Context(), reg, store, nil, names)
	if err != nil {
		return fmt.Errorf("gotestd: fetching category status: %w", err)
	}

	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), text.Colors{text.FgHiBlue, text.Bold}.Sprint(name))
		testreport.RenderTable(byCategory[name], cmd.OutOrStdout())
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}
