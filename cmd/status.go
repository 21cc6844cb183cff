package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"muster/internal/testreg"
	"muster/internal/testreport"
)

var statusTemplate string

func newStatusCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "status <test-path>",
		Short: "Show the last recorded result for the tests matching a path",
		Long: `status looks up the tests matching test-path against the result of the
previous run and prints one line per match. With --template, the matched
rows are rendered through a text/template (sprig's function map included)
instead of the default one-line-per-test format.`,
		Args: cobra.ExactArgs(1),
		RunE: runStatus,
	}
	c.Flags().StringVar(&statusTemplate, "template", "", "render matched tests through this text/template instead of the default format")
	return c
}

func runStatus(cmd *cobra.Command, args []string) error {
	reg := testreg.Default()
	defs := reg.Find(args[0])
	if len(defs) == 0 {
		return fmt.Errorf("gotestd: no test matches %q", args[0])
	}

	store, err := loadLastRun()
	if err != nil {
		return err
	}

	wanted := make(map[string]bool, len(defs))
	for _, def := range defs {
		wanted[def.Node.Path()] = true
	}

	var rows []testreport.Row
	for _, row := range testreport.Rows(reg, store, nil) {
		if wanted[row.Path] {
			rows = append(rows, row)
		}
	}

	if statusTemplate != "" {
		return testreport.RenderTemplate(rows, statusTemplate, cmd.OutOrStdout())
	}

	for _, row := range rows {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", row.Path, row.Status)
		if row.Failure != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", row.Failure.Error())
		}
	}
	return nil
}
