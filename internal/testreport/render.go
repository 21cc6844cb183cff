package testreport

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	strutil "muster/pkg/strings"
)

func statusColor(s string) text.Colors {
	switch s {
	case "Passed":
		return text.Colors{text.FgHiGreen, text.Bold}
	case "Failed":
		return text.Colors{text.FgHiRed, text.Bold}
	case "Running":
		return text.Colors{text.FgHiYellow, text.Bold}
	case "WaitingToRun":
		return text.Colors{text.FgHiCyan}
	default:
		return text.Colors{text.FgHiBlack}
	}
}

// RenderTable writes rows to w as a go-pretty table: path, status (color
// coded), duration, and a truncated one-line failure message.
func RenderTable(rows []Row, w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{
		text.Colors{text.FgHiBlue, text.Bold}.Sprint("TEST"),
		text.Colors{text.FgHiBlue, text.Bold}.Sprint("STATUS"),
		text.Colors{text.FgHiBlue, text.Bold}.Sprint("DURATION"),
		text.Colors{text.FgHiBlue, text.Bold}.Sprint("FAILURE"),
	})

	var passed, failed int
	for _, row := range rows {
		statusLabel := row.Status.String()
		failMsg := ""
		if row.Failure != nil {
			failMsg = strutil.TruncateDescription(row.Failure.Message, strutil.DefaultDescriptionMaxLen)
		}

		switch row.Status.String() {
		case "Passed":
			passed++
		case "Failed":
			failed++
		}

		t.AppendRow(table.Row{
			row.Path,
			statusColor(statusLabel).Sprint(statusLabel),
			row.Duration.Round(time.Millisecond),
			failMsg,
		})
	}

	t.Render()
	fmt.Fprintf(w, "\n%s %d passed, %d failed, %d total\n",
		text.FgHiBlue.Sprint("Summary:"), passed, failed, len(rows))
}
