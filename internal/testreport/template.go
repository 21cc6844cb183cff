package testreport

import (
	"fmt"
	"io"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// RenderTemplate executes tmplText against rows, with sprig's function map
// available (so operators can write e.g. {{ range . }}{{ .Path | upper }}
// {{ end }} without this package anticipating every formatting need).
func RenderTemplate(rows []Row, tmplText string, w io.Writer) error {
	tmpl, err := template.New("testreport").Funcs(sprig.TxtFuncMap()).Parse(tmplText)
	if err != nil {
		return fmt.Errorf("testreport: parsing template: %w", err)
	}
	if err := tmpl.Execute(w, rows); err != nil {
		return fmt.Errorf("testreport: executing template: %w", err)
	}
	return nil
}
