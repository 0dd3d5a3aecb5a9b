package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/DeafMist/cve-radar/internal/models"
)

// NoResults is the text shown when a search yields nothing.
const NoResults = "There are no matching results for this keyword."

var (
	resultsTmpl = template.Must(template.New("results").Parse(resultsTemplate))
	pageTmpl    = template.Must(template.New("page").Parse(pageTemplate))
)

// PageData feeds the page shell.
type PageData struct {
	Keyword string
	Results template.HTML
}

// Results renders advisories as an unordered list, or the NoResults
// paragraph when there are none.
func Results(records []models.Advisory) template.HTML {
	var buf bytes.Buffer
	data := struct {
		Records   []models.Advisory
		NoResults string
	}{Records: records, NoResults: NoResults}

	if err := resultsTmpl.Execute(&buf, data); err != nil {
		// Only reachable if the template itself is broken.
		panic(fmt.Sprintf("render results: %v", err))
	}
	return template.HTML(buf.String())
}

// Page writes the full results page around an already rendered fragment.
func Page(w io.Writer, data PageData) error {
	if err := pageTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
