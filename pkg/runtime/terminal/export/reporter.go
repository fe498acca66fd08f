package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/de-tools/report-designer/pkg/models/domain"
	"github.com/de-tools/report-designer/pkg/models/rdl"
)

type TableConfig struct {
	NameWidth        int
	ValueWidth       int
	UnitWidth        int
	DescriptionWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:        20,
		ValueWidth:       10,
		UnitWidth:        4,
		DescriptionWidth: 30,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

const summaryTemplate = `
{{.Title}} ({{.Dataset}}, {{.Records}} records)
Width: {{.Width}}
{{range .Sections}}{{$section := .}}
=== {{.Title}} ===
{{range summaryKeys .Summary}}{{.}}: {{index $section.Summary .}}
{{end}}
{{separator}}
{{formatRow "Column" "Width" "Unit" "Description"}}
{{separator}}
{{range .Details}}{{formatRow .Name .Value .Unit .Description}}
{{end}}{{separator}}
{{end}}`

// Handle prints the layout summary as a fixed-width table per report table.
func (c *Reporter) Handle(summary *domain.LayoutSummary) error {
	funcMap := template.FuncMap{
		"formatRow": func(name string, value interface{}, unit string, desc string) string {
			return fmt.Sprintf("| %-*s | %-*v | %-*s | %-*s |",
				c.config.NameWidth, name,
				c.config.ValueWidth, value,
				c.config.UnitWidth, unit,
				c.config.DescriptionWidth, desc)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.UnitWidth+2),
				strings.Repeat("-", c.config.DescriptionWidth+2))
		},
		// map iteration order is random, keys are listed sorted
		"summaryKeys": func(m map[string]interface{}) []string {
			keys := make([]string, 0, len(m))
			for k := range m {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			return keys
		},
	}

	t, err := template.New("summary").Funcs(funcMap).Parse(summaryTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, summary)
}

const formTemplate = `Dataset: {{.Dataset}}
Fields: {{join .AvailableFields ", "}}
Grouping: {{.GroupingField}}
{{.FilterField}}: {{join .AvailableFilterValues ", "}}
`

type formView struct {
	Dataset               domain.DatasetName
	AvailableFields       []string
	AvailableFilterValues []string
	GroupingField         string
	FilterField           string
}

// HandleForm prints the options the form offers once a dataset is chosen.
func (c *Reporter) HandleForm(state domain.SelectionState, groupingLabel, filterLabel string) error {
	view := formView{
		Dataset:               state.Dataset,
		AvailableFields:       state.AvailableFields,
		AvailableFilterValues: state.AvailableFilterValues,
		GroupingField:         groupingLabel,
		FilterField:           filterLabel,
	}

	t, err := template.New("form").Funcs(template.FuncMap{"join": strings.Join}).Parse(formTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(c.writer, view)
}

// WriteDocument writes the report definition as indented JSON.
func (c *Reporter) WriteDocument(doc *rdl.Report) error {
	enc := json.NewEncoder(c.writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode report document: %w", err)
	}
	return nil
}
