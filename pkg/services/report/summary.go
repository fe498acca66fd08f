package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/de-tools/report-designer/pkg/models/domain"
	"github.com/de-tools/report-designer/pkg/models/rdl"
)

const jsonDataPrefix = "jsondata="

// Summarize describes the layout of a document produced by Build.
func Summarize(doc *rdl.Report) (*domain.LayoutSummary, error) {
	if doc == nil {
		return nil, fmt.Errorf("report document is nil")
	}

	summary := &domain.LayoutSummary{Width: doc.Width}
	if doc.PageHeader != nil {
		for _, item := range doc.PageHeader.ReportItems {
			if tb, ok := item.(*rdl.Textbox); ok {
				summary.Title = tb.Value
				break
			}
		}
	}

	for _, src := range doc.DataSources {
		n, err := countRecords(src)
		if err != nil {
			return nil, err
		}
		summary.Records += n
	}

	for _, t := range doc.Tables() {
		summary.Dataset = domain.DatasetName(t.DataSetName)
		summary.Sections = append(summary.Sections, tableSection(t))
	}
	return summary, nil
}

func countRecords(src rdl.DataSource) (int, error) {
	payload, ok := strings.CutPrefix(src.ConnectionProperties.ConnectString, jsonDataPrefix)
	if !ok {
		return 0, nil
	}
	var records []json.RawMessage
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		return 0, fmt.Errorf("decode embedded records of %s: %w", src.Name, err)
	}
	return len(records), nil
}

func tableSection(t *rdl.Table) domain.SummarySection {
	section := domain.SummarySection{
		Title:   t.Name,
		Summary: map[string]interface{}{},
	}

	if len(t.TableGroups) > 0 {
		section.Summary["Grouped by"] = strings.Join(t.TableGroups[0].Group.GroupExpressions, ", ")
	}
	for _, f := range t.Filters {
		section.Summary["Filter"] = fmt.Sprintf("%s %s (%s)", f.FilterExpression, f.Operator, strings.Join(f.FilterValues, ", "))
	}
	for _, s := range t.Details.SortExpressions {
		section.Summary["Sorted by"] = fmt.Sprintf("%s %s", s.Value, s.Direction)
	}

	if len(t.Details.TableRows) == 0 {
		return section
	}
	cells := t.Details.TableRows[0].TableCells
	for i, cell := range cells {
		tb, ok := cell.Item.(*rdl.Textbox)
		if !ok {
			continue
		}
		width := ""
		if i < len(t.TableColumns) {
			width = strings.TrimSuffix(t.TableColumns[i].Width, "in")
		}
		desc := "align " + tb.Style.TextAlign
		if tb.Style.Format != "" {
			desc += ", format " + tb.Style.Format
		}
		section.Details = append(section.Details, domain.SummaryDetail{
			Name:        strings.TrimPrefix(tb.Name, "textbox_value_"),
			Value:       width,
			Unit:        "in",
			Description: desc,
		})
	}
	return section
}
