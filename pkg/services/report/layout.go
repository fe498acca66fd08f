package report

import (
	"github.com/de-tools/report-designer/pkg/models/domain"
	"github.com/de-tools/report-designer/pkg/models/rdl"
	"github.com/de-tools/report-designer/pkg/services/catalog"
)

const (
	dataSourceName = "DataSource"
	allRecordsPath = "$.*"

	// printable width of a letter page with half-inch margins
	contentWidth = 7.5
	pageWidth    = 8.5
	pageHeight   = 11
	pageMargin   = 0.5

	headerRowHeight      = 0.5
	groupHeaderRowHeight = 0.6
	detailRowHeight      = 0.3
	pageHeaderHeight     = 1

	accentColor   = "#3da7a8"
	currencyFmt   = "c2"
	cellPadding   = 6
	verticalAlign = "middle"
)

// columns resolves the selected field names against the dataset descriptor.
// Requests are validated upstream, so unknown names are skipped.
func columns(ds domain.DatasetDescriptor, fields []string) []domain.FieldDescriptor {
	out := make([]domain.FieldDescriptor, 0, len(fields))
	for _, name := range fields {
		if f, ok := ds.Field(name); ok {
			out = append(out, f)
		}
	}
	return out
}

func columnWidth(f domain.FieldDescriptor) string {
	return rdl.Inches(contentWidth * float64(f.Width) / 100)
}

func textAlign(f domain.FieldDescriptor) string {
	if f.Type.IsNumeric() {
		return rdl.TextAlignRight
	}
	return rdl.TextAlignLeft
}

func dataSet(ds domain.DatasetDescriptor) rdl.DataSet {
	fields := make([]rdl.Field, 0, len(ds.Fields))
	for _, f := range ds.Fields {
		fields = append(fields, rdl.Field{Name: f.Name, DataField: f.Name})
	}
	return rdl.DataSet{
		Name: string(ds.Name),
		Query: rdl.Query{
			CommandText:    allRecordsPath,
			DataSourceName: dataSourceName,
		},
		Fields: fields,
	}
}

// headerRow is shared by the fixed table header and the group header so both
// layouts render identical column captions.
func headerRow(cols []domain.FieldDescriptor) rdl.TableRow {
	cells := make([]rdl.TableCell, 0, len(cols))
	for _, f := range cols {
		tb := rdl.NewTextbox("textbox_header_"+f.Name, f.Name, rdl.Style{
			BottomBorder: &rdl.Border{
				Width: rdl.Points(0.25),
				Style: "solid",
				Color: "Gainsboro",
			},
			Color:         accentColor,
			VerticalAlign: verticalAlign,
			FontWeight:    "bold",
			PaddingLeft:   rdl.Points(cellPadding),
			FontSize:      rdl.Points(10),
			TextAlign:     textAlign(f),
		})
		tb.CanGrow = true
		cells = append(cells, rdl.Cell(tb))
	}
	return rdl.NewRow(headerRowHeight, cells...)
}

func groupValueRow(groupExpr string, colCount int) rdl.TableRow {
	tb := rdl.NewTextbox("textbox_group_value", groupExpr, rdl.Style{
		VerticalAlign: verticalAlign,
		FontWeight:    "bold",
		PaddingLeft:   rdl.Points(cellPadding),
		FontSize:      rdl.Points(16),
	})
	return rdl.NewRow(groupHeaderRowHeight, rdl.SpanningCell(tb, colCount))
}

func detailRow(cols []domain.FieldDescriptor) rdl.TableRow {
	cells := make([]rdl.TableCell, 0, len(cols))
	for _, f := range cols {
		style := rdl.Style{
			VerticalAlign: verticalAlign,
			PaddingLeft:   rdl.Points(cellPadding),
			TextAlign:     textAlign(f),
		}
		if f.Type == domain.FieldTypeCurrency {
			style.Format = currencyFmt
		}
		tb := rdl.NewTextbox("textbox_value_"+f.Name, rdl.FieldValue(f.Name), style)
		tb.CanGrow = true
		tb.KeepTogether = true
		cells = append(cells, rdl.Cell(tb))
	}
	return rdl.NewRow(detailRowHeight, cells...)
}

func table(ds domain.DatasetDescriptor, req domain.ReportRequest) *rdl.Table {
	cols := columns(ds, req.Fields)
	groupExpr := catalog.GroupExpression(req.Dataset)

	t := rdl.NewTable("Table_"+string(req.Dataset), string(req.Dataset))
	t.TableColumns = make([]rdl.TableColumn, 0, len(cols))
	for _, f := range cols {
		t.TableColumns = append(t.TableColumns, rdl.TableColumn{Width: columnWidth(f)})
	}

	if len(req.FilterValues) > 0 {
		values := make([]string, len(req.FilterValues))
		copy(values, req.FilterValues)
		t.Filters = []rdl.Filter{rdl.NewInFilter(groupExpr, values)}
	}

	header := headerRow(cols)
	if req.Grouping {
		t.TableGroups = []rdl.TableGroup{{
			Group: rdl.Group{
				GroupExpressions: []string{groupExpr},
				PageBreak:        rdl.PageBreakBetween,
			},
			Header: &rdl.TableHeader{
				RepeatOnNewPage: true,
				TableRows:       []rdl.TableRow{groupValueRow(groupExpr, len(cols)), header},
			},
		}}
	} else {
		t.Header = &rdl.TableHeader{
			RepeatOnNewPage: true,
			TableRows:       []rdl.TableRow{header},
		}
	}

	t.Details = rdl.TableDetails{TableRows: []rdl.TableRow{detailRow(cols)}}
	if req.SortBy != "" {
		t.Details.SortExpressions = []rdl.SortExpression{
			rdl.NewSort(rdl.FieldValue(req.SortBy), req.SortDescending),
		}
	}
	return t
}

func pageHeader(dataset domain.DatasetName) *rdl.PageHeader {
	title := rdl.NewTextbox("textbox_report_name", catalog.Title(dataset), rdl.Style{
		FontSize:      rdl.Points(22),
		Color:         accentColor,
		VerticalAlign: verticalAlign,
		TextAlign:     rdl.TextAlignLeft,
	})
	title.Left = rdl.Points(cellPadding)
	title.Top = rdl.Points(0)
	title.Width = rdl.Inches(contentWidth)
	title.Height = rdl.Inches(pageHeaderHeight)

	return &rdl.PageHeader{
		Height:      rdl.Inches(pageHeaderHeight),
		ReportItems: []rdl.ReportItem{title},
	}
}
