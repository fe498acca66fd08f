package rdl

import (
	"fmt"
	"strconv"
)

// Inches formats a length in inches, e.g. 0.5 -> "0.5in".
func Inches(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "in"
}

// Points formats a length in points, e.g. 10 -> "10pt".
func Points(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "pt"
}

// FieldValue returns the expression that reads a field of the current row.
func FieldValue(field string) string {
	return fmt.Sprintf("=Fields!%s.Value", field)
}

// NewEmbeddedJSONSource wraps a serialized JSON array as an inline data source.
func NewEmbeddedJSONSource(name string, payload []byte) DataSource {
	return DataSource{
		Name: name,
		ConnectionProperties: ConnectionProperties{
			DataProvider:  ProviderJSONEmbed,
			ConnectString: "jsondata=" + string(payload),
		},
	}
}

func NewTable(name, dataSet string) *Table {
	return &Table{
		Type:        itemTypeTable,
		Name:        name,
		DataSetName: dataSet,
	}
}

func NewTextbox(name, value string, style Style) *Textbox {
	return &Textbox{
		Type:  itemTypeTextbox,
		Name:  name,
		Value: value,
		Style: style,
	}
}

func NewRow(height float64, cells ...TableCell) TableRow {
	return TableRow{
		Height:     Inches(height),
		TableCells: cells,
	}
}

func Cell(item ReportItem) TableCell {
	return TableCell{Item: item}
}

// SpanningCell returns a cell merged across cols columns.
func SpanningCell(item ReportItem, cols int) TableCell {
	return TableCell{
		ColSpan:       cols,
		AutoMergeMode: AutoMergeAlways,
		Item:          item,
	}
}

func NewInFilter(expression string, values []string) Filter {
	return Filter{
		FilterExpression: expression,
		FilterValues:     values,
		Operator:         OperatorIn,
	}
}

func NewSort(expression string, descending bool) SortExpression {
	direction := DirectionAscending
	if descending {
		direction = DirectionDescending
	}
	return SortExpression{Value: expression, Direction: direction}
}

// UniformPage returns a page with the same margin on every side.
func UniformPage(width, height, margin float64) Page {
	return Page{
		TopMargin:    Inches(margin),
		BottomMargin: Inches(margin),
		LeftMargin:   Inches(margin),
		RightMargin:  Inches(margin),
		PageWidth:    Inches(width),
		PageHeight:   Inches(height),
	}
}

// Tables returns the table regions placed directly in the report body.
func (r *Report) Tables() []*Table {
	var tables []*Table
	for _, item := range r.Body.ReportItems {
		if t, ok := item.(*Table); ok {
			tables = append(tables, t)
		}
	}
	return tables
}
