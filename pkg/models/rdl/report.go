// Package rdl models the declarative report definition consumed by the report viewer.
// Property names follow the viewer's JSON schema.
package rdl

const (
	ProviderJSONEmbed = "JSONEMBED"

	OperatorIn = "In"

	DirectionAscending  = "Ascending"
	DirectionDescending = "Descending"

	PageBreakBetween = "Between"
	AutoMergeAlways  = "Always"

	TextAlignLeft  = "left"
	TextAlignRight = "right"

	itemTypeTable   = "table"
	itemTypeTextbox = "textbox"
)

type Report struct {
	DataSources []DataSource `json:"DataSources"`
	DataSets    []DataSet    `json:"DataSets"`
	Page        Page         `json:"Page"`
	Body        Body         `json:"Body"`
	PageHeader  *PageHeader  `json:"PageHeader,omitempty"`
	Width       string       `json:"Width"`
}

type DataSource struct {
	Name                 string               `json:"Name"`
	ConnectionProperties ConnectionProperties `json:"ConnectionProperties"`
}

type ConnectionProperties struct {
	DataProvider  string `json:"DataProvider"`
	ConnectString string `json:"ConnectString"`
}

type DataSet struct {
	Name   string  `json:"Name"`
	Query  Query   `json:"Query"`
	Fields []Field `json:"Fields"`
}

type Query struct {
	CommandText    string `json:"CommandText"`
	DataSourceName string `json:"DataSourceName"`
}

type Field struct {
	Name      string `json:"Name"`
	DataField string `json:"DataField"`
}

type Page struct {
	TopMargin    string `json:"TopMargin"`
	BottomMargin string `json:"BottomMargin"`
	LeftMargin   string `json:"LeftMargin"`
	RightMargin  string `json:"RightMargin"`
	PageWidth    string `json:"PageWidth"`
	PageHeight   string `json:"PageHeight"`
}

type Body struct {
	ReportItems []ReportItem `json:"ReportItems"`
}

type PageHeader struct {
	Height      string       `json:"Height"`
	ReportItems []ReportItem `json:"ReportItems"`
}

// ReportItem is a node that can be placed in a body, header or table cell.
type ReportItem interface {
	ItemType() string
}

type Table struct {
	Type         string        `json:"Type"`
	Name         string        `json:"Name"`
	DataSetName  string        `json:"DataSetName"`
	TableColumns []TableColumn `json:"TableColumns"`
	Filters      []Filter      `json:"Filters,omitempty"`
	Header       *TableHeader  `json:"Header,omitempty"`
	TableGroups  []TableGroup  `json:"TableGroups,omitempty"`
	Details      TableDetails  `json:"Details"`
}

func (t *Table) ItemType() string { return t.Type }

type TableColumn struct {
	Width string `json:"Width"`
}

type Filter struct {
	FilterExpression string   `json:"FilterExpression"`
	FilterValues     []string `json:"FilterValues"`
	Operator         string   `json:"Operator"`
}

type TableHeader struct {
	RepeatOnNewPage bool       `json:"RepeatOnNewPage"`
	TableRows       []TableRow `json:"TableRows"`
}

type TableGroup struct {
	Group  Group        `json:"Group"`
	Header *TableHeader `json:"Header,omitempty"`
}

type Group struct {
	GroupExpressions []string `json:"GroupExpressions"`
	PageBreak        string   `json:"PageBreak,omitempty"`
}

type TableDetails struct {
	SortExpressions []SortExpression `json:"SortExpressions,omitempty"`
	TableRows       []TableRow       `json:"TableRows"`
}

type SortExpression struct {
	Value     string `json:"Value"`
	Direction string `json:"Direction"`
}

type TableRow struct {
	Height     string      `json:"Height"`
	TableCells []TableCell `json:"TableCells"`
}

type TableCell struct {
	ColSpan       int        `json:"ColSpan,omitempty"`
	AutoMergeMode string     `json:"AutoMergeMode,omitempty"`
	Item          ReportItem `json:"Item"`
}

type Textbox struct {
	Type         string `json:"Type"`
	Name         string `json:"Name"`
	Value        string `json:"Value"`
	CanGrow      bool   `json:"CanGrow,omitempty"`
	KeepTogether bool   `json:"KeepTogether,omitempty"`
	Style        Style  `json:"Style"`
	Left         string `json:"Left,omitempty"`
	Top          string `json:"Top,omitempty"`
	Width        string `json:"Width,omitempty"`
	Height       string `json:"Height,omitempty"`
}

func (t *Textbox) ItemType() string { return t.Type }

type Style struct {
	BottomBorder  *Border `json:"BottomBorder,omitempty"`
	Color         string  `json:"Color,omitempty"`
	VerticalAlign string  `json:"VerticalAlign,omitempty"`
	FontWeight    string  `json:"FontWeight,omitempty"`
	PaddingLeft   string  `json:"PaddingLeft,omitempty"`
	FontSize      string  `json:"FontSize,omitempty"`
	TextAlign     string  `json:"TextAlign,omitempty"`
	Format        string  `json:"Format,omitempty"`
}

type Border struct {
	Width string `json:"Width"`
	Style string `json:"Style"`
	Color string `json:"Color"`
}
