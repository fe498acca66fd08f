package api

type Dataset struct {
	Name   string  `json:"name"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

type Field struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Width int    `json:"len"`
}

// FormState is the report form after a dataset change: default values, control
// enablement and the options offered for the dataset.
type FormState struct {
	Values                ReportRequest   `json:"values"`
	Enabled               map[string]bool `json:"enabled"`
	AvailableFields       []string        `json:"availableFields"`
	AvailableFilterValues []string        `json:"availableFilterValues"`
	GroupingFieldLabel    string          `json:"groupingField"`
	FilterFieldLabel      string          `json:"filterField"`
	Mode                  string          `json:"mode"`
}
