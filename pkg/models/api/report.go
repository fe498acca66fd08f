package api

import (
	"encoding/json"
	"time"
)

// ReportRequest mirrors the report form's value object.
type ReportRequest struct {
	DataSetName         string   `json:"dataSetName"`
	Fields              []string `json:"fields"`
	Grouping            bool     `json:"grouping"`
	SortBy              string   `json:"sortBy"`
	IsDescendingSorting bool     `json:"isDescendingSorting"`
	FilterValues        []string `json:"filterValues"`
}

type ReportDocument struct {
	ID        string          `json:"id"`
	Session   string          `json:"session"`
	DataSet   string          `json:"dataSetName"`
	Mode      string          `json:"mode"`
	CreatedAt time.Time       `json:"created_at"`
	Report    json.RawMessage `json:"report,omitempty"`
}

type Error struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
