package domain

import "slices"

// ReportRequest is the frozen form selection a report document is built from.
type ReportRequest struct {
	Dataset        DatasetName
	Fields         []string
	Grouping       bool
	SortBy         string
	SortDescending bool
	FilterValues   []string
}

// Clone returns a copy that shares no slices with r.
func (r ReportRequest) Clone() ReportRequest {
	r.Fields = slices.Clone(r.Fields)
	r.FilterValues = slices.Clone(r.FilterValues)
	return r
}
