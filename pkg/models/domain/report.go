package domain

// LayoutSummary is a human-readable digest of a built report document.
type LayoutSummary struct {
	Title    string
	Dataset  DatasetName
	Width    string
	Records  int
	Sections []SummarySection
}

// SummarySection groups related details, e.g. the table columns.
type SummarySection struct {
	Title   string
	Summary map[string]interface{}
	Details []SummaryDetail
}

type SummaryDetail struct {
	Name        string
	Value       interface{}
	Unit        string
	Description string
}
