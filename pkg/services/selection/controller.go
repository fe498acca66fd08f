// Package selection implements the report form as explicit state transitions.
// Every function takes the prior state and returns a new one; inputs are never
// modified.
package selection

import (
	"fmt"
	"slices"

	"github.com/de-tools/report-designer/pkg/models/domain"
	"github.com/de-tools/report-designer/pkg/services/catalog"
)

const (
	placeholderGroupingLabel = "..."
	placeholderFilterLabel   = "Values"
)

// New returns the form as first shown: no dataset, dependent controls disabled.
func New() domain.SelectionState {
	enabled := make(map[domain.FormControl]bool, len(domain.DependentControls))
	for _, c := range domain.DependentControls {
		enabled[c] = false
	}
	return domain.SelectionState{
		Fields:       []string{},
		FilterValues: []string{},
		Enabled:      enabled,
		Mode:         domain.ModeDesign,
	}
}

// OnDatasetChanged resets every dependent control to its default, enables it and
// recomputes the field and filter options offered for the dataset.
func OnDatasetChanged(prev domain.SelectionState, name domain.DatasetName) (domain.SelectionState, error) {
	ds, err := catalog.Lookup(name)
	if err != nil {
		return prev, &domain.ValidationError{Field: "dataSetName", Reason: err.Error()}
	}

	next := prev.Clone()
	next.Dataset = ds.Name
	next.Fields = []string{}
	next.Grouping = false
	next.SortBy = ""
	next.SortDescending = false
	next.FilterValues = []string{}
	for _, c := range domain.DependentControls {
		next.Enabled[c] = true
	}
	next.AvailableFields = ds.FieldNames()
	next.AvailableFilterValues = catalog.FilterValues(ds.Name)

	return next, nil
}

func WithFields(prev domain.SelectionState, fields []string) (domain.SelectionState, error) {
	if err := ensureEnabled(prev, domain.ControlFields); err != nil {
		return prev, err
	}
	if err := ensureOffered(domain.ControlFields, fields, prev.AvailableFields); err != nil {
		return prev, err
	}

	next := prev.Clone()
	next.Fields = slices.Clone(fields)
	return next, nil
}

func WithGrouping(prev domain.SelectionState, grouping bool) (domain.SelectionState, error) {
	if err := ensureEnabled(prev, domain.ControlGrouping); err != nil {
		return prev, err
	}

	next := prev.Clone()
	next.Grouping = grouping
	return next, nil
}

// WithSort sets the sort field and direction. An empty field clears sorting.
func WithSort(prev domain.SelectionState, field string, descending bool) (domain.SelectionState, error) {
	if err := ensureEnabled(prev, domain.ControlSortBy); err != nil {
		return prev, err
	}
	if err := ensureEnabled(prev, domain.ControlSortDescending); err != nil {
		return prev, err
	}
	if field != "" {
		if err := ensureOffered(domain.ControlSortBy, []string{field}, prev.AvailableFields); err != nil {
			return prev, err
		}
	}

	next := prev.Clone()
	next.SortBy = field
	next.SortDescending = descending
	return next, nil
}

func WithFilterValues(prev domain.SelectionState, values []string) (domain.SelectionState, error) {
	if err := ensureEnabled(prev, domain.ControlFilterValues); err != nil {
		return prev, err
	}
	if err := ensureOffered(domain.ControlFilterValues, values, prev.AvailableFilterValues); err != nil {
		return prev, err
	}

	next := prev.Clone()
	next.FilterValues = slices.Clone(values)
	return next, nil
}

// Submit freezes the current selection into a request and switches to preview.
// A dataset and at least one field are required.
func Submit(prev domain.SelectionState) (domain.ReportRequest, domain.SelectionState, error) {
	if prev.Dataset == "" {
		return domain.ReportRequest{}, prev, &domain.ValidationError{Field: "dataSetName", Reason: "required"}
	}
	if len(prev.Fields) == 0 {
		return domain.ReportRequest{}, prev, &domain.ValidationError{Field: string(domain.ControlFields), Reason: "required"}
	}

	req := domain.ReportRequest{
		Dataset:        prev.Dataset,
		Fields:         slices.Clone(prev.Fields),
		Grouping:       prev.Grouping,
		SortBy:         prev.SortBy,
		SortDescending: prev.SortDescending,
		FilterValues:   slices.Clone(prev.FilterValues),
	}

	next := prev.Clone()
	next.Mode = domain.ModePreview
	return req, next, nil
}

// OpenDesigner returns from preview to the form, keeping every selection.
func OpenDesigner(prev domain.SelectionState) domain.SelectionState {
	next := prev.Clone()
	next.Mode = domain.ModeDesign
	return next
}

// Replay drives a fresh form through the transitions a user would perform to
// arrive at req, validating it on the way.
func Replay(req domain.ReportRequest) (domain.SelectionState, error) {
	state, err := OnDatasetChanged(New(), req.Dataset)
	if err != nil {
		return state, err
	}
	if state, err = WithFields(state, req.Fields); err != nil {
		return state, err
	}
	if state, err = WithGrouping(state, req.Grouping); err != nil {
		return state, err
	}
	if state, err = WithSort(state, req.SortBy, req.SortDescending); err != nil {
		return state, err
	}
	return WithFilterValues(state, req.FilterValues)
}

func GroupingFieldLabel(s domain.SelectionState) string {
	switch s.Dataset {
	case "":
		return placeholderGroupingLabel
	case domain.DatasetProducts:
		return "Product Category"
	default:
		return "Country"
	}
}

func FilterFieldLabel(s domain.SelectionState) string {
	switch s.Dataset {
	case "":
		return placeholderFilterLabel
	case domain.DatasetProducts:
		return "Product Categories"
	default:
		return "Countries"
	}
}

func ensureEnabled(s domain.SelectionState, c domain.FormControl) error {
	if !s.IsEnabled(c) {
		return &domain.ValidationError{Field: string(c), Reason: "control is disabled until a dataset is chosen"}
	}
	return nil
}

func ensureOffered(c domain.FormControl, values, offered []string) error {
	for _, v := range values {
		if !slices.Contains(offered, v) {
			return &domain.ValidationError{Field: string(c), Reason: fmt.Sprintf("%q is not offered", v)}
		}
	}
	return nil
}
