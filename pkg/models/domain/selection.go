package domain

import "slices"

type Mode string

const (
	ModeDesign  Mode = "Design"
	ModePreview Mode = "Preview"
)

// FormControl identifies an input of the report form that depends on the dataset.
type FormControl string

const (
	ControlFields         FormControl = "fields"
	ControlGrouping       FormControl = "grouping"
	ControlSortBy         FormControl = "sortBy"
	ControlSortDescending FormControl = "isDescendingSorting"
	ControlFilterValues   FormControl = "filterValues"
)

// DependentControls lists the controls reset whenever the dataset changes.
var DependentControls = []FormControl{
	ControlFields,
	ControlGrouping,
	ControlSortBy,
	ControlSortDescending,
	ControlFilterValues,
}

// SelectionState is a snapshot of the report form. Values are never mutated in
// place; transitions return a new state.
type SelectionState struct {
	Dataset        DatasetName
	Fields         []string
	Grouping       bool
	SortBy         string
	SortDescending bool
	FilterValues   []string

	Enabled map[FormControl]bool

	// Options offered by the form for the current dataset.
	AvailableFields       []string
	AvailableFilterValues []string

	Mode Mode
}

func (s SelectionState) IsEnabled(c FormControl) bool {
	return s.Enabled[c]
}

func (s SelectionState) Clone() SelectionState {
	s.Fields = slices.Clone(s.Fields)
	s.FilterValues = slices.Clone(s.FilterValues)
	s.AvailableFields = slices.Clone(s.AvailableFields)
	s.AvailableFilterValues = slices.Clone(s.AvailableFilterValues)

	enabled := make(map[FormControl]bool, len(s.Enabled))
	for k, v := range s.Enabled {
		enabled[k] = v
	}
	s.Enabled = enabled
	return s
}
