package adapters

import (
	"slices"

	"github.com/de-tools/report-designer/pkg/models/api"
	"github.com/de-tools/report-designer/pkg/models/domain"
	"github.com/de-tools/report-designer/pkg/services/catalog"
	"github.com/de-tools/report-designer/pkg/services/selection"
)

func MapDatasetDomainToApi(ds domain.DatasetDescriptor) api.Dataset {
	fields := make([]api.Field, 0, len(ds.Fields))
	for _, f := range ds.Fields {
		fields = append(fields, api.Field{
			Name:  f.Name,
			Type:  string(f.Type),
			Width: f.Width,
		})
	}
	return api.Dataset{
		Name:   string(ds.Name),
		Title:  catalog.Title(ds.Name),
		Fields: fields,
	}
}

func MapSelectionDomainToApi(s domain.SelectionState) api.FormState {
	enabled := make(map[string]bool, len(s.Enabled))
	for k, v := range s.Enabled {
		enabled[string(k)] = v
	}
	return api.FormState{
		Values: MapDomainRequestToApi(domain.ReportRequest{
			Dataset:        s.Dataset,
			Fields:         s.Fields,
			Grouping:       s.Grouping,
			SortBy:         s.SortBy,
			SortDescending: s.SortDescending,
			FilterValues:   s.FilterValues,
		}),
		Enabled:               enabled,
		AvailableFields:       nonNil(s.AvailableFields),
		AvailableFilterValues: nonNil(s.AvailableFilterValues),
		GroupingFieldLabel:    selection.GroupingFieldLabel(s),
		FilterFieldLabel:      selection.FilterFieldLabel(s),
		Mode:                  string(s.Mode),
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return slices.Clone(values)
}
