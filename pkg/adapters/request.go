package adapters

import (
	"slices"

	"github.com/de-tools/report-designer/pkg/models/api"
	"github.com/de-tools/report-designer/pkg/models/domain"
)

func MapApiRequestToDomain(req api.ReportRequest) domain.ReportRequest {
	return domain.ReportRequest{
		Dataset:        domain.DatasetName(req.DataSetName),
		Fields:         slices.Clone(req.Fields),
		Grouping:       req.Grouping,
		SortBy:         req.SortBy,
		SortDescending: req.IsDescendingSorting,
		FilterValues:   slices.Clone(req.FilterValues),
	}
}

func MapDomainRequestToApi(req domain.ReportRequest) api.ReportRequest {
	fields := slices.Clone(req.Fields)
	if fields == nil {
		fields = []string{}
	}
	filterValues := slices.Clone(req.FilterValues)
	if filterValues == nil {
		filterValues = []string{}
	}
	return api.ReportRequest{
		DataSetName:         string(req.Dataset),
		Fields:              fields,
		Grouping:            req.Grouping,
		SortBy:              req.SortBy,
		IsDescendingSorting: req.SortDescending,
		FilterValues:        filterValues,
	}
}
