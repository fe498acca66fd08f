package commands

import (
	"fmt"

	"github.com/de-tools/report-designer/pkg/models/domain"
	"github.com/de-tools/report-designer/pkg/services/config"
	"github.com/de-tools/report-designer/pkg/services/selection"
	"github.com/spf13/cobra"
)

const defaultPresetsPath = "presets.ini"

// requestFlags collects a report request either from individual flags or from
// a named section of a presets file.
type requestFlags struct {
	dataset      string
	fields       []string
	grouping     bool
	sortBy       string
	descending   bool
	filterValues []string
	preset       string
	presetsPath  string
}

func (rf *requestFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&rf.dataset, "dataset", "", "Dataset name (Products or Customers)")
	cmd.Flags().StringSliceVar(&rf.fields, "fields", nil, "Comma separated list of fields to show")
	cmd.Flags().BoolVar(&rf.grouping, "grouping", false, "Group rows by category or country")
	cmd.Flags().StringVar(&rf.sortBy, "sort-by", "", "Field to sort rows by")
	cmd.Flags().BoolVar(&rf.descending, "descending", false, "Sort in descending order")
	cmd.Flags().StringSliceVar(&rf.filterValues, "filter", nil, "Comma separated list of categories or countries to keep")
	cmd.Flags().StringVar(&rf.preset, "preset", "", "Name of a saved request in the presets file")
	cmd.Flags().StringVar(&rf.presetsPath, "presets", defaultPresetsPath, "Path to the presets file")

	cmd.MarkFlagsMutuallyExclusive("preset", "dataset")
}

// request validates the collected values through the same transitions the
// form applies and returns the submitted request.
func (rf *requestFlags) request() (domain.ReportRequest, error) {
	req := domain.ReportRequest{
		Dataset:        domain.DatasetName(rf.dataset),
		Fields:         rf.fields,
		Grouping:       rf.grouping,
		SortBy:         rf.sortBy,
		SortDescending: rf.descending,
		FilterValues:   rf.filterValues,
	}

	if rf.preset != "" {
		presets, err := config.LoadPresets(rf.presetsPath)
		if err != nil {
			return domain.ReportRequest{}, err
		}
		req, err = presets.Request(rf.preset)
		if err != nil {
			return domain.ReportRequest{}, err
		}
	}

	state, err := selection.Replay(req)
	if err != nil {
		return domain.ReportRequest{}, fmt.Errorf("invalid report request: %w", err)
	}
	submitted, _, err := selection.Submit(state)
	if err != nil {
		return domain.ReportRequest{}, fmt.Errorf("invalid report request: %w", err)
	}
	return submitted, nil
}
