package commands

import (
	"github.com/de-tools/report-designer/pkg/models/domain"
	"github.com/de-tools/report-designer/pkg/runtime/terminal/export"
	"github.com/de-tools/report-designer/pkg/services/selection"
	"github.com/spf13/cobra"
)

type FormCmd struct {
	dataset  string
	reporter *export.Reporter
}

func NewFormCmd(reporter *export.Reporter) *cobra.Command {
	fc := &FormCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "form",
		Short: "Show the fields and filter values offered for a dataset",
		RunE:  fc.run,
	}

	cmd.Flags().StringVar(&fc.dataset, "dataset", "", "Dataset name (Products or Customers)")
	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}

func (fc *FormCmd) run(cmd *cobra.Command, args []string) error {
	state, err := selection.OnDatasetChanged(selection.New(), domain.DatasetName(fc.dataset))
	if err != nil {
		return err
	}
	return fc.reporter.HandleForm(state, selection.GroupingFieldLabel(state), selection.FilterFieldLabel(state))
}
