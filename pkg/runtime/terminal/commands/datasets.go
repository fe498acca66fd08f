package commands

import (
	"fmt"

	"github.com/de-tools/report-designer/pkg/services/catalog"
	"github.com/spf13/cobra"
)

func NewDatasetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List the datasets a report can be built from",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range catalog.Datasets() {
				ds, err := catalog.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d fields\n", ds.Name, catalog.Title(ds.Name), len(ds.Fields))
			}
			return nil
		},
	}
}
