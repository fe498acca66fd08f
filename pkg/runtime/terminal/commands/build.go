package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/report-designer/pkg/models/rdl"
	"github.com/de-tools/report-designer/pkg/runtime/terminal/export"
	"github.com/de-tools/report-designer/pkg/services/report"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type BuildCmd struct {
	flags      requestFlags
	outPath    string
	configPath *string
	factory    EnvironmentFactory
	reporter   *export.Reporter
}

func NewBuildCmd(factory EnvironmentFactory, configPath *string, reporter *export.Reporter) *cobra.Command {
	bc := &BuildCmd{factory: factory, configPath: configPath, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a report definition and print it as JSON",
		RunE:  bc.run,
	}

	bc.flags.register(cmd)
	cmd.Flags().StringVar(&bc.outPath, "out", "", "Write the document to this file instead of stdout")

	return cmd
}

func (bc *BuildCmd) run(cmd *cobra.Command, args []string) error {
	doc, err := buildDocument(cmd.Context(), bc.factory, *bc.configPath, &bc.flags)
	if err != nil {
		return err
	}

	if bc.outPath == "" {
		return bc.reporter.WriteDocument(doc)
	}

	f, err := os.Create(bc.outPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := export.NewReporter(f).WriteDocument(doc); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report definition written to %s\n", bc.outPath)
	return nil
}

type DescribeCmd struct {
	flags      requestFlags
	configPath *string
	factory    EnvironmentFactory
	reporter   *export.Reporter
}

func NewDescribeCmd(factory EnvironmentFactory, configPath *string, reporter *export.Reporter) *cobra.Command {
	dc := &DescribeCmd{factory: factory, configPath: configPath, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Build a report definition and print a summary of its layout",
		RunE:  dc.run,
	}

	dc.flags.register(cmd)

	return cmd
}

func (dc *DescribeCmd) run(cmd *cobra.Command, args []string) error {
	doc, err := buildDocument(cmd.Context(), dc.factory, *dc.configPath, &dc.flags)
	if err != nil {
		return err
	}

	summary, err := report.Summarize(doc)
	if err != nil {
		return err
	}
	return dc.reporter.Handle(summary)
}

func buildDocument(
	ctx context.Context,
	factory EnvironmentFactory,
	configPath string,
	flags *requestFlags,
) (*rdl.Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	req, err := flags.request()
	if err != nil {
		return nil, err
	}

	env, err := factory(ctx, configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, env.buildTimeout())
	defer cancel()

	zerolog.Ctx(ctx).Debug().
		Str("dataset", string(req.Dataset)).
		Strs("fields", req.Fields).
		Msg("building report")

	doc, err := env.Builder.Build(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}
	return doc, nil
}
