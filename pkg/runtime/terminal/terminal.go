package terminal

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/report-designer/pkg/runtime/terminal/commands"
	"github.com/de-tools/report-designer/pkg/runtime/terminal/export"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	factory    commands.EnvironmentFactory
	reporter   *export.Reporter
	logger     zerolog.Logger
	configPath string
	rootCmd    *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Environment commands.EnvironmentFactory
	Output      io.Writer
	Logger      *zerolog.Logger
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	cli := &CLI{
		factory:  opts.Environment,
		reporter: export.NewReporter(opts.Output),
		logger:   logger,
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.ExecuteContext(context.Background())
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(cli.logger.WithContext(ctx))
}

// SetArgs overrides os.Args, mostly for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "report-designer",
		Short:         "Build report definitions from the demo datasets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&cli.configPath, "config", "c", "", "Path to a YAML config file")

	cmd.AddCommand(commands.NewDatasetsCmd())
	cmd.AddCommand(commands.NewFormCmd(cli.reporter))
	cmd.AddCommand(commands.NewBuildCmd(cli.factory, &cli.configPath, cli.reporter))
	cmd.AddCommand(commands.NewDescribeCmd(cli.factory, &cli.configPath, cli.reporter))

	return cmd
}
