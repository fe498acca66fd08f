package main

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/report-designer/pkg/runtime/terminal"
	"github.com/de-tools/report-designer/pkg/runtime/terminal/commands"
	"github.com/de-tools/report-designer/pkg/services/config"
	"github.com/de-tools/report-designer/pkg/services/report"
	"github.com/de-tools/report-designer/pkg/store/remote"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.InfoLevel).
		With().Timestamp().Logger()

	cli := terminal.NewCLI(terminal.Options{
		Environment: newEnvironment,
		Output:      os.Stdout,
		Logger:      &logger,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newEnvironment(_ context.Context, configPath string) (*commands.Environment, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	source := remote.NewSource(remote.Settings{
		URLs:    cfg.SourceURLs(),
		Timeout: cfg.Source.Timeout,
	})
	return &commands.Environment{
		Builder:      report.NewBuilder(source),
		BuildTimeout: cfg.Build.Timeout,
	}, nil
}
