package main

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/de-tools/report-designer/pkg/server"
	"github.com/de-tools/report-designer/pkg/services/config"
	"github.com/de-tools/report-designer/pkg/services/report"
	"github.com/de-tools/report-designer/pkg/services/session"
	"github.com/de-tools/report-designer/pkg/store/duckdb"
	"github.com/de-tools/report-designer/pkg/store/duckdb/document"
	"github.com/de-tools/report-designer/pkg/store/remote"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for the report designer",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a YAML config file (defaults and REPORT_* env vars are used otherwise)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath: cfg.Store.DbPath,
	})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	documentStore, err := document.NewStore(db, document.Settings{
		KeepPerSession: cfg.Store.KeepPerSession,
	})
	if err != nil {
		return fmt.Errorf("failed to create document store: %w", err)
	}

	source := remote.NewSource(remote.Settings{
		URLs:    cfg.SourceURLs(),
		Timeout: cfg.Source.Timeout,
	})
	sessions := session.NewController(report.NewBuilder(source), documentStore, session.Settings{
		BuildTimeout: cfg.Build.Timeout,
	})

	for name, url := range cfg.SourceURLs() {
		logger.Info().Msgf("Dataset `%s` is served from `%s`", name, url)
	}

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	api := server.NewWebAPI(server.Config{
		Addr:            addr,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Sessions:  sessions,
			Documents: documentStore,
			Logger:    logger,
		},
	})

	return api.Start(ctx)
}
