package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/de-tools/report-designer/pkg/handlers/report"
	reportmiddleware "github.com/de-tools/report-designer/pkg/server/middleware"
	"github.com/de-tools/report-designer/pkg/services/session"
	"github.com/de-tools/report-designer/pkg/store/duckdb/document"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Sessions  session.Controller
	Documents document.Store
	Logger    zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func ConfigureRouter(config Config) *chi.Mux {
	reportHandler := handlers.NewReportRouter(config.Dependencies.Sessions, config.Dependencies.Documents)

	router := chi.NewRouter()

	router.Use(reportmiddleware.Logger(&config.Dependencies.Logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/datasets", reportHandler.ListDatasets)
		r.Get("/datasets/{dataset}/form", reportHandler.GetForm)
		r.Post("/reports", reportHandler.SubmitReport)
		r.Get("/reports/{id}", reportHandler.GetReport)
		r.Get("/reports/{id}/definition", reportHandler.GetReportDefinition)
		r.Get("/reports/{id}/form", reportHandler.GetReportForm)
		r.Get("/sessions/{session}/report", reportHandler.GetLatestReport)
		r.Delete("/sessions/{session}/build", reportHandler.CancelBuild)
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	logger := config.Dependencies.Logger

	return &WebAPI{
		logger:          &logger,
		shutdownTimeout: timeout,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: ConfigureRouter(config),
		},
	}
}

// Start serves until ctx is done or the process receives SIGINT/SIGTERM.
func (w *WebAPI) Start(ctx context.Context) error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
	case <-shutdown:
	}

	w.logger.Info().Msg("shutdown initiated")

	// Give outstanding requests a deadline for completion.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
	defer cancel()

	err := w.server.Shutdown(shutdownCtx)
	if err != nil {
		w.logger.Error().Err(err).Msg("graceful shutdown failed")
		err = w.server.Close()
	}
	return err
}
