// Package api wires the temperature chart HTTP server.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/katiamach/temperature-chart/internal/config"
	"github.com/katiamach/temperature-chart/internal/logger"
	"github.com/katiamach/temperature-chart/internal/metrics"
	"github.com/katiamach/temperature-chart/internal/transport/rest/handler"
)

const shutdownTimeout = 30 * time.Second

// NewRouter registers the chart, data, API and operational routes.
func NewRouter(server *handler.TemperatureServer, dataDir string, m *metrics.Collector) *mux.Router {
	r := mux.NewRouter()
	r.Use(metricsMiddleware(m))

	r.HandleFunc("/", server.ChartPageHandler).Methods(http.MethodGet)
	r.HandleFunc("/chart.png", server.ChartImageHandler).Methods(http.MethodGet)
	r.PathPrefix("/data/").
		Handler(http.StripPrefix("/data/", http.FileServer(http.Dir(dataDir)))).
		Methods(http.MethodGet)

	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/averages", server.GetDailyAveragesHandler).Methods(http.MethodGet)

	r.HandleFunc("/healthz", handler.HealthHandler).Methods(http.MethodGet)
	r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)

	return r
}

// NewHandler wraps the router with CORS and access logging to accessLog.
func NewHandler(r *mux.Router, origin string, accessLog io.Writer) http.Handler {
	return handlers.CombinedLoggingHandler(accessLog, handlers.CORS(setupCorsOptions(origin)...)(r))
}

// RunAPI runs the temperature chart API until ctx is done, then shuts it down gracefully.
func RunAPI(ctx context.Context, cfg *config.Config, server *handler.TemperatureServer, m *metrics.Collector) error {
	if cfg.HTTP.Origin == "" {
		logger.Warn("No CORS origin configured, allowing any origin")
	}

	accessLog := logger.Default().Writer()
	defer accessLog.Close()

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      NewHandler(NewRouter(server, cfg.Data.Dir, m), cfg.HTTP.Origin, accessLog),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Starting temperature chart api at %s", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down temperature chart api")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}

	return nil
}
