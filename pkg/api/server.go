// Package api is the REST API over the record bank.
//
// Every route under /api/v1 requires the X-API-Key header. /metrics is left
// open for scraping.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ssargent/pkcore/pkg/logging"
	"github.com/ssargent/pkcore/pkg/personal"
	"github.com/ssargent/pkcore/pkg/transfer"
)

const (
	defaultMaxUploadSize = 1 << 20
	statsInterval        = 30 * time.Second
	shutdownTimeout      = 5 * time.Second
)

// Deps are the collaborators a Server is built from. Zero fields fall back
// to defaults.
type Deps struct {
	Converter *transfer.Converter
	Tables    personal.Provider
	Logger    *slog.Logger
	Metrics   *Metrics
}

// Server holds the API server state
type Server struct {
	bank    Bank
	conv    *transfer.Converter
	tables  personal.Provider
	config  ServerConfig
	metrics *Metrics
	logger  *slog.Logger
}

// NewServer creates a new API server
func NewServer(bank Bank, deps Deps, config ServerConfig) *Server {
	if deps.Tables == nil {
		deps.Tables = personal.Default()
	}
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}
	if deps.Converter == nil {
		deps.Converter = transfer.NewConverter(deps.Tables, transfer.WithLogger(deps.Logger))
	}
	if deps.Metrics == nil {
		deps.Metrics = NewMetrics()
	}
	if config.MaxUploadSize <= 0 {
		config.MaxUploadSize = defaultMaxUploadSize
	}
	return &Server{
		bank:    bank,
		conv:    deps.Converter,
		tables:  deps.Tables,
		config:  config,
		metrics: deps.Metrics,
		logger:  deps.Logger,
	}
}

// Routes builds the route tree
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{generationHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Handle("/metrics", s.metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.metrics.InstrumentAuthMiddleware(apiKeyMiddleware(s.config.APIKey)))

		r.Get("/health", s.metrics.InstrumentHandler("GET", "/api/v1/health", s.handleHealth))

		r.Get("/records", s.metrics.InstrumentHandler("GET", "/api/v1/records", s.handleListRecords))
		r.Post("/records", s.metrics.InstrumentHandler("POST", "/api/v1/records", s.handlePutRecord))
		r.Get("/records/{id}", s.metrics.InstrumentHandler("GET", "/api/v1/records/{id}", s.handleGetRecord))
		r.Delete("/records/{id}", s.metrics.InstrumentHandler("DELETE", "/api/v1/records/{id}", s.handleDeleteRecord))
		r.Post("/records/{id}/convert", s.metrics.InstrumentHandler("POST", "/api/v1/records/{id}/convert", s.handleConvertRecord))
	})

	return r
}

// StartServer serves the bank until ctx is cancelled, then shuts down
// gracefully
func StartServer(ctx context.Context, bank Bank, deps Deps, config ServerConfig) error {
	s := NewServer(bank, deps, config)

	srv := &http.Server{
		Addr:              net.JoinHostPort(config.Bind, strconv.Itoa(config.Port)),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.updateBankStats()
	go s.startMetricsUpdater(ctx)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("pkcore API listening", "addr", srv.Addr, "metrics", "/metrics")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// startMetricsUpdater periodically refreshes the bank gauge
func (s *Server) startMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.updateBankStats()
		}
	}
}

func (s *Server) updateBankStats() {
	n, err := s.bank.Count()
	if err != nil {
		s.logger.Warn("failed to count records", "error", err)
		return
	}
	s.metrics.UpdateBankStats(n)
}
