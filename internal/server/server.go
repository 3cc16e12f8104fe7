// Package server serves the dashboard over HTTP. Every request to / reloads both source
// tables and renders a fresh page, so handlers share no mutable report state.
package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/naka-gawa/github-dashboard/internal/chart"
	"github.com/naka-gawa/github-dashboard/internal/loader"
	"github.com/naka-gawa/github-dashboard/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

// Options names the source files and the page title.
type Options struct {
	TableA string
	TableB string
	Title  string
}

type metrics struct {
	reports *prometheus.CounterVec
	panels  *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dashboard",
			Name:      "reports_total",
			Help:      "Reports requested, by outcome.",
		}, []string{"status"}),
		panels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dashboard",
			Name:      "panels_total",
			Help:      "Panels produced, by outcome.",
		}, []string{"status"}),
	}
	reg.MustRegister(m.reports, m.panels)
	return m
}

// Server renders the dashboard on request.
type Server struct {
	opts     Options
	loader   *loader.Loader
	panels   []usecase.Panel
	logger   *zap.Logger
	registry *prometheus.Registry
	metrics  *metrics
	router   chi.Router
}

// New creates a Server with its own metrics registry.
func New(opts Options, panels []usecase.Panel, logger *zap.Logger) *Server {
	reg := prometheus.NewRegistry()
	s := &Server{
		opts:     opts,
		loader:   loader.NewLoader(logger),
		panels:   panels,
		logger:   logger,
		registry: reg,
		metrics:  newMetrics(reg),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleReport)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server: listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("server: shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type healthResponse struct {
	Status string `json:"status"`
	TableA string `json:"table_a"`
	TableB string `json:"table_b"`
	Panels int    `json:"panels"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, healthResponse{
		Status: "ok",
		TableA: s.opts.TableA,
		TableB: s.opts.TableB,
		Panels: len(s.panels),
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	runID := uuid.NewString()
	logger := s.logger.With(zap.String("run_id", runID), zap.String("request_id", middleware.GetReqID(r.Context())))

	tables, err := usecase.LoadTables(s.loader, s.opts.TableA, s.opts.TableB)
	if err != nil {
		logger.Error("server: failed to load tables", zap.Error(err))
		s.metrics.reports.WithLabelValues("error").Inc()
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errorResponse{Error: err.Error()})
		return
	}

	var buf bytes.Buffer
	sink := chart.NewHTMLSink(&buf, chart.Page{Title: s.opts.Title, RunID: runID, GeneratedAt: time.Now()}, logger)
	summary, err := usecase.NewReport(s.panels, sink, logger).Run(tables)
	if err == nil {
		err = sink.Close()
	}
	if err != nil {
		logger.Error("server: failed to render report", zap.Error(err))
		s.metrics.reports.WithLabelValues("error").Inc()
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errorResponse{Error: err.Error()})
		return
	}

	s.metrics.reports.WithLabelValues("ok").Inc()
	s.metrics.panels.WithLabelValues("rendered").Add(float64(summary.Rendered))
	s.metrics.panels.WithLabelValues("failed").Add(float64(summary.Failed))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Warn("server: failed to write response", zap.Error(err))
	}
}
