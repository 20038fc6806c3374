// Package server implements the bleprint HTTP API.
//
// Routes:
//
//	GET    /healthz
//	POST   /v1/parse                       notation text -> graph document
//	POST   /v1/universal                   raw text -> editor document
//	POST   /v1/exec-tree                   editor document -> execution tree
//	POST   /v1/generate/{output}           graph document -> notation or picture
//	GET    /v1/graphs                      list saved graphs
//	POST   /v1/graphs                      save a graph
//	GET    /v1/graphs/{id}                 fetch a saved graph
//	DELETE /v1/graphs/{id}                 delete a saved graph
//	GET    /v1/graphs/{id}/render/{output} render a saved graph
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/USQVE/bleprint/pkg/config"
	"github.com/USQVE/bleprint/pkg/observability"
	"github.com/USQVE/bleprint/pkg/pipeline"
	"github.com/USQVE/bleprint/pkg/store"
)

const shutdownTimeout = 10 * time.Second

// Server serves the API over a pipeline runner and a graph store.
type Server struct {
	Runner   *pipeline.Runner
	Store    store.Store
	Logger   *log.Logger
	Config   config.Server
	Defaults pipeline.Options // parse policies applied when a request omits them
}

// New creates a server. A nil store gets an in-memory one.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger, cfg config.Server) *Server {
	if st == nil {
		st = store.NewMemory()
	}
	if logger == nil {
		logger = log.Default()
	}
	if cfg.MaxBodyBytes == 0 {
		cfg.MaxBodyBytes = config.Default().Server.MaxBodyBytes
	}
	return &Server{Runner: runner, Store: st, Logger: logger, Config: cfg}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	if s.Config.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.Config.RequestTimeout))
	}

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/parse", s.handleParse)
		r.Post("/universal", s.handleUniversal)
		r.Post("/exec-tree", s.handleExecTree)
		r.Post("/generate/{output}", s.handleGenerate)

		r.Route("/graphs", func(r chi.Router) {
			r.Get("/", s.handleListGraphs)
			r.Post("/", s.handleSaveGraph)
			r.Get("/{id}", s.handleGetGraph)
			r.Delete("/{id}", s.handleDeleteGraph)
			r.Get("/{id}/render/{output}", s.handleRenderGraph)
		})
	})
	return r
}

// logRequests logs each request and reports it to the HTTP hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		hooks.OnResponse(r.Context(), r.Method, route, ww.Status(), time.Since(start))

		s.Logger.Info("request",
			"method", r.Method,
			"route", route,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.Logger.Info("listening", "addr", s.Config.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
