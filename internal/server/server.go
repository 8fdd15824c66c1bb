// Package server exposes the matching engine over an HTTP API.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/vidyasetu/scholar-cli/internal/advisor"
	"github.com/vidyasetu/scholar-cli/internal/config"
	"github.com/vidyasetu/scholar-cli/internal/stacking"
	"github.com/vidyasetu/scholar-cli/internal/store"
)

// Server wires the store, optimizer and advisor behind the API routes.
type Server struct {
	store     store.Store
	advisor   *advisor.Advisor
	optimizer *stacking.Optimizer
	cfg       *config.Config
	now       func() time.Time
}

// New creates a Server. The advisor may have a nil LLM client; enrichment
// then falls back to canned guidance.
func New(st store.Store, adv *advisor.Advisor, cfg *config.Config) *Server {
	return &Server{
		store:     st,
		advisor:   adv,
		optimizer: stacking.NewOptimizer(nil, cfg.Stacking),
		cfg:       cfg,
		now:       time.Now,
	}
}

// Router builds the chi router with the API routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	origins := s.cfg.Server.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/analytics", s.handleAnalytics)
		r.Get("/stacking", s.handleStacking)
		r.Post("/stacking/check", s.handleStackingCheck)
		r.Post("/scholarships/why-not-me", s.handleWhyNotMe)
		r.Get("/intelligence", s.handleIntelligence)
	})
	return r
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		zap.L().Info("server: shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	zap.L().Info("server: listening", zap.Int("port", s.cfg.Server.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server: listen")
	}
	return nil
}

// requestLogger logs one line per request through the global zap logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func respond(w http.ResponseWriter, status int, payload map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("server: encode response", zap.Error(err))
	}
}

func ok(w http.ResponseWriter, payload map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	respond(w, http.StatusOK, body)
}

func fail(w http.ResponseWriter, status int, msg string) {
	respond(w, status, map[string]any{"success": false, "error": msg})
}
