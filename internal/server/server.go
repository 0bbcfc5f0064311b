package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nekosui/petbot/internal/handler"
	"github.com/nekosui/petbot/internal/metrics"
	"github.com/nekosui/petbot/internal/petgame"
)

// Server hosts the economy command API.
type Server struct {
	httpServer *http.Server
}

// NewServer builds the router and wires the command endpoints.
func NewServer(port int, apiKey, version string, svc petgame.Service) *Server {
	r := chi.NewRouter()

	// Middleware executes in order defined (outermost to innermost)
	r.Use(requestIDMiddleware)
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health and ops routes (unversioned, unauthenticated)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz())
	r.Get("/version", handler.HandleVersion(version))
	r.Handle("/metrics", promhttp.Handler())

	petHandler := handler.NewPetHandler(svc)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(authMiddleware(apiKey))

		r.Route("/pet", func(r chi.Router) {
			r.Post("/checkin", petHandler.CheckIn)
			r.Post("/feed", petHandler.Feed)
			r.Post("/divine", petHandler.Divine)
			r.Post("/fortune", petHandler.Fortune)
			r.Post("/extra-checkin", petHandler.ExtraCheckIn)
			r.Post("/drop", petHandler.Drop)
			r.Get("/balance", petHandler.Balance)
			r.Get("/collection", petHandler.Progress)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
