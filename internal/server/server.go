// Package server exposes the two synchronization operations over a small
// HTTP JSON API. A failed synchronization is still a successful HTTP
// exchange: the result envelope carries the errors, and only malformed
// requests produce non-200 statuses.
package server

import (
	"context"
	"net/http"
	"time"

	"rulesync/internal/log"
	"rulesync/internal/service"
)

// Server is the HTTP API server for the rule synchronization operations.
type Server struct {
	handlers   *Handlers
	httpServer *http.Server
}

// NewServer creates a Server bound to the given listen address.
func NewServer(listen string, svc *service.Service) *Server {
	handlers := NewHandlers(svc)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", handlers.HandleHealth)
	mux.HandleFunc("/loadGlobalRules", handlers.HandleLoadGlobalRules)
	mux.HandleFunc("/saveGlobalRules", handlers.HandleSaveGlobalRules)

	httpServer := &http.Server{
		Addr:         listen,
		Handler:      loggingMiddleware(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		handlers:   handlers,
		httpServer: httpServer,
	}
}

// Start starts the HTTP server. It blocks until the server is shut down.
func (s *Server) Start() error {
	log.Info("HTTP API server listening on %s", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info("Shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// loggingMiddleware logs one line per handled request.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.LogWithFields(
			log.F("method", r.Method),
			log.F("path", r.URL.Path),
			log.F("duration", time.Since(start).String()),
		).Debug("Handled request")
	})
}
