// Package server provides the HTTP API for the document Q&A service.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"docqa/internal/config"
	"docqa/internal/domain"
	"docqa/internal/service"
)

// QA is the server-facing subset of the orchestration service.
type QA interface {
	Upload(ctx context.Context, filename string, content []byte) (service.UploadResult, error)
	Ask(ctx context.Context, question string) (domain.Answer, error)
}

// Server is the HTTP server exposing the upload and ask operations.
type Server struct {
	svc    QA
	config *config.ServerConfig
	logger *zap.Logger
	server *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(svc QA, cfg *config.ServerConfig, logger *zap.Logger) *Server {
	return &Server{svc: svc, config: cfg, logger: logger}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))
	r.Use(allowCORS)

	r.Post("/upload", s.handleUpload)
	r.Post("/ask", s.handleAsk)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// allowCORS answers preflight requests and marks responses as usable from
// any origin, since the interactive client may be served from elsewhere.
func allowCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
