// Package server provides the HTTP API around a document session.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"docqa/internal/usecase"
)

// Server exposes upload, ask and summary over HTTP. It serves a single
// session; interleaved uploads and questions are serialized by the session
// itself.
type Server struct {
	session  *usecase.Session
	ingestor *usecase.Ingestor
	addr     string
	logger   *zap.Logger
	server   *http.Server
}

// NewServer creates a server around the given session and ingestor.
func NewServer(session *usecase.Session, ingestor *usecase.Ingestor, addr string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		session:  session,
		ingestor: ingestor,
		addr:     addr,
		logger:   logger,
	}
}

// Router builds the chi router with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	r.Post("/api/v1/documents", s.handleUpload)
	r.Delete("/api/v1/documents", s.handleReset)
	r.Get("/api/v1/documents", s.handleListDocuments)
	r.Post("/api/v1/ask", s.handleAsk)
	r.Get("/api/v1/summary", s.handleSummary)
	r.Get("/health", s.handleHealth)

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    s.addr,
		Handler: s.Router(),
	}
	s.logger.Info("starting server", zap.String("addr", s.addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
