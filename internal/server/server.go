package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/alansmodic/edit-ledger/internal/config"
	"github.com/alansmodic/edit-ledger/internal/models"
	"github.com/rs/zerolog"
)

// LedgerService is what the HTTP API needs from the ledger
type LedgerService interface {
	Compare(ctx context.Context, from, to models.Document) (*models.ComparisonResult, error)
	SaveRevision(ctx context.Context, rev models.Revision) (*models.Revision, bool, error)
	ListRevisions(ctx context.Context, postID int64, perPage int) ([]models.RevisionSummary, error)
	RecentRevisions(ctx context.Context, filter models.RevisionFilter) ([]models.RevisionSummary, int, error)
	DiffRevision(ctx context.Context, revisionID, compareTo int64) (*models.RevisionDiff, error)
}

// Server exposes the ledger over HTTP
type Server struct {
	cfg     config.ServerConfig
	service LedgerService
	logger  zerolog.Logger
	handler http.Handler
}

// NewServer builds the route table and middleware chain
func NewServer(cfg config.ServerConfig, service LedgerService, logger zerolog.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		service: service,
		logger:  logger.With().Str("component", "HTTPServer").Logger(),
	}

	var handler http.Handler = s.routes()
	handler = bodyLimitMiddleware(cfg.MaxBodyBytes, handler)
	handler = apiKeyMiddleware(cfg.APIKey, s.logger, handler)
	handler = accessLogMiddleware(s.logger, handler)
	handler = requestIDMiddleware(handler)
	s.handler = handler

	return s
}

// Handler returns the fully wrapped handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /compare", s.handleCompare)
	mux.HandleFunc("GET /posts/{post_id}/revisions", s.handleListRevisions)
	mux.HandleFunc("POST /posts/{post_id}/revisions", s.handleSaveRevision)
	mux.HandleFunc("GET /revisions/{revision_id}/diff", s.handleRevisionDiff)
	mux.HandleFunc("GET /recent", s.handleRecent)
	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listener)
}

// Serve is Run on an existing listener
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  secondsOr(s.cfg.ReadTimeoutSecs, config.DefaultServerReadTimeoutSecs),
		WriteTimeout: secondsOr(s.cfg.WriteTimeoutSecs, config.DefaultServerWriteTimeoutSecs),
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", listener.Addr().String()).Msg("HTTP API listening")
		errCh <- httpServer.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info().Msg("Shutting down HTTP API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func secondsOr(secs, fallback int) time.Duration {
	if secs <= 0 {
		secs = fallback
	}
	return time.Duration(secs) * time.Second
}
