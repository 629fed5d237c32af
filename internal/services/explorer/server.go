// Package explorer hosts the browser-facing query explorer service.
package explorer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/louisbranch/explorer/internal/platform/timeouts"
	"github.com/louisbranch/explorer/internal/services/explorer/platform/httpx"
	"github.com/louisbranch/explorer/internal/services/explorer/platform/observability"
)

// Config defines startup inputs for the explorer service.
type Config struct {
	HTTPAddr         string
	Persistence      bool
	CodeSampleHidden bool
	// Dispatcher receives validated run/save/delete requests. Requests are
	// logged and accepted when nil.
	Dispatcher Dispatcher
	Logger     *log.Logger
}

// Server hosts the explorer HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// NewHandler builds the root handler with its middleware chain.
func NewHandler(cfg Config) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	dispatcher := cfg.Dispatcher
	if dispatcher == nil {
		dispatcher = logDispatcher{logger: logger}
	}
	h := &handlers{
		persistence:      cfg.Persistence,
		codeSampleHidden: cfg.CodeSampleHidden,
		dispatcher:       dispatcher,
		logger:           logger,
	}
	mux := http.NewServeMux()
	registerRoutes(mux, h)
	return httpx.Chain(mux,
		httpx.RecoverPanic(logger),
		httpx.RequestID(),
		observability.RequestLogger(logger),
	)
}

// NewServer validates config and constructs an explorer server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           NewHandler(cfg),
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.httpAddr
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("explorer server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("explorer listening on %s", s.httpAddr)
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown explorer http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve explorer http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
