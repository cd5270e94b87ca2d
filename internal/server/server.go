package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"gitlab.com/ingwane/api/enquiry-service/internal/config"
	"gitlab.com/ingwane/api/enquiry-service/internal/usecase"
)

// Server is the public HTTP server exposing the enquiry API and,
// optionally, the static website files.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
	cfg        *config.Config
	svc        *usecase.EnquiryService
	limiter    *RateLimiter
	logger     *zap.Logger
}

// NewServer creates the HTTP server with all routes and middleware wired.
func NewServer(cfg *config.Config, svc *usecase.EnquiryService, logger *zap.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		svc:     svc,
		limiter: NewRateLimiter(cfg.RateLimit.Window, cfg.RateLimit.MaxRequests),
		logger:  logger.Named("http"),
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/enquiries/submit", s.handleSubmit)
	mux.HandleFunc("GET /api/enquiries", s.handleList)
	mux.HandleFunc("GET /api/enquiries/stats", s.handleStats)
	mux.HandleFunc("GET /api/enquiries/{id}", s.handleGet)
	mux.HandleFunc("PATCH /api/enquiries/{id}/status", s.handleUpdateStatus)
	mux.HandleFunc("GET /api/health", s.handleHealth)

	// Unmatched /api/ paths get a JSON 404 instead of the file server.
	mux.HandleFunc("/api/", s.handleNotFound)

	if cfg.Metrics.Enabled {
		s.logger.Info("Registering /metrics endpoint")
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	if cfg.Server.StaticDir != "" {
		s.logger.Info("Serving static files", zap.String("dir", cfg.Server.StaticDir))
		mux.Handle("GET /", http.FileServer(http.Dir(cfg.Server.StaticDir)))
	} else {
		mux.HandleFunc("/", s.handleNotFound)
	}

	// Middleware, applied innermost first so the request log wraps everything.
	var handler http.Handler = mux
	handler = s.maxBodyMiddleware(handler)
	handler = s.rateLimitMiddleware(handler)
	handler = s.corsMiddleware(handler)
	handler = s.securityHeadersMiddleware(handler)
	handler = s.recoveryMiddleware(handler)
	handler = s.requestLogMiddleware(handler)
	s.handler = handler

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: handler,
	}

	return s
}

// Handler exposes the fully wired handler chain. Used by tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins the HTTP server
func (s *Server) Start() {
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()
}

// Stop gracefully shuts down the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping HTTP server")
	return s.httpServer.Shutdown(ctx)
}
