// Package http provides the gin API server, the metrics server and shared middleware.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/secureid/internal/config"
	cryptoDomain "github.com/allisson/secureid/internal/crypto/domain"
	"github.com/allisson/secureid/internal/metrics"
	secureIDHTTP "github.com/allisson/secureid/internal/secureid/http"
)

// Server is the public API server.
type Server struct {
	server   *http.Server
	router   *gin.Engine
	keyRings cryptoDomain.KeyRingProvider
	logger   *slog.Logger
}

// NewServer creates a server whose readiness depends on keyRings serving a usable primary key.
func NewServer(
	keyRings cryptoDomain.KeyRingProvider,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		server:   newHTTPServer(host, port),
		keyRings: keyRings,
		logger:   logger,
	}
}

// SetupRouter registers middleware and routes. ctx bounds background work owned by middleware
// such as the rate limiter cleanup loop.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	secureIDHandler *secureIDHTTP.SecureIDHandler,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), metricsProvider.Namespace()))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	secureIDs := v1.Group("/secure-ids/:model")
	{
		secureIDs.POST("/tokens", secureIDHandler.GenerateHandler)

		resolveHandlers := []gin.HandlerFunc{}
		if cfg.RateLimitResolveEnabled {
			resolveHandlers = append(resolveHandlers, ResolveRateLimitMiddleware(
				ctx,
				cfg.RateLimitResolveRequestsPerSec,
				cfg.RateLimitResolveBurst,
				s.logger,
			))
		}
		resolveHandlers = append(resolveHandlers, secureIDHandler.ResolveHandler)
		secureIDs.POST("/resolve", resolveHandlers...)
	}

	s.router = router
	s.server.Handler = router
}

// GetHandler returns the configured handler, nil before SetupRouter.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start blocks serving requests until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	if s.server.Handler == nil {
		return fmt.Errorf("router not configured")
	}

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready only while the current key ring can seal new tokens.
func (s *Server) readinessHandler(c *gin.Context) {
	if !s.keyRingReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"key_ring": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"key_ring": "ok"},
	})
}

func (s *Server) keyRingReady() bool {
	if s.keyRings == nil {
		return false
	}
	ring := s.keyRings.KeyRing()
	if ring == nil {
		return false
	}
	_, err := ring.Primary()
	return err == nil
}
