// Package http provides HTTP server implementation and request routing.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	articleHTTP "github.com/allisson/guardpost/internal/article/http"
	authDomain "github.com/allisson/guardpost/internal/auth/domain"
	authHTTP "github.com/allisson/guardpost/internal/auth/http"
	"github.com/allisson/guardpost/internal/auth/scheme"
	"github.com/allisson/guardpost/internal/config"
	"github.com/allisson/guardpost/internal/metrics"
)

// Operation names checked by the authorization policy per route group.
const (
	OperationArticlesRead    = "articles:read"
	OperationArticlesWrite   = "articles:write"
	OperationIdentitiesRead  = "identities:read"
	OperationIdentitiesWrite = "identities:write"
)

// Server represents the API HTTP server.
type Server struct {
	db     *sql.DB
	logger *slog.Logger
	router *gin.Engine
	server *http.Server
}

// NewServer creates a new HTTP server. Call SetupRouter before Start to
// register routes; the db is used by the readiness endpoint.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the Gin router with all middleware and routes.
//
// Route layout:
//   - GET  /health, /ready               - no authentication
//   - POST /v1/login                     - per-IP rate limit only
//   - /v1/articles                       - authenticated, articles:read / articles:write
//   - /v1/identities                     - authenticated, identities:read / identities:write
func (s *Server) SetupRouter(
	cfg *config.Config,
	guard *scheme.Guard,
	policy authDomain.Policy,
	loginHandler *authHTTP.LoginHandler,
	identityHandler *authHTTP.IdentityHandler,
	articleHandler *articleHTTP.ArticleHandler,
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
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	// Login is unauthenticated; it is protected by a per-IP rate limit
	// instead to slow credential stuffing.
	login := v1.Group("/login")
	if cfg.RateLimitLoginEnabled {
		login.Use(authHTTP.LoginRateLimitMiddleware(
			cfg.RateLimitLoginRequestsPerSec,
			cfg.RateLimitLoginBurst,
			s.logger,
		))
	}
	login.POST("", loginHandler.LoginHandler)

	// Everything else requires authentication through the scheme guard.
	protected := v1.Group("")
	protected.Use(authHTTP.AuthenticationMiddleware(guard, s.logger))
	if cfg.RateLimitEnabled {
		protected.Use(authHTTP.RateLimitMiddleware(
			cfg.RateLimitRequestsPerSec,
			cfg.RateLimitBurst,
			s.logger,
		))
	}

	articlesRead := authHTTP.AuthorizationMiddleware(policy, OperationArticlesRead, guard.Challenge(), s.logger)
	articlesWrite := authHTTP.AuthorizationMiddleware(policy, OperationArticlesWrite, guard.Challenge(), s.logger)

	articles := protected.Group("/articles")
	articles.GET("", articlesRead, articleHandler.ListHandler)
	articles.GET("/:id", articlesRead, articleHandler.GetHandler)
	articles.POST("", articlesWrite, articleHandler.CreateHandler)
	articles.PUT("/:id", articlesWrite, articleHandler.UpdateHandler)
	articles.DELETE("/:id", articlesWrite, articleHandler.DeleteHandler)

	identitiesRead := authHTTP.AuthorizationMiddleware(policy, OperationIdentitiesRead, guard.Challenge(), s.logger)
	identitiesWrite := authHTTP.AuthorizationMiddleware(policy, OperationIdentitiesWrite, guard.Challenge(), s.logger)

	identities := protected.Group("/identities")
	identities.GET("", identitiesRead, identityHandler.ListHandler)
	identities.GET("/:id", identitiesRead, identityHandler.GetHandler)
	identities.POST("", identitiesWrite, identityHandler.CreateHandler)
	identities.PUT("/:id", identitiesWrite, identityHandler.UpdateHandler)
	identities.DELETE("/:id", identitiesWrite, identityHandler.DeleteHandler)

	s.router = router
}

// Router returns the configured router for testing purposes.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// healthHandler reports liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports readiness, checking the database connection.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}

	if s.db == nil {
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	if err := s.db.PingContext(c.Request.Context()); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

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
