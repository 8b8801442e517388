package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Matiasmdev/chef-claude/config"
	"github.com/Matiasmdev/chef-claude/internal/api"
	"github.com/Matiasmdev/chef-claude/internal/middleware"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	cfg    *config.Config
	logger *logrus.Logger
}

// New creates a new server instance
func New(cfg *config.Config, redisClient *redis.Client, logger *logrus.Logger) *Server {
	router := gin.New()

	// Client IPs come from the transport peer, not forwarding headers.
	_ = router.SetTrustedProxies(nil)

	router.Use(middleware.RequestID())
	router.Use(middleware.JSONRecovery(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Content-Type", middleware.SecretHeader},
		MaxAge:       12 * time.Hour,
	}))

	// Wrong request kinds must still get a JSON body
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	api.RegisterRoutes(router, cfg, redisClient, logger)

	return &Server{
		router: router,
		cfg:    cfg,
		logger: logger,
	}
}

// Router exposes the underlying engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the server and blocks until it stops serving.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    s.cfg.ServerAddr(),
		Handler: s.router,
	}

	s.logger.WithField("addr", s.http.Addr).Info("starting server")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
