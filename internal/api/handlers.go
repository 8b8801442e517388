package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Matiasmdev/chef-claude/config"
	"github.com/Matiasmdev/chef-claude/internal/middleware"
	"github.com/Matiasmdev/chef-claude/internal/service"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Chef Claude API is running",
	})
}

// RegisterRoutes wires the collaborator clients and registers all API routes.
// Clients are constructed once here and injected; handlers hold no mutable
// state of their own.
func RegisterRoutes(router *gin.Engine, cfg *config.Config, redisClient *redis.Client, logger *logrus.Logger) {
	generator := service.NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicAPIURL)
	verifier := service.NewRecaptchaService(cfg.RecaptchaSecretKey, cfg.RecaptchaVerifyURL)
	limiter := middleware.NewRecipeGenerationRateLimiter(redisClient)
	cache := service.NewRecipeCache(redisClient)
	logs := service.NewUsageLog(redisClient)

	recipeHandler := NewRecipeHandler(cfg, generator, verifier, limiter, cache, logs, logger)
	dashboardHandler := NewDashboardHandler(cfg, limiter, logs, logger)

	// Health check endpoint (no secret required)
	router.GET("/health", HealthCheck)
	router.GET("/api/health", HealthCheck)

	api := router.Group("/api")
	recipeHandler.RegisterRoutes(api)
	dashboardHandler.RegisterRoutes(api)
}
