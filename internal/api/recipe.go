package api

import (
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Matiasmdev/chef-claude/config"
	"github.com/Matiasmdev/chef-claude/internal/middleware"
	"github.com/Matiasmdev/chef-claude/internal/service"
)

// RecipeHandler handles recipe generation requests
type RecipeHandler struct {
	cfg       *config.Config
	generator service.RecipeGenerator
	verifier  service.BotVerifier
	limiter   *middleware.RateLimiter
	cache     *service.RecipeCache
	logs      *service.UsageLog
	logger    *logrus.Logger
}

// NewRecipeHandler creates a new RecipeHandler instance
func NewRecipeHandler(
	cfg *config.Config,
	generator service.RecipeGenerator,
	verifier service.BotVerifier,
	limiter *middleware.RateLimiter,
	cache *service.RecipeCache,
	logs *service.UsageLog,
	logger *logrus.Logger,
) *RecipeHandler {
	return &RecipeHandler{
		cfg:       cfg,
		generator: generator,
		verifier:  verifier,
		limiter:   limiter,
		cache:     cache,
		logs:      logs,
		logger:    logger,
	}
}

// RegisterRoutes registers the recipe routes
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/generate-recipe",
		middleware.RequireConfig(h.cfg),
		middleware.SecretKey(h.cfg),
		h.Generate,
	)
}

// Generate validates a recipe request end-to-end and responds with generated
// (or cached) recipe text. Steps short-circuit on first failure; the rate
// budget is charged before generation is attempted, and cache/log writes are
// best-effort.
func (h *RecipeHandler) Generate(c *gin.Context) {
	var req GenerateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cuerpo JSON inválido"})
		return
	}

	if len(req.Ingredients) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Se requieren al menos 1 ingrediente"})
		return
	}
	if req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId es requerido"})
		return
	}
	if req.RecaptchaToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recaptchaToken es requerido"})
		return
	}

	ctx := c.Request.Context()

	if !h.cfg.RecaptchaBypass && !isLoopback(c.Request.RemoteAddr) {
		human, err := h.verifier.Verify(ctx, req.RecaptchaToken)
		if err != nil {
			h.logger.WithFields(logrus.Fields{
				"request_id": middleware.GetRequestID(c),
				"user_id":    req.UserID,
			}).WithError(err).Error("reCAPTCHA verification unreachable")
			c.JSON(http.StatusBadGateway, gin.H{"error": "No se pudo verificar reCAPTCHA"})
			return
		}
		if !human {
			c.JSON(http.StatusForbidden, gin.H{"error": "Verificación reCAPTCHA fallida"})
			return
		}
	}

	allowed, _, err := h.limiter.Reserve(ctx, req.UserID)
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"request_id": middleware.GetRequestID(c),
			"user_id":    req.UserID,
		}).WithError(err).Error("rate limit check failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error desconocido"})
		return
	}
	if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": fmt.Sprintf("Límite de %d recetas por 24 horas alcanzado. Intenta nuevamente mañana.", h.limiter.Limit()),
		})
		return
	}

	var receta string
	cached := false
	if val, hit, err := h.cache.Get(ctx, req.Ingredients); err != nil {
		h.reportBestEffort(c, "cache read", req.UserID, err)
	} else if hit {
		receta, cached = val, true
	}

	if !cached {
		generated, err := h.generator.GenerateRecipe(ctx, req.Ingredients)
		if err != nil {
			h.logger.WithFields(logrus.Fields{
				"request_id": middleware.GetRequestID(c),
				"user_id":    req.UserID,
			}).WithError(err).Error("recipe generation failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": "No se pudo generar la receta"})
			return
		}
		receta = generated

		if err := h.cache.Set(ctx, req.Ingredients, receta); err != nil {
			h.reportBestEffort(c, "cache write", req.UserID, err)
		}
	}

	if err := h.logs.Append(ctx, req.UserID, req.Ingredients); err != nil {
		h.reportBestEffort(c, "log append", req.UserID, err)
	}

	c.JSON(http.StatusOK, RecipeResponse{Receta: receta})
}

// reportBestEffort records a failed side effect for operators without failing
// the request.
func (h *RecipeHandler) reportBestEffort(c *gin.Context, op, userID string, err error) {
	h.logger.WithFields(logrus.Fields{
		"request_id": middleware.GetRequestID(c),
		"user_id":    userID,
		"op":         op,
	}).WithError(err).Warn("best-effort operation failed")
}

// isLoopback reports whether the request arrived over the loopback
// interface. It inspects the transport peer address, never forwarding
// headers, which a remote client controls.
func isLoopback(remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
