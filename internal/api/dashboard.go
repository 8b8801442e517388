package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Matiasmdev/chef-claude/config"
	"github.com/Matiasmdev/chef-claude/internal/middleware"
	"github.com/Matiasmdev/chef-claude/internal/service"
)

// DashboardHandler serves the read-only usage snapshot. It walks every log
// key in the store, so it is an administrative tool, not an analytics path.
type DashboardHandler struct {
	cfg     *config.Config
	limiter *middleware.RateLimiter
	logs    *service.UsageLog
	logger  *logrus.Logger
}

// NewDashboardHandler creates a new DashboardHandler instance
func NewDashboardHandler(cfg *config.Config, limiter *middleware.RateLimiter, logs *service.UsageLog, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{
		cfg:     cfg,
		limiter: limiter,
		logs:    logs,
		logger:  logger,
	}
}

// RegisterRoutes registers the dashboard routes
func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", middleware.SecretKey(h.cfg), h.Snapshot)
}

// Snapshot returns per-session usage: the current rate counter and the most
// recent log entries, newest first. Per-session failures degrade that
// session's entry instead of aborting the whole snapshot.
func (h *DashboardHandler) Snapshot(c *gin.Context) {
	ctx := c.Request.Context()

	sessions, err := h.logs.Sessions(ctx)
	if err != nil {
		h.logger.WithField("request_id", middleware.GetRequestID(c)).
			WithError(err).Error("dashboard scan failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error desconocido"})
		return
	}

	dashboard := make(map[string]DashboardEntry, len(sessions))
	for _, userID := range sessions {
		entries, invalid, err := h.logs.Recent(ctx, userID, service.RecentLogLimit)
		if err != nil {
			h.logger.WithFields(logrus.Fields{
				"request_id": middleware.GetRequestID(c),
				"user_id":    userID,
			}).WithError(err).Warn("failed to read session log")
			continue
		}

		count, err := h.limiter.Count(ctx, userID)
		if err != nil {
			h.logger.WithFields(logrus.Fields{
				"request_id": middleware.GetRequestID(c),
				"user_id":    userID,
			}).WithError(err).Warn("failed to read session counter")
			count = 0
		}

		dashboard[userID] = DashboardEntry{
			TotalGeneradas:    count,
			UltimasRecetas:    entries,
			EntradasInvalidas: invalid,
		}
	}

	c.JSON(http.StatusOK, dashboard)
}
