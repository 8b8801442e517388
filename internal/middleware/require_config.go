package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Matiasmdev/chef-claude/config"
)

// RequireConfig rejects requests while required external credentials are
// absent, before any collaborator is touched. The response names the missing
// variables so operators can fix the deployment; values are never echoed.
func RequireConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if missing := cfg.MissingCredentials(); len(missing) > 0 {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Configuración incompleta del servidor: " + strings.Join(missing, ", "),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
