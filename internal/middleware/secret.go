package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Matiasmdev/chef-claude/config"
)

// SecretHeader is the header every legitimate frontend request must carry.
const SecretHeader = "x-secret-key"

// SecretKey enforces the shared static frontend secret. This is an
// anti-scraping gate, not per-user authentication.
func SecretKey(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(SecretHeader)
		secret := cfg.FrontendSecretKey
		if provided == "" || secret == "" ||
			subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}
