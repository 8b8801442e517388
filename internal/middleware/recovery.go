package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// JSONRecovery guarantees a JSON error body on every exit path, including
// unexpected panics. Whatever message the fault carries is returned; faults
// with no message report a generic error.
func JSONRecovery(logger *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		message := "Error desconocido"
		switch v := recovered.(type) {
		case error:
			if v.Error() != "" {
				message = v.Error()
			}
		case string:
			if v != "" {
				message = v
			}
		}

		logger.WithFields(logrus.Fields{
			"request_id": GetRequestID(c),
			"panic":      recovered,
		}).Error("recovered from panic")

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": message})
	})
}
