package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/questionmaster/api/internal/app/models/dto"
)

// APIKeyHeader carries the shared secret for service-to-service calls.
const APIKeyHeader = "X-API-Key"

// APIKeyAuth guards internal endpoints with a static API key.
// A missing key yields 401, a wrong one 403.
func APIKeyAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(APIKeyHeader)
		if provided == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(http.StatusUnauthorized, "API key required"))
			return
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(http.StatusForbidden, "Invalid API key"))
			return
		}

		c.Next()
	}
}
