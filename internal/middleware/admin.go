package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/byiitians/portal-api/internal/models"
	appErrors "github.com/byiitians/portal-api/pkg/errors"
	"github.com/byiitians/portal-api/pkg/response"
)

// RequireAdmin gates management routes on the admin capability carried in the
// access token claims.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		claims, ok := claimsValue.(*models.JWTClaims)
		if !ok || !claims.Admin {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "admin role required"))
			c.Abort()
			return
		}

		c.Next()
	}
}
