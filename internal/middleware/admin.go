package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/harukit/civic-report-api/internal/database"
	apierrors "github.com/harukit/civic-report-api/internal/errors"
	"github.com/harukit/civic-report-api/internal/models"
)

// RequireAdmin checks that the authenticated user has the admin role.
// Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, userID).Error; err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !user.IsAdmin() {
			apierrors.Forbidden(c, "Administrator access required")
			c.Abort()
			return
		}

		c.Next()
	}
}
