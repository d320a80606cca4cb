package handlers

import (
	"net/http"

	"ecg-quiz-service/internal/models"

	"github.com/gin-gonic/gin"
)

// currentUser builds the authenticated caller from the gateway-set headers.
// The auth middleware guarantees X-User-ID is present; role and display name
// degrade gracefully when absent.
func currentUser(c *gin.Context) models.User {
	id := c.GetHeader("X-User-ID")
	username := c.GetHeader("X-User-Name")
	if username == "" {
		username = id
	}
	return models.User{
		ID:       id,
		Username: username,
		Role:     models.ParseRole(c.GetHeader("X-User-Role")),
	}
}

// RequireUser rejects requests without an authenticated user id.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-User-ID") == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
				"code":  "MISSING_USER_ID",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
