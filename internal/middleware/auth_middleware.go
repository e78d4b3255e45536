package middleware

import (
	"net/http"
	"strings"

	"github.com/tejas-exe/droply/internal/auth"
	"github.com/tejas-exe/droply/pkg/responses"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the caller's identity from the Authorization
// header. Requests without a verified identity are rejected before any
// handler runs.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			responses.AbortError(c, http.StatusUnauthorized, "Unauthorized: User not authenticated.")
			return
		}

		tokenString := strings.Replace(authHeader, "Bearer ", "", 1)
		claims, err := auth.ValidateToken(tokenString)
		if err != nil {
			responses.AbortError(c, http.StatusUnauthorized, "Unauthorized: User not authenticated.")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

// CurrentUserID returns the authenticated caller's ID set by AuthMiddleware.
func CurrentUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	userID, ok := value.(string)
	return userID, ok && userID != ""
}
