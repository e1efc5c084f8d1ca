package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	auth "gitlab.com/roleapp1/role.api_server/src/production/ROLE.ApiService/implementation/auth"
)

// Context keys for request-scoped values
const (
	UserIDContextKey = "user_id"
)

// AuthMiddleware adapts the authentication gate to gin handlers.
type AuthMiddleware struct {
	gate *auth.Gate
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(gate *auth.Gate) *AuthMiddleware {
	return &AuthMiddleware{gate: gate}
}

// Authenticate verifies the Authorization header and exposes the resolved
// identity to downstream handlers for the remainder of the request only.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, err := m.gate.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			if errors.Is(err, auth.ErrMissingCredential) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing Authorization Bearer token"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			}
			c.Abort()
			return
		}

		c.Set(UserIDContextKey, uid)
		c.Next()
	}
}

// GetUserFromGinContext retrieves the authenticated user ID from Gin context
func GetUserFromGinContext(c *gin.Context) (string, error) {
	userIDVal, exists := c.Get(UserIDContextKey)
	if !exists {
		return "", errors.New("user not found in context")
	}

	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return "", errors.New("invalid user ID format in context")
	}

	return userID, nil
}
