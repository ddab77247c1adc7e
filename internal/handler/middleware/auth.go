package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"courtside/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies bearer tokens minted by the external identity
// provider and exposes the UID to handlers. Identity itself lives outside
// this engine.
type AuthMiddleware struct {
	tokens *jwt.Service
}

const (
	ctxUIDKey         = "uid"
	ctxDisplayNameKey = "display_name"
)

func NewAuthMiddleware(tokens *jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxUIDKey, claims.UID)
		c.Set(ctxDisplayNameKey, claims.DisplayName)
		c.Next()
	}
}

func GetUID(c *gin.Context) (string, bool) {
	uid, exists := c.Get(ctxUIDKey)
	if !exists {
		return "", false
	}

	s, ok := uid.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

func GetDisplayName(c *gin.Context) string {
	if name, exists := c.Get(ctxDisplayNameKey); exists {
		if s, ok := name.(string); ok {
			return s
		}
	}
	return ""
}
