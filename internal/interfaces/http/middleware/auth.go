package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/courierlog/backend/internal/infrastructure/auth"
)

// Session context keys
const (
	SessionUserIDKey = "session_user_id"
	AuthHeaderKey    = "Authorization"
	BearerPrefix     = "Bearer "
)

// SessionAuthConfig holds configuration for session authentication
type SessionAuthConfig struct {
	Verifier *auth.SessionVerifier
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
}

// DefaultSessionAuthConfig returns default session auth configuration
func DefaultSessionAuthConfig(verifier *auth.SessionVerifier) SessionAuthConfig {
	return SessionAuthConfig{
		Verifier: verifier,
		SkipPaths: []string{
			"/api/v1/health",
			"/api/v1/ready",
		},
	}
}

// SessionAuth creates session authentication middleware with default config
func SessionAuth(verifier *auth.SessionVerifier) gin.HandlerFunc {
	return SessionAuthWithConfig(DefaultSessionAuthConfig(verifier))
}

// SessionAuthWithConfig creates session authentication middleware. Requests
// must carry a bearer session token; the verified subject is stored in the
// request context.
func SessionAuthWithConfig(cfg SessionAuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "Missing bearer token")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, "Missing bearer token")
			return
		}

		claims, err := cfg.Verifier.Verify(tokenString)
		if err != nil {
			abortUnauthorized(c, "Invalid session token")
			return
		}

		c.Set(SessionUserIDKey, claims.Subject)
		c.Next()
	}
}

// GetSessionUserID returns the verified provider user id, empty when the
// request was not authenticated.
func GetSessionUserID(c *gin.Context) string {
	return c.GetString(SessionUserIDKey)
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}
