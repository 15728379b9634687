package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"bookly/config"
	"bookly/utils"
)

// AdminSessionPrefix namespaces admin session keys in the auth cache.
const AdminSessionPrefix = "admin_session:"

// AdminAuthMiddleware guards the admin API. Two credentials are accepted:
// the static X-Admin-Key header used by the mobile app, or a Bearer JWT
// issued by the login endpoint and still present in the auth cache
// (logout removes it).
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := config.AppConfig.AdminAPIKey
		if key := c.GetHeader("X-Admin-Key"); key != "" && apiKey != "" {
			if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) == 1 {
				c.Set("isAdmin", true)
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		if _, err := utils.ValidateToken(tokenString); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		sessionKey := AdminSessionPrefix + utils.HashToken(tokenString)
		exists, err := utils.GetAuthCacheClient().Exists(ctx, sessionKey).Result()
		if err != nil || exists == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session revoked"})
			return
		}

		c.Set("isAdmin", true)
		c.Set("adminToken", tokenString)
		c.Next()
	}
}
