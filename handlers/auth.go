package handlers

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"bookly/config"
	"bookly/middleware"
	"bookly/utils"
)

const adminSessionTTL = 12 * time.Hour

// AdminLoginHandler exchanges the admin credentials for a bearer token.
// The password is checked against the configured bcrypt hash and the
// issued token is registered in the auth cache so it can be revoked.
func AdminLoginHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	cfg := config.AppConfig
	if cfg.AdminUser == "" || cfg.AdminPasswordHash == "" {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Admin login not configured"})
		return
	}
	if subtle.ConstantTimeCompare([]byte(input.Username), []byte(cfg.AdminUser)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte(input.Password)); err != nil {
		logger.Warn("admin login rejected", zap.String("ip", middleware.ClientIP(c)))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(cfg.AdminUser, adminSessionTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token", "details": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	sessionKey := middleware.AdminSessionPrefix + utils.HashToken(token)
	if err := utils.GetAuthCacheClient().Set(ctx, sessionKey, cfg.AdminUser, adminSessionTTL).Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store session", "details": err.Error()})
		return
	}

	logger.Info("admin login", zap.String("user", cfg.AdminUser))
	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"token":      token,
		"expires_in": int(adminSessionTTL.Seconds()),
	})
}

// AdminLogoutHandler revokes the presented bearer token.
func AdminLogoutHandler(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	sessionKey := middleware.AdminSessionPrefix + utils.HashToken(token)
	if err := utils.GetAuthCacheClient().Del(ctx, sessionKey).Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke session", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
