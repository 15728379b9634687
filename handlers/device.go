package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	deviceRepoPkg "bookly/database/repository/device"
	notifyRepoPkg "bookly/database/repository/notifystate"
	"bookly/services/notification"
)

// DeviceHandler serves push-token registration, admin notification read
// state, and the test-push endpoint.
type DeviceHandler struct {
	Devices     deviceRepoPkg.DeviceRepository
	NotifyState notifyRepoPkg.NotifyStateRepository
	Push        notification.PushSender
	Logger      *zap.Logger
}

func NewDeviceHandler(
	devices deviceRepoPkg.DeviceRepository,
	notifyState notifyRepoPkg.NotifyStateRepository,
	push notification.PushSender,
	logger *zap.Logger,
) *DeviceHandler {
	return &DeviceHandler{Devices: devices, NotifyState: notifyState, Push: push, Logger: logger}
}

// PushTokenHandler registers an FCM device token for admin broadcasts.
func (h *DeviceHandler) PushTokenHandler(c *gin.Context) {
	var input struct {
		Token    string `json:"token"`
		Platform string `json:"platform"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	token := strings.TrimSpace(input.Token)
	if len(token) < 10 || len(token) > 500 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid token"})
		return
	}
	if err := h.Devices.Upsert(token, strings.TrimSpace(input.Platform)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save token", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// NotificationsStateGetHandler returns which request ids the admin has
// already seen.
func (h *DeviceHandler) NotificationsStateGetHandler(c *gin.Context) {
	ids, updatedAt, err := h.NotifyState.ReadIDs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load notification state", "details": err.Error()})
		return
	}
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"read_ids": ids, "updated_at": updatedAt})
}

// NotificationsStatePostHandler merges newly-read request ids into the
// stored set.
func (h *DeviceHandler) NotificationsStatePostHandler(c *gin.Context) {
	var input struct {
		ReadIDs []string `json:"read_ids"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	ids, err := h.NotifyState.Merge(input.ReadIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save notification state", "details": err.Error()})
		return
	}
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "read_ids": ids})
}

// TestPushHandler sends a test broadcast to every registered device.
func (h *DeviceHandler) TestPushHandler(c *gin.Context) {
	err := h.Push.Broadcast(c.Request.Context(), "Test notification", "Push delivery is working.", map[string]string{
		"type": "test",
	})
	if err != nil {
		h.Logger.Warn("test push failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "push delivery failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
