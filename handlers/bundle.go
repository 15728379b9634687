package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Public booking endpoints
	SubmitRequestHandler       gin.HandlerFunc
	CheckBlacklistHandler      gin.HandlerFunc
	PublicAvailabilityHandler  gin.HandlerFunc
	CalendarDownloadHandler    gin.HandlerFunc
	PushTokenHandler           gin.HandlerFunc
	CreateDepositIntentHandler gin.HandlerFunc

	// Admin auth endpoints
	AdminLoginHandler  gin.HandlerFunc
	AdminLogoutHandler gin.HandlerFunc

	// Admin console endpoints
	UpdateStatusHandler           gin.HandlerFunc
	UpdateRequestHandler          gin.HandlerFunc
	ListRequestsHandler           gin.HandlerFunc
	DeleteCustomerHandler         gin.HandlerFunc
	HideCustomerHandler           gin.HandlerFunc
	GetAvailabilityHandler        gin.HandlerFunc
	UpdateAvailabilityHandler     gin.HandlerFunc
	GetTourScheduleHandler        gin.HandlerFunc
	UpdateTourScheduleHandler     gin.HandlerFunc
	NotificationsStateGetHandler  gin.HandlerFunc
	NotificationsStatePostHandler gin.HandlerFunc
	TestPushHandler               gin.HandlerFunc
}
