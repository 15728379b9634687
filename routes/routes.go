package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"bookly/handlers"
	"bookly/middleware"
)

// RegisterPublicRoutes registers the intake-form endpoints. These are the
// routes the public booking page talks to.
func RegisterPublicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/request", hb.SubmitRequestHandler)
		api.GET("/blacklist", hb.CheckBlacklistHandler)
		api.POST("/blacklist", hb.CheckBlacklistHandler)
		api.GET("/availability", hb.PublicAvailabilityHandler)
		api.GET("/bookings/:id/calendar.ics", hb.CalendarDownloadHandler)
		api.POST("/push-token", hb.PushTokenHandler)
		api.POST("/stripe/create-checkout", hb.CreateDepositIntentHandler)
	}
}

// RegisterAdminRoutes registers the admin console endpoints. Everything
// past login requires either the admin API key or a whitelisted session
// token.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	admin := r.Group("/api/admin")
	{
		admin.POST("/login", hb.AdminLoginHandler)

		admin.Use(middleware.AdminAuthMiddleware())
		admin.POST("/logout", hb.AdminLogoutHandler)

		admin.GET("/requests", hb.ListRequestsHandler)
		admin.POST("/status", hb.UpdateStatusHandler)
		admin.POST("/update-request", hb.UpdateRequestHandler)
		admin.POST("/delete-customer", hb.DeleteCustomerHandler)
		admin.POST("/customers", hb.HideCustomerHandler)

		admin.GET("/availability", hb.GetAvailabilityHandler)
		admin.POST("/availability", hb.UpdateAvailabilityHandler)
		admin.GET("/tour-schedule", hb.GetTourScheduleHandler)
		admin.POST("/tour-schedule", hb.UpdateTourScheduleHandler)

		admin.GET("/notifications-state", hb.NotificationsStateGetHandler)
		admin.POST("/notifications-state", hb.NotificationsStatePostHandler)
		admin.POST("/test-push", hb.TestPushHandler)
	}
}

// RegisterHealthRoute registers a trivial health endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Admin-Key"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterPublicRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
