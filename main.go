package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookly/config"
	"bookly/database/docstore"
	availabilityRepoPkg "bookly/database/repository/availability"
	blacklistRepoPkg "bookly/database/repository/blacklist"
	customerRepoPkg "bookly/database/repository/customer"
	deviceRepoPkg "bookly/database/repository/device"
	notifyRepoPkg "bookly/database/repository/notifystate"
	requestRepoPkg "bookly/database/repository/request"
	touringRepoPkg "bookly/database/repository/touring"
	"bookly/handlers"
	"bookly/middleware"
	"bookly/routes"
	"bookly/services/booking"
	"bookly/services/notification"
	"bookly/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	utils.InitCache()
	utils.InitAuthCache()
	utils.FirebaseInit()
	stripe.Key = config.AppConfig.StripeKey

	store, err := docstore.NewFileStore(config.AppConfig.DataDir)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to open data directory: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	requestRepo := requestRepoPkg.NewFileRequestRepo(store)
	availabilityRepo := availabilityRepoPkg.NewFileAvailabilityRepo(
		store,
		config.AppConfig.DefaultTourCity,
		config.AppConfig.DefaultTourTimezone,
		config.AppConfig.DefaultBufferMinutes,
	)
	touringRepo := touringRepoPkg.NewFileTouringRepo(store)
	blacklistRepo := blacklistRepoPkg.NewFileBlacklistRepo(store)
	deviceRepo := deviceRepoPkg.NewFileDeviceRepo(store)
	notifyStateRepo := notifyRepoPkg.NewFileNotifyStateRepo(store)
	customerRepo := customerRepoPkg.NewFileCustomerRepo(store)

	// services.
	mailer := notification.NewSMTPMailer()
	pushService, err := notification.NewFCMPushService(deviceRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize push service: %v", err)
	}

	bookingService := booking.NewDefaultBookingService(
		requestRepo,
		availabilityRepo,
		touringRepo,
		blacklistRepo,
		mailer,
		pushService,
	)

	bookingHandler := handlers.NewBookingHandler(bookingService, requestRepo, availabilityRepo, blacklistRepo, logger)
	adminHandler := handlers.NewAdminHandler(bookingService, requestRepo, availabilityRepo, touringRepo, customerRepo, logger)
	deviceHandler := handlers.NewDeviceHandler(deviceRepo, notifyStateRepo, pushService, logger)
	paymentHandler := handlers.NewPaymentHandler(requestRepo, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Public endpoints.
		SubmitRequestHandler:       bookingHandler.SubmitRequestHandler,
		CheckBlacklistHandler:      bookingHandler.CheckBlacklistHandler,
		PublicAvailabilityHandler:  bookingHandler.PublicAvailabilityHandler,
		CalendarDownloadHandler:    bookingHandler.CalendarDownloadHandler,
		PushTokenHandler:           deviceHandler.PushTokenHandler,
		CreateDepositIntentHandler: paymentHandler.CreateDepositIntentHandler,

		// Admin auth endpoints.
		AdminLoginHandler:  handlers.AdminLoginHandler,
		AdminLogoutHandler: handlers.AdminLogoutHandler,

		// Admin console endpoints.
		UpdateStatusHandler:           adminHandler.UpdateStatusHandler,
		UpdateRequestHandler:          adminHandler.UpdateRequestHandler,
		ListRequestsHandler:           adminHandler.ListRequestsHandler,
		DeleteCustomerHandler:         adminHandler.DeleteCustomerHandler,
		HideCustomerHandler:           adminHandler.HideCustomerHandler,
		GetAvailabilityHandler:        adminHandler.GetAvailabilityHandler,
		UpdateAvailabilityHandler:     adminHandler.UpdateAvailabilityHandler,
		GetTourScheduleHandler:        adminHandler.GetTourScheduleHandler,
		UpdateTourScheduleHandler:     adminHandler.UpdateTourScheduleHandler,
		NotificationsStateGetHandler:  deviceHandler.NotificationsStateGetHandler,
		NotificationsStatePostHandler: deviceHandler.NotificationsStatePostHandler,
		TestPushHandler:               deviceHandler.TestPushHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: forced shutdown: %v", err)
	}
	logger.Sugar().Info("Server exited")
}
