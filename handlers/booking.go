package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	availabilityRepoPkg "bookly/database/repository/availability"
	blacklistRepoPkg "bookly/database/repository/blacklist"
	requestRepoPkg "bookly/database/repository/request"
	"bookly/middleware"
	"bookly/services/booking"
	"bookly/utils"
)

const availabilityCacheKey = "public_availability"

// BookingHandler serves the public booking-form endpoints.
type BookingHandler struct {
	Svc          booking.BookingService
	Requests     requestRepoPkg.RequestRepository
	Availability availabilityRepoPkg.AvailabilityRepository
	Blacklist    blacklistRepoPkg.BlacklistRepository
	Logger       *zap.Logger
}

func NewBookingHandler(
	svc booking.BookingService,
	requests requestRepoPkg.RequestRepository,
	avail availabilityRepoPkg.AvailabilityRepository,
	deny blacklistRepoPkg.BlacklistRepository,
	logger *zap.Logger,
) *BookingHandler {
	return &BookingHandler{
		Svc:          svc,
		Requests:     requests,
		Availability: avail,
		Blacklist:    deny,
		Logger:       logger,
	}
}

// SubmitRequestHandler accepts a booking-form submission.
func (h *BookingHandler) SubmitRequestHandler(c *gin.Context) {
	var input booking.IntakeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	input.ClientIP = middleware.ClientIP(c)

	result, err := h.Svc.CreateRequest(c.Request.Context(), input)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response := gin.H{
		"ok":                  true,
		"id":                  result.Request.ID,
		"deposit_amount":      result.Request.DepositAmount,
		"payment_link":        result.PaymentLink,
		"payment_link_is_url": result.PaymentLinkIsURL,
		"payment_email_sent":  result.EmailSent,
	}
	if result.PaymentPage != "" {
		response["payment_page"] = result.PaymentPage
	}
	c.JSON(http.StatusOK, response)
}

// CheckBlacklistHandler lets the booking form pre-check whether the
// visitor is blocked before rendering the form.
func (h *BookingHandler) CheckBlacklistHandler(c *gin.Context) {
	var input struct {
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if c.Request.Method == http.MethodPost {
		// Body is optional; the client IP alone can match.
		_ = c.ShouldBindJSON(&input)
	}

	blocked, err := h.Blacklist.IsBlocked(input.Email, input.Phone, middleware.ClientIP(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check deny list", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocked": blocked})
}

// PublicAvailabilityHandler returns the availability document the booking
// form renders its calendar from. Responses are cached briefly in Redis to
// keep the hot path off the disk store.
func (h *BookingHandler) PublicAvailabilityHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	cache := utils.GetCacheClient()
	if cache != nil {
		if cached, err := cache.Get(ctx, availabilityCacheKey).Result(); err == nil && cached != "" {
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
			return
		}
	}

	cfg, err := h.Availability.Get()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load availability", "details": err.Error()})
		return
	}

	if cache != nil {
		if payload, err := json.Marshal(cfg); err == nil {
			if err := cache.Set(ctx, availabilityCacheKey, payload, 30*time.Second).Err(); err != nil {
				h.Logger.Warn("failed to cache availability", zap.Error(err))
			}
		}
	}
	c.JSON(http.StatusOK, cfg)
}

// CalendarDownloadHandler serves the ICS file for a confirmed booking.
func (h *BookingHandler) CalendarDownloadHandler(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing id"})
		return
	}
	req, err := h.Requests.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load request", "details": err.Error()})
		return
	}
	if req == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	ics := booking.BuildICS(req)
	if ics == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid booking data"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="booking.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics))
}
