package handlers

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	availabilityRepoPkg "bookly/database/repository/availability"
	customerRepoPkg "bookly/database/repository/customer"
	requestRepoPkg "bookly/database/repository/request"
	touringRepoPkg "bookly/database/repository/touring"
	"bookly/models"
	"bookly/services/booking"
	"bookly/utils"
)

// AdminHandler serves the admin console endpoints: status transitions,
// edits, request listing, availability and tour-schedule management, and
// customer cleanup.
type AdminHandler struct {
	Svc          booking.BookingService
	Requests     requestRepoPkg.RequestRepository
	Availability availabilityRepoPkg.AvailabilityRepository
	Touring      touringRepoPkg.TouringRepository
	Customers    customerRepoPkg.CustomerRepository
	Logger       *zap.Logger
}

func NewAdminHandler(
	svc booking.BookingService,
	requests requestRepoPkg.RequestRepository,
	avail availabilityRepoPkg.AvailabilityRepository,
	tours touringRepoPkg.TouringRepository,
	customers customerRepoPkg.CustomerRepository,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		Svc:          svc,
		Requests:     requests,
		Availability: avail,
		Touring:      tours,
		Customers:    customers,
		Logger:       logger,
	}
}

// UpdateStatusHandler applies a status transition to a request.
func (h *AdminHandler) UpdateStatusHandler(c *gin.Context) {
	var input booking.StatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	req, err := h.Svc.UpdateStatus(c.Request.Context(), input)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	h.invalidateAvailabilityCache(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"ok": true, "request": req})
}

// UpdateRequestHandler applies an admin edit to a request.
func (h *AdminHandler) UpdateRequestHandler(c *gin.Context) {
	var input booking.EditInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	result, err := h.Svc.EditRequest(c.Request.Context(), input)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	h.invalidateAvailabilityCache(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"ok":                      true,
		"request":                 result.Request,
		"edited_email_sent":       result.EmailSent,
		"edited_admin_email_sent": result.AdminEmailSent,
	})
}

var nonDigits = regexp.MustCompile(`\D+`)

func requestUpdatedKey(req *models.BookingRequest) string {
	if req.UpdatedAt != "" {
		return req.UpdatedAt
	}
	return req.CreatedAt
}

// dedupeRequests collapses duplicate records: by id keeping the most
// recently updated copy, and for legacy id-less rows by an identity
// composite of email, phone digits, slot, and city.
func dedupeRequests(requests []models.BookingRequest) []models.BookingRequest {
	byID := map[string]models.BookingRequest{}
	var idOrder []string
	byComposite := map[string]models.BookingRequest{}
	var compositeOrder []string

	for _, req := range requests {
		id := strings.TrimSpace(req.ID)
		if id != "" {
			current, ok := byID[id]
			if !ok {
				byID[id] = req
				idOrder = append(idOrder, id)
				continue
			}
			if requestUpdatedKey(&req) >= requestUpdatedKey(&current) {
				byID[id] = req
			}
			continue
		}

		composite := strings.Join([]string{
			strings.ToLower(strings.TrimSpace(req.Email)),
			nonDigits.ReplaceAllString(req.Phone, ""),
			strings.TrimSpace(req.PreferredDate),
			strings.TrimSpace(req.PreferredTime),
			strings.ToLower(strings.TrimSpace(req.City)),
		}, "|")
		current, ok := byComposite[composite]
		if !ok {
			byComposite[composite] = req
			compositeOrder = append(compositeOrder, composite)
			continue
		}
		if requestUpdatedKey(&req) >= requestUpdatedKey(&current) {
			byComposite[composite] = req
		}
	}

	merged := make([]models.BookingRequest, 0, len(idOrder)+len(compositeOrder))
	for _, id := range idOrder {
		merged = append(merged, byID[id])
	}
	for _, composite := range compositeOrder {
		merged = append(merged, byComposite[composite])
	}
	return merged
}

// ListRequestsHandler returns the active collection, deduplicated.
// ?archived=true returns the declined archive instead.
func (h *AdminHandler) ListRequestsHandler(c *gin.Context) {
	var (
		requests []models.BookingRequest
		err      error
	)
	if c.Query("archived") == "true" {
		requests, err = h.Requests.Archived()
	} else {
		requests, err = h.Requests.Active()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load requests", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": dedupeRequests(requests)})
}

// DeleteCustomerHandler purges every request matching the given identity
// key from both collections.
func (h *AdminHandler) DeleteCustomerHandler(c *gin.Context) {
	var input struct {
		Key   string `json:"key"`
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	target := strings.ToLower(strings.TrimSpace(input.Key))
	if target == "" {
		target = strings.ToLower(strings.TrimSpace(input.Email))
	}
	if target == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Missing customer key"})
		return
	}
	removed, err := h.Requests.PurgeIdentity(target)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to purge customer", "details": err.Error()})
		return
	}
	h.Logger.Info("customer purged", zap.String("key", target), zap.Int("removed", removed))
	c.JSON(http.StatusOK, gin.H{"ok": true, "removed": removed})
}

// HideCustomerHandler hides or unhides a customer key in the admin list.
func (h *AdminHandler) HideCustomerHandler(c *gin.Context) {
	var input struct {
		Action string `json:"action"`
		Key    string `json:"key"`
	}
	_ = c.ShouldBindJSON(&input)
	if input.Action == "" {
		input.Action = c.Query("action")
	}
	if input.Key == "" {
		input.Key = c.Query("key")
	}
	key := strings.TrimSpace(input.Key)
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing customer key"})
		return
	}

	var (
		count int
		err   error
	)
	if strings.ToLower(input.Action) == "unhide" {
		count, err = h.Customers.Unhide(key)
	} else {
		count, err = h.Customers.Hide(key)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update hidden customers", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "hidden_count": count})
}

// GetAvailabilityHandler returns the full availability document for the
// admin console.
func (h *AdminHandler) GetAvailabilityHandler(c *gin.Context) {
	cfg, err := h.Availability.Get()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load availability", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func clampBuffer(minutes int) int {
	if minutes < 0 {
		return 0
	}
	if minutes > 240 {
		return 240
	}
	return minutes
}

func sanitizeClock(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || !booking.ValidStrictClock(value) {
		return ""
	}
	return value
}

// UpdateAvailabilityHandler replaces the availability document. City
// schedules are validated entry by entry: bad dates drop the entry, bad
// clock fields are cleared, and buffers are clamped to 0-240 minutes.
func (h *AdminHandler) UpdateAvailabilityHandler(c *gin.Context) {
	var input models.AvailabilityConfig
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	defaults, err := h.Availability.Get()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load availability", "details": err.Error()})
		return
	}

	input.TourCity = strings.TrimSpace(input.TourCity)
	if input.TourCity == "" {
		input.TourCity = defaults.TourCity
	}
	input.TourTimezone = strings.TrimSpace(input.TourTimezone)
	if input.TourTimezone == "" {
		input.TourTimezone = defaults.TourTimezone
	}
	input.BufferMinutes = clampBuffer(input.BufferMinutes)
	if input.AvailabilityMode == "" {
		input.AvailabilityMode = "open"
	}

	var hidden []string
	seen := map[string]bool{}
	for _, id := range input.HiddenBookingIDs {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		hidden = append(hidden, id)
	}
	input.HiddenBookingIDs = hidden

	var schedules []models.CitySchedule
	for _, entry := range input.CitySchedules {
		entry.City = strings.TrimSpace(entry.City)
		entry.Start = strings.TrimSpace(entry.Start)
		entry.End = strings.TrimSpace(entry.End)
		if entry.City == "" || !booking.ValidDateKey(entry.Start) || !booking.ValidDateKey(entry.End) || entry.Start > entry.End {
			continue
		}
		entry.Timezone = strings.TrimSpace(entry.Timezone)
		if entry.Timezone == "" {
			entry.Timezone = input.TourTimezone
		}
		entry.ReadyStart = sanitizeClock(entry.ReadyStart)
		entry.LeaveDayEnd = sanitizeClock(entry.LeaveDayEnd)
		entry.SleepStart = sanitizeClock(entry.SleepStart)
		entry.SleepEnd = sanitizeClock(entry.SleepEnd)
		entry.BreakStart = sanitizeClock(entry.BreakStart)
		entry.BreakEnd = sanitizeClock(entry.BreakEnd)
		if entry.BufferMinutes != nil {
			clamped := clampBuffer(*entry.BufferMinutes)
			entry.BufferMinutes = &clamped
		} else {
			clamped := input.BufferMinutes
			entry.BufferMinutes = &clamped
		}
		schedules = append(schedules, entry)
	}
	input.CitySchedules = schedules

	if err := h.Availability.Put(input); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save availability", "details": err.Error()})
		return
	}
	h.invalidateAvailabilityCache(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

var tourDateFormats = []*regexp.Regexp{
	regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`),
	regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`),
}

var tourDateYMDSlash = regexp.MustCompile(`^(\d{4})/(\d{1,2})/(\d{1,2})$`)

// normalizeTourDate accepts the date spellings the admin form has used
// over time and returns the canonical YYYY-MM-DD key, or "".
func normalizeTourDate(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if booking.ValidDateKey(value) {
		return value
	}
	for _, re := range tourDateFormats {
		if m := re.FindStringSubmatch(value); m != nil {
			if t, err := time.Parse("2006-1-2", m[3]+"-"+m[1]+"-"+m[2]); err == nil {
				return t.Format("2006-01-02")
			}
		}
	}
	if m := tourDateYMDSlash.FindStringSubmatch(value); m != nil {
		if t, err := time.Parse("2006-1-2", m[1]+"-"+m[2]+"-"+m[3]); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

func normalizeTourType(value string) string {
	if strings.ToLower(strings.TrimSpace(value)) == "block" {
		return "block"
	}
	return "tour"
}

// GetTourScheduleHandler returns the touring schedule.
func (h *AdminHandler) GetTourScheduleHandler(c *gin.Context) {
	entries, err := h.Touring.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load touring schedule", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"touring": entries})
}

// UpdateTourScheduleHandler replaces the touring schedule. Entries with
// unusable dates or an empty city are dropped; an all-invalid payload is
// rejected rather than wiping the schedule.
func (h *AdminHandler) UpdateTourScheduleHandler(c *gin.Context) {
	var input struct {
		Touring []models.TouringEntry `json:"touring"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	var clean []models.TouringEntry
	for _, entry := range input.Touring {
		start := normalizeTourDate(entry.Start)
		end := normalizeTourDate(entry.End)
		city := strings.TrimSpace(entry.City)
		if start == "" || end == "" || city == "" || start > end {
			continue
		}
		notes := strings.TrimSpace(entry.Notes)
		if len(notes) > 300 {
			notes = notes[:300]
		}
		clean = append(clean, models.TouringEntry{
			Start: start,
			End:   end,
			City:  city,
			Type:  normalizeTourType(entry.Type),
			Notes: notes,
		})
	}
	if len(clean) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No valid entries"})
		return
	}

	if err := h.Touring.Save(clean); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save touring schedule", "details": err.Error()})
		return
	}
	entries, err := h.Touring.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reload touring schedule", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "touring": entries})
}

func (h *AdminHandler) invalidateAvailabilityCache(ctx context.Context) {
	cache := utils.GetCacheClient()
	if cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := cache.Del(ctx, availabilityCacheKey).Err(); err != nil {
		h.Logger.Warn("failed to invalidate availability cache", zap.Error(err))
	}
}
