package booking

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookly/config"
	"bookly/models"
	"bookly/utils"
)

var allowedBookingTypes = map[string]bool{
	"incall":  true,
	"outcall": true,
}

func truthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func newRequestID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return "req_" + time.Now().UTC().Format("20060102150405") + "_" + suffix
}

func (s *DefaultBookingService) validateIntake(input *IntakeInput) map[string]string {
	fields := map[string]string{}
	required := map[string]string{
		"name":            input.Name,
		"email":           input.Email,
		"phone":           input.Phone,
		"city":            input.City,
		"currency":        input.Currency,
		"booking_type":    input.BookingType,
		"duration_label":  input.DurationLabel,
		"duration_hours":  input.DurationHours,
		"preferred_date":  input.PreferredDate,
		"preferred_time":  input.PreferredTime,
		"experience":      input.Experience,
		"payment_method":  input.PaymentMethod,
		"deposit_confirm": input.DepositConfirm,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			fields[field] = "Required"
		}
	}
	if email := strings.TrimSpace(input.Email); email != "" && !ValidEmail(email) {
		fields["email"] = "Invalid email"
	}
	if phone := strings.TrimSpace(input.Phone); phone != "" && !ValidInternationalPhone(phone) {
		fields["phone"] = "Use international format: +countrycode number"
	}
	if input.BookingType == "outcall" && strings.TrimSpace(input.OutcallAddress) == "" {
		fields["outcall_address"] = "Required for outcall"
	}
	if currency := strings.ToUpper(strings.TrimSpace(input.Currency)); currency != "" && !ValidCurrency(currency) {
		fields["currency"] = "Invalid currency"
	}
	if !truthy(input.DepositConfirm) {
		fields["deposit_confirm"] = "Required"
	}
	if !ValidDateKey(strings.TrimSpace(input.PreferredDate)) {
		fields["preferred_date"] = "Invalid date"
	}
	if !ValidClock(strings.TrimSpace(input.PreferredTime)) {
		fields["preferred_time"] = "Invalid time"
	}
	if _, ok := fields["preferred_date"]; !ok {
		if _, bad := fields["preferred_time"]; !bad {
			loc := ResolveTourTimezone(input.TourTimezone, config.AppConfig.DefaultTourTimezone)
			selected, err := time.ParseInLocation("2006-01-02 15:04", strings.TrimSpace(input.PreferredDate)+" "+strings.TrimSpace(input.PreferredTime), loc)
			if err != nil {
				fields["preferred_time"] = "Invalid time"
			} else if !selected.After(time.Now().In(loc)) {
				fields["preferred_time"] = "Selected time is in the past"
			}
		}
	}
	return fields
}

// CreateRequest runs the full intake pipeline: deny-list gate, field
// validation, availability check, pricing, persistence, and the customer
// acknowledgement plus admin notifications.
func (s *DefaultBookingService) CreateRequest(ctx context.Context, input IntakeInput) (*IntakeResult, error) {
	logger := utils.GetLogger()

	blocked, err := s.Blacklist.IsBlocked(input.Email, input.Phone, input.ClientIP)
	if err != nil {
		return nil, NewPersistenceError(err)
	}
	if blocked {
		return nil, NewBlockedError()
	}

	if fields := s.validateIntake(&input); len(fields) > 0 {
		return nil, NewValidationError(fields)
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	paymentMethod := NormalizePaymentMethod(input.PaymentMethod)
	experience := NormalizeExperience(input.Experience)
	hours, _ := strconv.ParseFloat(strings.TrimSpace(input.DurationHours), 64)
	rateKey := strings.ToLower(strings.TrimSpace(input.DurationRateKey))
	if rateKey != "social" {
		rateKey = ""
	}

	tourTimezone := strings.TrimSpace(input.TourTimezone)
	if tourTimezone == "" {
		tourTimezone = config.AppConfig.DefaultTourTimezone
	}

	availabilityCfg, err := s.Availability.Get()
	if err != nil {
		return nil, NewPersistenceError(err)
	}
	if err := CheckAvailability(&availabilityCfg, SlotQuery{
		City:         input.City,
		Date:         strings.TrimSpace(input.PreferredDate),
		Time:         strings.TrimSpace(input.PreferredTime),
		Hours:        hours,
		TourTimezone: tourTimezone,
	}); err != nil {
		return nil, err
	}

	quote := BuildQuote(hours, rateKey, experience, paymentMethod, currency)
	paymentLink := BuildPaymentDetails(paymentMethod, quote.DepositAmount)

	followupPhone := truthy(input.ContactFollowupPhone)
	followupEmail := truthy(input.ContactFollowupEmail)
	contactFollowup := "no"
	var channels []string
	if followupPhone {
		channels = append(channels, "phone")
	}
	if followupEmail {
		channels = append(channels, "email")
	}
	if len(channels) > 0 {
		contactFollowup = "yes"
	}
	var followupCities []string
	if contactFollowup == "yes" && strings.TrimSpace(input.City) != "" {
		followupCities = append(followupCities, strings.TrimSpace(input.City))
	}
	followupCities = append(followupCities, ParseCityList(input.FollowupPhoneOtherCities)...)
	followupCities = append(followupCities, ParseCityList(input.FollowupEmailOtherCities)...)
	followupCities = dedupeCities(followupCities)

	now := time.Now().UTC().Format(time.RFC3339)
	req := &models.BookingRequest{
		ID:            newRequestID(),
		Status:        models.StatusPending,
		CreatedAt:     now,
		DepositAmount: quote.DepositAmount,

		Name:           strings.TrimSpace(input.Name),
		Email:          strings.TrimSpace(input.Email),
		Phone:          strings.TrimSpace(input.Phone),
		ClientIP:       input.ClientIP,
		City:           strings.TrimSpace(input.City),
		Currency:       currency,
		BookingType:    strings.ToLower(strings.TrimSpace(input.BookingType)),
		OutcallAddress: strings.TrimSpace(input.OutcallAddress),
		Experience:     experience,
		DurationLabel:  strings.TrimSpace(input.DurationLabel),
		DurationHours:  strings.TrimSpace(input.DurationHours),
		PreferredDate:  strings.TrimSpace(input.PreferredDate),
		PreferredTime:  strings.TrimSpace(input.PreferredTime),
		ClientTimezone: strings.TrimSpace(input.ClientTimezone),
		TourTimezone:   tourTimezone,
		Notes:          strings.TrimSpace(input.Notes),

		ContactFollowup:        contactFollowup,
		ContactChannel:         strings.Join(channels, ","),
		ContactFollowupPhone:   yesNo(followupPhone),
		ContactFollowupEmail:   yesNo(followupEmail),
		FollowupPhoneCitiesRaw: strings.TrimSpace(input.FollowupPhoneOtherCities),
		FollowupEmailCitiesRaw: strings.TrimSpace(input.FollowupEmailOtherCities),
		FollowupCities:         followupCities,

		DepositConfirmed:  truthy(input.DepositConfirm),
		PaymentMethod:     paymentMethod,
		DepositCurrency:   quote.DepositCurrency,
		DepositPercent:    strconv.FormatFloat(quote.DepositPercent, 'f', -1, 64),
		BaseRate:          quote.BaseRate,
		ServiceAddon:      quote.ServiceAddon,
		ServiceAddonLabel: quote.ServiceAddonLabel,
		TotalRate:         quote.TotalRate,
		PaymentLink:       paymentLink,

		History: []models.HistoryEntry{{
			At:      now,
			Action:  "created",
			Source:  "booking_form",
			Summary: "Request created",
		}},
	}

	if req.Email != "" {
		body := BuildIntakeCustomerEmail(req, quote)
		if s.Mailer.SendCustomer(req.Email, "", body) {
			req.PaymentEmailSentAt = time.Now().UTC().Format(time.RFC3339)
		}
	}

	if err := s.Requests.Append(*req); err != nil {
		return nil, NewPersistenceError(err)
	}
	logger.Info("booking request created",
		zap.String("id", req.ID),
		zap.String("city", req.City),
		zap.String("date", req.PreferredDate),
		zap.Int("deposit", req.DepositAmount))

	adminBody := BuildIntakeAdminEmail(req)
	if tourCity, err := s.Touring.CityForDate(req.PreferredDate); err == nil && tourCity != "" &&
		NormalizeCityName(tourCity) != NormalizeCityName(req.City) {
		adminBody += "\nNote: the tour schedule has " + tourCity + " on " + req.PreferredDate + "."
	}
	s.Mailer.SendAdmin("New booking request", adminBody)
	if s.Push != nil {
		if err := s.Push.Broadcast(ctx, "New booking request", PushSummary(req, "Open the admin panel to review."), PushData(req)); err != nil {
			logger.Warn("intake push failed", zap.Error(err))
		}
	}

	result := &IntakeResult{
		Request:          req,
		PaymentLink:      paymentLink,
		PaymentLinkIsURL: IsPaymentURL(paymentLink),
		EmailSent:        req.PaymentEmailSentAt != "",
	}
	if quote.DepositAmount > 0 {
		result.PaymentPage = "/pay?id=" + url.QueryEscape(req.ID)
	}
	return result, nil
}

func dedupeCities(cities []string) []string {
	seen := map[string]bool{}
	var unique []string
	for _, city := range cities {
		key := NormalizeCityName(city)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, strings.TrimSpace(city))
	}
	return unique
}
