package booking

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"bookly/models"
	"bookly/utils"
)

func applyField(target *string, value *string) {
	if value != nil {
		*target = strings.TrimSpace(*value)
	}
}

// trimTrailingZeros renders a duration like the form does: "1.50" -> "1.5",
// "2.00" -> "2".
func trimTrailingZeros(hours float64) string {
	formatted := strconv.FormatFloat(hours, 'f', 2, 64)
	formatted = strings.TrimRight(formatted, "0")
	return strings.TrimRight(formatted, ".")
}

// EditRequest applies an admin edit to an active request, records the
// field diff in history, sends the change notifications, and rebuilds the
// booking's calendar blocks when it is confirmed. Emails go out only when
// something actually changed.
func (s *DefaultBookingService) EditRequest(ctx context.Context, input EditInput) (*EditResult, error) {
	logger := utils.GetLogger()
	if strings.TrimSpace(input.ID) == "" {
		return nil, NewValidationError(map[string]string{"id": "Missing id"})
	}

	active, err := s.Requests.Active()
	if err != nil {
		return nil, NewPersistenceError(err)
	}
	targetIndex := -1
	for i := range active {
		if active[i].ID == input.ID {
			targetIndex = i
			break
		}
	}
	if targetIndex == -1 {
		return nil, NewNotFoundError("Request not found")
	}

	req := active[targetIndex]
	original := req

	applyField(&req.Name, input.Name)
	applyField(&req.Email, input.Email)
	applyField(&req.Phone, input.Phone)
	applyField(&req.City, input.City)
	if input.BookingType != nil {
		req.BookingType = strings.ToLower(strings.TrimSpace(*input.BookingType))
	}
	applyField(&req.OutcallAddress, input.OutcallAddress)
	if input.Experience != nil {
		req.Experience = NormalizeExperience(*input.Experience)
	}
	applyField(&req.DurationLabel, input.DurationLabel)
	applyField(&req.DurationHours, input.DurationHours)
	applyField(&req.PreferredDate, input.PreferredDate)
	applyField(&req.PreferredTime, input.PreferredTime)
	applyField(&req.Notes, input.Notes)

	fields := map[string]string{}
	if req.Name == "" {
		fields["name"] = "Required"
	}
	if !ValidEmail(req.Email) {
		fields["email"] = "Invalid email"
	}
	if !ValidInternationalPhone(req.Phone) {
		fields["phone"] = "Use international format: +countrycode number"
	}
	if req.City == "" {
		fields["city"] = "Required"
	}
	if !allowedBookingTypes[req.BookingType] {
		fields["booking_type"] = "Invalid booking type"
	}
	if req.BookingType == "outcall" && req.OutcallAddress == "" {
		fields["outcall_address"] = "Required for outcall"
	}
	if !ValidDateKey(req.PreferredDate) {
		fields["preferred_date"] = "Invalid date"
	}
	if !ValidStrictClock(req.PreferredTime) {
		fields["preferred_time"] = "Invalid time"
	}
	hours := req.Hours()
	if hours <= 0 || hours > 24 {
		fields["duration_hours"] = "Invalid duration"
	}
	if req.DurationLabel == "" {
		fields["duration_label"] = "Required"
	}
	if len(fields) > 0 {
		return nil, NewValidationError(fields)
	}

	if req.BookingType != "outcall" {
		req.OutcallAddress = ""
	}
	req.DurationHours = trimTrailingZeros(hours)

	tracked := map[string][2]string{
		"name":            {original.Name, req.Name},
		"email":           {original.Email, req.Email},
		"phone":           {original.Phone, req.Phone},
		"city":            {original.City, req.City},
		"booking_type":    {original.BookingType, req.BookingType},
		"outcall_address": {original.OutcallAddress, req.OutcallAddress},
		"experience":      {original.Experience, req.Experience},
		"duration_label":  {original.DurationLabel, req.DurationLabel},
		"duration_hours":  {original.DurationHours, req.DurationHours},
		"preferred_date":  {original.PreferredDate, req.PreferredDate},
		"preferred_time":  {original.PreferredTime, req.PreferredTime},
		"notes":           {original.Notes, req.Notes},
	}
	changes := map[string]models.FieldChange{}
	for field, pair := range tracked {
		before := strings.TrimSpace(pair[0])
		after := strings.TrimSpace(pair[1])
		if before != after {
			changes[field] = models.FieldChange{From: before, To: after}
		}
	}

	if len(changes) > 0 {
		req.History = append(req.History, models.HistoryEntry{
			At:      time.Now().UTC().Format(time.RFC3339),
			Action:  "edited",
			Source:  "admin_edit",
			Summary: "Appointment details edited",
			Changes: changes,
		})
	}
	req.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	result := &EditResult{}
	if len(changes) > 0 {
		if req.Email != "" {
			if s.Mailer.SendCustomer(req.Email, "Booking updated", BuildUpdateCustomerEmail(&req, changes)) {
				req.EditedEmailSentAt = time.Now().UTC().Format(time.RFC3339)
				result.EmailSent = true
			}
		}
		if s.Mailer.SendAdmin("Booking updated (admin)", BuildUpdateAdminEmail(&req, changes)) {
			req.EditedAdminEmailSentAt = time.Now().UTC().Format(time.RFC3339)
			result.AdminEmailSent = true
		}
	}

	active[targetIndex] = req
	if err := s.Requests.SaveActive(active); err != nil {
		return nil, NewPersistenceError(err)
	}

	var blocks []models.BlockedEntry
	if req.Confirmed() {
		blockStatus := models.StatusAccepted
		if req.PaymentStatus == models.PaymentStatusPaid {
			blockStatus = "paid"
		}
		blocks = BuildBookingBlocks(&req, blockStatus)
	}
	if err := s.Availability.ReplaceBookingBlocks(req.ID, blocks); err != nil {
		return nil, NewPersistenceError(err)
	}

	logger.Info("booking request edited",
		zap.String("id", req.ID),
		zap.Int("changed_fields", len(changes)))

	result.Request = &req
	return result, nil
}
