package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"bookly/models"
	"bookly/utils"
)

var allowedStatuses = map[string]bool{
	models.StatusPending:     true,
	models.StatusMaybe:       true,
	models.StatusAccepted:    true,
	models.StatusDeclined:    true,
	"paid":                   true,
	models.StatusCancelled:   true,
	models.StatusBlacklisted: true,
}

func appendStatusHistory(req *models.BookingRequest, action, summary string) {
	req.History = append(req.History, models.HistoryEntry{
		At:      time.Now().UTC().Format(time.RFC3339),
		Action:  action,
		Source:  "admin_status",
		Summary: summary,
	})
}

func withReason(summary, reason string) string {
	if reason == "" {
		return summary
	}
	return summary + " (" + reason + ")"
}

// UpdateStatus applies an admin status transition. Declined and
// blacklisted requests move to the archive; "paid" is stored as
// accepted + payment_status=paid. The blocked calendar is purged of the
// booking's granules and regenerated from the new state, and each
// notification fires at most once per request, guarded by its sent-at
// sentinel.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, input StatusInput) (*models.BookingRequest, error) {
	logger := utils.GetLogger()
	if input.ID == "" || input.Status == "" {
		return nil, NewValidationError(map[string]string{"id": "Missing id or status"})
	}
	if !allowedStatuses[input.Status] {
		return nil, NewValidationError(map[string]string{"status": "Invalid status"})
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

	req := &active[targetIndex]
	req.Normalize()
	now := time.Now().UTC().Format(time.RFC3339)
	reason := input.Reason
	archive := false

	switch input.Status {
	case models.StatusDeclined:
		req.Status = models.StatusDeclined
		req.DeclineReason = reason
		appendStatusHistory(req, "status", withReason("Status set to declined", reason))
		if req.Email != "" && req.DeclinedEmailSentAt == "" {
			if s.Mailer.SendCustomer(req.Email, "Booking update", BuildDeclinedEmail(req, reason)) {
				req.DeclinedEmailSentAt = time.Now().UTC().Format(time.RFC3339)
			}
		}
		archive = true

	case models.StatusBlacklisted:
		req.Status = models.StatusBlacklisted
		req.BlacklistReason = reason
		appendStatusHistory(req, "status", withReason("Status set to blacklisted", reason))
		if err := s.Blacklist.Add(models.BlacklistEntry{
			Email:     req.Email,
			Phone:     req.Phone,
			IP:        req.ClientIP,
			Name:      req.Name,
			Reason:    reason,
			RequestID: req.ID,
		}); err != nil {
			return nil, NewPersistenceError(err)
		}
		archive = true

	case models.StatusMaybe:
		req.Status = models.StatusMaybe
		req.PaymentStatus = ""
		req.MaybeReason = reason
		appendStatusHistory(req, "status", withReason("Status set to maybe", reason))

	case models.StatusAccepted:
		req.Status = models.StatusAccepted
		paymentLink := input.PaymentLink
		if paymentLink == "" {
			paymentLink = BuildPaymentDetails(req.PaymentMethod, req.DepositAmount)
		}
		if paymentLink != "" {
			req.PaymentLink = paymentLink
		}
		if req.Email != "" && req.AcceptedEmailSentAt == "" {
			if s.Mailer.SendCustomer(req.Email, "", BuildAcceptedCustomerEmail(req, paymentLink)) {
				req.AcceptedEmailSentAt = time.Now().UTC().Format(time.RFC3339)
			}
		}
		if req.AcceptedAdminNotifiedAt == "" {
			if s.Mailer.SendAdmin("Booking accepted", BuildAcceptedAdminEmail(req, paymentLink)) {
				req.AcceptedAdminNotifiedAt = time.Now().UTC().Format(time.RFC3339)
			}
		}
		appendStatusHistory(req, "status", "Status set to accepted")

	case "paid":
		// A paid request is always stored as an accepted booking so it
		// keeps blocking calendar time.
		req.Status = models.StatusAccepted
		req.PaymentStatus = models.PaymentStatusPaid
		appendStatusHistory(req, "status", "Marked as paid")
		if req.Email != "" && req.PaidEmailSentAt == "" {
			if s.Mailer.SendCustomer(req.Email, "Payment received", BuildPaidCustomerEmail(req)) {
				req.PaidEmailSentAt = time.Now().UTC().Format(time.RFC3339)
			}
		}
		if req.PaidAdminNotifiedAt == "" {
			if s.Mailer.SendAdmin("Payment received", BuildPaidAdminEmail(req)) {
				req.PaidAdminNotifiedAt = time.Now().UTC().Format(time.RFC3339)
			}
		}

	default:
		req.Status = input.Status
		if input.PaymentLink != "" {
			req.PaymentLink = input.PaymentLink
		}
		appendStatusHistory(req, "status", "Status set to "+input.Status)
	}

	req.UpdatedAt = now
	saved := *req

	if archive {
		if err := s.Requests.Archive(saved); err != nil {
			return nil, NewPersistenceError(err)
		}
		active = append(active[:targetIndex], active[targetIndex+1:]...)
	}
	if err := s.Requests.SaveActive(active); err != nil {
		return nil, NewPersistenceError(err)
	}

	var blocks []models.BlockedEntry
	if saved.Confirmed() {
		blockStatus := models.StatusAccepted
		if saved.PaymentStatus == models.PaymentStatusPaid {
			blockStatus = "paid"
		}
		blocks = BuildBookingBlocks(&saved, blockStatus)
	}
	if err := s.Availability.ReplaceBookingBlocks(saved.ID, blocks); err != nil {
		return nil, NewPersistenceError(err)
	}

	logger.Info("booking status updated",
		zap.String("id", saved.ID),
		zap.String("status", saved.Status),
		zap.String("payment_status", saved.PaymentStatus),
		zap.Int("calendar_blocks", len(blocks)))

	if saved.Confirmed() && s.Push != nil {
		if err := s.Push.Broadcast(ctx, "Booking confirmed", PushSummary(&saved, "Appointment confirmed"), PushData(&saved)); err != nil {
			logger.Warn("confirmation push failed", zap.Error(err))
		}
	}

	return &saved, nil
}
