package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookly/models"
)

func pendingRequest(id string) models.BookingRequest {
	return models.BookingRequest{
		ID:            id,
		Status:        models.StatusPending,
		Name:          "Alex Doe",
		Email:         "alex@example.com",
		Phone:         "+14165551234",
		City:          "Toronto",
		Currency:      "CAD",
		BookingType:   "incall",
		Experience:    "gfe",
		DurationLabel: "1 hour",
		DurationHours: "1",
		PreferredDate: "2030-06-01",
		PreferredTime: "14:00",
		TourTimezone:  "America/Toronto",
		PaymentMethod: "interac",
		DepositAmount: 140,
		TotalRate:     700,
		CreatedAt:     "2030-05-01T12:00:00Z",
	}
}

func TestUpdateStatusAccepted(t *testing.T) {
	svc, requests, avail, mailer, push := newTestService()
	requests.active = []models.BookingRequest{pendingRequest("req_1")}

	saved, err := svc.UpdateStatus(context.Background(), StatusInput{
		ID:          "req_1",
		Status:      "accepted",
		PaymentLink: "https://paypal.me/example/140?currencyCode=CAD",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, saved.Status)
	assert.Equal(t, "https://paypal.me/example/140?currencyCode=CAD", saved.PaymentLink)
	assert.NotEmpty(t, saved.AcceptedEmailSentAt)
	assert.NotEmpty(t, saved.AcceptedAdminNotifiedAt)
	require.Len(t, mailer.customer, 1)
	assert.Equal(t, "alex@example.com", mailer.customer[0].To)
	require.Len(t, mailer.admin, 1)

	// Calendar blocks regenerated for the confirmed booking: 1h at
	// 30-minute granularity.
	assert.Equal(t, "req_1", avail.replacedID)
	require.Len(t, avail.replacedWith, 2)
	assert.Equal(t, "14:00", avail.replacedWith[0].Start)
	assert.Equal(t, "14:30", avail.replacedWith[0].End)
	assert.Equal(t, "accepted", avail.replacedWith[0].BookingStatus)
	assert.Equal(t, "Alex", avail.replacedWith[0].Label)

	require.Len(t, push.sent, 1)
	assert.Equal(t, "Booking confirmed", push.sent[0].Title)
}

func TestUpdateStatusAcceptedEmailSentOnlyOnce(t *testing.T) {
	svc, requests, _, mailer, _ := newTestService()
	requests.active = []models.BookingRequest{pendingRequest("req_1")}

	_, err := svc.UpdateStatus(context.Background(), StatusInput{ID: "req_1", Status: "accepted"})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), StatusInput{ID: "req_1", Status: "accepted"})
	require.NoError(t, err)

	// Sentinel gates the second send.
	assert.Len(t, mailer.customer, 1)
	assert.Len(t, mailer.admin, 1)
}

func TestUpdateStatusAcceptedSentinelNotStampedOnMailFailure(t *testing.T) {
	svc, requests, _, mailer, _ := newTestService()
	mailer.fail = true
	requests.active = []models.BookingRequest{pendingRequest("req_1")}

	saved, err := svc.UpdateStatus(context.Background(), StatusInput{ID: "req_1", Status: "accepted"})
	require.NoError(t, err)
	assert.Empty(t, saved.AcceptedEmailSentAt)

	// A retry after the mailer recovers delivers the email.
	mailer.fail = false
	saved, err = svc.UpdateStatus(context.Background(), StatusInput{ID: "req_1", Status: "accepted"})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.AcceptedEmailSentAt)
	assert.Len(t, mailer.customer, 1)
}

func TestUpdateStatusDeclinedArchives(t *testing.T) {
	svc, requests, avail, mailer, _ := newTestService()
	requests.active = []models.BookingRequest{pendingRequest("req_1")}

	saved, err := svc.UpdateStatus(context.Background(), StatusInput{
		ID:     "req_1",
		Status: "declined",
		Reason: "schedule conflict",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeclined, saved.Status)
	assert.Equal(t, "schedule conflict", saved.DeclineReason)

	assert.Empty(t, requests.active)
	require.Len(t, requests.archived, 1)
	assert.Equal(t, "req_1", requests.archived[0].ID)

	require.Len(t, mailer.customer, 1)
	assert.Equal(t, "Booking update", mailer.customer[0].Subject)

	// A declined booking holds no calendar time.
	assert.Equal(t, 1, avail.replaceCalled)
	assert.Empty(t, avail.replacedWith)
}

func TestUpdateStatusBlacklistedArchivesAndRecordsEntry(t *testing.T) {
	svc, requests, _, _, _ := newTestService()
	deny := &fakeBlacklistRepo{}
	svc.Blacklist = deny
	requests.active = []models.BookingRequest{pendingRequest("req_1")}

	saved, err := svc.UpdateStatus(context.Background(), StatusInput{
		ID:     "req_1",
		Status: "blacklisted",
		Reason: "no-show",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusBlacklisted, saved.Status)
	assert.Empty(t, requests.active)
	require.Len(t, requests.archived, 1)

	require.Len(t, deny.entries, 1)
	assert.Equal(t, "alex@example.com", deny.entries[0].Email)
	assert.Equal(t, "no-show", deny.entries[0].Reason)
	assert.Equal(t, "req_1", deny.entries[0].RequestID)
}

func TestUpdateStatusPaidStoredAsAccepted(t *testing.T) {
	svc, requests, avail, mailer, _ := newTestService()
	req := pendingRequest("req_1")
	req.Status = models.StatusAccepted
	requests.active = []models.BookingRequest{req}

	saved, err := svc.UpdateStatus(context.Background(), StatusInput{ID: "req_1", Status: "paid"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, saved.Status)
	assert.Equal(t, models.PaymentStatusPaid, saved.PaymentStatus)
	assert.NotEmpty(t, saved.PaidEmailSentAt)

	require.Len(t, mailer.customer, 1)
	assert.Equal(t, "Payment received", mailer.customer[0].Subject)

	// Blocks carry the paid marker.
	require.NotEmpty(t, avail.replacedWith)
	assert.Equal(t, "paid", avail.replacedWith[0].BookingStatus)
}

func TestUpdateStatusMaybeClearsPaymentStatus(t *testing.T) {
	svc, requests, avail, _, push := newTestService()
	req := pendingRequest("req_1")
	req.Status = models.StatusAccepted
	req.PaymentStatus = models.PaymentStatusPaid
	requests.active = []models.BookingRequest{req}

	saved, err := svc.UpdateStatus(context.Background(), StatusInput{ID: "req_1", Status: "maybe", Reason: "waiting on deposit"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusMaybe, saved.Status)
	assert.Empty(t, saved.PaymentStatus)
	assert.Equal(t, "waiting on deposit", saved.MaybeReason)

	// No longer confirmed, so its calendar blocks are purged.
	assert.Empty(t, avail.replacedWith)
	assert.Empty(t, push.sent)
}

func TestUpdateStatusUnknownID(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	_, err := svc.UpdateStatus(context.Background(), StatusInput{ID: "req_missing", Status: "accepted"})
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, err.(*ServiceError).Code)
}

func TestUpdateStatusInvalidStatus(t *testing.T) {
	svc, requests, _, _, _ := newTestService()
	requests.active = []models.BookingRequest{pendingRequest("req_1")}
	_, err := svc.UpdateStatus(context.Background(), StatusInput{ID: "req_1", Status: "archived"})
	require.Error(t, err)
	assert.Equal(t, CodeValidation, err.(*ServiceError).Code)
}

func TestUpdateStatusAppendsHistory(t *testing.T) {
	svc, requests, _, _, _ := newTestService()
	requests.active = []models.BookingRequest{pendingRequest("req_1")}

	saved, err := svc.UpdateStatus(context.Background(), StatusInput{ID: "req_1", Status: "maybe"})
	require.NoError(t, err)
	require.NotEmpty(t, saved.History)
	last := saved.History[len(saved.History)-1]
	assert.Equal(t, "status", last.Action)
	assert.Equal(t, "admin_status", last.Source)
	assert.Equal(t, "Status set to maybe", last.Summary)
}
