package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookly/models"
)

func strPtr(s string) *string { return &s }

func TestEditRequestTracksChanges(t *testing.T) {
	svc, requests, _, mailer, _ := newTestService()
	requests.active = []models.BookingRequest{pendingRequest("req_1")}

	result, err := svc.EditRequest(context.Background(), EditInput{
		ID:            "req_1",
		City:          strPtr("Montreal"),
		PreferredTime: strPtr("16:00"),
	})
	require.NoError(t, err)
	req := result.Request

	assert.Equal(t, "Montreal", req.City)
	assert.Equal(t, "16:00", req.PreferredTime)

	require.NotEmpty(t, req.History)
	last := req.History[len(req.History)-1]
	assert.Equal(t, "edited", last.Action)
	assert.Equal(t, "admin_edit", last.Source)
	require.Len(t, last.Changes, 2)
	assert.Equal(t, models.FieldChange{From: "Toronto", To: "Montreal"}, last.Changes["city"])
	assert.Equal(t, models.FieldChange{From: "14:00", To: "16:00"}, last.Changes["preferred_time"])

	assert.True(t, result.EmailSent)
	assert.True(t, result.AdminEmailSent)
	require.Len(t, mailer.customer, 1)
	assert.Equal(t, "Booking updated", mailer.customer[0].Subject)
	assert.NotEmpty(t, req.EditedEmailSentAt)
}

func TestEditRequestNoChangesSendsNothing(t *testing.T) {
	svc, requests, _, mailer, _ := newTestService()
	requests.active = []models.BookingRequest{pendingRequest("req_1")}

	result, err := svc.EditRequest(context.Background(), EditInput{
		ID:   "req_1",
		City: strPtr("Toronto"),
	})
	require.NoError(t, err)
	assert.False(t, result.EmailSent)
	assert.False(t, result.AdminEmailSent)
	assert.Empty(t, mailer.customer)
	assert.Empty(t, mailer.admin)
	last := result.Request.History
	assert.Empty(t, last)
}

func TestEditRequestValidation(t *testing.T) {
	svc, requests, _, _, _ := newTestService()
	requests.active = []models.BookingRequest{pendingRequest("req_1")}

	_, err := svc.EditRequest(context.Background(), EditInput{
		ID:    "req_1",
		Email: strPtr("not-an-email"),
	})
	require.Error(t, err)
	svcErr := err.(*ServiceError)
	assert.Equal(t, CodeValidation, svcErr.Code)
	assert.Contains(t, svcErr.Fields, "email")

	_, err = svc.EditRequest(context.Background(), EditInput{
		ID:            "req_1",
		PreferredTime: strPtr("9:30"), // strict HH:MM required on edit
	})
	require.Error(t, err)
	assert.Contains(t, err.(*ServiceError).Fields, "preferred_time")

	_, err = svc.EditRequest(context.Background(), EditInput{
		ID:            "req_1",
		DurationHours: strPtr("25"),
	})
	require.Error(t, err)
	assert.Contains(t, err.(*ServiceError).Fields, "duration_hours")
}

func TestEditRequestOutcallAddressRules(t *testing.T) {
	svc, requests, _, _, _ := newTestService()
	req := pendingRequest("req_1")
	req.BookingType = "outcall"
	req.OutcallAddress = "100 Main St"
	requests.active = []models.BookingRequest{req}

	// Switching to incall clears the address.
	result, err := svc.EditRequest(context.Background(), EditInput{
		ID:          "req_1",
		BookingType: strPtr("incall"),
	})
	require.NoError(t, err)
	assert.Empty(t, result.Request.OutcallAddress)

	// Switching back to outcall without an address is rejected.
	_, err = svc.EditRequest(context.Background(), EditInput{
		ID:          "req_1",
		BookingType: strPtr("outcall"),
	})
	require.Error(t, err)
	assert.Contains(t, err.(*ServiceError).Fields, "outcall_address")
}

func TestEditRequestNormalizesDuration(t *testing.T) {
	svc, requests, _, _, _ := newTestService()
	requests.active = []models.BookingRequest{pendingRequest("req_1")}

	result, err := svc.EditRequest(context.Background(), EditInput{
		ID:            "req_1",
		DurationHours: strPtr("1.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "1.5", result.Request.DurationHours)
}

func TestEditRequestRebuildsBlocksWhenConfirmed(t *testing.T) {
	svc, requests, avail, _, _ := newTestService()
	req := pendingRequest("req_1")
	req.Status = models.StatusAccepted
	requests.active = []models.BookingRequest{req}

	_, err := svc.EditRequest(context.Background(), EditInput{
		ID:            "req_1",
		PreferredTime: strPtr("18:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "req_1", avail.replacedID)
	require.Len(t, avail.replacedWith, 2)
	assert.Equal(t, "18:00", avail.replacedWith[0].Start)
}

func TestEditRequestUnknownID(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	_, err := svc.EditRequest(context.Background(), EditInput{ID: "missing"})
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, err.(*ServiceError).Code)
}
