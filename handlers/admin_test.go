package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookly/models"
)

func TestDedupeRequestsByIDKeepsNewest(t *testing.T) {
	merged := dedupeRequests([]models.BookingRequest{
		{ID: "req_1", Name: "stale", UpdatedAt: "2030-01-01T00:00:00Z"},
		{ID: "req_2", Name: "other"},
		{ID: "req_1", Name: "fresh", UpdatedAt: "2030-02-01T00:00:00Z"},
	})
	require.Len(t, merged, 2)
	assert.Equal(t, "fresh", merged[0].Name)
	assert.Equal(t, "req_2", merged[1].ID)
}

func TestDedupeRequestsCompositeFallback(t *testing.T) {
	// Legacy rows without ids collapse on email + phone digits + slot + city.
	merged := dedupeRequests([]models.BookingRequest{
		{Email: "Alex@Example.com", Phone: "+1 (416) 555-1234", PreferredDate: "2030-06-01", PreferredTime: "14:00", City: "Toronto", CreatedAt: "2030-01-01T00:00:00Z"},
		{Email: "alex@example.com", Phone: "14165551234", PreferredDate: "2030-06-01", PreferredTime: "14:00", City: "toronto", CreatedAt: "2030-01-02T00:00:00Z", Name: "kept"},
		{Email: "alex@example.com", Phone: "14165551234", PreferredDate: "2030-06-02", PreferredTime: "14:00", City: "Toronto"},
	})
	require.Len(t, merged, 2)
	assert.Equal(t, "kept", merged[0].Name)
}

func TestNormalizeTourDate(t *testing.T) {
	cases := map[string]string{
		"2030-06-01": "2030-06-01",
		"6/1/2030":   "2030-06-01",
		"06/01/2030": "2030-06-01",
		"6-1-2030":   "2030-06-01",
		"2030/6/1":   "2030-06-01",
		"  ":         "",
		"June 1":     "",
		"13/32/2030": "",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeTourDate(in), in)
	}
}

func TestNormalizeTourType(t *testing.T) {
	assert.Equal(t, "block", normalizeTourType(" Block "))
	assert.Equal(t, "tour", normalizeTourType("tour"))
	assert.Equal(t, "tour", normalizeTourType("anything"))
}

func TestSanitizeClock(t *testing.T) {
	assert.Equal(t, "09:30", sanitizeClock(" 09:30 "))
	assert.Equal(t, "", sanitizeClock("9:30"))
	assert.Equal(t, "", sanitizeClock("bogus"))
}

func TestClampBuffer(t *testing.T) {
	assert.Equal(t, 0, clampBuffer(-5))
	assert.Equal(t, 120, clampBuffer(120))
	assert.Equal(t, 240, clampBuffer(999))
}
