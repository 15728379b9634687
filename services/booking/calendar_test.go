package booking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookly/config"
)

func TestBuildCalendarTimesConvertsToUTC(t *testing.T) {
	req := pendingRequest("req_1")
	// 2030-06-01 14:00 America/Toronto is EDT (UTC-4).
	times := BuildCalendarTimes(&req)
	require.NotNil(t, times)
	assert.Equal(t, "2030-06-01T18:00:00Z", times.StartISO)
	assert.Equal(t, "2030-06-01T19:00:00Z", times.EndISO)
	assert.Equal(t, "20300601T180000Z", times.StartCompact)
	assert.Equal(t, "20300601T190000Z", times.EndCompact)
}

func TestBuildCalendarTimesRejectsIncomplete(t *testing.T) {
	req := pendingRequest("req_1")
	req.PreferredTime = ""
	assert.Nil(t, BuildCalendarTimes(&req))

	req = pendingRequest("req_1")
	req.DurationHours = "0"
	assert.Nil(t, BuildCalendarTimes(&req))
}

func TestBuildCalendarLinks(t *testing.T) {
	saved := config.AppConfig
	t.Cleanup(func() { config.AppConfig = saved })
	config.AppConfig.SiteURL = "https://booking.example.com/"

	req := pendingRequest("req_1")
	links := BuildCalendarLinks(&req)

	assert.Contains(t, links.Google, "https://www.google.com/calendar/render?action=TEMPLATE")
	assert.Contains(t, links.Google, "20300601T180000Z%2F20300601T190000Z")
	assert.Contains(t, links.Outlook, "outlook.live.com/calendar")
	assert.Contains(t, links.Outlook, "startdt=2030-06-01T18%3A00%3A00Z")
	assert.Equal(t, "https://booking.example.com/api/bookings/req_1/calendar.ics", links.ICS)
}

func TestBuildICS(t *testing.T) {
	req := pendingRequest("req_1")
	ics := BuildICS(&req)
	require.NotEmpty(t, ics)

	assert.True(t, strings.HasPrefix(ics, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(ics, "END:VCALENDAR\r\n"))
	assert.Contains(t, ics, "DTSTART:20300601T180000Z")
	assert.Contains(t, ics, "DTEND:20300601T190000Z")
	assert.Contains(t, ics, "SUMMARY:Booking Confirmation")
	assert.Contains(t, ics, "UID:req_1@")
	assert.Contains(t, ics, "LOCATION:Toronto - Incall")

	req.PreferredDate = ""
	assert.Empty(t, BuildICS(&req))
}

func TestBuildBookingBlocks(t *testing.T) {
	req := pendingRequest("req_1")
	req.DurationHours = "1.5"
	blocks := BuildBookingBlocks(&req, "accepted")
	require.Len(t, blocks, 3)

	assert.Equal(t, "2030-06-01", blocks[0].Date)
	assert.Equal(t, "14:00", blocks[0].Start)
	assert.Equal(t, "14:30", blocks[0].End)
	assert.Equal(t, "15:00", blocks[2].Start)
	assert.Equal(t, "15:30", blocks[2].End)
	for _, b := range blocks {
		assert.Equal(t, "booking", b.Kind)
		assert.Equal(t, "req_1", b.BookingID)
		assert.Equal(t, "accepted", b.BookingStatus)
		assert.Equal(t, "Alex", b.Label)
		assert.Equal(t, "Toronto", b.City)
	}
}

func TestBuildBookingBlocksTrimsFinalGranule(t *testing.T) {
	req := pendingRequest("req_1")
	req.DurationHours = "0.75"
	blocks := BuildBookingBlocks(&req, "paid")
	require.Len(t, blocks, 2)
	assert.Equal(t, "14:30", blocks[1].Start)
	assert.Equal(t, "14:45", blocks[1].End)
	assert.Equal(t, "paid", blocks[1].BookingStatus)
}

func TestBuildBookingBlocksRejectsUnusable(t *testing.T) {
	req := pendingRequest("req_1")
	req.DurationHours = "abc"
	assert.Nil(t, BuildBookingBlocks(&req, "accepted"))
}
