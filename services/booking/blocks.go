package booking

import (
	"math"
	"time"

	"bookly/models"
)

// BuildBookingBlocks converts a confirmed booking into the 30-minute
// calendar granules that keep the availability checker and the admin
// calendar in sync. The final granule is trimmed so the block set covers
// exactly the booked span. Returns nil when the request carries no usable
// date, time, or duration.
func BuildBookingBlocks(req *models.BookingRequest, status string) []models.BlockedEntry {
	hours := req.Hours()
	if hours <= 0 || req.PreferredDate == "" || req.PreferredTime == "" {
		return nil
	}
	loc := ResolveTourTimezone(req.TourTimezone, "")
	start, err := time.ParseInLocation("2006-01-02 15:04", req.PreferredDate+" "+req.PreferredTime, loc)
	if err != nil {
		return nil
	}
	end := start.Add(time.Duration(math.Round(hours*60)) * time.Minute)

	var blocks []models.BlockedEntry
	SplitIntoSubBlocks(start, end, 30*time.Minute)(func(sub SubBlock) bool {
		blocks = append(blocks, models.BlockedEntry{
			Date:          sub.Start.Format("2006-01-02"),
			Start:         sub.Start.Format("15:04"),
			End:           sub.End.Format("15:04"),
			Kind:          "booking",
			BookingID:     req.ID,
			BookingStatus: status,
			BookingType:   req.BookingType,
			Label:         req.FirstName(),
			City:          req.City,
		})
		return true
	})
	return blocks
}
