package booking

import (
	"math"
	"time"

	"bookly/models"
)

// SlotQuery describes the window a customer is asking for, expressed in
// the tour timezone.
type SlotQuery struct {
	City         string
	Date         string
	Time         string
	Hours        float64
	TourTimezone string
}

// CityScheduleFor finds the city schedule entry covering city on dateKey.
// Matching is by normalized city name and an inclusive date range; the
// first matching entry wins. Returns nil when nothing applies.
func CityScheduleFor(cfg *models.AvailabilityConfig, city, dateKey string) *models.CitySchedule {
	if !ValidDateKey(dateKey) {
		return nil
	}
	target := NormalizeCityName(city)
	if target == "" {
		return nil
	}
	for i := range cfg.CitySchedules {
		entry := &cfg.CitySchedules[i]
		if NormalizeCityName(entry.City) != target {
			continue
		}
		if !ValidDateKey(entry.Start) || !ValidDateKey(entry.End) {
			continue
		}
		if entry.Start <= dateKey && dateKey <= entry.End {
			return entry
		}
	}
	return nil
}

// EffectiveWindow resolves the timezone and buffer a query is judged
// against. A matching city schedule overrides both; the buffer from a city
// schedule is clamped to 0-240 minutes. Fly-me-to-you bookings never match
// a city schedule.
func EffectiveWindow(cfg *models.AvailabilityConfig, q SlotQuery) (tz string, buffer int) {
	tz = q.TourTimezone
	if tz == "" {
		tz = cfg.TourTimezone
	}
	buffer = cfg.BufferMinutes
	if q.City == "" || q.Date == "" || IsFlyMeCity(q.City) {
		return tz, buffer
	}
	schedule := CityScheduleFor(cfg, q.City, q.Date)
	if schedule == nil {
		return tz, buffer
	}
	cityBuffer := buffer
	if schedule.BufferMinutes != nil {
		cityBuffer = *schedule.BufferMinutes
	}
	buffer = cityBuffer
	if buffer < 0 {
		buffer = 0
	}
	if buffer > 240 {
		buffer = 240
	}
	if schedule.Timezone != "" {
		tz = schedule.Timezone
	}
	return tz, buffer
}

// CheckAvailability decides whether the queried window can be booked
// against the current availability config. It returns a ServiceError with
// CodeConflict when the slot collides with the closed mode, a recurring
// weekly block, or an ad-hoc blocked entry; nil means bookable.
//
// Windows are evaluated within the preferred date only: the requested
// span plus buffer is clamped to that day's minutes before overlap
// checks, so a session running past midnight is not tested against the
// following day.
func CheckAvailability(cfg *models.AvailabilityConfig, q SlotQuery) error {
	if cfg.Closed() {
		return NewConflictError("Currently unavailable")
	}
	if q.Hours <= 0 || q.Date == "" || q.Time == "" {
		return nil
	}

	tz, buffer := EffectiveWindow(cfg, q)
	loc := ResolveTourTimezone(tz, cfg.TourTimezone)
	start, err := time.ParseInLocation("2006-01-02 15:04", q.Date+" "+q.Time, loc)
	if err != nil {
		return nil
	}

	startMinutes := start.Hour()*60 + start.Minute()
	endMinutes := startMinutes + int(math.Round(q.Hours*60))
	windowStart, windowEnd := WidenByBuffer(startMinutes, endMinutes, buffer)
	dateKey := start.Format("2006-01-02")
	weekday := int(start.Weekday())

	for _, block := range cfg.Recurring {
		if !containsDay(block.Days, weekday) {
			continue
		}
		if block.AllDay {
			return NewConflictError("Selected time is unavailable")
		}
		blockStart, err := ParseClock(block.Start)
		if err != nil {
			continue
		}
		blockEnd, err := ParseClock(block.End)
		if err != nil {
			continue
		}
		if Overlaps(windowStart, windowEnd, blockStart, blockEnd) {
			return NewConflictError("Selected time is unavailable")
		}
	}

	for _, entry := range cfg.Blocked {
		if entry.Date != dateKey {
			continue
		}
		blockStart, err := ParseClock(entry.Start)
		if err != nil {
			continue
		}
		blockEnd, err := ParseClock(entry.End)
		if err != nil {
			continue
		}
		if Overlaps(windowStart, windowEnd, blockStart, blockEnd) {
			return NewConflictError("Selected time is unavailable")
		}
	}

	return nil
}

func containsDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
