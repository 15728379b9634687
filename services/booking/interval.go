package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 1440

// ParseClock converts an "H:MM" / "HH:MM" value to minutes since
// midnight. It rejects anything outside a 24-hour day.
func ParseClock(value string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid time %q", value)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid time %q", value)
	}
	return hour*60 + minute, nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Overlaps reports whether the half-open windows [aStart, aEnd) and
// [bStart, bEnd), in minutes since midnight, intersect.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// WidenByBuffer pads a window by bufferMinutes on both sides, clamped to
// a single calendar day.
func WidenByBuffer(start, end, bufferMinutes int) (int, int) {
	wideStart := start - bufferMinutes
	if wideStart < 0 {
		wideStart = 0
	}
	wideEnd := end + bufferMinutes
	if wideEnd > minutesPerDay {
		wideEnd = minutesPerDay
	}
	return wideStart, wideEnd
}

// SubBlock is one calendar-blocking granule of a booking window.
type SubBlock struct {
	Start time.Time
	End   time.Time
}

// SplitIntoSubBlocks covers [start, end) with consecutive sub-intervals
// of at most maxSpan, the last clipped to end. The returned function is a
// restartable iterator: each call to the outer function yields a fresh
// sequence.
func SplitIntoSubBlocks(start, end time.Time, maxSpan time.Duration) func(yield func(SubBlock) bool) {
	return func(yield func(SubBlock) bool) {
		for cursor := start; cursor.Before(end); {
			next := cursor.Add(maxSpan)
			if next.After(end) {
				next = end
			}
			if !yield(SubBlock{Start: cursor, End: next}) {
				return
			}
			cursor = next
		}
	}
}

// ResolveTourTimezone loads a timezone by name, falling back to the
// default and finally UTC. Booking math always runs in the tour
// timezone; conversion to UTC happens only at the calendar-export edge.
func ResolveTourTimezone(name, fallback string) *time.Location {
	for _, candidate := range []string{strings.TrimSpace(name), strings.TrimSpace(fallback)} {
		if candidate == "" {
			continue
		}
		if loc, err := time.LoadLocation(candidate); err == nil {
			return loc
		}
	}
	return time.UTC
}
