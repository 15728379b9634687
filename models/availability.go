package models

// BlockedEntry is one blocked interval on the availability calendar.
// Admin-created ad-hoc blocks carry only date/start/end; entries derived
// from a confirmed booking also carry the booking metadata.
type BlockedEntry struct {
	Date          string `json:"date"`  // "2006-01-02"
	Start         string `json:"start"` // "HH:MM", 24-hour
	End           string `json:"end"`
	Kind          string `json:"kind,omitempty"` // "booking" for derived entries
	BookingID     string `json:"booking_id,omitempty"`
	BookingStatus string `json:"booking_status,omitempty"` // "accepted" or "paid"
	BookingType   string `json:"booking_type,omitempty"`
	Label         string `json:"label,omitempty"`
	City          string `json:"city,omitempty"`
}

// RecurringBlock blocks a time-of-day window on a set of weekdays
// (0 = Sunday). AllDay blocks reject any slot on those days.
type RecurringBlock struct {
	Days   []int  `json:"days"`
	AllDay bool   `json:"all_day,omitempty"`
	Start  string `json:"start,omitempty"`
	End    string `json:"end,omitempty"`
	Label  string `json:"label,omitempty"`
}

// CitySchedule overrides timezone and buffer for bookings in a city during
// an inclusive date range, with optional sleep and break windows.
type CitySchedule struct {
	City          string `json:"city"`
	Start         string `json:"start"` // inclusive, "2006-01-02"
	End           string `json:"end"`
	Timezone      string `json:"timezone"`
	ReadyStart    string `json:"ready_start,omitempty"`
	BufferMinutes *int   `json:"buffer_minutes,omitempty"`
	HasSleep      bool   `json:"has_sleep,omitempty"`
	SleepStart    string `json:"sleep_start,omitempty"`
	SleepEnd      string `json:"sleep_end,omitempty"`
	HasBreak      bool   `json:"has_break,omitempty"`
	BreakStart    string `json:"break_start,omitempty"`
	BreakEnd      string `json:"break_end,omitempty"`
	LeaveDayEnd   string `json:"leave_day_end,omitempty"`
}

// AvailabilityConfig is the global scheduling configuration, stored and
// replaced as a single document.
type AvailabilityConfig struct {
	TourCity           string           `json:"tour_city"`
	TourTimezone       string           `json:"tour_timezone"`
	BufferMinutes      int              `json:"buffer_minutes"`
	AvailabilityMode   string           `json:"availability_mode"` // "open" or "closed"
	AutoTemplateBlocks bool             `json:"auto_template_blocks"`
	HiddenBookingIDs   []string         `json:"hidden_booking_ids"`
	Blocked            []BlockedEntry   `json:"blocked"`
	Recurring          []RecurringBlock `json:"recurring"`
	CitySchedules      []CitySchedule   `json:"city_schedules"`
	UpdatedAt          string           `json:"updated_at,omitempty"`
}

// Closed reports whether intake is shut off entirely.
func (a *AvailabilityConfig) Closed() bool {
	return a.AvailabilityMode == "closed"
}
