package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookly/models"
)

func openConfig() models.AvailabilityConfig {
	return models.AvailabilityConfig{
		TourCity:         "Toronto",
		TourTimezone:     "America/Toronto",
		BufferMinutes:    30,
		AvailabilityMode: "open",
	}
}

func torontoQuery(date, clock string, hours float64) SlotQuery {
	return SlotQuery{
		City:  "Toronto",
		Date:  date,
		Time:  clock,
		Hours: hours,
	}
}

func TestCheckAvailabilityNoBlocks(t *testing.T) {
	cfg := openConfig()
	err := CheckAvailability(&cfg, torontoQuery("2030-06-01", "14:00", 1))
	assert.NoError(t, err)
}

func TestCheckAvailabilityClosedMode(t *testing.T) {
	cfg := openConfig()
	cfg.AvailabilityMode = "closed"
	err := CheckAvailability(&cfg, torontoQuery("2030-06-01", "14:00", 1))
	require.Error(t, err)
	svcErr, ok := err.(*ServiceError)
	require.True(t, ok)
	assert.Equal(t, CodeConflict, svcErr.Code)
	assert.Equal(t, "Currently unavailable", svcErr.Message)
}

func TestCheckAvailabilityBufferedCollision(t *testing.T) {
	cfg := openConfig()
	cfg.Blocked = []models.BlockedEntry{
		{Date: "2030-06-01", Start: "13:00", End: "15:00"},
	}

	// 14:00 for 1h, widened by the 30-minute buffer, lands inside the block.
	err := CheckAvailability(&cfg, torontoQuery("2030-06-01", "14:00", 1))
	require.Error(t, err)
	assert.Equal(t, "Selected time is unavailable", err.(*ServiceError).Message)

	// 15:30 widened to 15:00 only touches the block's 15:00 end as a
	// half-open boundary, which is not a conflict.
	err = CheckAvailability(&cfg, torontoQuery("2030-06-01", "15:30", 1))
	assert.NoError(t, err)
}

func TestCheckAvailabilityOtherDateIgnored(t *testing.T) {
	cfg := openConfig()
	cfg.Blocked = []models.BlockedEntry{
		{Date: "2030-06-02", Start: "13:00", End: "15:00"},
	}
	err := CheckAvailability(&cfg, torontoQuery("2030-06-01", "14:00", 1))
	assert.NoError(t, err)
}

func TestCheckAvailabilityRecurring(t *testing.T) {
	cfg := openConfig()
	// 2030-06-01 is a Saturday (weekday 6).
	cfg.Recurring = []models.RecurringBlock{
		{Days: []int{6}, Start: "09:00", End: "12:00"},
	}

	err := CheckAvailability(&cfg, torontoQuery("2030-06-01", "10:00", 1))
	require.Error(t, err)

	err = CheckAvailability(&cfg, torontoQuery("2030-06-01", "14:00", 1))
	assert.NoError(t, err)

	// Sunday is unaffected.
	err = CheckAvailability(&cfg, torontoQuery("2030-06-02", "10:00", 1))
	assert.NoError(t, err)
}

func TestCheckAvailabilityRecurringAllDay(t *testing.T) {
	cfg := openConfig()
	cfg.Recurring = []models.RecurringBlock{
		{Days: []int{6}, AllDay: true},
	}
	err := CheckAvailability(&cfg, torontoQuery("2030-06-01", "23:00", 1))
	require.Error(t, err)
}

func TestCheckAvailabilityMalformedBlockSkipped(t *testing.T) {
	cfg := openConfig()
	cfg.Blocked = []models.BlockedEntry{
		{Date: "2030-06-01", Start: "bogus", End: "15:00"},
	}
	err := CheckAvailability(&cfg, torontoQuery("2030-06-01", "14:00", 1))
	assert.NoError(t, err)
}

func TestCheckAvailabilityIncompleteQueryPasses(t *testing.T) {
	cfg := openConfig()
	cfg.Blocked = []models.BlockedEntry{
		{Date: "2030-06-01", Start: "00:00", End: "23:59"},
	}
	assert.NoError(t, CheckAvailability(&cfg, torontoQuery("", "14:00", 1)))
	assert.NoError(t, CheckAvailability(&cfg, torontoQuery("2030-06-01", "", 1)))
	assert.NoError(t, CheckAvailability(&cfg, torontoQuery("2030-06-01", "14:00", 0)))
}

func TestCityScheduleFor(t *testing.T) {
	cfg := openConfig()
	buffer := 60
	cfg.CitySchedules = []models.CitySchedule{
		{City: "  new   YORK ", Start: "2030-06-01", End: "2030-06-10", Timezone: "America/New_York", BufferMinutes: &buffer},
	}

	schedule := CityScheduleFor(&cfg, "New York", "2030-06-05")
	require.NotNil(t, schedule)
	assert.Equal(t, "America/New_York", schedule.Timezone)

	// Range is inclusive on both ends.
	assert.NotNil(t, CityScheduleFor(&cfg, "New York", "2030-06-01"))
	assert.NotNil(t, CityScheduleFor(&cfg, "New York", "2030-06-10"))
	assert.Nil(t, CityScheduleFor(&cfg, "New York", "2030-06-11"))
	assert.Nil(t, CityScheduleFor(&cfg, "Toronto", "2030-06-05"))
}

func TestEffectiveWindowCityOverride(t *testing.T) {
	cfg := openConfig()
	bigBuffer := 999
	cfg.CitySchedules = []models.CitySchedule{
		{City: "New York", Start: "2030-06-01", End: "2030-06-10", Timezone: "America/New_York", BufferMinutes: &bigBuffer},
	}

	tz, buffer := EffectiveWindow(&cfg, SlotQuery{City: "New York", Date: "2030-06-05"})
	assert.Equal(t, "America/New_York", tz)
	assert.Equal(t, 240, buffer) // clamped

	tz, buffer = EffectiveWindow(&cfg, SlotQuery{City: "Toronto", Date: "2030-06-05"})
	assert.Equal(t, "America/Toronto", tz)
	assert.Equal(t, 30, buffer)

	// Fly-me bookings never pick up a city schedule.
	cfg.CitySchedules[0].City = "Fly me to you"
	tz, buffer = EffectiveWindow(&cfg, SlotQuery{City: "Fly Me To You", Date: "2030-06-05"})
	assert.Equal(t, "America/Toronto", tz)
	assert.Equal(t, 30, buffer)
}

// Growing the buffer can only turn an available slot unavailable, never
// the other way around.
func TestCheckAvailabilityBufferMonotonic(t *testing.T) {
	base := openConfig()
	base.Blocked = []models.BlockedEntry{
		{Date: "2030-06-01", Start: "10:00", End: "11:00"},
	}
	query := torontoQuery("2030-06-01", "13:00", 1)

	rejectedAt := -1
	for buffer := 0; buffer <= 240; buffer += 15 {
		cfg := base
		cfg.BufferMinutes = buffer
		err := CheckAvailability(&cfg, query)
		if err != nil && rejectedAt == -1 {
			rejectedAt = buffer
		}
		if rejectedAt != -1 {
			assert.Error(t, err, "buffer %d", buffer)
		}
	}
	assert.NotEqual(t, -1, rejectedAt)
}
