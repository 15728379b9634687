// Package availability persists the scheduling configuration as one
// whole document, merging defaults for keys older documents lack.
package availability

import (
	"time"

	"bookly/database/docstore"
	"bookly/models"
)

const docKey = "availability"

// AvailabilityRepository reads and replaces the scheduling configuration.
type AvailabilityRepository interface {
	Get() (models.AvailabilityConfig, error)
	Put(cfg models.AvailabilityConfig) error

	// ReplaceBookingBlocks drops every blocked entry tagged with the
	// booking id and appends the fresh set, in one read-modify-write.
	ReplaceBookingBlocks(bookingID string, blocks []models.BlockedEntry) error
}

// Defaults are applied when the stored document is absent or predates a
// field.
type FileAvailabilityRepo struct {
	Store                docstore.Store
	DefaultTourCity      string
	DefaultTourTimezone  string
	DefaultBufferMinutes int
}

func NewFileAvailabilityRepo(store docstore.Store, tourCity, tourTZ string, bufferMinutes int) *FileAvailabilityRepo {
	return &FileAvailabilityRepo{
		Store:                store,
		DefaultTourCity:      tourCity,
		DefaultTourTimezone:  tourTZ,
		DefaultBufferMinutes: bufferMinutes,
	}
}

func (r *FileAvailabilityRepo) defaults() models.AvailabilityConfig {
	return models.AvailabilityConfig{
		TourCity:         r.DefaultTourCity,
		TourTimezone:     r.DefaultTourTimezone,
		BufferMinutes:    r.DefaultBufferMinutes,
		AvailabilityMode: "open",
		HiddenBookingIDs: []string{},
		Blocked:          []models.BlockedEntry{},
		Recurring:        []models.RecurringBlock{},
		CitySchedules:    []models.CitySchedule{},
	}
}

func (r *FileAvailabilityRepo) Get() (models.AvailabilityConfig, error) {
	cfg := r.defaults()
	if _, err := r.Store.Load(docKey, &cfg); err != nil {
		return models.AvailabilityConfig{}, err
	}
	if cfg.TourCity == "" {
		cfg.TourCity = r.DefaultTourCity
	}
	if cfg.TourTimezone == "" {
		cfg.TourTimezone = r.DefaultTourTimezone
	}
	if cfg.AvailabilityMode == "" {
		cfg.AvailabilityMode = "open"
	}
	if cfg.HiddenBookingIDs == nil {
		cfg.HiddenBookingIDs = []string{}
	}
	if cfg.Blocked == nil {
		cfg.Blocked = []models.BlockedEntry{}
	}
	if cfg.Recurring == nil {
		cfg.Recurring = []models.RecurringBlock{}
	}
	if cfg.CitySchedules == nil {
		cfg.CitySchedules = []models.CitySchedule{}
	}
	return cfg, nil
}

func (r *FileAvailabilityRepo) Put(cfg models.AvailabilityConfig) error {
	cfg.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return r.Store.Save(docKey, cfg)
}

func (r *FileAvailabilityRepo) ReplaceBookingBlocks(bookingID string, blocks []models.BlockedEntry) error {
	cfg, err := r.Get()
	if err != nil {
		return err
	}
	kept := make([]models.BlockedEntry, 0, len(cfg.Blocked))
	for _, entry := range cfg.Blocked {
		if entry.BookingID == "" || entry.BookingID != bookingID {
			kept = append(kept, entry)
		}
	}
	cfg.Blocked = append(kept, blocks...)
	return r.Put(cfg)
}
