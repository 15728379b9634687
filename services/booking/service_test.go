package booking

import (
	"context"
	"fmt"

	"bookly/models"
)

// fakeRequestRepo is an in-memory RequestRepository.
type fakeRequestRepo struct {
	active   []models.BookingRequest
	archived []models.BookingRequest
	failSave bool
}

func (f *fakeRequestRepo) Active() ([]models.BookingRequest, error) {
	out := make([]models.BookingRequest, len(f.active))
	copy(out, f.active)
	return out, nil
}

func (f *fakeRequestRepo) Archived() ([]models.BookingRequest, error) {
	out := make([]models.BookingRequest, len(f.archived))
	copy(out, f.archived)
	return out, nil
}

func (f *fakeRequestRepo) SaveActive(requests []models.BookingRequest) error {
	if f.failSave {
		return fmt.Errorf("disk full")
	}
	f.active = requests
	return nil
}

func (f *fakeRequestRepo) GetByID(id string) (*models.BookingRequest, error) {
	for i := range f.active {
		if f.active[i].ID == id {
			req := f.active[i]
			return &req, nil
		}
	}
	return nil, nil
}

func (f *fakeRequestRepo) Append(req models.BookingRequest) error {
	if f.failSave {
		return fmt.Errorf("disk full")
	}
	f.active = append(f.active, req)
	return nil
}

func (f *fakeRequestRepo) Update(req models.BookingRequest) error {
	for i := range f.active {
		if f.active[i].ID == req.ID {
			f.active[i] = req
			return nil
		}
	}
	return fmt.Errorf("request %s not found", req.ID)
}

func (f *fakeRequestRepo) Archive(req models.BookingRequest) error {
	kept := f.archived[:0]
	for _, item := range f.archived {
		if item.ID != req.ID {
			kept = append(kept, item)
		}
	}
	f.archived = append(kept, req)
	return nil
}

func (f *fakeRequestRepo) PurgeIdentity(key string) (int, error) {
	return 0, nil
}

// fakeAvailabilityRepo holds one config in memory and records block
// replacements.
type fakeAvailabilityRepo struct {
	cfg           models.AvailabilityConfig
	replacedID    string
	replacedWith  []models.BlockedEntry
	replaceCalled int
}

func (f *fakeAvailabilityRepo) Get() (models.AvailabilityConfig, error) {
	return f.cfg, nil
}

func (f *fakeAvailabilityRepo) Put(cfg models.AvailabilityConfig) error {
	f.cfg = cfg
	return nil
}

func (f *fakeAvailabilityRepo) ReplaceBookingBlocks(bookingID string, blocks []models.BlockedEntry) error {
	f.replaceCalled++
	f.replacedID = bookingID
	f.replacedWith = blocks

	kept := f.cfg.Blocked[:0]
	for _, entry := range f.cfg.Blocked {
		if entry.BookingID != bookingID {
			kept = append(kept, entry)
		}
	}
	f.cfg.Blocked = append(kept, blocks...)
	return nil
}

type fakeTouringRepo struct {
	entries []models.TouringEntry
}

func (f *fakeTouringRepo) List() ([]models.TouringEntry, error)      { return f.entries, nil }
func (f *fakeTouringRepo) Save(entries []models.TouringEntry) error { f.entries = entries; return nil }
func (f *fakeTouringRepo) CityForDate(dateKey string) (string, error) {
	for _, e := range f.entries {
		if e.Start <= dateKey && dateKey <= e.End {
			return e.City, nil
		}
	}
	return "", nil
}

type fakeBlacklistRepo struct {
	blocked bool
	entries []models.BlacklistEntry
}

func (f *fakeBlacklistRepo) List() ([]models.BlacklistEntry, error) { return f.entries, nil }
func (f *fakeBlacklistRepo) IsBlocked(email, phone, ip string) (bool, error) {
	return f.blocked, nil
}
func (f *fakeBlacklistRepo) Add(entry models.BlacklistEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

// sentMail records one delivered message.
type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	customer []sentMail
	admin    []sentMail
	fail     bool
}

func (f *fakeMailer) SendCustomer(to, subject, body string) bool {
	if f.fail {
		return false
	}
	f.customer = append(f.customer, sentMail{To: to, Subject: subject, Body: body})
	return true
}

func (f *fakeMailer) SendAdmin(subject, body string) bool {
	if f.fail {
		return false
	}
	f.admin = append(f.admin, sentMail{Subject: subject, Body: body})
	return true
}

type sentPush struct {
	Title string
	Body  string
	Data  map[string]string
}

type fakePush struct {
	sent []sentPush
}

func (f *fakePush) Broadcast(ctx context.Context, title, body string, data map[string]string) error {
	f.sent = append(f.sent, sentPush{Title: title, Body: body, Data: data})
	return nil
}

func newTestService() (*DefaultBookingService, *fakeRequestRepo, *fakeAvailabilityRepo, *fakeMailer, *fakePush) {
	requests := &fakeRequestRepo{}
	avail := &fakeAvailabilityRepo{cfg: models.AvailabilityConfig{
		TourCity:         "Toronto",
		TourTimezone:     "America/Toronto",
		BufferMinutes:    30,
		AvailabilityMode: "open",
	}}
	mailer := &fakeMailer{}
	push := &fakePush{}
	svc := NewDefaultBookingService(requests, avail, &fakeTouringRepo{}, &fakeBlacklistRepo{}, mailer, push)
	return svc, requests, avail, mailer, push
}
