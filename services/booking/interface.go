package booking

import (
	"context"

	"bookly/database/repository/availability"
	"bookly/database/repository/blacklist"
	"bookly/database/repository/request"
	"bookly/database/repository/touring"
	"bookly/models"
	"bookly/services/notification"
)

// IntakeInput is the raw booking form submission.
type IntakeInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	City            string `json:"city"`
	Currency        string `json:"currency"`
	BookingType     string `json:"booking_type"`
	OutcallAddress  string `json:"outcall_address"`
	Experience      string `json:"experience"`
	DurationLabel   string `json:"duration_label"`
	DurationHours   string `json:"duration_hours"`
	DurationRateKey string `json:"duration_rate_key"`
	PreferredDate   string `json:"preferred_date"`
	PreferredTime   string `json:"preferred_time"`
	ClientTimezone  string `json:"client_timezone"`
	TourTimezone    string `json:"tour_timezone"`
	Notes           string `json:"notes"`
	PaymentMethod   string `json:"payment_method"`
	DepositConfirm  string `json:"deposit_confirm"`

	ContactFollowupPhone     string `json:"contact_followup_phone"`
	ContactFollowupEmail     string `json:"contact_followup_email"`
	FollowupPhoneOtherCities string `json:"followup_phone_other_cities"`
	FollowupEmailOtherCities string `json:"followup_email_other_cities"`

	ClientIP string `json:"-"`
}

// IntakeResult is what the booking form shows after a successful
// submission.
type IntakeResult struct {
	Request          *models.BookingRequest
	PaymentLink      string
	PaymentLinkIsURL bool
	PaymentPage      string
	EmailSent        bool
}

// StatusInput is an admin status transition command.
type StatusInput struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	PaymentLink string `json:"payment_link"`
	Reason      string `json:"reason"`
}

// EditInput carries the editable booking fields. A nil pointer leaves the
// stored value untouched; an empty string clears it, subject to
// validation.
type EditInput struct {
	ID             string  `json:"id"`
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	City           *string `json:"city"`
	BookingType    *string `json:"booking_type"`
	OutcallAddress *string `json:"outcall_address"`
	Experience     *string `json:"experience"`
	DurationLabel  *string `json:"duration_label"`
	DurationHours  *string `json:"duration_hours"`
	PreferredDate  *string `json:"preferred_date"`
	PreferredTime  *string `json:"preferred_time"`
	Notes          *string `json:"notes"`
}

// EditResult reports the saved request and which follow-up emails went
// out.
type EditResult struct {
	Request        *models.BookingRequest
	EmailSent      bool
	AdminEmailSent bool
}

// BookingService is the lifecycle engine: intake, admin status
// transitions, and admin edits, each keeping the blocked calendar and
// notification sentinels consistent.
type BookingService interface {
	CreateRequest(ctx context.Context, input IntakeInput) (*IntakeResult, error)
	UpdateStatus(ctx context.Context, input StatusInput) (*models.BookingRequest, error)
	EditRequest(ctx context.Context, input EditInput) (*EditResult, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Requests     request.RequestRepository
	Availability availability.AvailabilityRepository
	Touring      touring.TouringRepository
	Blacklist    blacklist.BlacklistRepository
	Mailer       notification.Mailer
	Push         notification.PushSender
}

func NewDefaultBookingService(
	requests request.RequestRepository,
	avail availability.AvailabilityRepository,
	tours touring.TouringRepository,
	deny blacklist.BlacklistRepository,
	mailer notification.Mailer,
	push notification.PushSender,
) *DefaultBookingService {
	return &DefaultBookingService{
		Requests:     requests,
		Availability: avail,
		Touring:      tours,
		Blacklist:    deny,
		Mailer:       mailer,
		Push:         push,
	}
}
