package models

import (
	"strconv"
	"strings"
)

// Booking request statuses.
const (
	StatusPending     = "pending"
	StatusMaybe       = "maybe"
	StatusAccepted    = "accepted"
	StatusDeclined    = "declined"
	StatusCancelled   = "cancelled"
	StatusBlacklisted = "blacklisted"

	PaymentStatusPaid = "paid"
)

// FieldChange records a single tracked field edit.
type FieldChange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// HistoryEntry is one append-only audit record on a booking request.
type HistoryEntry struct {
	At      string                 `json:"at"`
	Action  string                 `json:"action"`
	Source  string                 `json:"source"`
	Summary string                 `json:"summary"`
	Changes map[string]FieldChange `json:"changes,omitempty"`
}

// BookingRequest is the central entity: one appointment request with its
// pricing, lifecycle state and notification bookkeeping. Timestamps are
// stored as RFC 3339 strings; an empty sentinel means "not sent yet".
type BookingRequest struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status,omitempty"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at,omitempty"`

	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	ClientIP       string `json:"client_ip,omitempty"`
	City           string `json:"city"`
	Currency       string `json:"currency"`
	BookingType    string `json:"booking_type"`
	OutcallAddress string `json:"outcall_address,omitempty"`
	Experience     string `json:"experience"`
	DurationLabel  string `json:"duration_label"`
	DurationHours  string `json:"duration_hours"`
	PreferredDate  string `json:"preferred_date"`
	PreferredTime  string `json:"preferred_time"`
	ClientTimezone string `json:"client_timezone,omitempty"`
	TourTimezone   string `json:"tour_timezone"`
	Notes          string `json:"notes,omitempty"`

	ContactFollowup        string   `json:"contact_followup,omitempty"`
	ContactChannel         string   `json:"contact_channel,omitempty"`
	ContactFollowupPhone   string   `json:"contact_followup_phone,omitempty"`
	ContactFollowupEmail   string   `json:"contact_followup_email,omitempty"`
	FollowupPhoneCitiesRaw string   `json:"followup_phone_other_cities,omitempty"`
	FollowupEmailCitiesRaw string   `json:"followup_email_other_cities,omitempty"`
	FollowupCities         []string `json:"followup_cities,omitempty"`

	DepositConfirmed  bool   `json:"deposit_confirmed"`
	PaymentMethod     string `json:"payment_method"`
	DepositCurrency   string `json:"deposit_currency"`
	DepositPercent    string `json:"deposit_percent"`
	DepositAmount     int    `json:"deposit_amount"`
	BaseRate          int    `json:"base_rate"`
	ServiceAddon      int    `json:"service_addon"`
	ServiceAddonLabel string `json:"service_addon_label,omitempty"`
	TotalRate         int    `json:"total_rate"`
	PaymentLink       string `json:"payment_link,omitempty"`

	DeclineReason   string `json:"decline_reason,omitempty"`
	BlacklistReason string `json:"blacklist_reason,omitempty"`
	MaybeReason     string `json:"maybe_reason,omitempty"`

	// Notification sentinels: set at most once per (event, channel) pair.
	PaymentEmailSentAt      string `json:"payment_email_sent_at,omitempty"`
	AcceptedEmailSentAt     string `json:"accepted_email_sent_at,omitempty"`
	AcceptedAdminNotifiedAt string `json:"accepted_admin_notified_at,omitempty"`
	PaidEmailSentAt         string `json:"paid_email_sent_at,omitempty"`
	PaidAdminNotifiedAt     string `json:"paid_admin_notified_at,omitempty"`
	DeclinedEmailSentAt     string `json:"declined_email_sent_at,omitempty"`
	EditedEmailSentAt       string `json:"edited_email_sent_at,omitempty"`
	EditedAdminEmailSentAt  string `json:"edited_admin_email_sent_at,omitempty"`

	History []HistoryEntry `json:"history,omitempty"`
}

// Normalize rewrites the legacy "paid" status into
// accepted + payment_status=paid. Compatibility shim applied uniformly at
// the load boundary; older documents stored "paid" as a status of its own.
func (r *BookingRequest) Normalize() {
	if r.Status == "" {
		r.Status = StatusPending
	}
	if r.Status == "paid" {
		r.Status = StatusAccepted
		r.PaymentStatus = PaymentStatusPaid
	}
}

// Confirmed reports whether the request blocks calendar time.
func (r *BookingRequest) Confirmed() bool {
	return r.Status == StatusAccepted || r.PaymentStatus == PaymentStatusPaid
}

// Hours parses the stored duration, returning 0 for malformed values.
func (r *BookingRequest) Hours() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(r.DurationHours), 64)
	if err != nil {
		return 0
	}
	return v
}

// FirstName returns the first word of the requester name, used as the
// calendar block label.
func (r *BookingRequest) FirstName() string {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return "Booking"
	}
	return strings.Fields(name)[0]
}
