package booking

import (
	"sort"
	"strconv"
	"strings"

	"bookly/config"
	"bookly/models"
)

func defaultCurrency() string {
	if c := strings.TrimSpace(config.AppConfig.PayPalCurrency); c != "" {
		return c
	}
	return "USD"
}

func requestCurrencyLabel(req *models.BookingRequest) string {
	if req.DepositCurrency != "" {
		return req.DepositCurrency
	}
	return defaultCurrency()
}

// BuildIntakeCustomerEmail is the acknowledgement sent right after a
// request comes in, with the quoted amounts in the customer's display
// currency and the payment instructions for the chosen method.
func BuildIntakeCustomerEmail(req *models.BookingRequest, q Quote) string {
	var b strings.Builder
	b.WriteString("Hi " + req.Name + ",\n\n")
	if req.DepositAmount > 0 {
		b.WriteString("We got your request. To lock it in, send the deposit.\n")
	} else {
		b.WriteString("Your request is in. No deposit was selected, so the time is not held or prioritized.\n")
	}
	if req.PaymentLink != "" {
		b.WriteString("Payment details: " + req.PaymentLink + "\n")
	}
	currencyLabel := q.BillingCurrency
	if currencyLabel == "" {
		currencyLabel = "CAD"
	}
	b.WriteString("\nPayment method: " + FormatPaymentMethod(req.PaymentMethod) + "\n")
	b.WriteString("Base rate: " + strconv.Itoa(q.DisplayBaseRate) + " " + currencyLabel + "\n")
	b.WriteString("Service: " + ExperienceLabel(req.Experience) + "\n")
	b.WriteString("Duration: " + req.DurationLabel + "\n")
	if q.DisplayAddon > 0 {
		label := q.ServiceAddonLabel
		if label == "" {
			label = "Service add-on"
		}
		b.WriteString(label + ": +" + strconv.Itoa(q.DisplayAddon) + " " + currencyLabel + "\n")
	}
	b.WriteString("Total rate: " + strconv.Itoa(q.DisplayTotalRate) + " " + currencyLabel + "\n")
	if req.DepositAmount > 0 {
		b.WriteString("Deposit: " + strconv.Itoa(req.DepositAmount) + " " + currencyLabel + "\n")
	}
	b.WriteString("Requested date/time: " + req.PreferredDate + " " + req.PreferredTime + "\n\n")
	if req.DepositAmount > 0 {
		b.WriteString("You will receive a confirmation email once your payment is accepted.\n")
	}
	return b.String()
}

// BuildIntakeAdminEmail summarizes a new request for the admin inbox with
// all amounts in CAD.
func BuildIntakeAdminEmail(req *models.BookingRequest) string {
	var b strings.Builder
	b.WriteString("New booking request\n\n")
	b.WriteString("Name: " + req.Name + "\n")
	b.WriteString("Email: " + req.Email + "\n")
	b.WriteString("Phone: " + req.Phone + "\n")
	b.WriteString("Future contact by phone: " + yesNo(req.ContactFollowupPhone == "yes") + "\n")
	b.WriteString("Future contact by email: " + yesNo(req.ContactFollowupEmail == "yes") + "\n")
	b.WriteString("Future-contact cities: " + strings.Join(req.FollowupCities, ", ") + "\n")
	b.WriteString("City: " + req.City + "\n")
	b.WriteString("Currency: " + req.Currency + "\n")
	b.WriteString("Type: " + req.BookingType + "\n")
	b.WriteString("Service: " + ExperienceLabel(req.Experience) + "\n")
	b.WriteString("Duration: " + req.DurationLabel + "\n")
	b.WriteString("Preferred: " + req.PreferredDate + " " + req.PreferredTime + "\n")
	b.WriteString("Base rate (CAD): " + strconv.Itoa(req.BaseRate) + "\n")
	if req.ServiceAddon > 0 {
		label := req.ServiceAddonLabel
		if label == "" {
			label = "Service add-on"
		}
		b.WriteString(label + " (CAD): +" + strconv.Itoa(req.ServiceAddon) + "\n")
	}
	b.WriteString("Total rate (CAD): " + strconv.Itoa(req.TotalRate) + "\n")
	b.WriteString("Payment method: " + FormatPaymentMethod(req.PaymentMethod) + "\n")
	b.WriteString("Deposit confirmed: " + yesNo(req.DepositConfirmed) + "\n")
	b.WriteString("Deposit: " + strconv.Itoa(req.DepositAmount) + " " + requestCurrencyLabel(req) + "\n")
	b.WriteString("Request id: " + req.ID + "\n")
	return b.String()
}

// BuildAcceptedCustomerEmail confirms the slot and repeats the payment
// instructions so the deposit can be completed.
func BuildAcceptedCustomerEmail(req *models.BookingRequest, paymentLink string) string {
	var b strings.Builder
	b.WriteString("Hi " + req.Name + ",\n\n")
	b.WriteString("Your booking is accepted.\n\n")
	b.WriteString("Date/time: " + req.PreferredDate + " " + req.PreferredTime + "\n")
	b.WriteString("Duration: " + req.DurationLabel + "\n")
	b.WriteString("Payment method: " + FormatPaymentMethod(req.PaymentMethod) + "\n")
	b.WriteString("Deposit: " + strconv.Itoa(req.DepositAmount) + " " + requestCurrencyLabel(req) + "\n")
	AppendCalendarLines(&b, BuildCalendarLinks(req))
	if paymentLink != "" {
		b.WriteString("Payment details: " + paymentLink + "\n")
	}
	b.WriteString("\nOnce payment is in, the time is locked.\n")
	return b.String()
}

func BuildAcceptedAdminEmail(req *models.BookingRequest, paymentLink string) string {
	var b strings.Builder
	b.WriteString("Booking accepted\n\n")
	b.WriteString("Name: " + req.Name + "\n")
	b.WriteString("Email: " + req.Email + "\n")
	b.WriteString("Phone: " + req.Phone + "\n")
	b.WriteString("Date/time: " + req.PreferredDate + " " + req.PreferredTime + "\n")
	b.WriteString("Duration: " + req.DurationLabel + "\n")
	b.WriteString("Payment method: " + FormatPaymentMethod(req.PaymentMethod) + "\n")
	b.WriteString("Deposit: " + strconv.Itoa(req.DepositAmount) + " " + requestCurrencyLabel(req) + "\n")
	AppendCalendarLines(&b, BuildCalendarLinks(req))
	if paymentLink != "" {
		b.WriteString("Payment details: " + paymentLink + "\n")
	}
	b.WriteString("Request id: " + req.ID + "\n")
	return b.String()
}

// BuildPaidCustomerEmail confirms receipt of the deposit.
func BuildPaidCustomerEmail(req *models.BookingRequest) string {
	var b strings.Builder
	b.WriteString("Hi " + req.Name + ",\n\n")
	b.WriteString("Payment received. Your booking is confirmed.\n\n")
	b.WriteString("Date/time: " + req.PreferredDate + " " + req.PreferredTime + "\n")
	b.WriteString("Duration: " + req.DurationLabel + "\n")
	b.WriteString("Deposit received: " + strconv.Itoa(req.DepositAmount) + " " + requestCurrencyLabel(req) + "\n\n")
	AppendCalendarLines(&b, BuildCalendarLinks(req))
	b.WriteString("See you soon.\n")
	return b.String()
}

func BuildPaidAdminEmail(req *models.BookingRequest) string {
	var b strings.Builder
	b.WriteString("Payment received for booking\n\n")
	b.WriteString("Name: " + req.Name + "\n")
	b.WriteString("Email: " + req.Email + "\n")
	b.WriteString("Phone: " + req.Phone + "\n")
	b.WriteString("Date/time: " + req.PreferredDate + " " + req.PreferredTime + "\n")
	b.WriteString("Duration: " + req.DurationLabel + "\n")
	b.WriteString("Deposit received: " + strconv.Itoa(req.DepositAmount) + " " + requestCurrencyLabel(req) + "\n")
	AppendCalendarLines(&b, BuildCalendarLinks(req))
	b.WriteString("Request id: " + req.ID + "\n")
	return b.String()
}

// BuildDeclinedEmail is the short decline notice; the reason line appears
// only when the admin supplied one.
func BuildDeclinedEmail(req *models.BookingRequest, reason string) string {
	var b strings.Builder
	b.WriteString("Hi " + req.Name + ",\n\n")
	b.WriteString("Your booking request was declined.\n")
	if reason != "" {
		b.WriteString("Reason: " + reason + "\n")
	}
	b.WriteString("\nThanks for understanding.\n")
	return b.String()
}

var editFieldLabels = map[string]string{
	"name":            "Name",
	"email":           "Email",
	"phone":           "Phone",
	"city":            "City",
	"booking_type":    "Booking type",
	"outcall_address": "Outcall address",
	"experience":      "Service",
	"duration_label":  "Duration",
	"duration_hours":  "Duration (hours)",
	"preferred_date":  "Date",
	"preferred_time":  "Time",
	"notes":           "Notes",
}

func editFieldLabel(field string) string {
	if label, ok := editFieldLabels[field]; ok {
		return label
	}
	return field
}

func editValueLabel(value string) string {
	clean := strings.TrimSpace(value)
	if clean == "" {
		return "(empty)"
	}
	return clean
}

func appendChangeLines(b *strings.Builder, changes map[string]models.FieldChange) {
	fields := make([]string, 0, len(changes))
	for field := range changes {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		change := changes[field]
		b.WriteString("- " + editFieldLabel(field) + ": " + editValueLabel(change.From) + " -> " + editValueLabel(change.To) + "\n")
	}
}

// BuildUpdateCustomerEmail lists what changed plus the booking's current
// state after an admin edit.
func BuildUpdateCustomerEmail(req *models.BookingRequest, changes map[string]models.FieldChange) string {
	var b strings.Builder
	b.WriteString("Your booking details were updated.\n")
	b.WriteString("Reference: " + req.ID + "\n\n")
	b.WriteString("Updated fields:\n")
	appendChangeLines(&b, changes)
	b.WriteString("\nCurrent booking details:\n")
	b.WriteString("- Name: " + editValueLabel(req.Name) + "\n")
	b.WriteString("- Date: " + editValueLabel(req.PreferredDate) + "\n")
	b.WriteString("- Time: " + editValueLabel(req.PreferredTime) + "\n")
	b.WriteString("- City: " + editValueLabel(req.City) + "\n")
	b.WriteString("- Duration: " + editValueLabel(req.DurationLabel) + "\n")
	b.WriteString("- Service: " + strings.ToUpper(req.Experience) + "\n")
	b.WriteString("- Type: " + editValueLabel(req.BookingType) + "\n")
	if address := strings.TrimSpace(req.OutcallAddress); address != "" {
		b.WriteString("- Outcall address: " + address + "\n")
	}
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		b.WriteString("- Notes: " + notes + "\n")
	}
	b.WriteString("\n")
	AppendCalendarLines(&b, BuildCalendarLinks(req))
	b.WriteString("\nIf anything looks wrong, reply to this email.")
	return b.String()
}

func BuildUpdateAdminEmail(req *models.BookingRequest, changes map[string]models.FieldChange) string {
	var b strings.Builder
	b.WriteString("Admin notice: booking was edited.\n")
	b.WriteString("Reference: " + req.ID + "\n")
	b.WriteString("Status: " + req.Status + "\n")
	payment := req.PaymentStatus
	if payment == "" {
		payment = "unpaid"
	}
	b.WriteString("Payment: " + payment + "\n\n")
	b.WriteString("Changed fields:\n")
	appendChangeLines(&b, changes)
	b.WriteString("\nCurrent details:\n")
	b.WriteString("- Name: " + editValueLabel(req.Name) + "\n")
	b.WriteString("- Email: " + editValueLabel(req.Email) + "\n")
	b.WriteString("- Phone: " + editValueLabel(req.Phone) + "\n")
	b.WriteString("- Date: " + editValueLabel(req.PreferredDate) + "\n")
	b.WriteString("- Time: " + editValueLabel(req.PreferredTime) + "\n")
	b.WriteString("- City: " + editValueLabel(req.City) + "\n")
	b.WriteString("- Duration: " + editValueLabel(req.DurationLabel) + "\n")
	b.WriteString("- Service: " + strings.ToUpper(req.Experience) + "\n")
	b.WriteString("- Type: " + editValueLabel(req.BookingType) + "\n")
	b.WriteString("\n")
	AppendCalendarLines(&b, BuildCalendarLinks(req))
	return b.String()
}

// PushSummary is the one-line push body: duration, date/time, and city.
func PushSummary(req *models.BookingRequest, fallback string) string {
	var parts []string
	if label := strings.TrimSpace(req.DurationLabel); label != "" {
		parts = append(parts, label)
	}
	if when := strings.TrimSpace(strings.TrimSpace(req.PreferredDate) + " " + strings.TrimSpace(req.PreferredTime)); when != "" {
		parts = append(parts, when)
	}
	if city := strings.TrimSpace(req.City); city != "" {
		parts = append(parts, city)
	}
	if len(parts) == 0 {
		return fallback
	}
	return strings.Join(parts, " - ")
}

// PushData is the structured payload the admin app reads from a booking
// push.
func PushData(req *models.BookingRequest) map[string]string {
	return map[string]string{
		"id":             req.ID,
		"name":           req.Name,
		"email":          req.Email,
		"phone":          req.Phone,
		"city":           req.City,
		"preferred_date": req.PreferredDate,
		"preferred_time": req.PreferredTime,
		"duration_label": req.DurationLabel,
		"duration_hours": req.DurationHours,
		"status":         req.Status,
		"payment_status": req.PaymentStatus,
	}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
