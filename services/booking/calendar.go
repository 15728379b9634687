package booking

import (
	"math"
	"net/url"
	"strings"
	"time"

	"bookly/config"
	"bookly/models"
)

// CalendarTimes holds the booking window converted to UTC in the formats
// the calendar providers expect.
type CalendarTimes struct {
	StartUTC     time.Time
	EndUTC       time.Time
	StartISO     string
	EndISO       string
	StartCompact string
	EndCompact   string
}

// CalendarLinks are the add-to-calendar URLs embedded in confirmation
// emails.
type CalendarLinks struct {
	Google  string
	Outlook string
	ICS     string
}

const calendarTitle = "Booking Confirmation"

// BuildCalendarTimes converts a booking's local window to UTC. Returns nil
// when the request has no usable date, time, or duration.
func BuildCalendarTimes(req *models.BookingRequest) *CalendarTimes {
	hours := req.Hours()
	if req.PreferredDate == "" || req.PreferredTime == "" || hours <= 0 {
		return nil
	}
	loc := ResolveTourTimezone(req.TourTimezone, "")
	startLocal, err := time.ParseInLocation("2006-01-02 15:04", req.PreferredDate+" "+req.PreferredTime, loc)
	if err != nil {
		return nil
	}
	endLocal := startLocal.Add(time.Duration(math.Round(hours*60)) * time.Minute)
	startUTC := startLocal.UTC()
	endUTC := endLocal.UTC()
	return &CalendarTimes{
		StartUTC:     startUTC,
		EndUTC:       endUTC,
		StartISO:     startUTC.Format("2006-01-02T15:04:05Z"),
		EndISO:       endUTC.Format("2006-01-02T15:04:05Z"),
		StartCompact: startUTC.Format("20060102T150405Z"),
		EndCompact:   endUTC.Format("20060102T150405Z"),
	}
}

func calendarLocation(req *models.BookingRequest) string {
	var parts []string
	if city := strings.TrimSpace(req.City); city != "" {
		parts = append(parts, city)
	}
	if bookingType := strings.TrimSpace(req.BookingType); bookingType != "" {
		parts = append(parts, titleCase(bookingType))
	}
	if address := strings.TrimSpace(req.OutcallAddress); address != "" {
		parts = append(parts, address)
	}
	return strings.Join(parts, " - ")
}

func titleCase(value string) string {
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}

// BuildCalendarLinks assembles the Google, Outlook, and ICS links for a
// confirmed booking. Returns the zero value when the booking window cannot
// be resolved.
func BuildCalendarLinks(req *models.BookingRequest) CalendarLinks {
	times := BuildCalendarTimes(req)
	if times == nil {
		return CalendarLinks{}
	}
	location := calendarLocation(req)
	details := "Booking confirmed."
	if req.ID != "" {
		details += " Reference: " + req.ID + "."
	}
	details += " Please arrive on time."

	google := "https://www.google.com/calendar/render?action=TEMPLATE" +
		"&text=" + url.QueryEscape(calendarTitle) +
		"&dates=" + url.QueryEscape(times.StartCompact+"/"+times.EndCompact) +
		"&details=" + url.QueryEscape(details)
	if location != "" {
		google += "&location=" + url.QueryEscape(location)
	}

	outlook := "https://outlook.live.com/calendar/0/deeplink/compose?path=/calendar/action/compose" +
		"&rru=addevent" +
		"&subject=" + url.QueryEscape(calendarTitle) +
		"&startdt=" + url.QueryEscape(times.StartISO) +
		"&enddt=" + url.QueryEscape(times.EndISO) +
		"&body=" + url.QueryEscape(details)
	if location != "" {
		outlook += "&location=" + url.QueryEscape(location)
	}

	ics := ""
	if base := strings.TrimRight(strings.TrimSpace(config.AppConfig.SiteURL), "/"); base != "" {
		ics = base + "/api/bookings/" + url.PathEscape(req.ID) + "/calendar.ics"
	}

	return CalendarLinks{Google: google, Outlook: outlook, ICS: ics}
}

// BuildICS renders a single-event iCalendar document for a confirmed
// booking. Returns "" when the booking window cannot be resolved.
func BuildICS(req *models.BookingRequest) string {
	times := BuildCalendarTimes(req)
	if times == nil {
		return ""
	}
	host := "bookly"
	if base := strings.TrimSpace(config.AppConfig.SiteURL); base != "" {
		if parsed, err := url.Parse(base); err == nil && parsed.Host != "" {
			host = parsed.Host
		}
	}
	descriptionParts := []string{"Booking confirmed.", "Reference: " + req.ID}
	if label := strings.TrimSpace(req.DurationLabel); label != "" {
		descriptionParts = append(descriptionParts, "Duration: "+label)
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Bookly//Booking//EN",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"UID:" + req.ID + "@" + host,
		"DTSTAMP:" + time.Now().UTC().Format("20060102T150405Z"),
		"DTSTART:" + times.StartCompact,
		"DTEND:" + times.EndCompact,
		"SUMMARY:" + calendarTitle,
		"DESCRIPTION:" + strings.Join(descriptionParts, `\n`),
	}
	if location := calendarLocation(req); location != "" {
		lines = append(lines, "LOCATION:"+location)
	}
	lines = append(lines, "END:VEVENT", "END:VCALENDAR")
	return strings.Join(lines, "\r\n") + "\r\n"
}

// AppendCalendarLines writes the add-to-calendar section of a confirmation
// email body.
func AppendCalendarLines(body *strings.Builder, links CalendarLinks) {
	if links.Google == "" && links.Outlook == "" && links.ICS == "" {
		return
	}
	body.WriteString("Add to calendar:\n")
	if links.Google != "" {
		body.WriteString("- Google Calendar: " + links.Google + "\n")
	}
	if links.Outlook != "" {
		body.WriteString("- Samsung / Microsoft Calendar: " + links.Outlook + "\n")
	}
	if links.ICS != "" {
		body.WriteString("- iCloud / Apple Calendar (ICS): " + links.ICS + "\n")
	}
	body.WriteString("\n")
}
