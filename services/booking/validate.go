package booking

import (
	"regexp"
	"strings"
)

var (
	dateRe      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe      = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
	strictTime  = regexp.MustCompile(`^\d{2}:\d{2}$`)
	currencyRe  = regexp.MustCompile(`^[A-Z]{3,6}$`)
	emailRe     = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe     = regexp.MustCompile(`^\+[0-9\s().-]+$`)
	nonDigitsRe = regexp.MustCompile(`\D+`)
)

// ValidDateKey reports whether value is a "2006-01-02" calendar date key.
func ValidDateKey(value string) bool {
	return dateRe.MatchString(value)
}

// ValidClock reports whether value looks like an "H:MM" time of day.
func ValidClock(value string) bool {
	return timeRe.MatchString(value)
}

// ValidStrictClock requires the zero-padded "HH:MM" form.
func ValidStrictClock(value string) bool {
	return strictTime.MatchString(value)
}

// ValidCurrency accepts a 3-6 letter uppercase currency code.
func ValidCurrency(value string) bool {
	return currencyRe.MatchString(value)
}

// ValidEmail applies the same lightweight checks the intake form uses:
// bounded length, no whitespace, one @ with a dotted domain.
func ValidEmail(email string) bool {
	value := strings.TrimSpace(email)
	if value == "" || len(value) > 254 {
		return false
	}
	if strings.ContainsAny(value, " \t\r\n") {
		return false
	}
	return emailRe.MatchString(value)
}

// ValidInternationalPhone requires a leading +, 8 to 15 digits, and a
// country code not starting with 0.
func ValidInternationalPhone(phone string) bool {
	value := strings.TrimSpace(phone)
	if value == "" || !strings.HasPrefix(value, "+") {
		return false
	}
	if !phoneRe.MatchString(value) {
		return false
	}
	digits := nonDigitsRe.ReplaceAllString(value, "")
	if len(digits) < 8 || len(digits) > 15 {
		return false
	}
	return digits[0] != '0'
}
