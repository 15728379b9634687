package booking

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeCityName lowercases and collapses whitespace so city matching
// ignores casing and spacing differences.
func NormalizeCityName(city string) string {
	return whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(city)), " ")
}

// IsFlyMeCity reports whether the city is the special "fly me to you"
// option, which never matches a per-city schedule.
func IsFlyMeCity(city string) bool {
	return NormalizeCityName(city) == "fly me to you"
}

// NormalizeExperience maps free-form service variants onto the known set,
// defaulting to gfe.
func NormalizeExperience(experience string) string {
	normalized := strings.ToLower(strings.TrimSpace(experience))
	if normalized == "duo_gfe" {
		return "gfe"
	}
	switch normalized {
	case "gfe", "pse", "filming", "social":
		return normalized
	}
	return "gfe"
}

// ExperienceLabel renders the human label for a service variant.
func ExperienceLabel(experience string) string {
	switch strings.ToLower(strings.TrimSpace(experience)) {
	case "gfe", "":
		return "GFE"
	case "pse":
		return "PSE"
	case "filming":
		return "Filming"
	}
	return strings.ToUpper(strings.TrimSpace(experience))
}

// NormalizePaymentMethod folds aliases and unknown methods onto the
// allowed set, defaulting to paypal.
func NormalizePaymentMethod(method string) string {
	normalized := strings.ToLower(strings.TrimSpace(method))
	switch normalized {
	case "e-transfer":
		normalized = "interac"
	case "litecoin":
		normalized = "ltc"
	case "bitcoin":
		normalized = "btc"
	}
	switch normalized {
	case "paypal", "usdc", "btc", "ltc", "interac", "etransfer", "wise":
		return normalized
	}
	return "paypal"
}

// FormatPaymentMethod renders the display name of a payment method.
func FormatPaymentMethod(method string) string {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case "e-transfer", "etransfer", "interac":
		return "Interac e-Transfer"
	case "wise":
		return "Wise"
	case "litecoin", "ltc":
		return "Litecoin"
	case "usdc":
		return "USDC"
	case "btc":
		return "Bitcoin"
	}
	return "PayPal"
}

var cityListSplitRe = regexp.MustCompile(`[,;\n\r]+`)

// ParseCityList splits a free-text city list on commas, semicolons and
// newlines, deduplicating by normalized name while keeping the first
// spelling seen.
func ParseCityList(raw string) []string {
	parts := cityListSplitRe.Split(raw, -1)
	seen := make(map[string]bool, len(parts))
	var clean []string
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value == "" {
			continue
		}
		key := NormalizeCityName(value)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		clean = append(clean, value)
	}
	return clean
}
