package booking

import (
	"math"
	"strings"

	"bookly/config"
)

// rateEntry anchors the hourly rate curve at a known duration.
type rateEntry struct {
	Hours  float64
	Amount int
}

var rateTable = []rateEntry{
	{0.5, 400},
	{1.0, 700},
	{1.5, 1000},
	{2.0, 1300},
	{3.0, 1600},
	{4.0, 2000},
	{12.0, 3000},
}

var serviceAddons = map[string]int{
	"pse":     100,
	"filming": 500,
}

var fiatDisplayRates = map[string]float64{
	"USD": 1.0,
	"EUR": 0.7,
	"GBP": 0.65,
}

const depositPercent = 20.0

// BaseRate returns the CAD base rate for a session. Social bookings use a
// flat rate regardless of length, 8-12h sessions hit the overnight cap, and
// everything else falls on the anchor table with linear interpolation
// between anchors.
func BaseRate(hours float64, rateKey string) int {
	if hours <= 0 {
		return 0
	}
	if rateKey == "social" {
		return 1000
	}
	if hours >= 8 && hours <= 12 {
		return 3000
	}
	for _, entry := range rateTable {
		if math.Abs(hours-entry.Hours) < 0.001 {
			return entry.Amount
		}
	}
	var lower, upper *rateEntry
	for i := range rateTable {
		entry := &rateTable[i]
		if entry.Hours < hours {
			lower = entry
			continue
		}
		if entry.Hours > hours {
			upper = entry
			break
		}
	}
	if lower == nil {
		return rateTable[0].Amount
	}
	if upper == nil {
		return rateTable[len(rateTable)-1].Amount
	}
	ratio := (hours - lower.Hours) / (upper.Hours - lower.Hours)
	return int(math.Round(float64(lower.Amount) + float64(upper.Amount-lower.Amount)*ratio))
}

// Quote is the complete price breakdown for a booking request. Stored
// amounts stay in CAD; Display* fields are converted with the currency's
// display rate for customer-facing copy.
type Quote struct {
	BaseRate          int
	ServiceAddon      int
	ServiceAddonLabel string
	TotalRate         int
	DepositPercent    float64
	DepositAmount     int
	DepositCurrency   string
	BillingCurrency   string
	DisplayRate       float64
	DisplayBaseRate   int
	DisplayAddon      int
	DisplayTotalRate  int
}

// BuildQuote prices a request. Crypto deposits settle in CAD, PayPal
// settles in the configured PayPal currency, and a short list of fiat
// currencies carries a display-rate override for the emailed figures.
func BuildQuote(hours float64, rateKey, experience, paymentMethod, currency string) Quote {
	paypalCurrency := strings.TrimSpace(config.AppConfig.PayPalCurrency)
	if paypalCurrency == "" {
		paypalCurrency = "CAD"
	}

	displayRate := 1.0
	depositCurrency := currency
	if depositCurrency == "" {
		depositCurrency = paypalCurrency
	}
	switch {
	case paymentMethod == "paypal":
		depositCurrency = paypalCurrency
		displayRate = 1.0
	case depositCurrency == "USDC" || depositCurrency == "BTC" || depositCurrency == "LTC":
		depositCurrency = "CAD"
	default:
		if rate, ok := fiatDisplayRates[depositCurrency]; ok {
			displayRate = rate
		}
	}

	baseRate := BaseRate(hours, rateKey)
	addon := 0
	if baseRate > 0 {
		addon = serviceAddons[experience]
	}
	addonLabel := ""
	switch experience {
	case "pse":
		addonLabel = "PSE add-on"
	case "filming":
		addonLabel = "Filming add-on"
	}
	totalRate := baseRate + addon

	deposit := 0
	if totalRate > 0 {
		deposit = int(math.Round(float64(totalRate) * (depositPercent / 100) * displayRate))
	}

	billingCurrency := depositCurrency
	if billingCurrency == "" {
		billingCurrency = currency
	}
	if billingCurrency == "" {
		billingCurrency = "CAD"
	}

	displayTotal := int(math.Round(float64(totalRate) * displayRate))
	displayAddon := int(math.Round(float64(addon) * displayRate))
	displayBase := displayTotal - displayAddon
	if displayBase < 0 {
		displayBase = 0
	}

	return Quote{
		BaseRate:          baseRate,
		ServiceAddon:      addon,
		ServiceAddonLabel: addonLabel,
		TotalRate:         totalRate,
		DepositPercent:    depositPercent,
		DepositAmount:     deposit,
		DepositCurrency:   depositCurrency,
		BillingCurrency:   billingCurrency,
		DisplayRate:       displayRate,
		DisplayBaseRate:   displayBase,
		DisplayAddon:      displayAddon,
		DisplayTotalRate:  displayTotal,
	}
}
