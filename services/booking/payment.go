package booking

import (
	"net/url"
	"strconv"
	"strings"

	"bookly/config"
)

// BuildPaymentDetails resolves the instructions a customer needs to send
// the deposit with their chosen method. The result is either a URL
// (PayPal.me, Wise pay link) or a plain-text line (Interac email, crypto
// wallet). Methods without configured details fall back to the PayPal link.
func BuildPaymentDetails(method string, amount int) string {
	switch NormalizePaymentMethod(method) {
	case "interac":
		if details := interacDetails(); details != "" {
			return details
		}
	case "wise":
		if details := wiseDetails(); details != "" {
			return details
		}
	case "usdc":
		if details := cryptoDetails("USDC", config.AppConfig.USDCWallet, config.AppConfig.USDCNetwork); details != "" {
			return details
		}
	case "btc":
		if details := cryptoDetails("BTC", config.AppConfig.BTCWallet, config.AppConfig.BTCNetwork); details != "" {
			return details
		}
	case "ltc":
		if details := cryptoDetails("LTC", config.AppConfig.LTCWallet, config.AppConfig.LTCNetwork); details != "" {
			return details
		}
	}
	return paypalLink(amount)
}

// IsPaymentURL reports whether payment details are a clickable link rather
// than plain instructions.
func IsPaymentURL(details string) bool {
	lower := strings.ToLower(details)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func paypalLink(amount int) string {
	if amount <= 0 {
		return ""
	}
	base := strings.TrimRight(strings.TrimSpace(config.AppConfig.PayPalMeLink), "/")
	if base == "" {
		return ""
	}
	currency := strings.TrimSpace(config.AppConfig.PayPalCurrency)
	if currency == "" {
		currency = "USD"
	}
	return base + "/" + strconv.Itoa(amount) + "?currencyCode=" + url.QueryEscape(currency)
}

func interacDetails() string {
	email := strings.TrimSpace(config.AppConfig.InteracEmail)
	if email == "" {
		return ""
	}
	return "Interac e-Transfer (Canada only): " + email
}

func wiseDetails() string {
	if link := strings.TrimSpace(config.AppConfig.WisePayLink); link != "" {
		return link
	}
	if email := strings.TrimSpace(config.AppConfig.WiseEmail); email != "" {
		return "Wise (email): " + email
	}
	return ""
}

func cryptoDetails(label, wallet, network string) string {
	wallet = strings.TrimSpace(wallet)
	if wallet == "" {
		return ""
	}
	if network != "" {
		label += " (" + network + ")"
	}
	return label + ": " + wallet
}
