package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	DataDir           string `mapstructure:"DATA_DIR"`
	SiteURL           string `mapstructure:"SITE_URL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Admin access.
	AdminAPIKey       string `mapstructure:"ADMIN_API_KEY"`
	AdminUser         string `mapstructure:"ADMIN_UI_USER"`
	AdminPasswordHash string `mapstructure:"ADMIN_UI_PASSWORD_HASH"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`

	// Scheduling defaults.
	DefaultTourCity      string `mapstructure:"DEFAULT_TOUR_CITY"`
	DefaultTourTimezone  string `mapstructure:"DEFAULT_TOUR_TZ"`
	DefaultBufferMinutes int    `mapstructure:"DEFAULT_BUFFER_MINUTES"`

	// Email configuration.
	EmailEnabled     bool   `mapstructure:"EMAIL_ENABLED"`
	EmailFrom        string `mapstructure:"EMAIL_FROM"`
	EmailReplyTo     string `mapstructure:"EMAIL_REPLY_TO"`
	EmailSubject     string `mapstructure:"EMAIL_SUBJECT"`
	AdminNotifyEmail string `mapstructure:"ADMIN_NOTIFY_EMAIL"`
	SMTPHost         string `mapstructure:"SMTP_HOST"`
	SMTPPort         string `mapstructure:"SMTP_PORT"`
	SMTPUser         string `mapstructure:"SMTP_USER"`
	SMTPPassword     string `mapstructure:"SMTP_PASSWORD"`
	ContactPhone     string `mapstructure:"CONTACT_SMS_WHATSAPP"`

	// Payment details.
	StripeKey      string `mapstructure:"STRIPE_SECRET_KEY"`
	PayPalMeLink   string `mapstructure:"PAYPAL_ME_LINK"`
	PayPalCurrency string `mapstructure:"PAYPAL_CURRENCY"`
	InteracEmail   string `mapstructure:"INTERAC_EMAIL"`
	WiseEmail      string `mapstructure:"WISE_EMAIL"`
	WisePayLink    string `mapstructure:"WISE_PAY_LINK"`
	USDCWallet     string `mapstructure:"USDC_WALLET"`
	USDCNetwork    string `mapstructure:"USDC_NETWORK"`
	BTCWallet      string `mapstructure:"BTC_WALLET"`
	BTCNetwork     string `mapstructure:"BTC_NETWORK"`
	LTCWallet      string `mapstructure:"LTC_WALLET"`
	LTCNetwork     string `mapstructure:"LTC_NETWORK"`

	// Firebase Cloud Messaging.
	FCMProjectID           string `mapstructure:"FCM_PROJECT_ID"`
	FirebaseServiceAccount string `mapstructure:"FCM_SERVICE_ACCOUNT_JSON"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATA_DIR", "./data")
	viper.SetDefault("SITE_URL", "")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DEFAULT_TOUR_CITY", "Touring city not set")
	viper.SetDefault("DEFAULT_TOUR_TZ", "America/Toronto")
	viper.SetDefault("DEFAULT_BUFFER_MINUTES", 30)
	viper.SetDefault("EMAIL_ENABLED", true)
	viper.SetDefault("EMAIL_SUBJECT", "Booking request")
	viper.SetDefault("SMTP_PORT", "587")
	viper.SetDefault("PAYPAL_CURRENCY", "CAD")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
