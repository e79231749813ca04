package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server      Server      `mapstructure:"server"`
	Database    Database    `mapstructure:"database"`
	Negotiation Negotiation `mapstructure:"negotiation"`
	Scheduler   Scheduler   `mapstructure:"scheduler"`
	Payment     Payment     `mapstructure:"payment"`
	Logger      Logger      `mapstructure:"logger"`
}

// Server holds the configuration for the web server.
type Server struct {
	Port int `mapstructure:"port"`
}

// Database holds the configuration for the storage backend. An empty DSN
// selects the in-memory store.
type Database struct {
	DSN string `mapstructure:"dsn"`
}

// Negotiation holds the business rules of the offer and trade engines.
type Negotiation struct {
	CommissionRate    float64       `mapstructure:"commission_rate"`
	MinOfferFraction  float64       `mapstructure:"min_offer_fraction"`
	OfferWindow       time.Duration `mapstructure:"offer_window"`
	ResponseWindow    time.Duration `mapstructure:"response_window"`
	PaymentWindow     time.Duration `mapstructure:"payment_window"`
	ShippingWindow    time.Duration `mapstructure:"shipping_window"`
	ConfirmWindow     time.Duration `mapstructure:"confirm_window"`
	DefaultPageSize   int           `mapstructure:"default_page_size"`
}

// Scheduler holds the deadline-scheduler settings.
type Scheduler struct {
	TickInterval time.Duration `mapstructure:"tick_interval"`
}

// Payment holds the configuration for the payment-gateway client.
type Payment struct {
	BaseURL        string        `mapstructure:"base_url"`
	APIKey         string        `mapstructure:"api_key"`
	Timeout        time.Duration `mapstructure:"timeout"`
	RateLimit      float64       `mapstructure:"rate_limit"`
	RateLimitBurst int           `mapstructure:"rate_limit_burst"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level string `mapstructure:"level"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yml")

	// Allow environment variables to override config file
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("database.dsn", "")
	viper.SetDefault("negotiation.commission_rate", 0.05)
	viper.SetDefault("negotiation.min_offer_fraction", 0.5)
	viper.SetDefault("negotiation.offer_window", 24*time.Hour)
	viper.SetDefault("negotiation.response_window", 48*time.Hour)
	viper.SetDefault("negotiation.payment_window", 24*time.Hour)
	viper.SetDefault("negotiation.shipping_window", 5*24*time.Hour)
	viper.SetDefault("negotiation.confirm_window", 7*24*time.Hour)
	viper.SetDefault("negotiation.default_page_size", 20)
	viper.SetDefault("scheduler.tick_interval", time.Minute)
	viper.SetDefault("payment.timeout", 10*time.Second)
	viper.SetDefault("payment.rate_limit", 20)
	viper.SetDefault("payment.rate_limit_burst", 5)
	viper.SetDefault("logger.level", "info")

	if err = viper.ReadInConfig(); err != nil {
		// A missing config file is fine, defaults and env cover it.
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}
