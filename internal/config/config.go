package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds the runtime settings of the storefront service.
type Config struct {
	AppPort string

	DatabaseDriver string // memory, sqlite or postgres
	DatabaseDSN    string

	RedisAddr string
	CacheTTL  time.Duration

	RabbitMQURL string
	OrderQueue  string

	StripeSecretKey string
	PaymentCurrency string
	PaymentTimeout  time.Duration

	JWTSecret string
	TokenTTL  time.Duration
}

// PaymentsEnabled reports whether a payment provider key is configured.
func (c Config) PaymentsEnabled() bool {
	return c.StripeSecretKey != ""
}

// Load reads configuration from the environment on top of defaults.
func Load(v *viper.Viper) Config {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "storefront.db")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("CACHE_TTL", "10m")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("ORDER_QUEUE", "order_queue")
	v.SetDefault("STRIPE_SECRET_KEY", "")
	v.SetDefault("PAYMENT_CURRENCY", "usd")
	v.SetDefault("PAYMENT_TIMEOUT", "10s")
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("TOKEN_TTL", "24h")
	v.AutomaticEnv()

	return Config{
		AppPort:         v.GetString("APP_PORT"),
		DatabaseDriver:  v.GetString("DATABASE_DRIVER"),
		DatabaseDSN:     v.GetString("DATABASE_DSN"),
		RedisAddr:       v.GetString("REDIS_ADDR"),
		CacheTTL:        v.GetDuration("CACHE_TTL"),
		RabbitMQURL:     v.GetString("RABBITMQ_URL"),
		OrderQueue:      v.GetString("ORDER_QUEUE"),
		StripeSecretKey: v.GetString("STRIPE_SECRET_KEY"),
		PaymentCurrency: v.GetString("PAYMENT_CURRENCY"),
		PaymentTimeout:  v.GetDuration("PAYMENT_TIMEOUT"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		TokenTTL:        v.GetDuration("TOKEN_TTL"),
	}
}
