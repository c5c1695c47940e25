package config_test

import (
	"testing"
	"time"

	"storefront/internal/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load(viper.New())

	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "usd", cfg.PaymentCurrency)
	assert.Equal(t, 10*time.Second, cfg.PaymentTimeout)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "order_queue", cfg.OrderQueue)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("PAYMENT_TIMEOUT", "3s")
	t.Setenv("DATABASE_DRIVER", "memory")

	cfg := config.Load(viper.New())

	assert.True(t, cfg.PaymentsEnabled())
	assert.Equal(t, 3*time.Second, cfg.PaymentTimeout)
	assert.Equal(t, "memory", cfg.DatabaseDriver)
}

func TestPaymentsEnabled_WithoutKey(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "")
	cfg := config.Load(viper.New())
	assert.False(t, cfg.PaymentsEnabled())
}
