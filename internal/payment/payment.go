// Package payment creates payment intents with an external provider.
package payment

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

// IntentRequest describes a charge to authorize. Amount is in the
// currency's minor unit.
type IntentRequest struct {
	Amount   int64
	Currency string
	Email    string
	OrderID  string
}

// Intent is the provider's handle for an authorized charge attempt.
type Intent struct {
	ID           string
	ClientSecret string
}

// Provider creates payment intents.
type Provider interface {
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
}

// ProviderError carries the message a caller should see when the provider
// rejects or cannot serve a request.
type ProviderError struct {
	Message string
	Err     error
}

func (e *ProviderError) Error() string { return e.Message }

func (e *ProviderError) Unwrap() error { return e.Err }

var zeroDecimalCurrencies = map[string]bool{
	"bif": true, "clp": true, "djf": true, "gnf": true, "jpy": true,
	"kmf": true, "krw": true, "mga": true, "pyg": true, "rwf": true,
	"ugx": true, "vnd": true, "vuv": true, "xaf": true, "xof": true, "xpf": true,
}

// ToMinorUnits converts an amount in the major currency unit to the integer
// minor unit the provider expects, rounding half away from zero.
func ToMinorUnits(amount decimal.Decimal, currency string) int64 {
	if zeroDecimalCurrencies[strings.ToLower(currency)] {
		return amount.Round(0).IntPart()
	}
	return amount.Shift(2).Round(0).IntPart()
}
