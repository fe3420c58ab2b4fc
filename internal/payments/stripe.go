package payments

import (
	"context"

	stripe "github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
)

// Currency is fixed: the platform charges in USD only.
const Currency = "usd"

// MinorUnits converts a dollar amount to cents the way the provider
// expects. Truncation, not rounding: fractional cents are dropped.
func MinorUnits(amount float64) int64 {
	return int64(amount * 100)
}

// IntentCreator obtains a provider-side payment handle. The returned
// client secret is opaque and confirmed client-side.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amountMinor int64) (clientSecret string, err error)
}

type StripeBridge struct{}

func NewStripeBridge(secretKey string) *StripeBridge {
	stripe.Key = secretKey
	return &StripeBridge{}
}

func (b *StripeBridge) CreateIntent(ctx context.Context, amountMinor int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Params:             stripe.Params{Context: ctx},
		Amount:             stripe.Int64(amountMinor),
		Currency:           stripe.String(Currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	pi, err := paymentintent.New(params)
	if err != nil {
		return "", err
	}
	return pi.ClientSecret, nil
}
