// Package payment talks to the card processor.
package payment

import (
	"context"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/oksasatya/art-school-server/internal/application"
	"github.com/oksasatya/art-school-server/internal/domain/entity"
)

// StripeGateway creates card-only payment intents.
type StripeGateway struct {
	api *client.API
}

// NewStripeGateway builds a gateway for secretKey. A nil backends value uses the live API.
func NewStripeGateway(secretKey string, backends *stripe.Backends) *StripeGateway {
	return &StripeGateway{api: client.New(secretKey, backends)}
}

func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, amountCents int64, currency string) (*entity.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountCents),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, err
	}
	return &entity.PaymentIntent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

var _ application.PaymentGateway = (*StripeGateway)(nil)
