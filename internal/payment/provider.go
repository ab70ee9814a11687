package payment

import (
	"github.com/stripe/stripe-go/v76"
)

// Provider abstracts the payment processor so handlers can be exercised
// without network access.
type Provider interface {
	CreateCheckoutSession(params CheckoutSessionParams) (*CheckoutSession, error)
	VerifyWebhookSignature(payload []byte, signature string) (stripe.Event, error)
}

type LineItemParams struct {
	Name       string
	UnitAmount int64 // minor currency units
	Quantity   int64
}

type CheckoutSessionParams struct {
	OrderID    string
	Currency   string
	LineItems  []LineItemParams
	SuccessURL string
	CancelURL  string
}

// CheckoutSession is the subset of the processor's session response this
// service exposes. Everything else Stripe returns is discarded.
type CheckoutSession struct {
	URL        string `json:"url"`
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
}
