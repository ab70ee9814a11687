package payment

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PaymentSessionRequest is the internal order shape accepted by the
// create-payment-session endpoint.
type PaymentSessionRequest struct {
	OrderID  string     `json:"orderId"`
	Currency string     `json:"currency"`
	Items    []LineItem `json:"items"`
}

// LineItem carries the price in major currency units (e.g. 19.99 for $19.99).
type LineItem struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

func (r PaymentSessionRequest) Validate() error {
	if r.OrderID == "" {
		return fmt.Errorf("orderId is required")
	}
	if r.Currency == "" {
		return fmt.Errorf("currency is required")
	}
	if len(r.Items) == 0 {
		return fmt.Errorf("at least one item is required")
	}
	for i, item := range r.Items {
		if item.Name == "" {
			return fmt.Errorf("item %d: name is required", i)
		}
		if item.Price.IsNegative() {
			return fmt.Errorf("item %d: price must not be negative", i)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("item %d: quantity must be at least 1", i)
		}
	}
	return nil
}

// SessionParams converts the request into processor parameters with prices
// expressed in minor units.
func (r PaymentSessionRequest) SessionParams(successURL, cancelURL string) CheckoutSessionParams {
	lineItems := make([]LineItemParams, 0, len(r.Items))
	for _, item := range r.Items {
		lineItems = append(lineItems, LineItemParams{
			Name:       item.Name,
			UnitAmount: MinorUnits(item.Price),
			Quantity:   item.Quantity,
		})
	}

	return CheckoutSessionParams{
		OrderID:    r.OrderID,
		Currency:   r.Currency,
		LineItems:  lineItems,
		SuccessURL: successURL,
		CancelURL:  cancelURL,
	}
}

var hundred = decimal.NewFromInt(100)

// MinorUnits converts a major-unit price to the smallest currency
// denomination, rounded to the nearest integer. Exact for prices with up to
// two decimal places.
func MinorUnits(price decimal.Decimal) int64 {
	return price.Mul(hundred).Round(0).IntPart()
}
