package payment

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPaymentSessionRequestValidate(t *testing.T) {
	validItem := LineItem{Name: "Book", Price: decimal.NewFromFloat(19.99), Quantity: 2}

	tests := []struct {
		name    string
		request PaymentSessionRequest
		wantErr bool
	}{
		{
			name: "Valid request",
			request: PaymentSessionRequest{
				OrderID:  "o1",
				Currency: "usd",
				Items:    []LineItem{validItem},
			},
			wantErr: false,
		},
		{
			name: "Missing order id",
			request: PaymentSessionRequest{
				Currency: "usd",
				Items:    []LineItem{validItem},
			},
			wantErr: true,
		},
		{
			name: "Missing currency",
			request: PaymentSessionRequest{
				OrderID: "o1",
				Items:   []LineItem{validItem},
			},
			wantErr: true,
		},
		{
			name: "No items",
			request: PaymentSessionRequest{
				OrderID:  "o1",
				Currency: "usd",
			},
			wantErr: true,
		},
		{
			name: "Negative price",
			request: PaymentSessionRequest{
				OrderID:  "o1",
				Currency: "usd",
				Items:    []LineItem{{Name: "Book", Price: decimal.NewFromFloat(-1.50), Quantity: 1}},
			},
			wantErr: true,
		},
		{
			name: "Zero quantity",
			request: PaymentSessionRequest{
				OrderID:  "o1",
				Currency: "usd",
				Items:    []LineItem{{Name: "Book", Price: decimal.NewFromFloat(5), Quantity: 0}},
			},
			wantErr: true,
		},
		{
			name: "Unnamed item",
			request: PaymentSessionRequest{
				OrderID:  "o1",
				Currency: "usd",
				Items:    []LineItem{{Price: decimal.NewFromFloat(5), Quantity: 1}},
			},
			wantErr: true,
		},
		{
			name: "Free item is allowed",
			request: PaymentSessionRequest{
				OrderID:  "o1",
				Currency: "usd",
				Items:    []LineItem{{Name: "Sticker", Price: decimal.Zero, Quantity: 1}},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		price string
		want  int64
	}{
		{"19.99", 1999},
		{"0", 0},
		{"0.01", 1},
		{"100", 10000},
		{"10.5", 1050},
		{"10.555", 1056},
		{"10.554", 1055},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			price, err := decimal.NewFromString(tt.price)
			if err != nil {
				t.Fatalf("NewFromString(%q) error = %v", tt.price, err)
			}
			if got := MinorUnits(price); got != tt.want {
				t.Errorf("MinorUnits(%s) = %d, want %d", tt.price, got, tt.want)
			}
		})
	}
}

// Conversion must round-trip exactly for prices with up to two decimal
// places, since that is what callers send for the supported currencies.
func TestMinorUnitsRoundTrip(t *testing.T) {
	for cents := int64(0); cents < 10000; cents++ {
		price := decimal.NewFromInt(cents).Div(hundred)
		if got := MinorUnits(price); got != cents {
			t.Fatalf("MinorUnits(%s) = %d, want %d", price, got, cents)
		}
	}
}

func TestSessionParams(t *testing.T) {
	request := PaymentSessionRequest{
		OrderID:  "o1",
		Currency: "usd",
		Items: []LineItem{
			{Name: "Book", Price: decimal.NewFromFloat(19.99), Quantity: 2},
			{Name: "Pen", Price: decimal.NewFromFloat(1.50), Quantity: 1},
		},
	}

	params := request.SessionParams("https://app.example.com/success", "https://app.example.com/cancel")

	if params.OrderID != "o1" {
		t.Errorf("Expected order id 'o1', got '%s'", params.OrderID)
	}
	if params.Currency != "usd" {
		t.Errorf("Expected currency 'usd', got '%s'", params.Currency)
	}
	if params.SuccessURL != "https://app.example.com/success" {
		t.Errorf("Unexpected success URL '%s'", params.SuccessURL)
	}
	if params.CancelURL != "https://app.example.com/cancel" {
		t.Errorf("Unexpected cancel URL '%s'", params.CancelURL)
	}
	if len(params.LineItems) != 2 {
		t.Fatalf("Expected 2 line items, got %d", len(params.LineItems))
	}
	if params.LineItems[0].UnitAmount != 1999 {
		t.Errorf("Expected unit amount 1999, got %d", params.LineItems[0].UnitAmount)
	}
	if params.LineItems[0].Quantity != 2 {
		t.Errorf("Expected quantity 2, got %d", params.LineItems[0].Quantity)
	}
	if params.LineItems[1].UnitAmount != 150 {
		t.Errorf("Expected unit amount 150, got %d", params.LineItems[1].UnitAmount)
	}
}
