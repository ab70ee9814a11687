package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/Nest-Microservices-dTv/payments-ms/internal/bus"
	"github.com/Nest-Microservices-dTv/payments-ms/internal/config"
	"github.com/Nest-Microservices-dTv/payments-ms/internal/event"
	"github.com/Nest-Microservices-dTv/payments-ms/internal/payment"
	"github.com/Nest-Microservices-dTv/payments-ms/internal/store"
	"github.com/stripe/stripe-go/v76"
)

type apiConfig struct {
	config    *config.Config
	provider  payment.Provider
	publisher bus.Publisher
	ledger    store.Store
}

func (cfg *apiConfig) createPaymentSessionHandler(w http.ResponseWriter, r *http.Request) {
	var req payment.PaymentSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ApiError{
			Code:    "INVALID_REQUEST",
			Message: "Invalid request body",
		})
		return
	}

	if err := req.Validate(); err != nil {
		respondWithError(w, http.StatusBadRequest, ApiError{
			Code:    "INVALID_REQUEST",
			Message: "Invalid payment session request",
			Details: err.Error(),
		})
		return
	}

	session, err := cfg.provider.CreateCheckoutSession(
		req.SessionParams(cfg.config.StripeSuccessURL, cfg.config.StripeCancelURL),
	)
	if err != nil {
		log.Printf("Failed to create checkout session for order %s: %v", req.OrderID, err)
		respondWithError(w, processorErrorStatus(err), ApiError{
			Code:    "PAYMENT_ERROR",
			Message: "Failed to create payment session",
			Details: err.Error(),
		})
		return
	}

	respondWithJSON(w, http.StatusOK, session)
}

// processorErrorStatus keeps client mistakes (bad currency, amount out of
// range) as 4xx and everything else as an upstream failure.
func processorErrorStatus(err error) int {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode >= 400 && stripeErr.HTTPStatusCode < 500 {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

func (cfg *apiConfig) stripeWebhookHandler(w http.ResponseWriter, r *http.Request) {
	// The signature covers the literal body bytes, so they must reach the
	// verifier unparsed.
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ApiError{
			Code:    "INVALID_PAYLOAD",
			Message: "Failed to read request body",
		})
		return
	}

	sig := r.Header.Get("Stripe-Signature")
	if sig == "" {
		respondWithError(w, http.StatusBadRequest, ApiError{
			Code:    "MISSING_SIGNATURE",
			Message: "Missing Stripe signature",
		})
		return
	}

	evt, err := cfg.provider.VerifyWebhookSignature(payload, sig)
	if err != nil {
		// No event data in the response: the payload is untrusted.
		log.Printf("Webhook signature verification failed: %v", err)
		respondWithError(w, http.StatusBadRequest, ApiError{
			Code:    "INVALID_SIGNATURE",
			Message: "Invalid webhook signature",
		})
		return
	}

	classified, err := event.Classify(&evt)
	if err != nil {
		// Verified but undecodable: retrying cannot fix it, so acknowledge.
		log.Printf("Dropping undecodable %s event %s: %v", evt.Type, evt.ID, err)
		respondWithJSON(w, http.StatusOK, map[string]string{"sig": sig})
		return
	}

	switch c := classified.(type) {
	case event.PaymentSucceeded:
		if !cfg.forwardPayment(w, r, c, sig) {
			return
		}

	case event.Unhandled:
		log.Printf("Unhandled event type %s", c.Type)
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"sig": sig})
}

// forwardPayment translates and publishes one confirmed payment. It reports
// whether the caller should still acknowledge with 200; on a publish failure
// it has already responded 5xx so Stripe redelivers.
func (cfg *apiConfig) forwardPayment(w http.ResponseWriter, r *http.Request, succeeded event.PaymentSucceeded, sig string) bool {
	payload, err := event.TranslateCharge(&succeeded.Charge)
	if err != nil {
		// Unfixable upstream payload: acknowledge so Stripe stops retrying,
		// keep enough context in the log for manual reconciliation.
		log.Printf("Dropping charge %s: %v", succeeded.Charge.ID, err)
		return true
	}

	// The publish must survive an aborted request: losing a confirmed
	// payment is worse than a late message.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), cfg.config.PublishTimeout)
	defer cancel()

	cfg.recordPayment(ctx, payload)

	if err := cfg.publisher.Publish(ctx, payload.StripePaymentID, payload); err != nil {
		log.Printf("Failed to publish payment %s (order %s): %v",
			payload.StripePaymentID, payload.OrderID, err)
		respondWithError(w, http.StatusBadGateway, ApiError{
			Code:    "PUBLISH_FAILED",
			Message: "Failed to forward payment event",
		})
		return false
	}

	return true
}

// recordPayment writes the ledger entry. Best-effort only: at-least-once
// delivery stands either way, and the consumer deduplicates on the payment
// id.
func (cfg *apiConfig) recordPayment(ctx context.Context, payload event.PaymentSucceededPayload) {
	created, err := cfg.ledger.RecordPayment(ctx, store.PaymentRecord{
		StripePaymentID: payload.StripePaymentID,
		OrderID:         payload.OrderID,
		ReceiptURL:      payload.ReceiptURL,
	})
	if err != nil {
		log.Printf("Failed to record payment %s in ledger: %v", payload.StripePaymentID, err)
		return
	}
	if !created {
		log.Printf("Duplicate webhook delivery for payment %s (order %s), republishing",
			payload.StripePaymentID, payload.OrderID)
	}
}

func (cfg *apiConfig) healthzHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
