// Package gateway is the capability boundary to the external payment
// processor. Services depend on Client; the Stripe implementation lives in
// stripe.go and webhook verification in webhook.go.
package gateway

import "context"

// Intent is a processor-side authorization-in-progress for a fixed amount.
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
}

// Event is a verified webhook notification.
type Event struct {
	Type     string
	IntentID string
}

const (
	IntentSucceeded = "succeeded"

	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
)

type Client interface {
	// CreateIntent opens an intent for amount in minor currency units.
	CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*Intent, error)
	// RetrieveIntent reads the current processor-side state of an intent.
	RetrieveIntent(ctx context.Context, intentID string) (*Intent, error)
	// VerifyWebhook checks the signature header against the configured
	// secret and decodes the event.
	VerifyWebhook(payload []byte, signatureHeader string) (*Event, error)
}
