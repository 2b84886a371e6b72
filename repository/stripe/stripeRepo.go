package striperepo

import (
	"context"
	"encoding/json"
)

// PaymentIntent is the subset of the gateway's payment object this service reads.
type PaymentIntent struct {
	ID       string            `json:"id"`
	Status   string            `json:"status"`
	Metadata map[string]string `json:"metadata"`
}

// CheckoutSession is the subset of the gateway's checkout session object.
type CheckoutSession struct {
	ID            string            `json:"id"`
	PaymentStatus string            `json:"payment_status"`
	URL           string            `json:"url"`
	Metadata      map[string]string `json:"metadata"`
}

type CreateSessionReq struct {
	ProductName string
	Amount      float64
	Currency    string
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

// Event is a verified webhook envelope.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"-"`
}

type Repo interface {
	RetrievePaymentIntent(ctx context.Context, id string) (*PaymentIntent, error)
	RetrieveCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error)
	CreateCheckoutSession(ctx context.Context, req CreateSessionReq) (*CheckoutSession, error)

	// VerifyWebhook checks the signature header against the webhook secret
	// and returns the parsed event. The raw body must not be trusted before
	// this returns without error.
	VerifyWebhook(sigHeader string, raw []byte) (*Event, error)
}
