package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const stripeAPIBase = "https://api.stripe.com/v1"

// StripeClient talks to the Stripe REST API directly: form-encoded
// requests, bearer auth, bounded timeout.
type StripeClient struct {
	secretKey     string
	webhookSecret string
	baseURL       string
	http          *http.Client
}

func NewStripeClient(secretKey, webhookSecret string) *StripeClient {
	return &StripeClient{
		secretKey:     secretKey,
		webhookSecret: webhookSecret,
		baseURL:       stripeAPIBase,
		http:          &http.Client{Timeout: 15 * time.Second},
	}
}

type stripeIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

type stripeError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (s *StripeClient) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*Intent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", currency)
	for k, v := range metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	var out stripeIntent
	if err := s.do(ctx, http.MethodPost, "/payment_intents", form, &out); err != nil {
		return nil, err
	}
	return &Intent{ID: out.ID, ClientSecret: out.ClientSecret, Status: out.Status}, nil
}

func (s *StripeClient) RetrieveIntent(ctx context.Context, intentID string) (*Intent, error) {
	var out stripeIntent
	if err := s.do(ctx, http.MethodGet, "/payment_intents/"+url.PathEscape(intentID), nil, &out); err != nil {
		return nil, err
	}
	return &Intent{ID: out.ID, ClientSecret: out.ClientSecret, Status: out.Status}, nil
}

func (s *StripeClient) VerifyWebhook(payload []byte, signatureHeader string) (*Event, error) {
	return VerifyWebhookSignature(payload, signatureHeader, s.webhookSecret, time.Now())
}

func (s *StripeClient) do(ctx context.Context, method, path string, form url.Values, out any) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	res, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("stripe request failed: %w", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("stripe response read failed: %w", err)
	}
	if res.StatusCode >= 400 {
		var se stripeError
		if json.Unmarshal(data, &se) == nil && se.Error.Message != "" {
			return fmt.Errorf("stripe: %s", se.Error.Message)
		}
		return fmt.Errorf("stripe: status %d", res.StatusCode)
	}
	return json.Unmarshal(data, out)
}
