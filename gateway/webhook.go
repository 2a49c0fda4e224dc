package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrInvalidPayload   = errors.New("invalid webhook payload")
)

// webhookTolerance bounds how stale a signed timestamp may be.
const webhookTolerance = 5 * time.Minute

type webhookEnvelope struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID string `json:"id"`
		} `json:"object"`
	} `json:"data"`
}

// VerifyWebhookSignature checks a Stripe-style signature header
// (t=<unix>,v1=<hex hmac-sha256 of "<t>.<payload>">) and decodes the event.
func VerifyWebhookSignature(payload []byte, signatureHeader, secret string, now time.Time) (*Event, error) {
	ts, sigs, err := parseSignatureHeader(signatureHeader)
	if err != nil {
		return nil, err
	}

	signedAt := time.Unix(ts, 0)
	if now.Sub(signedAt) > webhookTolerance || signedAt.Sub(now) > webhookTolerance {
		return nil, ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)
	expected := mac.Sum(nil)

	ok := false
	for _, sig := range sigs {
		raw, err := hex.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(raw, expected) {
			ok = true
			break
		}
	}
	if !ok {
		return nil, ErrInvalidSignature
	}

	var env webhookEnvelope
	if err := json.Unmarshal(payload, &env); err != nil || env.Type == "" {
		return nil, ErrInvalidPayload
	}
	return &Event{Type: env.Type, IntentID: env.Data.Object.ID}, nil
}

// SignWebhookPayload produces a header VerifyWebhookSignature accepts.
// Used by tests and local tooling.
func SignWebhookPayload(payload []byte, secret string, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", at.Unix())
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func parseSignatureHeader(header string) (int64, []string, error) {
	if header == "" {
		return 0, nil, ErrInvalidSignature
	}
	var ts int64 = -1
	var sigs []string
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			v, err := strconv.ParseInt(kv[1], 10, 64)
			if err != nil {
				return 0, nil, ErrInvalidSignature
			}
			ts = v
		case "v1":
			sigs = append(sigs, kv[1])
		}
	}
	if ts < 0 || len(sigs) == 0 {
		return 0, nil, ErrInvalidSignature
	}
	return ts, sigs, nil
}
