package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// SignatureHeader is the header carrying the gateway's webhook signature.
const SignatureHeader = "Stripe-Signature"

const (
	integrationSourceKey   = "integration_source"
	integrationSourceValue = "storefront"
)

// ErrAuthenticationFailed marks a webhook payload that could not be verified
// against the shared signing secret. Nothing downstream may trust such a payload.
var ErrAuthenticationFailed = errors.New("webhook authentication failed")

// Stripe implements the Gateway interface against the Stripe payment-intent
// API and authenticates inbound webhook callbacks.
type Stripe struct {
	SecretKey     string
	WebhookSecret string
	BaseURL       string
	Tolerance     time.Duration
	Client        *http.Client
	Now           func() time.Time
}

// CreateIntent opens a payment intent with the gateway and returns the
// client secret / intent id pair.
func (s Stripe) CreateIntent(ctx context.Context, req IntentRequest) (Intent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(req.Amount, 10))
	form.Set("currency", req.Currency)
	form.Set("automatic_payment_methods[enabled]", "true")
	for key, value := range req.Metadata {
		if key == integrationSourceKey {
			continue
		}
		form.Set(fmt.Sprintf("metadata[%s]", key), value)
	}
	form.Set(fmt.Sprintf("metadata[%s]", integrationSourceKey), integrationSourceValue)

	endpoint := strings.TrimRight(s.apiHost(), "/") + "/v1/payment_intents"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return Intent{}, &GatewayError{Message: "build intent request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Authorization", "Bearer "+strings.TrimSpace(s.SecretKey))

	resp, err := s.httpClient().Do(httpReq)
	if err != nil {
		return Intent{}, &GatewayError{Message: "payment gateway unreachable", Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Intent{}, &GatewayError{Status: resp.StatusCode, Message: "read gateway response", Err: err}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return Intent{}, &GatewayError{Status: resp.StatusCode, Message: gatewayMessage(body)}
	}

	var payload struct {
		ID           string `json:"id"`
		ClientSecret string `json:"client_secret"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return Intent{}, &GatewayError{Status: resp.StatusCode, Message: "malformed gateway response", Err: err}
	}
	if payload.ID == "" || payload.ClientSecret == "" {
		return Intent{}, &GatewayError{Status: resp.StatusCode, Message: "gateway response missing intent credentials"}
	}
	return Intent{ID: payload.ID, ClientSecret: payload.ClientSecret}, nil
}

// VerifyWebhook authenticates the raw callback body against the signature
// header, then deserialises it into an Event. The signature is checked over
// the unparsed bytes; JSON parsing only happens after verification.
func (s Stripe) VerifyWebhook(body []byte, signatureHeader string) (Event, error) {
	secret := strings.TrimSpace(s.WebhookSecret)
	if secret == "" {
		return Event{}, fmt.Errorf("%w: signing secret not configured", ErrAuthenticationFailed)
	}
	ts, signatures, err := parseSignatureHeader(signatureHeader)
	if err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}
	if tolerance := s.tolerance(); tolerance > 0 {
		age := s.now().Sub(time.Unix(ts, 0))
		if age > tolerance || age < -tolerance {
			return Event{}, fmt.Errorf("%w: timestamp outside tolerance", ErrAuthenticationFailed)
		}
	}
	expected := computeWebhookSignature(secret, ts, body)
	verified := false
	for _, provided := range signatures {
		if hmac.Equal([]byte(expected), []byte(provided)) {
			verified = true
			break
		}
	}
	if !verified {
		return Event{}, fmt.Errorf("%w: signature mismatch", ErrAuthenticationFailed)
	}
	return parseEvent(body)
}

func (s Stripe) apiHost() string {
	host := strings.TrimSpace(s.BaseURL)
	if host == "" {
		return "https://api.stripe.com"
	}
	return host
}

func (s Stripe) httpClient() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return &http.Client{Timeout: 15 * time.Second}
}

func (s Stripe) tolerance() time.Duration {
	if s.Tolerance > 0 {
		return s.Tolerance
	}
	return 5 * time.Minute
}

func (s Stripe) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// parseSignatureHeader splits a "t=<unix>,v1=<hex>[,v1=<hex>...]" header into
// its timestamp and candidate signatures.
func parseSignatureHeader(header string) (int64, []string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return 0, nil, errors.New("missing signature header")
	}
	var (
		ts         int64
		tsSeen     bool
		signatures []string
	)
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			return 0, nil, errors.New("malformed signature header")
		}
		switch kv[0] {
		case "t":
			parsed, err := strconv.ParseInt(kv[1], 10, 64)
			if err != nil {
				return 0, nil, errors.New("malformed signature timestamp")
			}
			ts = parsed
			tsSeen = true
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}
	if !tsSeen {
		return 0, nil, errors.New("signature header missing timestamp")
	}
	if len(signatures) == 0 {
		return 0, nil, errors.New("signature header missing v1 signature")
	}
	return ts, signatures, nil
}

// computeWebhookSignature calculates HMAC-SHA256 over "<ts>.<body>" with the
// shared signing secret, hex encoded.
func computeWebhookSignature(secret string, ts int64, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write([]byte(strconv.FormatInt(ts, 10)))
	_, _ = mac.Write([]byte("."))
	_, _ = mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// SignWebhook produces a valid signature header for the given body. Exposed
// for tests and local tooling that replay gateway callbacks.
func SignWebhook(secret string, ts time.Time, body []byte) string {
	unix := ts.Unix()
	return fmt.Sprintf("t=%d,v1=%s", unix, computeWebhookSignature(secret, unix, body))
}

func gatewayMessage(body []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	return "payment intent rejected"
}
