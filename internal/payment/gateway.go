package payment

import (
	"context"
	"fmt"
)

// IntentRequest captures the information required to open a payment intent
// with the gateway. Amount is always integer minor units.
type IntentRequest struct {
	Amount   int64
	Currency string
	Metadata map[string]string
}

// Intent is the minimal pair the storefront needs to complete payment
// client-side. No other gateway fields are exposed.
type Intent struct {
	ID           string
	ClientSecret string
}

// Gateway abstracts payment intent creation with an upstream provider.
type Gateway interface {
	CreateIntent(ctx context.Context, req IntentRequest) (Intent, error)
}

// GatewayError carries the upstream gateway's own diagnostic message so it
// can be surfaced to callers instead of being swallowed.
type GatewayError struct {
	Status  int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GatewayError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return fmt.Sprintf("gateway: %s", e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("gateway: %v", e.Err)
	}
	return "gateway error"
}

// Unwrap allows errors.Is/As to inspect the underlying transport error.
func (e *GatewayError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
