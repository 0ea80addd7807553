package payment

import (
	"errors"
	"net/http"
	"testing"

	"github.com/noah-isme/backend-pay/internal/common"
)

func TestValidateAmount(t *testing.T) {
	cases := []struct {
		name    string
		amount  *float64
		want    int64
		wantErr bool
	}{
		{name: "missing", amount: nil, wantErr: true},
		{name: "zero", amount: ptr(0), wantErr: true},
		{name: "below minimum", amount: ptr(49), wantErr: true},
		{name: "rounds below minimum", amount: ptr(49.4), wantErr: true},
		{name: "rounds up to minimum", amount: ptr(49.5), want: 50},
		{name: "exact minimum", amount: ptr(50), want: 50},
		{name: "rounds half up", amount: ptr(100.5), want: 101},
		{name: "rounds down", amount: ptr(100.4), want: 100},
		{name: "large", amount: ptr(250000), want: 250000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ValidateAmount(tc.amount)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				var app *common.AppError
				if !errors.As(err, &app) {
					t.Fatalf("expected AppError, got %T", err)
				}
				if app.Code != "INVALID_AMOUNT" {
					t.Fatalf("unexpected code %q", app.Code)
				}
				if app.HTTPStatus != http.StatusBadRequest {
					t.Fatalf("unexpected status %d", app.HTTPStatus)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestNormalizeCurrency(t *testing.T) {
	if got := NormalizeCurrency(""); got != "usd" {
		t.Fatalf("expected default currency, got %q", got)
	}
	if got := NormalizeCurrency(" EUR "); got != "eur" {
		t.Fatalf("expected lowercased currency, got %q", got)
	}
}

func ptr(v float64) *float64 { return &v }
