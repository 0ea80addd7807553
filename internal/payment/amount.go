package payment

import (
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/noah-isme/backend-pay/internal/common"
)

// MinAmount is the smallest chargeable amount in minor units accepted by the
// gateway. Requests below it are rejected before any gateway call is made.
const MinAmount = 50

// DefaultCurrency applies when the storefront omits the currency field.
const DefaultCurrency = "usd"

// ValidateAmount normalises a storefront-supplied amount to integer minor
// units. The rounded value, never the raw float, is what travels downstream.
func ValidateAmount(amount *float64) (int64, error) {
	if amount == nil {
		return 0, invalidAmount("amount is required")
	}
	rounded := int64(math.Round(*amount))
	if rounded < MinAmount {
		return 0, invalidAmount(fmt.Sprintf("amount must be at least %d in minor units", MinAmount))
	}
	return rounded, nil
}

// NormalizeCurrency lower-cases the currency code and falls back to the
// default when the caller left it empty.
func NormalizeCurrency(currency string) string {
	trimmed := strings.ToLower(strings.TrimSpace(currency))
	if trimmed == "" {
		return DefaultCurrency
	}
	return trimmed
}

func invalidAmount(message string) error {
	return common.NewAppError("INVALID_AMOUNT", message, http.StatusBadRequest, nil)
}
