package payment

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-pay/internal/common"
	"github.com/noah-isme/backend-pay/internal/obs"
)

// Handler exposes the payment intent HTTP endpoint.
type Handler struct {
	Gateway Gateway
	Log     zerolog.Logger
}

type intentReq struct {
	Amount   *float64          `json:"amount"`
	Currency string            `json:"currency"`
	Metadata map[string]string `json:"metadata"`
}

type intentResp struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

// CreateIntent validates the requested amount and opens a payment intent with
// the gateway. Amounts below the minimum never reach the gateway.
func (h *Handler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Gateway == nil {
		common.JSONError(w, http.StatusInternalServerError, "PAYMENT_NOT_CONFIGURED", "payment handler unavailable", nil)
		return
	}
	var req intentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid body", nil)
		return
	}
	amount, err := ValidateAmount(req.Amount)
	if err != nil {
		h.count("invalid_amount")
		common.RenderError(w, err)
		return
	}

	intent, err := h.Gateway.CreateIntent(r.Context(), IntentRequest{
		Amount:   amount,
		Currency: NormalizeCurrency(req.Currency),
		Metadata: req.Metadata,
	})
	if err != nil {
		h.count("gateway_error")
		var gwErr *GatewayError
		if errors.As(err, &gwErr) {
			h.Log.Error().
				Err(err).
				Int("gateway_status", gwErr.Status).
				Int64("amount", amount).
				Msg("create payment intent failed")
			common.JSONError(w, http.StatusInternalServerError, "GATEWAY_ERROR", "payment gateway error", map[string]string{"gateway": gwErr.Message})
			return
		}
		h.Log.Error().Err(err).Int64("amount", amount).Msg("create payment intent failed")
		common.RenderError(w, err)
		return
	}

	h.count("success")
	common.JSON(w, http.StatusOK, intentResp{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
	})
}

func (h *Handler) count(result string) {
	if obs.PaymentIntentTotal != nil {
		obs.PaymentIntentTotal.WithLabelValues(result).Inc()
	}
}
