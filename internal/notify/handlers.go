package notify

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/backend-pay/internal/common"
	"github.com/noah-isme/backend-pay/internal/order"
)

// Handler exposes the order confirmation endpoint.
type Handler struct {
	Composer   Composer
	Dispatcher *Dispatcher
	Validate   *validator.Validate
}

type sendReq struct {
	OrderData *order.Order `json:"orderData"`
}

type sendResp struct {
	Success           bool `json:"success"`
	CustomerEmailSent bool `json:"customerEmailSent"`
	AdminEmailSent    bool `json:"adminEmailSent"`
}

// SendOrderEmails composes and dispatches the customer and operator
// confirmations for one order. Partial delivery failure is not an endpoint
// error; it is reported through the two boolean fields.
func (h *Handler) SendOrderEmails(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Dispatcher == nil {
		common.JSONError(w, http.StatusInternalServerError, "NOTIFY_NOT_CONFIGURED", "notification handler unavailable", nil)
		return
	}
	var req sendReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid body", nil)
		return
	}
	if req.OrderData == nil {
		common.JSONError(w, http.StatusBadRequest, "ORDER_REQUIRED", "orderData is required", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(req.OrderData); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid order data", validationDetails(err))
			return
		}
	}

	customer, admin := h.Composer.Compose(*req.OrderData)
	outcome := h.Dispatcher.Dispatch(r.Context(), customer, admin)

	common.JSON(w, http.StatusOK, sendResp{
		Success:           true,
		CustomerEmailSent: outcome.CustomerSent,
		AdminEmailSent:    outcome.AdminSent,
	})
}

func validationDetails(err error) any {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil
	}
	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Namespace()] = fe.Tag()
	}
	return details
}
