package payment

import (
	"io"
	"net/http"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/noah-isme/backend-pay/internal/common"
)

// Verifier authenticates a raw webhook payload before it may be dispatched.
type Verifier interface {
	VerifyWebhook(body []byte, signatureHeader string) (Event, error)
}

// Webhook handles gateway callbacks: raw-body signature verification,
// replay suppression and event dispatch.
type Webhook struct {
	Verifier     Verifier
	Dispatcher   *Dispatcher
	Replay       *redis.Client
	ReplayTTL    time.Duration
	MaxBodyBytes int64
}

// Handle processes one inbound gateway callback.
func (h Webhook) Handle(w http.ResponseWriter, r *http.Request) {
	if h.Verifier == nil || h.Dispatcher == nil {
		common.JSONError(w, http.StatusInternalServerError, "PAYMENT_NOT_CONFIGURED", "webhook unavailable", nil)
		return
	}
	limit := h.MaxBodyBytes
	if limit <= 0 {
		limit = 1 << 20
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "INVALID_BODY", "unable to read payload", nil)
		return
	}
	if int64(len(body)) > limit {
		common.JSONError(w, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE", "payload exceeds limit", nil)
		return
	}

	ev, err := h.Verifier.VerifyWebhook(body, r.Header.Get(SignatureHeader))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "WEBHOOK_INVALID", err.Error(), nil)
		return
	}

	if h.Replay != nil && h.ReplayTTL > 0 {
		key := replayKey(ev, body)
		ok, err := h.Replay.SetNX(r.Context(), key, "1", h.ReplayTTL).Result()
		if err != nil {
			common.JSONError(w, http.StatusInternalServerError, "REPLAY_STORE_ERROR", err.Error(), nil)
			return
		}
		if !ok {
			// already processed; ack so the gateway stops retrying
			common.JSON(w, http.StatusOK, map[string]bool{"received": true})
			return
		}
	}

	h.Dispatcher.Dispatch(r.Context(), ev)
	common.JSON(w, http.StatusOK, map[string]bool{"received": true})
}

func replayKey(ev Event, body []byte) string {
	if ev.ID != "" {
		return "wh:stripe:" + ev.ID
	}
	return "wh:stripe:" + common.Sha256Hex(string(body))
}
