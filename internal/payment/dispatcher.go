package payment

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-pay/internal/obs"
)

// Hook is an extension point invoked after an event has been classified.
// Persistence and customer notification plug in here; the default wiring
// only logs.
type Hook func(ctx context.Context, ev Event) error

// Dispatcher reacts to authenticated webhook events. It keeps no state
// across events: each webhook call is classified and dispatched exactly once.
type Dispatcher struct {
	Log         zerolog.Logger
	OnSucceeded Hook
	OnFailed    Hook
}

// Dispatch routes the event to its side effect. Hook failures are logged,
// never escalated: a business-logic error must not masquerade as a webhook
// transport or authentication failure.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) {
	switch ev.Kind {
	case EventPaymentSucceeded:
		d.Log.Info().
			Str("event_id", ev.ID).
			Str("payment_intent", ev.ObjectID).
			Msg("payment succeeded")
		d.runHook(ctx, d.OnSucceeded, ev)
		d.count("succeeded")
	case EventPaymentFailed:
		d.Log.Warn().
			Str("event_id", ev.ID).
			Str("payment_intent", ev.ObjectID).
			Msg("payment failed")
		d.runHook(ctx, d.OnFailed, ev)
		d.count("failed")
	default:
		d.Log.Info().
			Str("event_id", ev.ID).
			Str("event_type", ev.RawType).
			Msg("unhandled event type")
		d.count("unhandled")
	}
}

func (d *Dispatcher) runHook(ctx context.Context, hook Hook, ev Event) {
	if hook == nil {
		return
	}
	if err := hook(ctx, ev); err != nil {
		d.Log.Error().
			Err(err).
			Str("event_id", ev.ID).
			Str("event_type", ev.RawType).
			Msg("event hook failed")
	}
}

func (d *Dispatcher) count(result string) {
	if obs.PaymentWebhookTotal != nil {
		obs.PaymentWebhookTotal.WithLabelValues(result).Inc()
	}
}
