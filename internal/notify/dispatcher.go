package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-pay/internal/common"
	"github.com/noah-isme/backend-pay/internal/obs"
)

// Outcome reports per-recipient delivery results for one dispatch call.
// Failures are recorded, not thrown: one recipient's failure never blankets
// the other's otherwise-successful send.
type Outcome struct {
	CustomerSent bool
	AdminSent    bool
}

// Dispatcher fans a customer and an operator notification out through the
// mail transport. Both sends are issued concurrently and joined; neither can
// delay or abort the other beyond its own timeout.
type Dispatcher struct {
	Mail        common.EmailSender
	SendTimeout time.Duration
	Log         zerolog.Logger
}

// Dispatch sends both messages and collects both outcomes. It always waits
// for both attempts to resolve before returning.
func (d *Dispatcher) Dispatch(ctx context.Context, customer, admin Message) Outcome {
	var out Outcome
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		out.CustomerSent = d.send(ctx, "customer", customer)
	}()
	go func() {
		defer wg.Done()
		out.AdminSent = d.send(ctx, "admin", admin)
	}()
	wg.Wait()
	return out
}

// send runs one delivery attempt under its own timeout. Expiry counts as a
// failed send, not a crash; the transport goroutine is left to finish on its own.
func (d *Dispatcher) send(ctx context.Context, recipient string, m Message) bool {
	if d.Mail == nil || m.To == "" {
		d.count(recipient, "skipped")
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, d.timeout())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- d.Mail.Send(m.To, m.Subject, m.Body)
	}()

	select {
	case err := <-done:
		if err != nil {
			d.Log.Error().
				Err(err).
				Str("recipient", recipient).
				Str("subject", m.Subject).
				Msg("notification send failed")
			d.count(recipient, "failed")
			return false
		}
		d.count(recipient, "sent")
		return true
	case <-ctx.Done():
		d.Log.Error().
			Err(ctx.Err()).
			Str("recipient", recipient).
			Str("subject", m.Subject).
			Msg("notification send timed out")
		d.count(recipient, "timeout")
		return false
	}
}

func (d *Dispatcher) timeout() time.Duration {
	if d.SendTimeout > 0 {
		return d.SendTimeout
	}
	return 10 * time.Second
}

func (d *Dispatcher) count(recipient, result string) {
	if obs.EmailDispatchTotal != nil {
		obs.EmailDispatchTotal.WithLabelValues(recipient, result).Inc()
	}
}
