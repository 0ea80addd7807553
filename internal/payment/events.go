package payment

import (
	"encoding/json"
	"errors"
	"fmt"
)

// EventKind classifies an authenticated webhook event. Unknown gateway types
// map to EventOther with the raw type string preserved, never dropped.
type EventKind string

const (
	EventPaymentSucceeded EventKind = "payment_succeeded"
	EventPaymentFailed    EventKind = "payment_failed"
	EventOther            EventKind = "other"
)

// Event is a verified, typed webhook callback. It is constructed per inbound
// request, consumed once by the dispatcher and discarded.
type Event struct {
	ID       string
	Kind     EventKind
	RawType  string
	ObjectID string
	Object   json.RawMessage
}

func kindFor(rawType string) EventKind {
	switch rawType {
	case "payment_intent.succeeded":
		return EventPaymentSucceeded
	case "payment_intent.payment_failed":
		return EventPaymentFailed
	default:
		return EventOther
	}
}

// parseEvent deserialises an already-verified webhook body.
func parseEvent(body []byte) (Event, error) {
	var payload struct {
		ID   string `json:"id"`
		Type string `json:"type"`
		Data struct {
			Object json.RawMessage `json:"object"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	if payload.Type == "" {
		return Event{}, errors.New("decode event: missing type")
	}
	ev := Event{
		ID:      payload.ID,
		Kind:    kindFor(payload.Type),
		RawType: payload.Type,
		Object:  payload.Data.Object,
	}
	if len(payload.Data.Object) > 0 {
		var object struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(payload.Data.Object, &object); err == nil {
			ev.ObjectID = object.ID
		}
	}
	return ev, nil
}
