package model

import "encoding/json"

// Webhook event kinds the engine acts on. Anything outside this list is
// silently ignored.
const (
	EventPaymentReceived  = "PAYMENT_RECEIVED"
	EventPaymentConfirmed = "PAYMENT_CONFIRMED"
	EventPaymentRefused   = "PAYMENT_REFUSED"
)

// WebhookEvent is a gateway-initiated status notification. It is consumed
// once and never persisted.
type WebhookEvent struct {
	Event   string               `json:"event"`
	Payment *WebhookEventPayment `json:"payment"`
}

// WebhookEventPayment is the charge snapshot carried by a webhook event.
// Value is a json.Number because the gateway emits amounts as JSON numbers.
type WebhookEventPayment struct {
	ID                string      `json:"id"`
	Status            string      `json:"status"`
	Value             json.Number `json:"value"`
	ExternalReference string      `json:"externalReference"`
}

// Recognized reports whether the event kind is on the allow-list and carries
// a charge reference.
func (e *WebhookEvent) Recognized() bool {
	if e == nil || e.Payment == nil || e.Payment.ID == "" {
		return false
	}
	switch e.Event {
	case EventPaymentReceived, EventPaymentConfirmed, EventPaymentRefused:
		return true
	}
	return false
}
