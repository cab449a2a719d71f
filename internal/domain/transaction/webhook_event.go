package transaction

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var ErrMissingNotificationID = errors.New("notification id is required")

// Webhook event types the reconciler acts on.
const (
	EventPaymentPrefix      = "net.authorize.payment."
	EventCustomerDeleted    = "net.authorize.customer.deleted"
	EventFraudDeclined      = "net.authorize.payment.fraud.declined"
	EventAuthCaptureCreated = "net.authorize.payment.authcapture.created"
)

// WebhookEvent records a received notification so redeliveries are acknowledged once.
type WebhookEvent struct {
	notificationID string
	eventType      string
	payload        json.RawMessage
	receivedAt     time.Time
}

func NewWebhookEvent(notificationID, eventType string, payload json.RawMessage, now time.Time) (*WebhookEvent, error) {
	if notificationID == "" {
		return nil, ErrMissingNotificationID
	}
	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}
	return &WebhookEvent{
		notificationID: notificationID,
		eventType:      eventType,
		payload:        payload,
		receivedAt:     now,
	}, nil
}

func (e *WebhookEvent) NotificationID() string   { return e.notificationID }
func (e *WebhookEvent) EventType() string        { return e.eventType }
func (e *WebhookEvent) Payload() json.RawMessage { return e.payload }
func (e *WebhookEvent) ReceivedAt() time.Time    { return e.receivedAt }

func (e *WebhookEvent) IsPaymentEvent() bool {
	return strings.HasPrefix(e.eventType, EventPaymentPrefix)
}

// StatusForEvent maps a payment event to an audit status. Fraud declines are
// declined regardless of the payload response code.
func StatusForEvent(eventType, responseCode string) Status {
	if eventType == EventFraudDeclined {
		return StatusDeclined
	}
	return StatusFromResponseCode(responseCode)
}
