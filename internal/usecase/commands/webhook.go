package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"accept-broker/internal/domain/payment"
	"accept-broker/internal/domain/transaction"
	"accept-broker/internal/infra/authnet"
	"accept-broker/internal/pkg/errs"
	"accept-broker/internal/usecase/shared"
)

type WebhookInput struct {
	Body      []byte
	Signature string
}

type WebhookResult struct {
	NotificationID string
	EventType      string
	Processed      bool
	Duplicate      bool
}

type webhookEnvelope struct {
	NotificationID string          `json:"notificationId"`
	EventType      string          `json:"eventType"`
	EventDate      string          `json:"eventDate"`
	WebhookID      string          `json:"webhookId"`
	Payload        json.RawMessage `json:"payload"`
}

type paymentPayload struct {
	ID                  string      `json:"id"`
	ResponseCode        json.Number `json:"responseCode"`
	AuthCode            string      `json:"authCode"`
	AuthAmount          json.Number `json:"authAmount"`
	MerchantReferenceID string      `json:"merchantReferenceId"`
	EntityName          string      `json:"entityName"`
}

type customerPayload struct {
	ID string `json:"id"`
}

// Webhook metric outcomes.
const (
	webhookProcessed = "processed"
	webhookDuplicate = "duplicate"
	webhookIgnored   = "ignored"
	webhookRejected  = "rejected"
	webhookFailed    = "failed"
)

func (uc *reconcileUseCaseImpl) HandleWebhook(ctx context.Context, in WebhookInput) (*WebhookResult, error) {
	if uc.signatureKey == "" {
		uc.logger.WarnContext(ctx, "signature verification disabled, no signature key configured")
	} else if err := authnet.VerifySignature(uc.signatureKey, in.Body, in.Signature); err != nil {
		uc.logger.WarnContext(ctx, "webhook signature rejected", "error", err)
		uc.metrics.RecordWebhookEvent("unknown", webhookRejected)
		return nil, err
	}

	var env webhookEnvelope
	dec := json.NewDecoder(bytes.NewReader(in.Body))
	dec.UseNumber()
	if err := dec.Decode(&env); err != nil {
		return nil, invalid(errs.Wrap(err, "malformed webhook body"))
	}

	now := uc.clock.Now()
	event, err := transaction.NewWebhookEvent(env.NotificationID, env.EventType, env.Payload, now)
	if err != nil {
		return nil, invalid(err)
	}

	result := &WebhookResult{NotificationID: env.NotificationID, EventType: env.EventType, Processed: true}
	outcome := webhookProcessed
	var refID string

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		inserted, err := tx.WebhookEvents().TryInsert(ctx, event)
		if err != nil {
			return err
		}
		if !inserted {
			result.Duplicate = true
			outcome = webhookDuplicate
			return nil
		}

		switch {
		case event.IsPaymentEvent():
			refID, err = uc.applyPaymentEvent(ctx, tx, event, now)
			return err
		case event.EventType() == transaction.EventCustomerDeleted:
			return uc.applyCustomerDeleted(ctx, tx, event)
		default:
			outcome = webhookIgnored
			uc.logger.InfoContext(ctx, "unhandled webhook event acknowledged",
				"event_type", event.EventType(), "notification_id", event.NotificationID())
			return nil
		}
	})
	if err != nil {
		uc.metrics.RecordWebhookEvent(env.EventType, webhookFailed)
		return nil, err
	}

	if refID != "" {
		if _, err := uc.store.MarkUsed(ctx, refID, now); err != nil {
			uc.logger.WarnContext(ctx, "failed to mark correlation used from webhook", "reference_id", refID, "error", err)
		}
	}

	uc.metrics.RecordWebhookEvent(env.EventType, outcome)
	uc.logger.InfoContext(ctx, "webhook handled",
		"event_type", env.EventType, "notification_id", env.NotificationID, "outcome", outcome)
	return result, nil
}

// applyPaymentEvent writes the audit row and returns the merchant reference ID.
func (uc *reconcileUseCaseImpl) applyPaymentEvent(ctx context.Context, tx shared.Tx, event *transaction.WebhookEvent, now time.Time) (string, error) {
	var p paymentPayload
	dec := json.NewDecoder(bytes.NewReader(event.Payload()))
	dec.UseNumber()
	if err := dec.Decode(&p); err != nil {
		return "", invalid(errs.Wrap(err, "malformed payment event payload"))
	}
	if p.ID == "" {
		uc.logger.WarnContext(ctx, "payment event without transaction id", "notification_id", event.NotificationID())
		return p.MerchantReferenceID, nil
	}

	// authAmount is optional on some event types; zero when absent or unparsable.
	amount, _ := payment.ParseMoney(p.AuthAmount.String())
	status := transaction.StatusForEvent(event.EventType(), p.ResponseCode.String())
	txn, err := transaction.New(transaction.Params{
		TransactionID: p.ID,
		ReferenceID:   p.MerchantReferenceID,
		ResponseCode:  p.ResponseCode.String(),
		AuthCode:      p.AuthCode,
		Amount:        amount,
		Status:        status,
		Source:        transaction.SourceWebhook,
		RawResponse:   event.Payload(),
	}, now)
	if err != nil {
		return "", err
	}

	created, err := tx.Transactions().Insert(ctx, txn)
	if err != nil {
		return "", err
	}
	if !created {
		uc.logger.InfoContext(ctx, "transaction already recorded", "transaction_id", p.ID)
	}
	uc.metrics.RecordReconciliation(string(transaction.SourceWebhook), status.String())
	return p.MerchantReferenceID, nil
}

func (uc *reconcileUseCaseImpl) applyCustomerDeleted(ctx context.Context, tx shared.Tx, event *transaction.WebhookEvent) error {
	var p customerPayload
	if err := json.Unmarshal(event.Payload(), &p); err != nil {
		return invalid(errs.Wrap(err, "malformed customer event payload"))
	}
	if p.ID == "" {
		return nil
	}
	deleted, err := tx.Profiles().DeleteByGatewayID(ctx, p.ID)
	if err != nil {
		return err
	}
	uc.logger.InfoContext(ctx, "customer profile deleted by webhook", "customer_profile_id", p.ID, "deleted_locally", deleted)
	return nil
}
