package repository

import (
	"context"
	"log/slog"

	"accept-broker/internal/domain/transaction"
	"accept-broker/internal/infra"
	"accept-broker/internal/infra/db"
	"accept-broker/internal/pkg/pgconv"
)

const tryInsertWebhookEvent = `
INSERT INTO webhook_events (notification_id, event_type, payload, received_at)
VALUES ($1, $2, $3::jsonb, $4)
ON CONFLICT (notification_id) DO NOTHING`

type WebhookEventRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewWebhookEventRepository(dbtx db.DBTX, logger *slog.Logger) *WebhookEventRepository {
	return &WebhookEventRepository{
		db:     dbtx,
		logger: logger,
	}
}

func (r *WebhookEventRepository) TryInsert(ctx context.Context, ev *transaction.WebhookEvent) (bool, error) {
	tag, err := r.db.Exec(ctx, tryInsertWebhookEvent,
		ev.NotificationID(),
		ev.EventType(),
		string(ev.Payload()),
		pgconv.TimeToPgtype(ev.ReceivedAt()),
	)
	if err != nil {
		return false, infra.WrapRepoErr(ctx, r.logger, infra.KindDBFailure, "failed to record webhook event", err)
	}
	return tag.RowsAffected() == 1, nil
}
