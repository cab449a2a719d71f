package shared

import (
	"context"
	"time"

	"accept-broker/internal/domain/correlation"
	"accept-broker/internal/domain/customer"
	"accept-broker/internal/domain/transaction"
	"accept-broker/internal/infra/authnet"
)

//go:generate mockgen -source=uow.go -destination=../../../tests/mock/shared/mock_uow.go -package=sharedmock

type UnitOfWork interface {
	// Within: full transaction for writes, retried on serialization failures
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: single-statement reads outside any transaction
	CommandReads() CommandReads
}

type Tx interface {
	Profiles() CustomerProfileRepository
	Transactions() TransactionRepository
	WebhookEvents() WebhookEventRepository
}

type CommandReads interface {
	ProfileByEmail(ctx context.Context, email customer.Email) (*customer.Profile, error)
}

type CustomerProfileRepository interface {
	// Upsert is keyed on email; the last writer wins.
	Upsert(ctx context.Context, p *customer.Profile) error
	DeleteByGatewayID(ctx context.Context, gatewayProfileID string) (bool, error)
}

type TransactionRepository interface {
	// Insert reports false when a row for the transaction ID already exists.
	Insert(ctx context.Context, t *transaction.Transaction) (bool, error)
}

type WebhookEventRepository interface {
	// TryInsert reports false for a notification ID already recorded.
	TryInsert(ctx context.Context, ev *transaction.WebhookEvent) (bool, error)
}

// CorrelationStore holds pending hosted page attempts keyed by reference ID.
type CorrelationStore interface {
	// Create fails with errs.ErrCorrelationExists when the ID is taken.
	Create(ctx context.Context, p *correlation.Pending) error
	// Get fails with errs.ErrCorrelationNotFound.
	Get(ctx context.Context, referenceID string) (*correlation.Pending, error)
	// MarkUsed returns true only for the call that flipped the flag.
	MarkUsed(ctx context.Context, referenceID string, at time.Time) (bool, error)
}

type Gateway interface {
	Send(ctx context.Context, req authnet.GatewayRequest) (*authnet.NormalizedResponse, error)
}
