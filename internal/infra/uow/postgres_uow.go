package uow

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"accept-broker/internal/domain/customer"
	"accept-broker/internal/infra/db"
	"accept-broker/internal/infra/readstore"
	"accept-broker/internal/infra/repository"
	"accept-broker/internal/pkg/errs"
	"accept-broker/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"

	maxAttempts = 4
	baseBackoff = 100 * time.Millisecond
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgresUoW(pool *pgxpool.Pool, logger *slog.Logger) shared.UnitOfWork {
	return &PostgresUoW{
		pool:   pool,
		logger: logger,
	}
}

// Within runs fn at READ COMMITTED. Audit and webhook inserts rely on
// ON CONFLICT, so only serialization failures and deadlocks are retried.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{
		dbtx:     u.pool,
		profiles: readstore.NewCustomerProfileReadStore(u.logger),
	}
}

func (u *PostgresUoW) runInTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	var err error
	for attempt := range maxAttempts {
		if attempt > 0 {
			wait := backoff(attempt - 1)
			u.logger.WarnContext(ctx, "retrying transaction",
				"attempt", attempt+1,
				"wait_ms", wait.Milliseconds(),
				"error", err.Error())
			select {
			case <-ctx.Done():
				return errs.Wrap(ctx.Err(), "transaction retry cancelled")
			case <-time.After(wait):
			}
		}

		err = u.attempt(ctx, options, fn)
		if err == nil || !isRetryableError(err) {
			return err
		}
	}

	u.logger.ErrorContext(ctx, "transaction failed after max retries", "attempts", maxAttempts, "error", err.Error())
	return errs.Mark(err, errMaxRetriesExceeded)
}

// attempt runs one transaction; the deferred rollback is a no-op after commit.
func (u *PostgresUoW) attempt(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}
	defer func() {
		if rbErr := pgxTx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			u.logger.WarnContext(ctx, "rollback failed", "error", rbErr.Error())
		}
	}()

	if err := fn(ctx, &pgTx{dbtx: pgxTx, logger: u.logger}); err != nil {
		return err
	}
	if err := pgxTx.Commit(ctx); err != nil {
		return errs.Mark(err, errTransactionCommit)
	}
	return nil
}

// backoff doubles from baseBackoff with up to 20% jitter.
func backoff(retry int) time.Duration {
	wait := baseBackoff << retry
	return wait + rand.N(wait/5+1)
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx   db.DBTX
	logger *slog.Logger

	// built on first use
	profileRepo      shared.CustomerProfileRepository
	transactionRepo  shared.TransactionRepository
	webhookEventRepo shared.WebhookEventRepository
}

func (t *pgTx) Profiles() shared.CustomerProfileRepository {
	if t.profileRepo == nil {
		t.profileRepo = repository.NewCustomerProfileRepository(t.dbtx, t.logger)
	}
	return t.profileRepo
}

func (t *pgTx) Transactions() shared.TransactionRepository {
	if t.transactionRepo == nil {
		t.transactionRepo = repository.NewTransactionRepository(t.dbtx, t.logger)
	}
	return t.transactionRepo
}

func (t *pgTx) WebhookEvents() shared.WebhookEventRepository {
	if t.webhookEventRepo == nil {
		t.webhookEventRepo = repository.NewWebhookEventRepository(t.dbtx, t.logger)
	}
	return t.webhookEventRepo
}

type commandReads struct {
	dbtx     db.DBTX
	profiles *readstore.CustomerProfileReadStore
}

func (r *commandReads) ProfileByEmail(ctx context.Context, email customer.Email) (*customer.Profile, error) {
	return r.profiles.FindByEmail(ctx, r.dbtx, email)
}
