package repository

import (
	"context"
	"log/slog"

	"accept-broker/internal/domain/transaction"
	"accept-broker/internal/infra"
	"accept-broker/internal/infra/db"
	"accept-broker/internal/pkg/pgconv"
)

const insertPaymentTransaction = `
INSERT INTO payment_transactions (
    transaction_id, reference_id, response_code, auth_code, amount,
    account_number, account_type, customer_profile_id, customer_payment_profile_id,
    status, source, raw_response, created_at
) VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8, $9, $10, $11, $12::jsonb, $13)
ON CONFLICT (transaction_id) DO NOTHING`

type TransactionRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewTransactionRepository(dbtx db.DBTX, logger *slog.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     dbtx,
		logger: logger,
	}
}

func (r *TransactionRepository) Insert(ctx context.Context, t *transaction.Transaction) (bool, error) {
	var amount string
	if !t.Amount().IsZero() {
		amount = t.Amount().String()
	}
	tag, err := r.db.Exec(ctx, insertPaymentTransaction,
		t.TransactionID(),
		pgconv.NullableText(t.ReferenceID()),
		pgconv.NullableText(t.ResponseCode()),
		pgconv.NullableText(t.AuthCode()),
		pgconv.NullableText(amount),
		pgconv.NullableText(t.AccountNumber()),
		pgconv.NullableText(t.AccountType()),
		pgconv.NullableText(t.CustomerProfileID()),
		pgconv.NullableText(t.CustomerPaymentProfileID()),
		t.Status().String(),
		string(t.Source()),
		string(t.RawResponse()),
		pgconv.TimeToPgtype(t.CreatedAt()),
	)
	if err != nil {
		return false, infra.WrapRepoErr(ctx, r.logger, infra.KindDBFailure, "failed to insert payment transaction", err)
	}
	return tag.RowsAffected() == 1, nil
}
