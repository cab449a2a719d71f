package correlation

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"accept-broker/internal/domain/correlation"
	"accept-broker/internal/domain/payment"
	"accept-broker/internal/infra"
	"accept-broker/internal/infra/db"
	"accept-broker/internal/pkg/errs"
	"accept-broker/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

const insertPendingCorrelation = `
INSERT INTO pending_correlations (
    reference_id, customer, existing_customer_email, customer_profile_id,
    amount, create_profile, used, created_at, expires_at
) VALUES ($1, $2::jsonb, $3, $4, $5::numeric, $6, FALSE, $7, $8)
ON CONFLICT (reference_id) DO NOTHING`

const getPendingCorrelation = `
SELECT reference_id, customer, existing_customer_email, customer_profile_id,
       amount::text, create_profile, used, used_at, created_at, expires_at
FROM pending_correlations
WHERE reference_id = $1`

const markPendingCorrelationUsed = `
UPDATE pending_correlations
SET used = TRUE, used_at = $2
WHERE reference_id = $1 AND used = FALSE`

// PostgresStore keeps correlation records in the pending_correlations table.
type PostgresStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewPostgresStore(dbtx db.DBTX, logger *slog.Logger) *PostgresStore {
	return &PostgresStore{db: dbtx, logger: logger}
}

func (s *PostgresStore) Create(ctx context.Context, p *correlation.Pending) error {
	snap := p.Snapshot()
	customerJSON, err := json.Marshal(snap.Customer)
	if err != nil {
		return errs.Wrap(err, "encode correlation customer")
	}
	tag, err := s.db.Exec(ctx, insertPendingCorrelation,
		snap.ReferenceID,
		string(customerJSON),
		pgconv.NullableText(snap.ExistingCustomerEmail),
		pgconv.NullableText(snap.CustomerProfileID),
		p.Amount().String(),
		snap.CreateProfile,
		pgconv.TimeToPgtype(snap.CreatedAt),
		pgconv.TimeToPgtype(snap.ExpiresAt),
	)
	if err != nil {
		return infra.WrapRepoErr(ctx, s.logger, infra.KindDBFailure, "failed to insert correlation record", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrCorrelationExists
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, referenceID string) (*correlation.Pending, error) {
	var (
		snap          correlation.Snapshot
		customerJSON  []byte
		existingEmail pgtype.Text
		profileID     pgtype.Text
		amount        string
		usedAt        pgtype.Timestamptz
		createdAt     pgtype.Timestamptz
		expiresAt     pgtype.Timestamptz
	)
	err := s.db.QueryRow(ctx, getPendingCorrelation, referenceID).Scan(
		&snap.ReferenceID,
		&customerJSON,
		&existingEmail,
		&profileID,
		&amount,
		&snap.CreateProfile,
		&snap.Used,
		&usedAt,
		&createdAt,
		&expiresAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.ErrCorrelationNotFound
		}
		return nil, infra.WrapRepoErr(ctx, s.logger, infra.KindDBFailure, "failed to load correlation record", err)
	}
	if len(customerJSON) > 0 {
		if err := json.Unmarshal(customerJSON, &snap.Customer); err != nil {
			return nil, errs.Wrap(err, "decode correlation customer")
		}
	}
	money, err := payment.ParseMoney(amount)
	if err != nil {
		return nil, errs.Wrap(err, "decode correlation amount")
	}
	snap.AmountCents = money.Cents()
	snap.ExistingCustomerEmail = pgconv.StringFromPgtype(existingEmail)
	snap.CustomerProfileID = pgconv.StringFromPgtype(profileID)
	snap.UsedAt = pgconv.TimePtrFromPgtype(usedAt)
	snap.CreatedAt = createdAt.Time
	snap.ExpiresAt = expiresAt.Time
	return correlation.FromSnapshot(snap)
}

func (s *PostgresStore) MarkUsed(ctx context.Context, referenceID string, at time.Time) (bool, error) {
	tag, err := s.db.Exec(ctx, markPendingCorrelationUsed, referenceID, pgconv.TimeToPgtype(at))
	if err != nil {
		return false, infra.WrapRepoErr(ctx, s.logger, infra.KindDBFailure, "failed to mark correlation used", err)
	}
	return tag.RowsAffected() == 1, nil
}
