package repository

import (
	"context"
	"log/slog"

	"accept-broker/internal/domain/customer"
	"accept-broker/internal/infra"
	"accept-broker/internal/infra/db"
	"accept-broker/internal/pkg/pgconv"
)

const upsertCustomerProfile = `
INSERT INTO customer_profiles (
    id, email, authorize_net_customer_profile_id,
    first_name, last_name, company, phone, address, city, state, zip, country,
    last_used_at, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)
ON CONFLICT (email) DO UPDATE SET
    authorize_net_customer_profile_id = EXCLUDED.authorize_net_customer_profile_id,
    first_name   = COALESCE(EXCLUDED.first_name, customer_profiles.first_name),
    last_name    = COALESCE(EXCLUDED.last_name, customer_profiles.last_name),
    company      = COALESCE(EXCLUDED.company, customer_profiles.company),
    phone        = COALESCE(EXCLUDED.phone, customer_profiles.phone),
    address      = COALESCE(EXCLUDED.address, customer_profiles.address),
    city         = COALESCE(EXCLUDED.city, customer_profiles.city),
    state        = COALESCE(EXCLUDED.state, customer_profiles.state),
    zip          = COALESCE(EXCLUDED.zip, customer_profiles.zip),
    country      = COALESCE(EXCLUDED.country, customer_profiles.country),
    last_used_at = EXCLUDED.last_used_at,
    updated_at   = EXCLUDED.updated_at`

const deleteCustomerProfileByGatewayID = `
DELETE FROM customer_profiles WHERE authorize_net_customer_profile_id = $1`

type CustomerProfileRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewCustomerProfileRepository(dbtx db.DBTX, logger *slog.Logger) *CustomerProfileRepository {
	return &CustomerProfileRepository{
		db:     dbtx,
		logger: logger,
	}
}

// Upsert overwrites the gateway ID and refreshes lastUsedAt; blank contact
// fields keep their stored values.
func (r *CustomerProfileRepository) Upsert(ctx context.Context, p *customer.Profile) error {
	a := p.Address()
	_, err := r.db.Exec(ctx, upsertCustomerProfile,
		pgconv.UUIDToPgtype(p.ID()),
		p.Email().Value(),
		p.GatewayProfileID(),
		pgconv.NullableText(a.FirstName),
		pgconv.NullableText(a.LastName),
		pgconv.NullableText(a.Company),
		pgconv.NullableText(a.Phone),
		pgconv.NullableText(a.Address),
		pgconv.NullableText(a.City),
		pgconv.NullableText(a.State),
		pgconv.NullableText(a.Zip),
		pgconv.NullableText(a.Country),
		pgconv.TimeToPgtype(p.LastUsedAt()),
		pgconv.TimeToPgtype(p.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr(ctx, r.logger, infra.KindDBFailure, "failed to upsert customer profile", err)
	}
	return nil
}

func (r *CustomerProfileRepository) DeleteByGatewayID(ctx context.Context, gatewayProfileID string) (bool, error) {
	tag, err := r.db.Exec(ctx, deleteCustomerProfileByGatewayID, gatewayProfileID)
	if err != nil {
		return false, infra.WrapRepoErr(ctx, r.logger, infra.KindDBFailure, "failed to delete customer profile", err)
	}
	return tag.RowsAffected() > 0, nil
}
