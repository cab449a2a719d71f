package readstore

import (
	"context"
	"log/slog"

	"accept-broker/internal/domain/customer"
	"accept-broker/internal/infra"
	"accept-broker/internal/infra/db"
	"accept-broker/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

const findCustomerProfileByEmail = `
SELECT id, email, authorize_net_customer_profile_id,
       first_name, last_name, company, phone, address, city, state, zip, country,
       last_used_at, created_at, updated_at
FROM customer_profiles
WHERE email = $1`

type customerProfileRow struct {
	ID               pgtype.UUID
	Email            string
	GatewayProfileID string
	FirstName        pgtype.Text
	LastName         pgtype.Text
	Company          pgtype.Text
	Phone            pgtype.Text
	Address          pgtype.Text
	City             pgtype.Text
	State            pgtype.Text
	Zip              pgtype.Text
	Country          pgtype.Text
	LastUsedAt       pgtype.Timestamptz
	CreatedAt        pgtype.Timestamptz
	UpdatedAt        pgtype.Timestamptz
}

type CustomerProfileReadStore struct {
	logger *slog.Logger
}

func NewCustomerProfileReadStore(logger *slog.Logger) *CustomerProfileReadStore {
	return &CustomerProfileReadStore{logger: logger}
}

func (s *CustomerProfileReadStore) FindByEmail(ctx context.Context, dbtx db.DBTX, email customer.Email) (*customer.Profile, error) {
	var row customerProfileRow
	err := dbtx.QueryRow(ctx, findCustomerProfileByEmail, email.Value()).Scan(
		&row.ID,
		&row.Email,
		&row.GatewayProfileID,
		&row.FirstName,
		&row.LastName,
		&row.Company,
		&row.Phone,
		&row.Address,
		&row.City,
		&row.State,
		&row.Zip,
		&row.Country,
		&row.LastUsedAt,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(ctx, s.logger, infra.KindNotFound, "customer profile not found", err)
		}
		return nil, infra.WrapRepoErr(ctx, s.logger, infra.KindDBFailure, "failed to find customer profile by email", err)
	}
	return toProfile(row)
}

func toProfile(row customerProfileRow) (*customer.Profile, error) {
	email, err := customer.NewEmail(row.Email)
	if err != nil {
		return nil, err
	}
	addr := customer.Address{
		FirstName: pgconv.StringFromPgtype(row.FirstName),
		LastName:  pgconv.StringFromPgtype(row.LastName),
		Company:   pgconv.StringFromPgtype(row.Company),
		Address:   pgconv.StringFromPgtype(row.Address),
		City:      pgconv.StringFromPgtype(row.City),
		State:     pgconv.StringFromPgtype(row.State),
		Zip:       pgconv.StringFromPgtype(row.Zip),
		Country:   pgconv.StringFromPgtype(row.Country),
		Phone:     pgconv.StringFromPgtype(row.Phone),
	}
	return customer.ReconstructProfile(
		pgconv.UUIDFromPgtype(row.ID),
		email,
		row.GatewayProfileID,
		addr,
		row.LastUsedAt.Time,
		row.CreatedAt.Time,
		row.UpdatedAt.Time,
	), nil
}
