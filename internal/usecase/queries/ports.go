package queries

import "context"

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/queries/mock_ports.go -package=queriesmock

type ConfigQueries interface {
	AuthConfig(ctx context.Context) (*AuthConfigView, error)
}

type ProfileQueries interface {
	GetCustomerProfile(ctx context.Context, customerProfileID string) (*ProfileView, error)
}
