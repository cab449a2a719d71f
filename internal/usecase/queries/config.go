package queries

import (
	"context"

	"accept-broker/internal/infra/authnet"
	"accept-broker/internal/pkg/config"
	"accept-broker/internal/pkg/errs"
)

type configQueriesImpl struct {
	cfg config.AuthorizeNetConfig
	env authnet.Environment
}

func NewConfigQueries(cfg config.AuthorizeNetConfig, env authnet.Environment) ConfigQueries {
	return &configQueriesImpl{cfg: cfg, env: env}
}

// AuthConfig exposes only the public client key and login ID; the
// transaction key never leaves the server.
func (q *configQueriesImpl) AuthConfig(_ context.Context) (*AuthConfigView, error) {
	if q.cfg.APILoginID == "" || q.cfg.ClientKey == "" {
		return nil, errs.ErrCredentialsNotConfigured
	}
	ep := q.env.Endpoints()
	return &AuthConfigView{
		ClientKey:  q.cfg.ClientKey,
		APILoginID: q.cfg.APILoginID,
		Environment: EnvironmentView{
			Name:       q.env.String(),
			APIURL:     ep.APIURL,
			JSURL:      ep.JSURL,
			GatewayURL: ep.PaymentPageURL,
		},
	}, nil
}
