package bootstrap

import (
	"log/slog"

	"accept-broker/internal/infra/authnet"
	"accept-broker/internal/infra/telemetry"
	"accept-broker/internal/pkg/config"
	"accept-broker/internal/usecase/shared"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		NewBuilder,
		fx.Annotate(
			NewGatewayClient,
			fx.As(new(shared.Gateway)),
		),
	),
)

func NewBuilder(cfg config.AuthorizeNetConfig, broker config.BrokerConfig, env authnet.Environment, logger *slog.Logger) *authnet.Builder {
	if !cfg.HasTransactionCredentials() {
		logger.Warn("payment gateway credentials are not configured; gateway operations will fail")
	}
	if cfg.SignatureKey == "" {
		logger.Warn("AUTHNET_SIGNATURE_KEY is empty; webhook signature verification disabled")
	}
	return authnet.NewBuilder(authnet.Credentials{
		APILoginID:     cfg.APILoginID,
		TransactionKey: cfg.TransactionKey,
	}, env, broker.PaymentButtonText)
}

func NewGatewayClient(cfg config.AuthorizeNetConfig, env authnet.Environment, logger *slog.Logger, metrics *telemetry.Metrics) *authnet.Client {
	return authnet.NewClient(env, authnet.NewHTTPClient(cfg.Timeout), logger, metrics)
}
