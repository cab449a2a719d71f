package bootstrap

import (
	"accept-broker/internal/infra/authnet"
	"accept-broker/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.AuthorizeNetConfig { return cfg.AuthorizeNet },
		func(cfg config.Config) config.BrokerConfig { return cfg.Broker },
		func(cfg config.Config) (authnet.Environment, error) {
			return authnet.ParseEnvironment(cfg.AuthorizeNet.Environment)
		},
	),
)
