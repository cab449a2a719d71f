package components

import (
	"log/slog"

	"accept-broker/internal/infra/authnet"
	"accept-broker/internal/infra/telemetry"
	"accept-broker/internal/pkg/clock"
	"accept-broker/internal/pkg/config"
	"accept-broker/internal/usecase/commands"
	"accept-broker/internal/usecase/queries"
	"accept-broker/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewBrokerCommands,
		commands.NewReconcileUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewConfigQueries,
		queries.NewProfileQueries,
	),
)

func NewBrokerCommands(
	uow shared.UnitOfWork,
	store shared.CorrelationStore,
	gateway shared.Gateway,
	builder *authnet.Builder,
	clk clock.Clock,
	cfg config.BrokerConfig,
	logger *slog.Logger,
	metrics *telemetry.Metrics,
) commands.BrokerCommands {
	return commands.NewBrokerUseCase(uow, store, gateway, builder, clk, cfg, logger, metrics)
}
