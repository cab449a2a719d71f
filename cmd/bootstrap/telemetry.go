package bootstrap

import (
	"context"

	"accept-broker/internal/infra/telemetry"
	"accept-broker/internal/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
)

var TelemetryModule = fx.Module("telemetry",
	fx.Provide(
		telemetry.NewRegistry,
		func(reg *prometheus.Registry) (*telemetry.Metrics, error) {
			return telemetry.NewMetrics(reg)
		},
		NewTracerProvider,
	),
	fx.Invoke(func(*sdktrace.TracerProvider) {}),
)

func NewTracerProvider(lc fx.Lifecycle, cfg config.Config) (*sdktrace.TracerProvider, error) {
	tp, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tp.Shutdown(ctx)
		},
	})
	return tp, nil
}
