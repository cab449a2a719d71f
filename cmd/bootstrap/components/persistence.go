package components

import (
	"context"
	"log/slog"
	"strings"

	"accept-broker/internal/infra/correlation"
	"accept-broker/internal/pkg/config"
	"accept-broker/internal/pkg/errs"
	"accept-broker/internal/usecase/shared"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// Correlation store backends selected by CORRELATION_BACKEND.
const (
	backendPostgres = "postgres"
	backendRedis    = "redis"
	backendDynamoDB = "dynamodb"
	backendMemory   = "memory"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewCorrelationStore,
	),
)

type correlationDeps struct {
	fx.In

	Cfg    config.Config
	Pool   *pgxpool.Pool
	Redis  redis.UniversalClient
	Logger *slog.Logger
}

func NewCorrelationStore(d correlationDeps) (shared.CorrelationStore, error) {
	backend := strings.ToLower(strings.TrimSpace(d.Cfg.Broker.CorrelationBackend))
	d.Logger.Info("correlation store selected", "backend", backend)

	switch backend {
	case "", backendPostgres:
		return correlation.NewPostgresStore(d.Pool, d.Logger), nil
	case backendRedis:
		return correlation.NewRedisStore(d.Redis, d.Cfg.Broker.CorrelationTTL, d.Logger), nil
	case backendDynamoDB:
		client, err := NewDynamoDBClient(context.Background(), d.Cfg.DynamoDB)
		if err != nil {
			return nil, err
		}
		return correlation.NewDynamoDBStore(client, d.Cfg.DynamoDB.Table, d.Logger), nil
	case backendMemory:
		d.Logger.Warn("in-memory correlation store: records are lost on restart and not shared between instances")
		return correlation.NewMemoryStore(), nil
	default:
		return nil, errs.Newf("unknown CORRELATION_BACKEND %q", backend)
	}
}

func NewDynamoDBClient(ctx context.Context, cfg config.DynamoDBConfig) (*dynamodb.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, errs.Wrap(err, "failed to load AWS config")
	}
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = sdkaws.String(cfg.Endpoint)
		}
	}), nil
}
