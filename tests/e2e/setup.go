//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"accept-broker/cmd/bootstrap"
	"accept-broker/cmd/bootstrap/components"
	"accept-broker/internal/infra/authnet"
	"accept-broker/internal/infra/db"
	"accept-broker/internal/infra/telemetry"
	"accept-broker/internal/pkg/config"
	"accept-broker/internal/pkg/errs"
	"accept-broker/internal/usecase/shared"
	"accept-broker/tests/common/dbtest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const (
	testUser     = "test"
	testPassword = "testpass"

	backendPostgres = "postgres"
	backendRedis    = "redis"
)

// containers are shared by every suite in the test process
var (
	postgresOnce      sync.Once
	postgresContainer testcontainers.Container
	redisOnce         sync.Once
	redisContainer    testcontainers.Container
)

type endpoint struct {
	Host string
	Port nat.Port
}

func (e endpoint) addr() string {
	return e.Host + ":" + e.Port.Port()
}

// environment is one broker instance wired against fresh storage and a fake gateway.
type environment struct {
	pool    *pgxpool.Pool
	redis   redis.UniversalClient
	router  *gin.Engine
	cfg     config.Config
	gateway *FakeGateway
}

func setupE2EEnvironment(t *testing.T, backend string) environment {
	t.Helper()
	gin.SetMode(gin.TestMode)

	pg := startContainer(t, &postgresOnce, &postgresContainer, postgresRequest(), "5432/tcp")
	cfg := config.NewTestConfig()
	cfg.DB = createDatabase(t, pg)
	cfg.Broker.CorrelationBackend = backend

	if backend == backendRedis {
		rd := startContainer(t, &redisOnce, &redisContainer, redisRequest(), "6379/tcp")
		cfg.Redis = config.RedisConfig{Addr: rd.addr()}
	}

	pool, err := db.Connect(context.Background(), cfg.DB)
	require.NoError(t, err, "データベース接続に失敗")
	t.Cleanup(pool.Close)
	require.NoError(t, applyMigrations(context.Background(), pool), "マイグレーションに失敗")

	env := environment{pool: pool, cfg: cfg, gateway: NewFakeGateway(t)}
	app := buildE2EApp(t, &env)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("fxアプリケーションの停止に失敗しました", "error", err.Error())
		}
	})

	slog.Info("E2E環境の準備が完了しました", "database", cfg.DB.DBName, "correlation_backend", backend)
	return env
}

// createDatabase gives each suite its own database on the shared server.
func createDatabase(t *testing.T, pg endpoint) config.DBConfig {
	t.Helper()
	dbName := "broker_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	adminDSN := fmt.Sprintf("postgres://%s:%s@%s/postgres?sslmode=disable", testUser, testPassword, pg.addr())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	admin, err := pgxpool.New(ctx, adminDSN)
	require.NoError(t, err, "管理者接続に失敗")
	defer admin.Close()

	// the server may still be finishing startup right after the wait strategy passes
	var createErr error
	for attempt := range 5 {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * 500 * time.Millisecond)
			slog.Warn("データベース作成を再試行中", "attempt", attempt+1, "error", createErr.Error())
		}
		if _, createErr = admin.Exec(ctx, "CREATE DATABASE "+dbName); createErr == nil {
			break
		}
	}
	require.NoError(t, createErr, "テスト用データベースの作成に失敗")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		admin, err := pgxpool.New(ctx, adminDSN)
		if err != nil {
			return
		}
		defer admin.Close()
		if _, err := admin.Exec(ctx, "DROP DATABASE IF EXISTS "+dbName+" WITH (FORCE)"); err != nil {
			slog.Warn("テストデータベースの削除に失敗しました", "database", dbName, "error", err.Error())
		}
	})

	return config.DBConfig{
		Host:     pg.Host,
		Port:     pg.Port.Port(),
		User:     testUser,
		Password: testPassword,
		DBName:   dbName,
		SSLMode:  "disable",
		TimeZone: "UTC",
	}
}

// applyMigrations runs every file in migrations/ in name order, the same
// order atlas applies them in.
func applyMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	dir, err := findMigrationsDir()
	if err != nil {
		return err
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return errs.Wrap(err, "list migrations")
	}
	sort.Strings(files)

	for _, file := range files {
		sqlContent, err := os.ReadFile(file)
		if err != nil {
			return errs.Wrapf(err, "read migration %s", file)
		}
		if _, err := pool.Exec(ctx, string(sqlContent)); err != nil {
			return errs.Wrapf(err, "execute migration %s", file)
		}
	}
	return nil
}

// findMigrationsDir walks up from the package directory `go test` runs in.
func findMigrationsDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", errs.Wrap(err, "getwd")
	}
	for {
		candidate := filepath.Join(dir, "migrations")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errs.New("migrations directory not found")
		}
		dir = parent
	}
}

// buildE2EApp assembles the production modules, swapping in the suite's
// pool, config, and a gateway client pointed at the fake server.
func buildE2EApp(t *testing.T, env *environment) *fx.App {
	t.Helper()

	testConfigModule := fx.Module("testconfig",
		fx.Provide(
			func() *pgxpool.Pool { return env.pool },
			func() config.Config { return env.cfg },
			func(cfg config.Config) config.AuthorizeNetConfig { return cfg.AuthorizeNet },
			func(cfg config.Config) config.BrokerConfig { return cfg.Broker },
			func(cfg config.Config) (authnet.Environment, error) {
				return authnet.ParseEnvironment(cfg.AuthorizeNet.Environment)
			},
		),
	)

	app := fx.New(
		testConfigModule,
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.RedisModule,
		bootstrap.TelemetryModule,
		fx.Module("testgateway",
			fx.Provide(
				bootstrap.NewBuilder,
				fx.Annotate(
					func(cfg config.AuthorizeNetConfig, e authnet.Environment, logger *slog.Logger, metrics *telemetry.Metrics) *authnet.Client {
						return authnet.NewClient(e, authnet.NewHTTPClient(cfg.Timeout), logger, metrics, authnet.WithEndpoint(env.gateway.URL()))
					},
					fx.As(new(shared.Gateway)),
				),
			),
		),
		components.PersistenceModule,
		components.RepositoryModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&env.router, &env.redis),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "fxアプリケーションの起動に失敗")
	require.NotNil(t, env.router, "Routerのセットアップに失敗")
	return app
}

func postgresRequest() testcontainers.ContainerRequest {
	return testcontainers.ContainerRequest{
		Image:        "postgres:17",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     testUser,
			"POSTGRES_PASSWORD": testPassword,
			"POSTGRES_DB":       "postgres",
		},
		// データは使い捨てなので耐久性を捨てて速度を取る
		Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=256m"},
		Cmd: []string{
			"postgres",
			"-c", "fsync=off",
			"-c", "full_page_writes=off",
			"-c", "synchronous_commit=off",
			"-c", "max_connections=200",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
			return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable", testUser, testPassword, host, port.Port())
		}).WithStartupTimeout(60 * time.Second),
		Labels: map[string]string{"purpose": "accept-broker-e2e"},
	}
}

func redisRequest() testcontainers.ContainerRequest {
	return testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		Cmd:          []string{"redis-server", "--save", "", "--appendonly", "no"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		Labels:       map[string]string{"purpose": "accept-broker-e2e"},
	}
}

// startContainer starts req once per process and returns its mapped endpoint.
func startContainer(t *testing.T, once *sync.Once, c *testcontainers.Container, req testcontainers.ContainerRequest, port nat.Port) endpoint {
	t.Helper()
	once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()
		started, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		require.NoError(t, err, "%sコンテナの起動に失敗", req.Image)
		*c = started
	})
	require.NotNil(t, *c, "コンテナが起動していません")

	ctx := context.Background()
	mapped, err := (*c).MappedPort(ctx, port)
	require.NoError(t, err)
	host, err := (*c).Host(ctx)
	require.NoError(t, err)
	return endpoint{Host: host, Port: mapped}
}

// SharedSuite boots one broker per suite. Set Backend before suite.Run to
// exercise a correlation store other than postgres.
type SharedSuite struct {
	suite.Suite
	Backend string

	Router  *gin.Engine
	DB      *pgxpool.Pool
	Redis   redis.UniversalClient
	Config  config.Config
	Gateway *FakeGateway
}

func (s *SharedSuite) SetupSuite() {
	if s.Backend == "" {
		s.Backend = backendPostgres
	}
	env := setupE2EEnvironment(s.T(), s.Backend)
	s.DB = env.pool
	s.Redis = env.redis
	s.Router = env.router
	s.Config = env.cfg
	s.Gateway = env.gateway
}

// SetupSubTest gives every s.Run case empty tables, an empty redis and
// default gateway replies.
func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "Failed to reset database state")
	if s.Backend == backendRedis {
		require.NoError(s.T(), s.Redis.FlushDB(context.Background()).Err(), "Failed to flush redis")
	}
	s.Gateway.Reset()
}
