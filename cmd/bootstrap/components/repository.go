package components

import (
	"context"
	"log/slog"

	"accept-broker/internal/infra/uow"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// brokerTables are created by migrations/001_initial_schema.sql.
var brokerTables = []string{"customer_profiles", "payment_transactions", "webhook_events", "pending_correlations"}

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		uow.NewPostgresUoW,
	),
	fx.Invoke(warnMissingTables),
)

// warnMissingTables flags a database the migrate tool has not been run against.
// Startup continues so token issuance can still be diagnosed.
func warnMissingTables(pool *pgxpool.Pool, logger *slog.Logger) {
	ctx := context.Background()
	for _, table := range brokerTables {
		var exists bool
		if err := pool.QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL", "public."+table).Scan(&exists); err != nil {
			logger.Warn("schema check failed", "table", table, "error", err)
			return
		}
		if !exists {
			logger.Warn("table missing; run `migrate apply`", "table", table)
		}
	}
}
