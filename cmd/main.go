package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"accept-broker/cmd/bootstrap"
	"accept-broker/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

func init() {
	// デバッグ用レスポンスを誤って公開しないよう release を既定にする
	gin.SetMode(gin.ReleaseMode)

	_ = godotenv.Load()

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}
}

// @title           accept-broker
// @version         1.0
// @description     Authorize.Net hosted payment token broker
// @description     Issues Accept Hosted and customer profile tokens and reconciles their outcomes.

// @BasePath  /
// @schemes http https
func newServer(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, logger *slog.Logger) *http.Server {
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			logger.Info("ブローカーを起動します",
				"address", srv.Addr,
				"mode", gin.Mode(),
				"authnet_environment", cfg.AuthorizeNet.Environment,
				"correlation_backend", cfg.Broker.CorrelationBackend)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("HTTPサーバーが異常終了しました", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("処理中のリクエストを待って停止します")
			ctx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	})
	return srv
}

func main() {
	fx.New(
		bootstrap.Module,
		fx.Provide(
			func() *gin.Engine {
				return gin.New()
			},
			newServer,
		),
		fx.Invoke(func(*http.Server) {}),
	).Run()
}
