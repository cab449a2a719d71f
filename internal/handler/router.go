package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"accept-broker/internal/handler/api"
	"accept-broker/internal/handler/middleware"
	"accept-broker/internal/infra/telemetry"
	"accept-broker/internal/pkg/config"
)

// returnPath receives the browser back from the hosted payment page.
const returnPath = "/"

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

type Handlers struct {
	Config   *api.ConfigHandler
	Profile  *api.ProfileHandler
	Payment  *api.PaymentHandler
	Hosted   *api.HostedHandler
	Callback *api.CallbackHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, registry *prometheus.Registry, h Handlers) {
	setupMiddleware(engine, cfg, logger, h)
	setupRoutes(engine, registry, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, h Handlers) {
	// outermost, so panics in any middleware are caught
	engine.Use(middleware.CustomRecovery(map[string]string{
		returnPath: h.Callback.FallbackURL(),
	}))
	engine.Use(middleware.Tracing())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, registry *prometheus.Registry, h Handlers) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(telemetry.Handler(registry)))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	root := engine.Group("")
	addRoutes(root, []route{
		{Method: http.MethodGet, Path: "/get-auth-config", Handler: h.Config.GetAuthConfig},
		{Method: http.MethodPost, Path: "/create-customer-profile", Handler: h.Profile.CreateCustomerProfile},
		{Method: http.MethodPost, Path: "/get-customer-profile", Handler: h.Profile.GetCustomerProfile},
		{Method: http.MethodPost, Path: "/charge-customer-profile", Handler: h.Payment.ChargeCustomerProfile},
		{Method: http.MethodPost, Path: "/accept-hosted-token", Handler: h.Hosted.AcceptHostedToken},
		{Method: http.MethodPost, Path: "/get-hosted-profile-token", Handler: h.Hosted.HostedProfileToken},
		{Method: http.MethodPost, Path: "/process-payment", Handler: h.Payment.ProcessPayment},
		{Method: http.MethodGet, Path: returnPath, Handler: h.Callback.Return},
	})

	webhooks := engine.Group("/webhooks")
	{
		addRoutes(webhooks, []route{
			{Method: http.MethodPost, Path: "/authorizenet", Handler: h.Callback.Webhook},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		g.Handle(r.Method, r.Path, r.Handler)
	}
}
