package components

import (
	"accept-broker/internal/handler"
	"accept-broker/internal/handler/api"
	"accept-broker/internal/handler/validation"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewConfigHandler,
		api.NewProfileHandler,
		api.NewPaymentHandler,
		api.NewHostedHandler,
		api.NewCallbackHandler,
		func(
			config *api.ConfigHandler,
			profile *api.ProfileHandler,
			payment *api.PaymentHandler,
			hosted *api.HostedHandler,
			callback *api.CallbackHandler,
		) handler.Handlers {
			return handler.Handlers{
				Config:   config,
				Profile:  profile,
				Payment:  payment,
				Hosted:   hosted,
				Callback: callback,
			}
		},
	),
	fx.Invoke(validation.Register),
	fx.Invoke(handler.NewRouter),
)
