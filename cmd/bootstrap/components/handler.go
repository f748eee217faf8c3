package components

import (
	"homeclean/internal/handler"
	"homeclean/internal/handler/api"
	"homeclean/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewOrderHandler,
		api.NewWebhookHandler,
		api.NewAdminHandler,
		api.NewAvailabilityHandler,
		newHandlers,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func newHandlers(
	order *api.OrderHandler,
	webhook *api.WebhookHandler,
	admin *api.AdminHandler,
	availability *api.AvailabilityHandler,
) handler.Handlers {
	return handler.Handlers{
		Order:        order,
		Webhook:      webhook,
		Admin:        admin,
		Availability: availability,
	}
}
