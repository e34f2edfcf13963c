package components

import (
	"open-fridge/internal/handler"
	"open-fridge/internal/handler/api"
	"open-fridge/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewListingHandler,
		api.NewReservationHandler,
		api.NewScanHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
