package components

import (
	"equipsched/internal/handler"
	"equipsched/internal/handler/api"
	"equipsched/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewScheduleHandler,
		api.NewEquipmentHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
