package components

import (
	"courtbook/internal/handler"
	"courtbook/internal/handler/api"
	"courtbook/internal/handler/middleware"
	"courtbook/internal/pkg/jwt"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAvailabilityHandler,
		api.NewReservationHandler,
		api.NewWaitlistHandler,
		api.NewMaintenanceHandler,
		api.NewEventsHandler,
		func(svc *jwt.Service) middleware.TokenValidator { return svc },
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	availability *api.AvailabilityHandler,
	reservation *api.ReservationHandler,
	waitlist *api.WaitlistHandler,
	maintenance *api.MaintenanceHandler,
	events *api.EventsHandler,
) handler.Handlers {
	return handler.Handlers{
		Availability: availability,
		Reservation:  reservation,
		Waitlist:     waitlist,
		Maintenance:  maintenance,
		Events:       events,
	}
}
