package components

import (
	"context"

	"courtbook/internal/notifier"
	"courtbook/internal/pkg/clock"
	"courtbook/internal/pkg/config"
	"courtbook/internal/usecase/commands"
	"courtbook/internal/usecase/shared"
	"courtbook/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		fx.Annotate(
			worker.NewLogBillingGateway,
			fx.As(new(worker.BillingGateway)),
		),
		NewOutboxWorker,
	),
	fx.Invoke(registerWorker),
)

func NewOutboxWorker(
	uow shared.UnitOfWork,
	waitlist commands.WaitlistCommands,
	events notifier.Publisher,
	billing worker.BillingGateway,
	clk clock.Clock,
	cfg config.Config,
) *worker.Worker {
	return worker.NewWorker(uow, waitlist, events, billing, clk, cfg.Booking.WorkerInterval)
}

func registerWorker(lc fx.Lifecycle, w *worker.Worker) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			w.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			w.Stop()
			return nil
		},
	})
}
