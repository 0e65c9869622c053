package components

import (
	"courtbook/internal/notifier"
	"courtbook/internal/pkg/config"

	"go.uber.org/fx"
)

var NotifierModule = fx.Module("notifier",
	fx.Provide(
		NewHub,
		func(h *notifier.Hub) notifier.Publisher { return h },
	),
)

func NewHub(cfg config.Config) *notifier.Hub {
	return notifier.NewHub(cfg.Events)
}
