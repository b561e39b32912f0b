package broker

import (
	"signal_copier/internal/copier"
	"signal_copier/internal/modules/broker/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("broker",
		fx.Provide(
			service.NewClient, // func(*config.Config) *service.Client
		),

		// Адаптер: *service.Client -> copier.Broker
		fx.Provide(
			func(c *service.Client) copier.Broker {
				return c
			},
		),
	)
}
