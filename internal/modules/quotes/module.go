package quotes

import (
	"context"

	"signal_copier/internal/copier"
	"signal_copier/internal/modules/config"
	"signal_copier/internal/modules/quotes/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("quotes",
		fx.Provide(
			service.NewClient, // func(*config.Config, *health.State) *service.Client
		),

		// Адаптер: *service.Client -> copier.QuoteCache.
		// При выключенном стриме кэш просто всегда промахивается.
		fx.Provide(
			func(c *service.Client) copier.QuoteCache {
				return c
			},
		),

		fx.Invoke(runStream),
	)
}

func runStream(lc fx.Lifecycle, cfg *config.Config, c *service.Client) {
	if !cfg.Quotes.Enabled {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go c.Run(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
