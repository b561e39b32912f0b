package copier

import "go.uber.org/fx"

func Module() fx.Option {
	return fx.Module("copier",
		fx.Provide(
			NewPipeline, // func(Broker, QuoteCache) *Pipeline
			NewManager,  // func(*Pipeline, *config.Config) *Manager
		),
	)
}
