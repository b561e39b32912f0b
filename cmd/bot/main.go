package main

import (
	"context"
	"log"

	"signal_copier/internal/copier"
	"signal_copier/internal/modules/broker"
	"signal_copier/internal/modules/config"
	"signal_copier/internal/modules/health"
	"signal_copier/internal/modules/postgres"
	"signal_copier/internal/modules/quotes"
	"signal_copier/pkg/logger"
	"signal_copier/pkg/tracing"

	telegram "signal_copier/internal/modules/telegram_bot"

	"go.uber.org/fx"
)

func main() {
	logger.SetServiceName("signal_copier")
	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}

	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
		),
		config.Module(),
		postgres.Module(),
		broker.Module(),
		quotes.Module(),
		copier.Module(),
		health.Module(),
		telegram.Module(),

		fx.Invoke(initTracing),
	)
	if err := app.Start(context.Background()); err != nil {
		log.Fatal(err)
	}

	<-app.Done()

	if err := app.Stop(context.Background()); err != nil {
		log.Fatal(err)
	}
}

func initTracing(lc fx.Lifecycle, cfg *config.Config) error {
	if cfg.Jaeger.Host == "" {
		return nil
	}

	tracing.SetServiceName("signal_copier")
	_, closeTracer, err := tracing.InitTracer(tracing.Config{
		Host: cfg.Jaeger.Host,
		Port: cfg.Jaeger.Port,
	})
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			closeTracer()
			return nil
		},
	})
	return nil
}
