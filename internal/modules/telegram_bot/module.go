package telegram

import (
	"context"

	healthsvc "signal_copier/internal/modules/health/service"
	"signal_copier/internal/modules/telegram_bot/service"
	"signal_copier/internal/modules/telegram_bot/service/pg"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("telegram",
		// 1. Репозиторий юзеров
		fx.Provide(
			pg.NewUser, // func(*db.PgTxManager) *pg.User
		),

		// 2. Сервис Telegram как *service.Telegram
		fx.Provide(
			service.NewTelegram, // func(*config.Config, *pg.User, *copier.Manager) (*service.Telegram, error)
		),

		// Запуск основного цикла через Lifecycle.
		// Сервис готов, когда бот начал поллить обновления.
		fx.Invoke(
			func(lc fx.Lifecycle, t *service.Telegram, state *healthsvc.State) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						go func() { _ = t.Start(context.Background()) }()
						state.SetReady(true)
						return nil
					},
					OnStop: func(ctx context.Context) error {
						state.SetReady(false)
						t.Stop()
						return nil
					},
				})
			},
		),
	)
}
