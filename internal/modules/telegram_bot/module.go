package telegram

import (
	"context"

	"go.uber.org/fx"

	health "github.com/hbk671104/options-calculator/internal/modules/health/service"
	report "github.com/hbk671104/options-calculator/internal/modules/report/service"
	"github.com/hbk671104/options-calculator/internal/modules/telegram_bot/service"
)

func Module() fx.Option {
	return fx.Module("telegram",
		fx.Provide(
			service.NewTelegram, // func(*config.Config, *report.Pipeline) (*service.Telegram, error)
		),

		// Транспорт подцепляется к пайплайну как нотифайер плановых отчётов.
		fx.Invoke(
			func(p *report.Pipeline, t *service.Telegram) {
				p.AttachNotifier(t)
			},
		),

		// Запуск основного цикла через Lifecycle
		fx.Invoke(
			func(lc fx.Lifecycle, t *service.Telegram, state *health.State, ctx context.Context) {
				lc.Append(fx.Hook{
					OnStart: func(_ context.Context) error {
						if err := t.Start(ctx); err != nil {
							return err
						}
						state.SetReady(true)
						return nil
					},
					OnStop: func(_ context.Context) error {
						t.Stop()
						return nil
					},
				})
			},
		),
	)
}
