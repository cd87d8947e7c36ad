package scheduler

import (
	"context"

	"go.uber.org/fx"

	broker "github.com/hbk671104/options-calculator/internal/modules/broker/service"
	report "github.com/hbk671104/options-calculator/internal/modules/report/service"
	"github.com/hbk671104/options-calculator/internal/modules/scheduler/service"
)

func Module() fx.Option {
	return fx.Module("scheduler",
		fx.Provide(
			func(p *report.Pipeline) service.ReportRunner {
				return p
			},
			func(c *broker.TokenCache) service.TokenRefresher {
				return c
			},
			service.New, // *service.Scheduler
		),

		// Оба воркера живут от старта до ctx.Done.
		fx.Invoke(func(lc fx.Lifecycle, s *service.Scheduler, ctx context.Context) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go s.RefreshWorker(ctx)
					go s.DailyWorker(ctx)
					return nil
				},
			})
		}),
	)
}
