package main

import (
	"context"

	"go.uber.org/fx"

	"github.com/hbk671104/options-calculator/internal/modules/broker"
	"github.com/hbk671104/options-calculator/internal/modules/config"
	"github.com/hbk671104/options-calculator/internal/modules/health"
	"github.com/hbk671104/options-calculator/internal/modules/postgres"
	"github.com/hbk671104/options-calculator/internal/modules/report"
	"github.com/hbk671104/options-calculator/internal/modules/scheduler"
	telegram "github.com/hbk671104/options-calculator/internal/modules/telegram_bot"
	"github.com/hbk671104/options-calculator/pkg/logger"
	"github.com/hbk671104/options-calculator/pkg/tracing"
)

func main() {
	logger.MustInit()
	logger.SetServiceName("options-calculator")
	tracing.SetServiceName("options-calculator")

	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
		),
		config.Module(),
		postgres.Module(),
		broker.Module(),
		report.Module(),
		scheduler.Module(),
		telegram.Module(),
		health.Module(),

		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config) error {
			if cfg.Tracing.Host == "" {
				return nil
			}
			_, closeTracer, err := tracing.InitTracer(tracing.Config{
				Host: cfg.Tracing.Host,
				Port: cfg.Tracing.Port,
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
		}),
	)
	app.Run()
}
