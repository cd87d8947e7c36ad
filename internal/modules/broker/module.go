package broker

import (
	"go.uber.org/fx"

	"github.com/hbk671104/options-calculator/internal/modules/broker/service"
	report "github.com/hbk671104/options-calculator/internal/modules/report/service"
)

func Module() fx.Option {
	return fx.Module("broker",
		fx.Provide(
			service.NewClient,
			func(c *service.Client) service.TokenExchanger {
				return c
			},
			service.NewTokenCache,
		),

		// Адаптеры: брокер как коллабораторы пайплайна отчётов.
		fx.Provide(
			func(c *service.TokenCache) report.TokenProvider {
				return c
			},
			func(c *service.Client) report.PositionSource {
				return c
			},
		),
	)
}
