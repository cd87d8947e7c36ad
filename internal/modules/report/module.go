package report

import (
	"time"

	"go.uber.org/fx"

	"github.com/hbk671104/options-calculator/internal/modules/config"
	"github.com/hbk671104/options-calculator/internal/modules/report/service"
	"github.com/hbk671104/options-calculator/internal/modules/report/service/pg/reports"
)

func Module() fx.Option {
	return fx.Module("report",
		// 1. Репозиторий экспозиций
		fx.Provide(
			reports.New, // func(*db.PgTxManager) *reports.Repository
			func(r *reports.Repository) service.ExposureStore {
				return r
			},
		),

		// 2. Файловый кэш отчётов
		fx.Provide(
			service.NewArtifacts,
			func(a *service.Artifacts) service.ArtifactWriter {
				return a
			},
		),

		// 3. Пайплайн
		fx.Provide(
			func(
				cfg *config.Config,
				tokens service.TokenProvider,
				source service.PositionSource,
				store service.ExposureStore,
				artifacts service.ArtifactWriter,
			) (*service.Pipeline, error) {
				loc, err := time.LoadLocation(cfg.Report.Timezone)
				if err != nil {
					return nil, err
				}
				return service.NewPipeline(tokens, source, store, artifacts, loc), nil
			},
		),
	)
}
