package reports

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/hbk671104/options-calculator/internal/models"
	"github.com/hbk671104/options-calculator/pkg/db"

	"github.com/jackc/pgx/v5"
)

const insertExposure = `
INSERT INTO report_exposures (account_id, symbol, shorts, longs, generated_at)
VALUES ($1, $2, $3, $4, $5)`

// Repository implement db store
type Repository struct {
	tx *db.PgTxManager
}

// New instance
func New(tx *db.PgTxManager) *Repository {
	return &Repository{
		tx: tx,
	}
}

// SaveReport пишет по строке на каждую экспозицию отчёта. Только insert,
// update/delete по отчётам не бывает.
func (r *Repository) SaveReport(ctx context.Context, report *models.Report) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("Repository.SaveReport: %w", err)
		}
	}()

	return r.tx.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		for _, e := range report.Exposures {
			_, err := tx.Exec(ctxTx, insertExposure,
				report.AccountID, e.Symbol, e.Short, e.Long, report.GeneratedAt)
			if err != nil {
				return errors.Wrap(err, "insert exposure")
			}
		}
		return nil
	})
}
