package service

import (
	"fmt"

	"github.com/hbk671104/options-calculator/internal/models"
)

// Stage — шаг пайплайна, на котором случилась ошибка.
type Stage string

const (
	StageToken     Stage = "fetch_token"
	StagePositions Stage = "fetch_positions"
	StagePersist   Stage = "persist"
	StageNotify    Stage = "notify"
)

// StageError несёт аккаунт, шаг и триггер — чтобы по логу было видно,
// чей запуск и где развалился.
type StageError struct {
	AccountID string
	Stage     Stage
	Trigger   models.Trigger
	Err       error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("account %s: %s run failed at %s: %v", e.AccountID, e.Trigger, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
