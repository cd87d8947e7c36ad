package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/opentracing/opentracing-go"

	"github.com/hbk671104/options-calculator/internal/models"
	"github.com/hbk671104/options-calculator/pkg/logger"
)

// Коллабораторы пайплайна. Реализации живут в соседних модулях,
// пайплайн знает только эти контракты.
type TokenProvider interface {
	Get(accountID string) (models.Token, error)
	Refresh(ctx context.Context, account models.Account) (models.Token, error)
}

type PositionSource interface {
	Positions(ctx context.Context, accountID, token string) ([]models.Position, error)
}

type ExposureStore interface {
	SaveReport(ctx context.Context, report *models.Report) error
}

type ArtifactWriter interface {
	Write(accountID string, generatedAt time.Time, text string) (string, error)
}

type Notifier interface {
	NotifyReport(ctx context.Context, text, filename string) error
}

// Pipeline гоняет fetch -> net -> format -> persist/notify по одному
// аккаунту за запуск. Аккаунт всегда явный параметр, общего "текущего
// аккаунта" нет.
type Pipeline struct {
	tokens    TokenProvider
	source    PositionSource
	store     ExposureStore
	artifacts ArtifactWriter
	loc       *time.Location

	// notifier опционален: подцепляется транспортом через AttachNotifier.
	notifier Notifier

	// На аккаунт максимум один запуск в полёте.
	mu      sync.Mutex
	running map[string]struct{}
}

func NewPipeline(tokens TokenProvider, source PositionSource, store ExposureStore, artifacts ArtifactWriter, loc *time.Location) *Pipeline {
	return &Pipeline{
		tokens:    tokens,
		source:    source,
		store:     store,
		artifacts: artifacts,
		loc:       loc,
		running:   make(map[string]struct{}),
	}
}

// AttachNotifier подключает транспорт доставки отчётов по расписанию.
func (p *Pipeline) AttachNotifier(n Notifier) {
	p.notifier = n
}

func (p *Pipeline) acquire(accountID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, busy := p.running[accountID]; busy {
		return false
	}
	p.running[accountID] = struct{}{}
	return true
}

func (p *Pipeline) release(accountID string) {
	p.mu.Lock()
	delete(p.running, accountID)
	p.mu.Unlock()
}

func (p *Pipeline) stageErr(account models.Account, trigger models.Trigger, stage Stage, err error) error {
	return &StageError{
		AccountID: account.ID,
		Stage:     stage,
		Trigger:   trigger,
		Err:       err,
	}
}

// generate ведёт один запуск от токена до готового Report.
func (p *Pipeline) generate(ctx context.Context, account models.Account, trigger models.Trigger) (*models.Report, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "report.generate")
	span.SetTag("account_id", account.ID)
	span.SetTag("trigger", string(trigger))
	defer span.Finish()

	token, err := p.tokens.Get(account.ID)
	if err != nil {
		// токена ещё нет — пробуем обновить лениво
		token, err = p.tokens.Refresh(ctx, account)
		if err != nil {
			return nil, p.stageErr(account, trigger, StageToken, err)
		}
	}

	positions, err := p.source.Positions(ctx, account.ID, token.Value)
	if err != nil && errors.Is(err, models.ErrAuth) {
		// токен протух между refresh-циклами; одна повторная попытка
		token, err = p.tokens.Refresh(ctx, account)
		if err == nil {
			positions, err = p.source.Positions(ctx, account.ID, token.Value)
		}
	}
	if err != nil {
		return nil, p.stageErr(account, trigger, StagePositions, err)
	}

	return &models.Report{
		AccountID:   account.ID,
		GeneratedAt: time.Now().In(p.loc),
		Exposures:   Net(positions),
	}, nil
}

// RunScheduled прогоняет дневной отчёт по всем аккаунтам в заданном порядке.
// Падение одного аккаунта логируется и не трогает остальных.
func (p *Pipeline) RunScheduled(ctx context.Context, accounts []models.Account) {
	for _, account := range accounts {
		p.runScheduledOne(ctx, account)
	}
}

func (p *Pipeline) runScheduledOne(ctx context.Context, account models.Account) {
	if !p.acquire(account.ID) {
		logger.Error("account %s: run already in progress, scheduled report skipped", account.ID)
		return
	}
	defer p.release(account.ID)

	report, err := p.generate(ctx, account, models.TriggerScheduled)
	if err != nil {
		logger.Error("%v", err)
		return
	}

	text := Format(report.AccountID, report.Exposures, report.GeneratedAt)

	// persist и notify независимы: отчёт может оказаться только в одном
	// из двух мест, это штатно
	if err := p.store.SaveReport(ctx, report); err != nil {
		logger.Error("%v", p.stageErr(account, models.TriggerScheduled, StagePersist, err))
	}
	if p.artifacts != nil {
		if _, err := p.artifacts.Write(report.AccountID, report.GeneratedAt, text); err != nil {
			logger.Error("%v", p.stageErr(account, models.TriggerScheduled, StagePersist, err))
		}
	}
	if p.notifier != nil {
		if err := p.notifier.NotifyReport(ctx, text, Filename(report.AccountID, report.GeneratedAt)); err != nil {
			logger.Error("%v", p.stageErr(account, models.TriggerScheduled, StageNotify, err))
		}
	}
	logger.Info("scheduled report done for account %s (%d symbols)", account.ID, len(report.Exposures))
}

// RunOnDemand строит отчёт по одному аккаунту без персистентности.
// Возвращает текст и имя файла для вложения; доставка — на вызывающем.
func (p *Pipeline) RunOnDemand(ctx context.Context, account models.Account) (string, string, error) {
	if !p.acquire(account.ID) {
		return "", "", fmt.Errorf("account %s: %w", account.ID, models.ErrBusy)
	}
	defer p.release(account.ID)

	report, err := p.generate(ctx, account, models.TriggerOnDemand)
	if err != nil {
		return "", "", err
	}

	text := Format(report.AccountID, report.Exposures, report.GeneratedAt)
	return text, Filename(report.AccountID, report.GeneratedAt), nil
}
