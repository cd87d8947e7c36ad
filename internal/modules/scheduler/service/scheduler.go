package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hbk671104/options-calculator/internal/models"
	"github.com/hbk671104/options-calculator/internal/modules/config"
	health "github.com/hbk671104/options-calculator/internal/modules/health/service"
	"github.com/hbk671104/options-calculator/pkg/logger"
)

type ReportRunner interface {
	RunScheduled(ctx context.Context, accounts []models.Account)
}

type TokenRefresher interface {
	RefreshAll(ctx context.Context, accounts []models.Account)
}

// Scheduler держит оба таймера: дневной отчёт и периодический refresh
// токенов. Таймеры независимы, пересечение запусков разруливают
// пер-аккаунтные локи пайплайна.
type Scheduler struct {
	cfg      *config.Config
	pipeline ReportRunner
	tokens   TokenRefresher
	state    *health.State

	loc    *time.Location
	hour   int
	minute int
}

func New(cfg *config.Config, pipeline ReportRunner, tokens TokenRefresher, state *health.State) (*Scheduler, error) {
	loc, err := time.LoadLocation(cfg.Report.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load report timezone: %w", err)
	}
	hour, minute, err := ParseClock(cfg.Report.Time)
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		cfg:      cfg,
		pipeline: pipeline,
		tokens:   tokens,
		state:    state,
		loc:      loc,
		hour:     hour,
		minute:   minute,
	}, nil
}

// ParseClock разбирает "HH:MM".
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("bad clock %q, want HH:MM", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("bad clock %q, want HH:MM", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("bad clock %q, want HH:MM", s)
	}
	return hour, minute, nil
}

// NextRun — ближайший будний день в hour:minute локального времени loc
// строго после now.
func NextRun(now time.Time, hour, minute int, loc *time.Location) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// DailyWorker спит до следующего запуска, гоняет батч и спит дальше.
func (s *Scheduler) DailyWorker(ctx context.Context) {
	for {
		next := NextRun(time.Now(), s.hour, s.minute, s.loc)
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			logger.Info("daily report run started (%d accounts)", len(s.cfg.Accounts))
			s.pipeline.RunScheduled(ctx, s.cfg.Accounts)
			s.state.TouchReport(time.Now())
		}
	}
}

// RefreshWorker обновляет токены сразу при старте и дальше по интервалу,
// чтобы к дневному запуску токен уже был тёплым.
func (s *Scheduler) RefreshWorker(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Refresh.Interval)
	defer ticker.Stop()

	s.tokens.RefreshAll(ctx, s.cfg.Accounts) // сразу при старте
	s.state.TouchRefresh(time.Now())

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tokens.RefreshAll(ctx, s.cfg.Accounts)
			s.state.TouchRefresh(time.Now())
		}
	}
}
