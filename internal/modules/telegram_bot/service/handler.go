package service

import (
	"context"
	"errors"
	"strings"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/hbk671104/options-calculator/internal/models"
	"github.com/hbk671104/options-calculator/pkg/logger"
)

func (t *Telegram) handleUpdate(ctx context.Context, update tgbot.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil || msg.Text == "" {
		return
	}

	account, ok := t.matchAccount(msg.Text)
	if !ok {
		return
	}

	chatID := msg.Chat.ID
	if account.ChatID != 0 {
		chatID = account.ChatID
	}
	go t.handleReportRequest(ctx, chatID, account)
}

// matchAccount ищет первый аккаунт, чьё ключевое слово встречается в тексте
// (без учёта регистра, как /opcal/i в старом боте).
func (t *Telegram) matchAccount(text string) (models.Account, bool) {
	lower := strings.ToLower(text)
	for _, account := range t.cfg.Accounts {
		if account.Keyword == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(account.Keyword)) {
			return account, true
		}
	}
	return models.Account{}, false
}

// handleReportRequest — on-demand запуск: только доставка, без персиста.
func (t *Telegram) handleReportRequest(ctx context.Context, chatID int64, account models.Account) {
	_, _ = t.Send(ctx, chatID, "generating report...")

	text, filename, err := t.pipeline.RunOnDemand(ctx, account)
	if err != nil {
		if errors.Is(err, models.ErrBusy) {
			_, _ = t.SendF(ctx, chatID, "report for %s is already running, try again later", account.ID)
			return
		}
		logger.Error("%v", err)
		_, _ = t.SendF(ctx, chatID, "report for %s failed: %v", account.ID, err)
		return
	}

	if _, err := t.Send(ctx, chatID, text); err != nil {
		logger.Error("account %s: deliver report text: %v", account.ID, err)
	}
	if err := t.sendDocument(chatID, filename, []byte(text)); err != nil {
		logger.Error("account %s: deliver report file: %v", account.ID, err)
	}
}

// NotifyReport — доставка планового отчёта в общий чат, если он настроен.
func (t *Telegram) NotifyReport(ctx context.Context, text, filename string) error {
	if t.cfg.Telegram.ChatID == 0 {
		return nil
	}
	if _, err := t.Send(ctx, t.cfg.Telegram.ChatID, text); err != nil {
		return err
	}
	return t.sendDocument(t.cfg.Telegram.ChatID, filename, []byte(text))
}
