package service

import (
	"context"
	"fmt"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/hbk671104/options-calculator/internal/modules/config"
	report "github.com/hbk671104/options-calculator/internal/modules/report/service"
)

// Telegram — транспорт: принимает ключевые слова, отдаёт отчёты.
type Telegram struct {
	bot      *tgbot.BotAPI
	cfg      *config.Config
	pipeline *report.Pipeline
}

func NewTelegram(cfg *config.Config, pipeline *report.Pipeline) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}

	return &Telegram{
		bot:      b,
		cfg:      cfg,
		pipeline: pipeline,
	}, nil
}

func (t *Telegram) Send(ctx context.Context, chatID int64, msg string) (tgbot.Message, error) {
	return t.bot.Send(tgbot.NewMessage(chatID, msg))
}

func (t *Telegram) SendF(ctx context.Context, chatID int64, format string, args ...any) (tgbot.Message, error) {
	return t.Send(ctx, chatID, fmt.Sprintf(format, args...))
}

func (t *Telegram) sendDocument(chatID int64, filename string, data []byte) error {
	doc := tgbot.NewDocument(chatID, tgbot.FileBytes{Name: filename, Bytes: data})
	_, err := t.bot.Send(doc)
	return err
}

// Start: long-polling входящих сообщений.
func (t *Telegram) Start(ctx context.Context) error {
	u := tgbot.NewUpdate(0)
	u.Timeout = 30
	u.AllowedUpdates = []string{"message"}

	updates := t.bot.GetUpdatesChan(u)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case upd := <-updates:
				t.handleUpdate(ctx, upd)
			}
		}
	}()
	return nil
}

func (t *Telegram) Stop() {}
