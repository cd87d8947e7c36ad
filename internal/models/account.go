package models

import "time"

// Account хранит данные одного брокерского логина. Заполняется из конфига
// при старте и дальше не меняется.
type Account struct {
	ID           string `yaml:"id"`
	RefreshToken string `yaml:"refresh_token"`

	// Keyword — текст входящего сообщения, который запускает on-demand отчёт
	// для этого аккаунта.
	Keyword string `yaml:"keyword"`

	// ChatID — отдельный чат для ответов по этому аккаунту; 0 => чат отправителя.
	ChatID int64 `yaml:"chat_id"`
}

// Token — текущий access token аккаунта. Владеет им только TokenCache,
// на аккаунт живёт максимум одна запись.
type Token struct {
	AccountID  string
	Value      string
	ObtainedAt time.Time
}

// Trigger помечает, откуда пришёл запуск пайплайна.
type Trigger string

const (
	TriggerScheduled Trigger = "scheduled"
	TriggerOnDemand  Trigger = "on-demand"
)
