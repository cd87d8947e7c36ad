package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hbk671104/options-calculator/internal/models"
	"github.com/hbk671104/options-calculator/internal/modules/config"
	"github.com/hbk671104/options-calculator/pkg/logger"
)

type TokenExchanger interface {
	ExchangeToken(ctx context.Context, refreshToken string) (string, error)
}

// TokenCache держит по одному живому access token на аккаунт.
// Чтение конкурентное, запись только через Refresh.
type TokenCache struct {
	mu        sync.RWMutex
	tokens    map[string]models.Token
	exchanger TokenExchanger
	pause     time.Duration
}

func NewTokenCache(exchanger TokenExchanger, cfg *config.Config) *TokenCache {
	return &TokenCache{
		tokens:    make(map[string]models.Token),
		exchanger: exchanger,
		pause:     cfg.Refresh.Pause,
	}
}

// Get возвращает текущий токен аккаунта. Если токен ещё не кэшировался,
// вернёт models.ErrNoToken — сначала нужен Refresh.
func (c *TokenCache) Get(accountID string) (models.Token, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	token, ok := c.tokens[accountID]
	if !ok {
		return models.Token{}, fmt.Errorf("account %s: %w", accountID, models.ErrNoToken)
	}
	return token, nil
}

// Refresh меняет refresh token аккаунта на свежий access token и
// перезаписывает кэш. При ошибке старая запись остаётся как была.
func (c *TokenCache) Refresh(ctx context.Context, account models.Account) (models.Token, error) {
	value, err := c.exchanger.ExchangeToken(ctx, account.RefreshToken)
	if err != nil {
		return models.Token{}, fmt.Errorf("refresh account %s: %w", account.ID, err)
	}

	token := models.Token{
		AccountID:  account.ID,
		Value:      value,
		ObtainedAt: time.Now(),
	}

	c.mu.Lock()
	c.tokens[account.ID] = token
	c.mu.Unlock()

	return token, nil
}

// RefreshAll обновляет токены строго последовательно с паузой между
// аккаунтами. Ошибка одного аккаунта не мешает остальным.
func (c *TokenCache) RefreshAll(ctx context.Context, accounts []models.Account) {
	for i, account := range accounts {
		if i > 0 && c.pause > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(c.pause):
			}
		}
		if _, err := c.Refresh(ctx, account); err != nil {
			logger.Error("token refresh failed: %v", err)
			continue
		}
		logger.Info("token refreshed for account %s", account.ID)
	}
}
