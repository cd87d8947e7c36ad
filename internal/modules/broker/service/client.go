package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"github.com/hbk671104/options-calculator/internal/models"
	"github.com/hbk671104/options-calculator/internal/modules/config"
)

// Client — HTTP-клиент брокера: обмен refresh token и выборка позиций.
type Client struct {
	http     *http.Client
	tokenURL string
	apiBase  string
	clientID string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		http:     &http.Client{Timeout: 15 * time.Second},
		tokenURL: cfg.Broker.TokenURL,
		apiBase:  cfg.Broker.APIBase,
		clientID: cfg.Broker.ClientID,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// ExchangeToken меняет refresh token на свежий access token.
func (c *Client) ExchangeToken(ctx context.Context, refreshToken string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	form.Set("client_id", c.clientID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", errors.Wrap(err, "build token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "token endpoint")
	}
	defer resp.Body.Close()

	rb, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("%w: token endpoint http %d: %s", models.ErrAuth, resp.StatusCode, string(rb))
	}

	respData := tokenResponse{}
	if err := sonic.Unmarshal(rb, &respData); err != nil {
		return "", errors.Wrap(err, "decode token response")
	}
	if respData.AccessToken == "" {
		return "", fmt.Errorf("%w: token endpoint returned empty access_token", models.ErrAuth)
	}
	return respData.AccessToken, nil
}

type accountResponse struct {
	SecuritiesAccount struct {
		Positions []models.Position `json:"positions"`
	} `json:"securitiesAccount"`
}

// Positions вытаскивает открытые позиции аккаунта с bearer-токеном.
func (c *Client) Positions(ctx context.Context, accountID, token string) ([]models.Position, error) {
	reqURL := fmt.Sprintf("%s/accounts/%s?fields=positions", c.apiBase, accountID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build positions request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrFetch, err)
	}
	defer resp.Body.Close()

	rb, _ := io.ReadAll(resp.Body)
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: positions http %d: %s", models.ErrAuth, resp.StatusCode, string(rb))
	case resp.StatusCode/100 != 2:
		return nil, fmt.Errorf("%w: positions http %d: %s", models.ErrFetch, resp.StatusCode, string(rb))
	}

	respData := accountResponse{}
	if err := sonic.Unmarshal(rb, &respData); err != nil {
		return nil, fmt.Errorf("%w: decode positions: %v", models.ErrFetch, err)
	}
	return respData.SecuritiesAccount.Positions, nil
}
