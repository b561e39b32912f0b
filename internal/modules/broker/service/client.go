package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"signal_copier/internal/modules/config"
)

// Client — REST-клиент моста MetaTrader (MetaApi-совместимое API).
// Авторизация токеном в заголовке, аккаунт зашит в пути.
type Client struct {
	http      *http.Client
	token     string
	accountID string
	baseURL   string
}

func NewClient(cfg *config.Config) *Client {
	region := cfg.MetaAPI.Region
	if region == "" {
		region = "london"
	}
	return &Client{
		http:      &http.Client{Timeout: 15 * time.Second},
		token:     cfg.MetaAPI.Token,
		accountID: cfg.MetaAPI.AccountID,
		baseURL:   fmt.Sprintf("https://mt-client-api-v1.%s.agiliumtrade.ai", region),
	}
}

func (c *Client) accountPath(suffix string) string {
	return fmt.Sprintf("%s/users/current/accounts/%s%s", c.baseURL, c.accountID, suffix)
}

func (c *Client) do(ctx context.Context, method, url string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("broker new request: %w", err)
	}

	req.Header.Set("auth-token", c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("broker do: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("broker read body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("broker http %d: %s", resp.StatusCode, string(data))
	}

	return data, nil
}
