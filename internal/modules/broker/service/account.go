package service

import (
	"context"
	"fmt"
	"net/http"

	"signal_copier/internal/models"

	"github.com/bytedance/sonic"
)

// AccountInformation тянет баланс и валюту счёта.
func (c *Client) AccountInformation(ctx context.Context) (AccountInformation, error) {
	data, err := c.do(ctx, http.MethodGet, c.accountPath("/account-information"), nil)
	if err != nil {
		return AccountInformation{}, fmt.Errorf("AccountInformation: %w", err)
	}

	var info AccountInformation
	if err := sonic.Unmarshal(data, &info); err != nil {
		return AccountInformation{}, fmt.Errorf("AccountInformation unmarshal: %w", err)
	}
	return info, nil
}

// SymbolPrice — единственный внешний lookup ядра: bid/ask для резолва NOW.
func (c *Client) SymbolPrice(ctx context.Context, symbol string) (models.Quote, error) {
	data, err := c.do(ctx, http.MethodGet, c.accountPath("/symbols/"+symbol+"/current-price"), nil)
	if err != nil {
		return models.Quote{}, fmt.Errorf("SymbolPrice %s: %w", symbol, err)
	}

	var price symbolPrice
	if err := sonic.Unmarshal(data, &price); err != nil {
		return models.Quote{}, fmt.Errorf("SymbolPrice %s unmarshal: %w", symbol, err)
	}
	if price.Bid <= 0 || price.Ask <= 0 {
		return models.Quote{}, fmt.Errorf("SymbolPrice %s: пустая котировка", symbol)
	}

	return models.Quote{Bid: price.Bid, Ask: price.Ask}, nil
}
