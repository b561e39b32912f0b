package service

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
)

const retcodeDone = "TRADE_RETCODE_DONE"

// CreateOrder выставляет одну заявку. Вызывающий сам решает,
// сколько заявок нужно на сделку (по одной на каждый TP).
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (OrderResult, error) {
	if req.Volume <= 0 {
		return OrderResult{}, fmt.Errorf("CreateOrder: volume <= 0")
	}

	payload, err := sonic.Marshal(req)
	if err != nil {
		return OrderResult{}, fmt.Errorf("CreateOrder marshal: %w", err)
	}

	data, err := c.do(ctx, http.MethodPost, c.accountPath("/trade"), bytes.NewReader(payload))
	if err != nil {
		return OrderResult{}, fmt.Errorf("CreateOrder: %w", err)
	}

	var res OrderResult
	if err := sonic.Unmarshal(data, &res); err != nil {
		return OrderResult{}, fmt.Errorf("CreateOrder unmarshal: %w", err)
	}

	if res.StringCode != "" && res.StringCode != retcodeDone {
		return res, fmt.Errorf("CreateOrder rejected: %s (%d) %s", res.StringCode, res.NumericCode, res.Message)
	}

	return res, nil
}
