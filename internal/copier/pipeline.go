package copier

import (
	"context"
	"fmt"
	"math"

	"signal_copier/internal/models"
	brokersvc "signal_copier/internal/modules/broker/service"
	"signal_copier/internal/report"
	"signal_copier/internal/risk"
	"signal_copier/internal/signal"

	"github.com/opentracing/opentracing-go"
)

// Broker — то, что пайплайну нужно от моста MetaTrader.
type Broker interface {
	AccountInformation(ctx context.Context) (brokersvc.AccountInformation, error)
	SymbolPrice(ctx context.Context, symbol string) (models.Quote, error)
	CreateOrder(ctx context.Context, req brokersvc.OrderRequest) (brokersvc.OrderResult, error)
}

// QuoteCache — быстрый путь к котировке из стрима; может отсутствовать.
type QuoteCache interface {
	Get(symbol string) (models.Quote, bool)
}

// Pipeline — классификатор → парсер → риск → отчёт → заявки.
// Сам по себе без состояния, состояние чатов держит Manager.
type Pipeline struct {
	broker Broker
	quotes QuoteCache
}

func NewPipeline(b Broker, q QuoteCache) *Pipeline {
	return &Pipeline{broker: b, quotes: q}
}

// ParseMessage — чистая часть: нормализация и разбор, без сети.
func (p *Pipeline) ParseMessage(text string, riskCfg models.RiskConfig) (*models.TradeSignal, error) {
	lines, err := signal.Normalize(text)
	if err != nil {
		return nil, err
	}
	return signal.Parse(lines, riskCfg)
}

// ResolveEntry заменяет рыночный вход живой котировкой:
// bid для покупок, ask для продаж. Сначала кэш стрима, потом REST.
func (p *Pipeline) ResolveEntry(ctx context.Context, t *models.TradeSignal) error {
	if !t.Entry.AtMarket() {
		return nil
	}

	var q models.Quote
	ok := false
	if p.quotes != nil {
		q, ok = p.quotes.Get(t.Symbol)
	}
	if !ok {
		var err error
		q, err = p.broker.SymbolPrice(ctx, t.Symbol)
		if err != nil {
			return fmt.Errorf("resolve entry: %w", err)
		}
	}

	if t.OrderType.IsBuy() {
		t.Entry = models.EntryAt(q.Bid)
	} else {
		t.Entry = models.EntryAt(q.Ask)
	}
	return nil
}

// Evaluate резолвит вход, считает риск по балансу счёта и собирает отчёт.
func (p *Pipeline) Evaluate(ctx context.Context, t *models.TradeSignal) ([]report.Row, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "copier.evaluate")
	span.SetTag("symbol", t.Symbol)
	defer span.Finish()

	info, err := p.broker.AccountInformation(ctx)
	if err != nil {
		return nil, fmt.Errorf("account information: %w", err)
	}

	sizer, err := risk.NewSizer(t.Risk)
	if err != nil {
		return nil, err
	}

	if err := p.ResolveEntry(ctx, t); err != nil {
		return nil, err
	}

	if err := risk.Compute(t, info.Balance, sizer); err != nil {
		return nil, err
	}

	return report.Build(t, info.Balance), nil
}

// Execute выставляет по заявке на каждый take profit.
// При fixed fraction объём делится поровну между TP именно здесь.
func (p *Pipeline) Execute(ctx context.Context, t *models.TradeSignal) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "copier.execute")
	span.SetTag("symbol", t.Symbol)
	defer span.Finish()

	for i, tp := range t.TakeProfits {
		req := brokersvc.OrderRequest{
			ActionType: actionType(t.OrderType),
			Symbol:     t.Symbol,
			Volume:     p.volumeFor(t, i),
			StopLoss:   t.StopLoss,
			TakeProfit: tp,
		}
		if !t.OrderType.IsMarket() {
			price, ok := t.Entry.Price()
			if !ok {
				return risk.ErrEntryUnresolved
			}
			req.OpenPrice = price
		}
		if t.Risk.TrailingStop {
			req.TrailingStopLoss = trailingFor(t)
		}

		if _, err := p.broker.CreateOrder(ctx, req); err != nil {
			return fmt.Errorf("заявка %d из %d: %w", i+1, len(t.TakeProfits), err)
		}
	}
	return nil
}

func (p *Pipeline) volumeFor(t *models.TradeSignal, i int) float64 {
	if len(t.PositionSizes) == 1 {
		return t.PositionSizes[0] / float64(len(t.TakeProfits))
	}
	return t.PositionSizes[i]
}

// trailingFor — дистанция трейлинга, равная дистанции стопа в цене.
func trailingFor(t *models.TradeSignal) *brokersvc.TrailingStopLoss {
	entry, ok := t.Entry.Price()
	if !ok {
		return nil
	}
	ts := &brokersvc.TrailingStopLoss{}
	ts.Distance.Distance = math.Abs(entry - t.StopLoss)
	ts.Distance.Units = "ABSOLUTE_PRICE"
	return ts
}

func actionType(o models.OrderType) string {
	switch o {
	case models.OrderBuyMarket:
		return "ORDER_TYPE_BUY"
	case models.OrderSellMarket:
		return "ORDER_TYPE_SELL"
	case models.OrderBuyLimit:
		return "ORDER_TYPE_BUY_LIMIT"
	case models.OrderSellLimit:
		return "ORDER_TYPE_SELL_LIMIT"
	case models.OrderBuyStop:
		return "ORDER_TYPE_BUY_STOP"
	case models.OrderSellStop:
		return "ORDER_TYPE_SELL_STOP"
	}
	return ""
}
