package copier

import (
	"context"
	"testing"

	"signal_copier/internal/models"
	brokersvc "signal_copier/internal/modules/broker/service"
)

type fakeBroker struct {
	balance float64
	quote   models.Quote

	priceCalls int
	orders     []brokersvc.OrderRequest
}

func (f *fakeBroker) AccountInformation(ctx context.Context) (brokersvc.AccountInformation, error) {
	return brokersvc.AccountInformation{Balance: f.balance, Currency: "USD"}, nil
}

func (f *fakeBroker) SymbolPrice(ctx context.Context, symbol string) (models.Quote, error) {
	f.priceCalls++
	return f.quote, nil
}

func (f *fakeBroker) CreateOrder(ctx context.Context, req brokersvc.OrderRequest) (brokersvc.OrderResult, error) {
	f.orders = append(f.orders, req)
	return brokersvc.OrderResult{StringCode: "TRADE_RETCODE_DONE"}, nil
}

type fakeCache struct {
	quotes map[string]models.Quote
}

func (f *fakeCache) Get(symbol string) (models.Quote, bool) {
	q, ok := f.quotes[symbol]
	return q, ok
}

func marketTrade(tps ...float64) *models.TradeSignal {
	return &models.TradeSignal{
		OrderType:   models.OrderBuyMarket,
		Symbol:      "GBPUSD",
		Entry:       models.EntryAtMarket(),
		StopLoss:    1.2400,
		TakeProfits: tps,
		Risk: models.RiskConfig{
			Policy:     models.PolicyFixedFraction,
			RiskFactor: 0.01,
		},
	}
}

func TestResolveEntryBuyTakesBid(t *testing.T) {
	b := &fakeBroker{quote: models.Quote{Bid: 1.2500, Ask: 1.2502}}
	p := NewPipeline(b, nil)

	trade := marketTrade(1.2600)
	if err := p.ResolveEntry(context.Background(), trade); err != nil {
		t.Fatalf("ResolveEntry: %v", err)
	}

	price, ok := trade.Entry.Price()
	if !ok || price != 1.2500 {
		t.Errorf("Entry = %v, want bid 1.25", trade.Entry)
	}
}

func TestResolveEntrySellTakesAsk(t *testing.T) {
	b := &fakeBroker{quote: models.Quote{Bid: 1.2500, Ask: 1.2502}}
	p := NewPipeline(b, nil)

	trade := marketTrade(1.2300)
	trade.OrderType = models.OrderSellMarket
	if err := p.ResolveEntry(context.Background(), trade); err != nil {
		t.Fatalf("ResolveEntry: %v", err)
	}

	price, _ := trade.Entry.Price()
	if price != 1.2502 {
		t.Errorf("Entry = %v, want ask 1.2502", trade.Entry)
	}
}

func TestResolveEntryPrefersStreamCache(t *testing.T) {
	b := &fakeBroker{quote: models.Quote{Bid: 1.0, Ask: 1.0}}
	cache := &fakeCache{quotes: map[string]models.Quote{
		"GBPUSD": {Bid: 1.2510, Ask: 1.2512},
	}}
	p := NewPipeline(b, cache)

	trade := marketTrade(1.2600)
	if err := p.ResolveEntry(context.Background(), trade); err != nil {
		t.Fatalf("ResolveEntry: %v", err)
	}

	if b.priceCalls != 0 {
		t.Errorf("REST вызван %d раз при живом кэше", b.priceCalls)
	}
	price, _ := trade.Entry.Price()
	if price != 1.2510 {
		t.Errorf("Entry = %v, want 1.2510 из кэша", trade.Entry)
	}
}

func TestResolveEntryLeavesExplicitPrice(t *testing.T) {
	b := &fakeBroker{quote: models.Quote{Bid: 1.0, Ask: 1.0}}
	p := NewPipeline(b, nil)

	trade := marketTrade(1.2600)
	trade.OrderType = models.OrderBuyLimit
	trade.Entry = models.EntryAt(1.2450)
	if err := p.ResolveEntry(context.Background(), trade); err != nil {
		t.Fatalf("ResolveEntry: %v", err)
	}

	if b.priceCalls != 0 {
		t.Error("лимитка не должна ходить за котировкой")
	}
	price, _ := trade.Entry.Price()
	if price != 1.2450 {
		t.Errorf("Entry = %v, want 1.2450", trade.Entry)
	}
}

func TestEvaluateProducesReport(t *testing.T) {
	b := &fakeBroker{balance: 10000, quote: models.Quote{Bid: 1.2500, Ask: 1.2502}}
	p := NewPipeline(b, nil)

	trade := marketTrade(1.2600, 1.2700)
	rows, err := p.Evaluate(context.Background(), trade)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if len(rows) == 0 {
		t.Fatal("пустой отчёт")
	}
	if trade.StopLossPips != 100 {
		t.Errorf("StopLossPips = %d, want 100", trade.StopLossPips)
	}
	if len(trade.PositionSizes) != 1 || trade.PositionSizes[0] != 0.10 {
		t.Errorf("PositionSizes = %v, want [0.10]", trade.PositionSizes)
	}
}

func TestExecuteSplitsFixedFractionVolume(t *testing.T) {
	b := &fakeBroker{balance: 10000, quote: models.Quote{Bid: 1.2500, Ask: 1.2502}}
	p := NewPipeline(b, nil)

	trade := marketTrade(1.2600, 1.2700)
	if _, err := p.Evaluate(context.Background(), trade); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if err := p.Execute(context.Background(), trade); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(b.orders) != 2 {
		t.Fatalf("orders = %d, want 2", len(b.orders))
	}
	for i, o := range b.orders {
		if o.ActionType != "ORDER_TYPE_BUY" {
			t.Errorf("order %d ActionType = %q, want ORDER_TYPE_BUY", i, o.ActionType)
		}
		if o.Volume != 0.05 {
			t.Errorf("order %d Volume = %v, want 0.05", i, o.Volume)
		}
		if o.OpenPrice != 0 {
			t.Errorf("order %d OpenPrice = %v, для рыночной заявки цена не нужна", i, o.OpenPrice)
		}
		if o.StopLoss != trade.StopLoss || o.TakeProfit != trade.TakeProfits[i] {
			t.Errorf("order %d SL/TP = %v/%v", i, o.StopLoss, o.TakeProfit)
		}
	}
}

func TestExecuteRewardWeightedPerTPVolumes(t *testing.T) {
	b := &fakeBroker{balance: 10000, quote: models.Quote{Bid: 1.2500, Ask: 1.2502}}
	p := NewPipeline(b, nil)

	trade := &models.TradeSignal{
		OrderType:   models.OrderBuyLimit,
		Symbol:      "GBPUSD",
		Entry:       models.EntryAt(1.2500),
		StopLoss:    1.2450,
		TakeProfits: []float64{1.2550, 1.2600},
		Risk: models.RiskConfig{
			Policy:       models.PolicyRewardWeighted,
			RiskPerTrade: 0.01,
		},
	}
	if _, err := p.Evaluate(context.Background(), trade); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if err := p.Execute(context.Background(), trade); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(b.orders) != 2 {
		t.Fatalf("orders = %d, want 2", len(b.orders))
	}
	if b.orders[0].Volume != 0.2 || b.orders[1].Volume != 0.4 {
		t.Errorf("volumes = %v/%v, want 0.2/0.4", b.orders[0].Volume, b.orders[1].Volume)
	}
	for i, o := range b.orders {
		if o.ActionType != "ORDER_TYPE_BUY_LIMIT" {
			t.Errorf("order %d ActionType = %q, want ORDER_TYPE_BUY_LIMIT", i, o.ActionType)
		}
		if o.OpenPrice != 1.2500 {
			t.Errorf("order %d OpenPrice = %v, want 1.25", i, o.OpenPrice)
		}
	}
}

func TestExecuteAttachesTrailingStop(t *testing.T) {
	b := &fakeBroker{balance: 10000, quote: models.Quote{Bid: 1.2500, Ask: 1.2502}}
	p := NewPipeline(b, nil)

	trade := marketTrade(1.2600)
	trade.Risk.TrailingStop = true
	if _, err := p.Evaluate(context.Background(), trade); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if err := p.Execute(context.Background(), trade); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	ts := b.orders[0].TrailingStopLoss
	if ts == nil {
		t.Fatal("нет trailingStopLoss в заявке")
	}
	if ts.Distance.Units != "ABSOLUTE_PRICE" {
		t.Errorf("Units = %q", ts.Distance.Units)
	}
	want := 1.2500 - 1.2400
	if diff := ts.Distance.Distance - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Distance = %v, want %v", ts.Distance.Distance, want)
	}
}
