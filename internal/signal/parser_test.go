package signal

import (
	"errors"
	"testing"

	"signal_copier/internal/models"
)

var testRisk = models.RiskConfig{
	Policy:       models.PolicyFixedFraction,
	RiskFactor:   0.01,
	RiskPerTrade: 0.01,
}

func mustParse(t *testing.T, raw string) *models.TradeSignal {
	t.Helper()
	lines, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	trade, err := Parse(lines, testRisk)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return trade
}

func TestParseMarketBuy(t *testing.T) {
	trade := mustParse(t, "GBP/USD Buy Now\nSL 1.2500\nTP 1.2650\nTP 1.2700")

	if trade.OrderType != models.OrderBuyMarket {
		t.Errorf("OrderType = %q, want Buy Now", trade.OrderType)
	}
	if trade.Symbol != "GBPUSD" {
		t.Errorf("Symbol = %q, want GBPUSD", trade.Symbol)
	}
	if !trade.Entry.AtMarket() {
		t.Errorf("Entry = %v, want NOW", trade.Entry)
	}
	if trade.StopLoss != 1.25 {
		t.Errorf("StopLoss = %v, want 1.25", trade.StopLoss)
	}
	if len(trade.TakeProfits) != 2 || trade.TakeProfits[0] != 1.265 || trade.TakeProfits[1] != 1.27 {
		t.Errorf("TakeProfits = %v, want [1.265 1.27]", trade.TakeProfits)
	}
}

func TestParseLimitWithExplicitEntry(t *testing.T) {
	// точка в entry потеряна автором, восстановится при нормализации
	trade := mustParse(t, "EUR/USD Sell Limit\nEntry 1 14480\nSL 1.14800\nTP 1.14000")

	if trade.OrderType != models.OrderSellLimit {
		t.Errorf("OrderType = %q, want Sell Limit", trade.OrderType)
	}
	price, ok := trade.Entry.Price()
	if !ok || price != 1.14480 {
		t.Errorf("Entry = %v, want 1.1448", trade.Entry)
	}
	if trade.StopLoss != 1.148 {
		t.Errorf("StopLoss = %v, want 1.148", trade.StopLoss)
	}
}

func TestParseMarketPhraseBeatsExplicitEntry(t *testing.T) {
	// "Buy Now" значит "по рынку", даже если рядом стоит Entry с числом
	trade := mustParse(t, "GBP/USD Buy Now\nEntry 1.2500\nSL 1.2400\nTP 1.2600")

	if !trade.Entry.AtMarket() {
		t.Errorf("Entry = %v, want NOW", trade.Entry)
	}
	if trade.OrderType != models.OrderBuyMarket {
		t.Errorf("OrderType = %q, want Buy Now", trade.OrderType)
	}
}

func TestParseBareBuyUpgradesToLimit(t *testing.T) {
	trade := mustParse(t, "GOLD Buy\nEntry 1940\nSL 1935\nTP 1950")

	if trade.Symbol != "XAUUSD" {
		t.Errorf("Symbol = %q, want XAUUSD (алиас GOLD)", trade.Symbol)
	}
	if trade.OrderType != models.OrderBuyLimit {
		t.Errorf("OrderType = %q, want Buy Limit", trade.OrderType)
	}
	price, ok := trade.Entry.Price()
	if !ok || price != 1940 {
		t.Errorf("Entry = %v, want 1940", trade.Entry)
	}
}

func TestParseBareBuyInlinePrice(t *testing.T) {
	trade := mustParse(t, "GBPUSD Buy 1.2500\nSL 1.2400\nTP 1.2600")

	if trade.OrderType != models.OrderBuyLimit {
		t.Errorf("OrderType = %q, want Buy Limit", trade.OrderType)
	}
	price, ok := trade.Entry.Price()
	if !ok || price != 1.25 {
		t.Errorf("Entry = %v, want 1.25", trade.Entry)
	}
}

func TestParseBareBuyEntryNowFallsBackToMarket(t *testing.T) {
	// "Entry NOW" не число: строка пропускается как явный вход,
	// голый Buy без цены уходит в рыночный
	trade := mustParse(t, "BUY GBPUSD\nEntry NOW\nSL 1.14336\nTP 1.28930\nTP 1.29845")

	if trade.OrderType != models.OrderBuyMarket {
		t.Errorf("OrderType = %q, want Buy Now", trade.OrderType)
	}
	if trade.Symbol != "GBPUSD" {
		t.Errorf("Symbol = %q, want GBPUSD", trade.Symbol)
	}
	if !trade.Entry.AtMarket() {
		t.Errorf("Entry = %v, want NOW", trade.Entry)
	}
	if trade.StopLoss != 1.14336 {
		t.Errorf("StopLoss = %v, want 1.14336", trade.StopLoss)
	}
	if len(trade.TakeProfits) != 2 || trade.TakeProfits[0] != 1.2893 || trade.TakeProfits[1] != 1.29845 {
		t.Errorf("TakeProfits = %v, want [1.2893 1.29845]", trade.TakeProfits)
	}
}

func TestParseBareSellWithoutPriceFallsBackToMarket(t *testing.T) {
	trade := mustParse(t, "EURUSD Sell\nSL 1.1000\nTP 1.0900")

	if trade.OrderType != models.OrderSellMarket {
		t.Errorf("OrderType = %q, want Sell Now", trade.OrderType)
	}
	if !trade.Entry.AtMarket() {
		t.Errorf("Entry = %v, want NOW", trade.Entry)
	}
}

func TestParseLimitInlinePrice(t *testing.T) {
	trade := mustParse(t, "EUR/USD Sell Limit 1.14480\nSL 1.14800\nTP 1.14000")

	price, ok := trade.Entry.Price()
	if !ok || price != 1.1448 {
		t.Errorf("Entry = %v, want 1.1448", trade.Entry)
	}
}

func TestParseImplicitSlAndTpLines(t *testing.T) {
	// позиционный формат: строка 2 — стоп, строка 3 — единственный TP
	trade := mustParse(t, "GBPUSD Buy Now\n\n1.2400\n1.2600")

	if trade.StopLoss != 1.24 {
		t.Errorf("StopLoss = %v, want 1.24", trade.StopLoss)
	}
	if len(trade.TakeProfits) != 1 || trade.TakeProfits[0] != 1.26 {
		t.Errorf("TakeProfits = %v, want [1.26]", trade.TakeProfits)
	}
}

func TestParseOrderTypePriority(t *testing.T) {
	// "Buy Limit" стоит в таблице раньше голого "Sell" и выигрывает,
	// в какой бы строке он ни находился
	trade := mustParse(t, "GBPUSD sell pressure\nBuy Limit 1.2400\nSL 1.2300\nTP 1.2500")

	if trade.OrderType != models.OrderBuyLimit {
		t.Errorf("OrderType = %q, want Buy Limit", trade.OrderType)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want error
	}{
		{
			name: "no order phrase",
			raw:  "GBPUSD looks weak\nmaybe later\nwho knows",
			want: ErrUnrecognizedOrderType,
		},
		{
			name: "unknown symbol",
			raw:  "BTCUSD Buy Now\nSL 64000\nTP 66000",
			want: ErrUnknownSymbol,
		},
		{
			name: "missing take profit",
			raw:  "GBPUSD Buy Now\n\nSL 1.2400",
			want: ErrMissingTakeProfit,
		},
		{
			name: "bad stop loss token",
			raw:  "GBPUSD Buy Now\nTP 1.2600\nSL soon",
			want: ErrNumericParse,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lines, err := Normalize(tc.raw)
			if err == nil {
				_, err = Parse(lines, testRisk)
			}
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}
