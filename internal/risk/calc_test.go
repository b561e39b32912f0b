package risk

import (
	"errors"
	"math"
	"testing"

	"signal_copier/internal/models"
)

func fixedFractionTrade(tps ...float64) *models.TradeSignal {
	return &models.TradeSignal{
		OrderType:   models.OrderBuyLimit,
		Symbol:      "GBPUSD",
		Entry:       models.EntryAt(1.2500),
		StopLoss:    1.2400,
		TakeProfits: tps,
		Risk: models.RiskConfig{
			Policy:     models.PolicyFixedFraction,
			RiskFactor: 0.01,
		},
	}
}

func TestComputeFixedFraction(t *testing.T) {
	trade := fixedFractionTrade(1.2700)
	sizer, err := NewSizer(trade.Risk)
	if err != nil {
		t.Fatalf("NewSizer: %v", err)
	}

	if err := Compute(trade, 10000, sizer); err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if trade.StopLossPips != 100 {
		t.Errorf("StopLossPips = %d, want 100", trade.StopLossPips)
	}
	if len(trade.TakeProfitPips) != 1 || trade.TakeProfitPips[0] != 200 {
		t.Errorf("TakeProfitPips = %v, want [200]", trade.TakeProfitPips)
	}
	// (10000 * 0.01 / 100) / 10 = 0.10 лота
	if len(trade.PositionSizes) != 1 || trade.PositionSizes[0] != 0.10 {
		t.Errorf("PositionSizes = %v, want [0.10]", trade.PositionSizes)
	}

	// риск по стопу ровно равен доле баланса
	if loss := PotentialLoss(trade); loss != 100 {
		t.Errorf("PotentialLoss = %v, want 100", loss)
	}
}

func TestComputeFlooringNeverIncreasesExposure(t *testing.T) {
	trade := fixedFractionTrade(1.2700)
	trade.StopLoss = 1.2430 // 70 пипсов, лот не делится нацело

	sizer, _ := NewSizer(trade.Risk)
	if err := Compute(trade, 10000, sizer); err != nil {
		t.Fatalf("Compute: %v", err)
	}

	// (10000 * 0.01 / 70) / 10 = 0.1428..., пол до сотых
	if trade.PositionSizes[0] != 0.14 {
		t.Errorf("PositionSizes[0] = %v, want 0.14", trade.PositionSizes[0])
	}
	if loss := PotentialLoss(trade); loss > 10000*0.01 {
		t.Errorf("PotentialLoss = %v превышает бюджет риска 100", loss)
	}
}

func TestComputeRewardWeighted(t *testing.T) {
	trade := &models.TradeSignal{
		OrderType:   models.OrderBuyLimit,
		Symbol:      "GBPUSD",
		Entry:       models.EntryAt(1.2500),
		StopLoss:    1.2450, // 50 пипсов
		TakeProfits: []float64{1.2550, 1.2600, 1.2650},
		Risk: models.RiskConfig{
			Policy:       models.PolicyRewardWeighted,
			RiskPerTrade: 0.01,
		},
	}
	sizer, err := NewSizer(trade.Risk)
	if err != nil {
		t.Fatalf("NewSizer: %v", err)
	}

	if err := Compute(trade, 10000, sizer); err != nil {
		t.Fatalf("Compute: %v", err)
	}

	wantRR := []float64{1, 2, 3}
	wantSizes := []float64{0.2, 0.4, 0.6}
	for i := range wantRR {
		if math.Abs(trade.RewardRisk[i]-wantRR[i]) > 1e-9 {
			t.Errorf("RewardRisk[%d] = %v, want %v", i, trade.RewardRisk[i], wantRR[i])
		}
		if math.Abs(trade.PositionSizes[i]-wantSizes[i]) > 1e-9 {
			t.Errorf("PositionSizes[%d] = %v, want %v", i, trade.PositionSizes[i], wantSizes[i])
		}
	}

	// дальний TP всегда получает не меньший объём
	for i := 1; i < len(trade.PositionSizes); i++ {
		if trade.PositionSizes[i] < trade.PositionSizes[i-1] {
			t.Errorf("объёмы не монотонны: %v", trade.PositionSizes)
		}
	}
}

func TestComputeRejectsUnresolvedEntry(t *testing.T) {
	trade := fixedFractionTrade(1.2700)
	trade.Entry = models.EntryAtMarket()

	sizer, _ := NewSizer(trade.Risk)
	if err := Compute(trade, 10000, sizer); !errors.Is(err, ErrEntryUnresolved) {
		t.Errorf("err = %v, want ErrEntryUnresolved", err)
	}
}

func TestComputeRejectsZeroStopDistance(t *testing.T) {
	trade := fixedFractionTrade(1.2700)
	trade.StopLoss = 1.2500 // стоп на входе

	sizer, _ := NewSizer(trade.Risk)
	if err := Compute(trade, 10000, sizer); !errors.Is(err, ErrZeroStopDistance) {
		t.Errorf("err = %v, want ErrZeroStopDistance", err)
	}
}

func TestPotentialProfitsFixedFractionSplit(t *testing.T) {
	trade := fixedFractionTrade(1.2600, 1.2700)
	sizer, _ := NewSizer(trade.Risk)
	if err := Compute(trade, 10000, sizer); err != nil {
		t.Fatalf("Compute: %v", err)
	}

	// один объём 0.10, прибыль каждого TP считается с долей 1/2
	profits := PotentialProfits(trade)
	want := []float64{50, 100}
	if len(profits) != len(want) {
		t.Fatalf("profits = %v, want %v", profits, want)
	}
	for i := range want {
		if math.Abs(profits[i]-want[i]) > 1e-9 {
			t.Errorf("profits[%d] = %v, want %v", i, profits[i], want[i])
		}
	}
}

func TestNewSizerUnknownPolicy(t *testing.T) {
	if _, err := NewSizer(models.RiskConfig{Policy: "martingale"}); err == nil {
		t.Fatal("ожидалась ошибка для неизвестной политики")
	}
}
