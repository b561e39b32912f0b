package risk

import (
	"fmt"
	"math"

	"signal_copier/internal/models"
)

// Sizer — стратегия расчёта объёма. Выбирается один раз по конфигурации,
// дальше ветвлений по политике в коде нет.
type Sizer interface {
	// Size заполняет PositionSizes (и RewardRisk, если политика их считает).
	// Дистанции в пипсах к этому моменту уже посчитаны.
	Size(t *models.TradeSignal, balance float64) error
}

func NewSizer(cfg models.RiskConfig) (Sizer, error) {
	switch cfg.Policy {
	case models.PolicyFixedFraction:
		return &FixedFractionSizer{RiskFactor: cfg.RiskFactor}, nil
	case models.PolicyRewardWeighted:
		return &RewardWeightedSizer{RiskPerTrade: cfg.RiskPerTrade}, nil
	}
	return nil, fmt.Errorf("неизвестная политика риска %q", cfg.Policy)
}

// FixedFractionSizer — один объём на сделку: фиксированная доля баланса,
// делённая на дистанцию стопа. При нескольких TP объём делится поровну
// на этапе выставления заявок, не здесь.
type FixedFractionSizer struct {
	RiskFactor float64
}

func (s *FixedFractionSizer) Size(t *models.TradeSignal, balance float64) error {
	if s.RiskFactor <= 0 || s.RiskFactor >= 1 {
		return fmt.Errorf("risk factor вне (0,1): %v", s.RiskFactor)
	}

	size := floorCents(((balance * s.RiskFactor) / float64(t.StopLossPips)) / 10)
	t.PositionSizes = []float64{size}
	t.RewardRisk = nil
	return nil
}

// RewardWeightedSizer — отдельный объём на каждый TP, промасштабированный
// его reward:risk. Дальний TP получает больший объём, а не равную долю.
type RewardWeightedSizer struct {
	RiskPerTrade float64
}

func (s *RewardWeightedSizer) Size(t *models.TradeSignal, balance float64) error {
	if s.RiskPerTrade <= 0 || s.RiskPerTrade >= 1 {
		return fmt.Errorf("risk per trade вне (0,1): %v", s.RiskPerTrade)
	}

	t.PositionSizes = make([]float64, 0, len(t.TakeProfitPips))
	t.RewardRisk = make([]float64, 0, len(t.TakeProfitPips))
	for _, tpPips := range t.TakeProfitPips {
		rr := float64(tpPips) / float64(t.StopLossPips)
		size := floorCents(((balance * s.RiskPerTrade * rr) / float64(t.StopLossPips)) / 10)
		t.PositionSizes = append(t.PositionSizes, size)
		t.RewardRisk = append(t.RewardRisk, rr)
	}
	return nil
}

// floorCents округляет лот вниз до сотых: брокерский шаг 0.01,
// округление вниз может только уменьшить экспозицию.
func floorCents(v float64) float64 {
	return math.Floor(v*100) / 100
}
