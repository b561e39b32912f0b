package models

import "strconv"

// RiskPolicy — способ расчёта объёма позиции.
type RiskPolicy string

const (
	// PolicyFixedFraction — один объём на сделку, фиксированная доля баланса,
	// при нескольких TP объём делится поровну на этапе выставления заявок.
	PolicyFixedFraction RiskPolicy = "fixed_fraction"
	// PolicyRewardWeighted — отдельный объём на каждый TP,
	// промасштабированный его reward:risk.
	PolicyRewardWeighted RiskPolicy = "reward_weighted"
)

// RiskConfig передаётся в парсер и калькулятор явно,
// никакого глобального состояния в ядре нет.
type RiskConfig struct {
	Policy       RiskPolicy `json:"policy" yaml:"policy"`
	RiskFactor   float64    `json:"risk_factor" yaml:"risk_factor"`     // fixed fraction, 0 < f < 1
	RiskPerTrade float64    `json:"risk_per_trade" yaml:"risk_per_trade"` // reward weighted, 0 < f < 1
	TrailingStop bool       `json:"trailing_stop" yaml:"trailing_stop"` // уходит в заявку, ядро не использует
}

// Fraction — доля баланса, которой рискуем при текущей политике.
func (c RiskConfig) Fraction() float64 {
	if c.Policy == PolicyRewardWeighted {
		return c.RiskPerTrade
	}
	return c.RiskFactor
}

// Quote — пара bid/ask для резолва рыночного входа.
type Quote struct {
	Bid float64 `json:"bid"`
	Ask float64 `json:"ask"`
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
