package risk

import (
	"errors"
	"fmt"
	"math"

	"signal_copier/internal/models"
)

var (
	// ErrEntryUnresolved — в калькулятор попала сделка с рыночным входом.
	// Резолвить NOW в котировку обязан исполнитель до вызова Compute.
	ErrEntryUnresolved = errors.New("risk: цена входа не разрешена")
	// ErrZeroStopDistance — стоп совпал с входом, объём не посчитать.
	ErrZeroStopDistance = errors.New("risk: нулевая дистанция до стопа")
)

// Compute заполняет производные поля сделки: дистанции в пипсах,
// объём(ы) позиции и reward:risk. Ошибка фатальна только для этой сделки.
func Compute(t *models.TradeSignal, balance float64, sizer Sizer) error {
	entry, ok := t.Entry.Price()
	if !ok {
		return ErrEntryUnresolved
	}
	if entry <= 0 || t.StopLoss <= 0 {
		return fmt.Errorf("risk: entry/sl <= 0")
	}
	if balance <= 0 {
		return fmt.Errorf("risk: баланс <= 0")
	}
	if len(t.TakeProfits) == 0 {
		return fmt.Errorf("risk: сделка без take profit")
	}

	mult := PipMultiplier(t.Symbol, entry)

	t.StopLossPips = int(math.Round(math.Abs(t.StopLoss-entry) / mult))
	if t.StopLossPips == 0 {
		return ErrZeroStopDistance
	}

	t.TakeProfitPips = make([]int, 0, len(t.TakeProfits))
	for _, tp := range t.TakeProfits {
		t.TakeProfitPips = append(t.TakeProfitPips, int(math.Round(math.Abs(tp-entry)/mult)))
	}

	return sizer.Size(t, balance)
}

// PotentialLoss — долларовый риск сделки по стопу.
func PotentialLoss(t *models.TradeSignal) float64 {
	total := 0.0
	for _, size := range t.PositionSizes {
		total += round2(size * 10 * float64(t.StopLossPips))
	}
	return total
}

// PotentialProfits — долларовая прибыль по каждому TP. При fixed fraction
// множитель 1/len(TP) сидит в прибыли, а не в объёме: объём делится на
// этапе выставления заявок.
func PotentialProfits(t *models.TradeSignal) []float64 {
	out := make([]float64, 0, len(t.TakeProfitPips))
	for i, tpPips := range t.TakeProfitPips {
		var profit float64
		if len(t.PositionSizes) == 1 {
			profit = t.PositionSizes[0] * 10 * (1 / float64(len(t.TakeProfitPips))) * float64(tpPips)
		} else {
			profit = t.PositionSizes[i] * 10 * float64(tpPips)
		}
		out = append(out, round2(profit))
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
