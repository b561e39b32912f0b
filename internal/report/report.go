package report

import (
	"fmt"
	"strconv"
	"strings"

	"signal_copier/internal/models"
	"signal_copier/internal/risk"
)

// Row — одна строка отчёта. Порядок строк фиксирован и повторяет
// структуру сделки: шапка, вход, дистанции, цены, риск, деньги.
type Row struct {
	Label string
	Value string
}

// Build — чистая проекция посчитанной сделки в строки отчёта,
// без какой-либо логики принятия решений.
func Build(t *models.TradeSignal, balance float64) []Row {
	rows := []Row{
		{string(t.OrderType), t.Symbol},
		{"Entry", t.Entry.String()},
		{"Stop Loss", fmt.Sprintf("%d pips", t.StopLossPips)},
	}

	for i, tpPips := range t.TakeProfitPips {
		rows = append(rows, Row{fmt.Sprintf("TP %d", i+1), fmt.Sprintf("(%d pips)", tpPips)})
	}

	rows = append(rows, Row{"Stop Loss", trimFloat(t.StopLoss)})
	for i, tp := range t.TakeProfits {
		rows = append(rows, Row{fmt.Sprintf("TP %d", i+1), trimFloat(tp)})
	}

	rows = append(rows,
		Row{"Risk Factor", fmt.Sprintf("%.0f %%", t.Risk.Fraction()*100)},
		Row{"Position Size", formatSizes(t.PositionSizes)},
		Row{"Current Balance", "$ " + money(balance)},
		Row{"Potential Loss", "$ " + money(risk.PotentialLoss(t))},
	)

	total := 0.0
	for i, profit := range risk.PotentialProfits(t) {
		rows = append(rows, Row{fmt.Sprintf("TP %d Profit", i+1), "$ " + money(profit)})
		total += profit
	}
	rows = append(rows, Row{"Total Profit", "$ " + money(total)})

	return rows
}

// Render собирает моноширинную таблицу под телеграмный <pre>-блок.
func Render(rows []Row) string {
	width := 0
	for _, r := range rows {
		if len(r.Label) > width {
			width = len(r.Label)
		}
	}

	var b strings.Builder
	b.WriteString("Trade Information\n")
	b.WriteString(strings.Repeat("-", width+3+valueWidth(rows)) + "\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%-*s | %s\n", width, r.Label, r.Value)
	}
	return b.String()
}

func valueWidth(rows []Row) int {
	w := 0
	for _, r := range rows {
		if len(r.Value) > w {
			w = len(r.Value)
		}
	}
	return w
}

func formatSizes(sizes []float64) string {
	parts := make([]string, 0, len(sizes))
	for _, s := range sizes {
		parts = append(parts, strconv.FormatFloat(s, 'f', 2, 64))
	}
	return strings.Join(parts, " / ")
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// money форматирует сумму с разделителями тысяч: 12345.6 -> "12,345.60".
func money(v float64) string {
	neg := v < 0
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimPrefix(s, "-")

	dot := strings.IndexByte(s, '.')
	whole, frac := s[:dot], s[dot:]

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}
