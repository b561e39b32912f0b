package risk

import (
	"strconv"
	"strings"
)

// PipMultiplier подбирает цену пипса по символу и виду цены входа.
// Это эвристика по строковому представлению котировки, а не справочник
// метаданных инструмента: для металлов множитель фиксированный, для валют
// трёхзначная котировка (JPY-пары) даёт 0.01, остальное — 0.0001.
func PipMultiplier(symbol string, entry float64) float64 {
	switch symbol {
	case "XAUUSD":
		return 0.1
	case "XAGUSD":
		return 0.001
	}

	s := strconv.FormatFloat(entry, 'f', -1, 64)
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		dot = len(s)
	}
	if dot >= 2 {
		return 0.01
	}
	return 0.0001
}
