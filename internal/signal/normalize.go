package signal

import (
	"regexp"
	"strings"
)

var (
	// "30 pips (tight)" / "pips" / "pip" — целиком, вместе с числом и ремаркой.
	pipNoiseRe = regexp.MustCompile(`(?i)(?:\d+(?:\.\d+)?[ \t]+)?\bpips?\b[ \t]*(?:\([^()]*\))?`)
	// Аннотации стиля торговли, с опциональной ремаркой в скобках.
	wordNoiseRe = regexp.MustCompile(`(?i)\b(?:scalper|intraday|swing)\b[ \t]*(?:\([^()]*\))?`)
	// "1 14480" -> "1.14480": авторы сигналов часто теряют точку.
	spacedNumRe = regexp.MustCompile(`(\d+) +(\d+)`)
)

// Normalize чистит сырой текст сигнала и режет его на строки.
// Возвращает ErrEmptyInput, если строк меньше трёх: парсер безусловно
// смотрит в индексы 0–2.
func Normalize(raw string) ([]string, error) {
	text := pipNoiseRe.ReplaceAllString(raw, "")
	text = wordNoiseRe.ReplaceAllString(text, "")
	text = spacedNumRe.ReplaceAllString(text, "$1.$2")

	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t\r")
	}

	if len(lines) < 3 {
		return nil, ErrEmptyInput
	}
	return lines, nil
}
