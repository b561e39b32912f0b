package signal

import "strings"

// LooksLikeSignal — дешёвый фильтр перед полным разбором: в канале хватает
// обычной болтовни. Сообщение похоже на сигнал, если в первой строке есть
// известный инструмент и хоть где-то встречается торговая фраза.
// Оба скана независимые, отказ — молчаливый (это не ошибка).
func LooksLikeSignal(raw string) bool {
	lines := strings.Split(raw, "\n")

	first := strings.ToUpper(lines[0])
	hasSymbol := false
	for _, s := range SymbolsSlash {
		if strings.Contains(first, s) {
			hasSymbol = true
			break
		}
	}
	if !hasSymbol {
		for _, s := range Symbols {
			if strings.Contains(first, s) {
				hasSymbol = true
				break
			}
		}
	}

	up := strings.ToUpper(raw)
	hasOrder := false
	for _, kw := range orderKeywords {
		if strings.Contains(up, kw.phrase) {
			hasOrder = true
			break
		}
	}

	return hasSymbol && hasOrder
}
