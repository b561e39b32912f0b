package signal

import "strings"

// Symbols — поддерживаемые инструменты в слитной записи.
// GOLD оставлен как встречающийся в каналах алиас XAUUSD.
var Symbols = []string{
	"AUDCAD", "AUDCHF", "AUDJPY", "AUDNZD", "AUDUSD",
	"CADCHF", "CADJPY", "CHFJPY",
	"EURAUD", "EURCAD", "EURCHF", "EURGBP", "EURJPY", "EURNZD", "EURUSD",
	"GBPAUD", "GBPCAD", "GBPCHF", "GBPJPY", "GBPNZD", "GBPUSD",
	"NZDCAD", "NZDCHF", "NZDJPY", "NZDUSD",
	"USDCAD", "USDCHF", "USDJPY",
	"XAGUSD", "XAUUSD", "GOLD",
}

// SymbolsSlash — те же инструменты, как их пишут через слэш.
var SymbolsSlash = []string{
	"AUD/CAD", "AUD/CHF", "AUD/JPY", "AUD/NZD", "AUD/USD",
	"CAD/CHF", "CAD/JPY", "CHF/JPY",
	"EUR/AUD", "EUR/CAD", "EUR/CHF", "EUR/GBP", "EUR/JPY", "EUR/NZD", "EUR/USD",
	"GBP/AUD", "GBP/CAD", "GBP/CHF", "GBP/JPY", "GBP/NZD", "GBP/USD",
	"NZD/CAD", "NZD/CHF", "NZD/JPY", "NZD/USD",
	"USD/CAD", "USD/CHF", "USD/JPY",
	"XAG/USD", "XAU/USD", "GOLD",
}

var symbolSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Symbols))
	for _, s := range Symbols {
		m[s] = struct{}{}
	}
	return m
}()

// normalizeSymbol применяет алиасы после матчинга.
func normalizeSymbol(sym string) string {
	if sym == "GOLD" {
		return "XAUUSD"
	}
	return sym
}

// extractSymbol ищет инструмент только в первой строке сигнала:
// сначала запись через слэш, затем слитную.
func extractSymbol(line0 string) (string, error) {
	up := strings.ToUpper(line0)

	for _, s := range SymbolsSlash {
		if strings.Contains(up, s) {
			sym := strings.ReplaceAll(s, "/", "")
			if _, ok := symbolSet[sym]; !ok {
				return "", ErrUnknownSymbol
			}
			return normalizeSymbol(sym), nil
		}
	}

	for _, s := range Symbols {
		if strings.Contains(up, s) {
			return normalizeSymbol(s), nil
		}
	}

	return "", ErrUnknownSymbol
}
