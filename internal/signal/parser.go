package signal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"signal_copier/internal/models"
)

// orderKeyword — строка таблицы диспетчеризации типов заявки.
// Порядок строк важен: "Buy" проверяется после "Buy Limit"/"Buy Stop"/"Buy Now",
// иначе лимитка классифицируется как голая покупка.
type orderKeyword struct {
	phrase string // верхний регистр
	typ    models.OrderType
	bare   bool // голый Buy/Sell: уточняется после разбора entry
}

var orderKeywords = []orderKeyword{
	{"BUY LIMIT", models.OrderBuyLimit, false},
	{"SELL LIMIT", models.OrderSellLimit, false},
	{"BUY STOP", models.OrderBuyStop, false},
	{"SELL STOP", models.OrderSellStop, false},
	{"BUY NOW", models.OrderBuyMarket, false},
	{"SELL NOW", models.OrderSellMarket, false},
	{"BUY", models.OrderBuyMarket, true},
	{"SELL", models.OrderSellMarket, true},
}

// entrySplitRe режет строку по буквенным последовательностям и знакам
// препинания, чтобы в хвосте остался только числовой токен.
var entrySplitRe = regexp.MustCompile(`[A-Za-z]+|[-,/@]`)

// Parse собирает TradeSignal из нормализованных строк.
// Конфигурация риска передаётся явно и просто фиксируется в сделке.
func Parse(lines []string, risk models.RiskConfig) (*models.TradeSignal, error) {
	if len(lines) < 3 {
		return nil, ErrEmptyInput
	}

	kw, err := detectOrderType(lines)
	if err != nil {
		return nil, err
	}

	sym, err := extractSymbol(lines[0])
	if err != nil {
		return nil, err
	}

	trade := &models.TradeSignal{
		OrderType: kw.typ,
		Symbol:    sym,
		Risk:      risk,
	}

	if err := resolveEntry(trade, kw, lines); err != nil {
		return nil, err
	}

	if err := resolveTakeProfits(trade, lines); err != nil {
		return nil, err
	}

	if err := resolveStopLoss(trade, lines); err != nil {
		return nil, err
	}

	return trade, nil
}

func detectOrderType(lines []string) (orderKeyword, error) {
	// Первое совпадение по таблице выигрывает; смотрим только строки 0–2.
	for _, kw := range orderKeywords {
		for i := 0; i < 3 && i < len(lines); i++ {
			if strings.Contains(strings.ToUpper(lines[i]), kw.phrase) {
				return kw, nil
			}
		}
	}
	return orderKeyword{}, ErrUnrecognizedOrderType
}

// resolveEntry реализует лестницу приоритетов входа:
// явный "Entry <число>" → скан по ключевому слову для голых Buy/Sell →
// хвост строк 0/1/2 для лимиток и стопов → рыночный вход.
func resolveEntry(trade *models.TradeSignal, kw orderKeyword, lines []string) error {
	// Фразы "Buy Now"/"Sell Now" всегда означают рыночный вход,
	// какие бы числа ни стояли рядом, включая явный Entry.
	if !kw.bare && trade.OrderType.IsMarket() {
		trade.Entry = models.EntryAtMarket()
		return nil
	}

	// 1) Явный Entry: берём первую строку, где за словом стоит число.
	// "Entry NOW" числом не считается и явным входом не является.
	if prices := findPrices(lines, "entry"); len(prices) > 0 {
		trade.Entry = models.EntryAt(prices[0])
		if kw.bare {
			trade.OrderType = upgradeBare(kw.typ)
		}
		return nil
	}

	if kw.bare {
		// 2) Голый Buy/Sell: сканируем все строки с ключевым словом,
		// последняя выигрывает — многострочные сигналы часто повторяют
		// команду с уточнёнными цифрами.
		last := ""
		found := false
		for _, ln := range lines {
			if ln == "" {
				continue
			}
			if !strings.Contains(strings.ToUpper(ln), kw.phrase) {
				continue
			}
			last = trailingAfterStrip(ln)
			found = true
		}

		if found && last != "" {
			price, err := strconv.ParseFloat(last, 64)
			if err != nil {
				return fmt.Errorf("%w: %q", ErrNumericParse, last)
			}
			trade.Entry = models.EntryAt(price)
			trade.OrderType = upgradeBare(kw.typ)
			return nil
		}

		// Цены нет — превращаем в рыночный вход вместо отказа.
		trade.Entry = models.EntryAtMarket()
		return nil
	}

	// 3) Лимитки и стопы без явного Entry: хвост строки 0,
	// затем строки 1, затем строки 2.
	if tok := trailingAfterStrip(lines[0]); tok != "" {
		price, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrNumericParse, tok)
		}
		trade.Entry = models.EntryAt(price)
		return nil
	}

	for _, ln := range []string{lines[1], lines[2]} {
		if ln == "" {
			continue
		}
		tok := lastToken(ln)
		price, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrNumericParse, tok)
		}
		trade.Entry = models.EntryAt(price)
		return nil
	}

	return fmt.Errorf("%w: пустой вход для %s", ErrNumericParse, trade.OrderType)
}

// upgradeBare доводит голый Buy/Sell с конкретной ценой до лимитки.
func upgradeBare(t models.OrderType) models.OrderType {
	if t == models.OrderBuyMarket {
		return models.OrderBuyLimit
	}
	return models.OrderSellLimit
}

func resolveTakeProfits(trade *models.TradeSignal, lines []string) error {
	tps := findPrices(lines, "tp")
	if len(tps) == 0 {
		tps = findPrices(lines, "target profit")
	}
	if len(tps) == 0 {
		// Неявный одиночный TP в четвёртой строке.
		if len(lines) < 4 || strings.TrimSpace(lines[3]) == "" {
			return ErrMissingTakeProfit
		}
		tok := lastToken(lines[3])
		price, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrNumericParse, tok)
		}
		tps = []float64{price}
	}
	trade.TakeProfits = tps
	return nil
}

func resolveStopLoss(trade *models.TradeSignal, lines []string) error {
	for _, token := range []string{"sl", "stop loss"} {
		price, ok, err := findFirstPrice(lines, token)
		if err != nil {
			return err
		}
		if ok {
			trade.StopLoss = price
			return nil
		}
	}

	// Неявный SL в третьей строке.
	if strings.TrimSpace(lines[2]) == "" {
		return ErrMissingStopLoss
	}
	tok := lastToken(lines[2])
	price, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrNumericParse, tok)
	}
	trade.StopLoss = price
	return nil
}

// findPrices собирает хвостовые числа всех непустых строк, содержащих token.
// Строки с нечисловым хвостом молча пропускаются.
func findPrices(lines []string, token string) []float64 {
	var out []float64
	for _, ln := range lines {
		if ln == "" {
			continue
		}
		if !strings.Contains(strings.ToLower(ln), token) {
			continue
		}
		price, err := strconv.ParseFloat(lastToken(ln), 64)
		if err != nil {
			continue
		}
		out = append(out, price)
	}
	return out
}

// findFirstPrice — как findPrices, но строгая: первая строка с token обязана
// кончаться числом, иначе это ошибка, а не пропуск.
func findFirstPrice(lines []string, token string) (float64, bool, error) {
	for _, ln := range lines {
		if ln == "" {
			continue
		}
		if !strings.Contains(strings.ToLower(ln), token) {
			continue
		}
		tok := lastToken(ln)
		price, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return 0, false, fmt.Errorf("%w: %q", ErrNumericParse, tok)
		}
		return price, true, nil
	}
	return 0, false, nil
}

// lastToken — последний пробельный токен строки.
func lastToken(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// trailingAfterStrip выбрасывает из строки буквенные последовательности и
// пунктуацию и возвращает оставшийся хвост.
func trailingAfterStrip(line string) string {
	parts := entrySplitRe.Split(line, -1)
	return strings.TrimSpace(parts[len(parts)-1])
}
