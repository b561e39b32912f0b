package models

// OrderType — итоговый тип заявки. Голые "Buy"/"Sell" из сигнала сюда не
// попадают: парсер доводит их либо до лимитки, либо до рыночного входа.
type OrderType string

const (
	OrderBuyMarket  OrderType = "Buy Now"
	OrderSellMarket OrderType = "Sell Now"
	OrderBuyLimit   OrderType = "Buy Limit"
	OrderSellLimit  OrderType = "Sell Limit"
	OrderBuyStop    OrderType = "Buy Stop"
	OrderSellStop   OrderType = "Sell Stop"
)

func (o OrderType) IsBuy() bool {
	return o == OrderBuyMarket || o == OrderBuyLimit || o == OrderBuyStop
}

// IsMarket — вход по текущей цене, без openPrice в заявке.
func (o OrderType) IsMarket() bool {
	return o == OrderBuyMarket || o == OrderSellMarket
}

// Entry — либо конкретная цена входа, либо "по рынку" (NOW).
// Резолвить NOW в цену обязан исполнитель, а не парсер и не калькулятор.
type Entry struct {
	atMarket bool
	price    float64
}

func EntryAt(price float64) Entry {
	return Entry{price: price}
}

func EntryAtMarket() Entry {
	return Entry{atMarket: true}
}

func (e Entry) AtMarket() bool {
	return e.atMarket
}

// Price возвращает цену и признак того, что она вообще есть.
func (e Entry) Price() (float64, bool) {
	if e.atMarket {
		return 0, false
	}
	return e.price, true
}

func (e Entry) String() string {
	if e.atMarket {
		return "NOW"
	}
	return trimFloat(e.price)
}

// TradeSignal — разобранный сигнал плюс производные поля риска.
// Живёт один запрос: собрали, посчитали, исполнили, выбросили.
type TradeSignal struct {
	OrderType   OrderType
	Symbol      string
	Entry       Entry
	StopLoss    float64
	TakeProfits []float64 // порядок появления = TP1, TP2, ...

	Risk RiskConfig // снапшот конфигурации на момент разбора

	// Заполняет risk.Compute, парсер их не трогает.
	StopLossPips   int
	TakeProfitPips []int
	PositionSizes  []float64 // fixed fraction: один объём; reward weighted: по объёму на TP
	RewardRisk     []float64 // только для reward weighted
}
