package service

// AccountInformation — состояние счёта на стороне моста.
type AccountInformation struct {
	Balance  float64 `json:"balance"`
	Equity   float64 `json:"equity"`
	Currency string  `json:"currency"`
	Broker   string  `json:"broker"`
}

// OrderRequest — одна заявка моста: по заявке на каждый take profit.
type OrderRequest struct {
	ActionType string  `json:"actionType"`
	Symbol     string  `json:"symbol"`
	Volume     float64 `json:"volume"`
	OpenPrice  float64 `json:"openPrice,omitempty"` // лимитки и стопы
	StopLoss   float64 `json:"stopLoss,omitempty"`
	TakeProfit float64 `json:"takeProfit,omitempty"`

	TrailingStopLoss *TrailingStopLoss `json:"trailingStopLoss,omitempty"`
}

// TrailingStopLoss — дистанция трейлинга в единицах цены.
// Ядро этот блок не считает, только пробрасывает по конфигу.
type TrailingStopLoss struct {
	Distance struct {
		Distance float64 `json:"distance"`
		Units    string  `json:"units"`
	} `json:"distance"`
}

// OrderResult — ответ моста на торговую заявку.
type OrderResult struct {
	NumericCode int    `json:"numericCode"`
	StringCode  string `json:"stringCode"`
	Message     string `json:"message"`
	OrderID     string `json:"orderId"`
	PositionID  string `json:"positionId"`
}

type symbolPrice struct {
	Symbol string  `json:"symbol"`
	Bid    float64 `json:"bid"`
	Ask    float64 `json:"ask"`
	Time   string  `json:"time"`
}
