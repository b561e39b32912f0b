package signal

import "errors"

// Все ошибки парсера — ожидаемые и поправимые автором сообщения:
// причина уходит пользователю как есть, повторного разбора не бывает.
var (
	ErrEmptyInput            = errors.New("в сигнале меньше трёх строк")
	ErrUnrecognizedOrderType = errors.New("не найден тип заявки в первых трёх строках")
	ErrUnknownSymbol         = errors.New("инструмент не распознан или не поддерживается")
	ErrMissingTakeProfit     = errors.New("не найден ни один take profit")
	ErrMissingStopLoss       = errors.New("не найден stop loss")
	ErrNumericParse          = errors.New("ожидалось число в конце строки")
)
