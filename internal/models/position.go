package models

import "time"

// Типы инструментов и опционов, как их отдаёт позиционный API брокера.
const (
	AssetEquity = "EQUITY"
	AssetOption = "OPTION"

	PutCallCall = "CALL"
	PutCallPut  = "PUT"
)

// Position — сырая запись позиции из ответа брокера. Живёт одну выборку,
// никуда не сохраняется.
type Position struct {
	ShortQuantity float64    `json:"shortQuantity"`
	LongQuantity  float64    `json:"longQuantity"`
	Instrument    Instrument `json:"instrument"`
}

type Instrument struct {
	AssetType        string `json:"assetType"`
	Symbol           string `json:"symbol"`
	UnderlyingSymbol string `json:"underlyingSymbol"`
	PutCall          string `json:"putCall"`
}

// NetExposure — свёрнутая экспозиция по одному базовому активу.
// Short и Long неотрицательные, в контрактных единицах (1 контракт ~ 100 акций).
type NetExposure struct {
	Symbol string
	Short  float64
	Long   float64
}

// Report собирается заново на каждый запуск пайплайна и после форматирования
// не мутируется.
type Report struct {
	AccountID   string
	GeneratedAt time.Time
	Exposures   []NetExposure
}
