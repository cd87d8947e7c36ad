package service

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/hbk671104/options-calculator/internal/models"
)

var symbolCollator = collate.New(language.AmericanEnglish)

// Net сворачивает сырые позиции в экспозицию по базовым активам.
// Чистая функция: порядок входа не влияет на результат, битые записи
// молча пропускаются.
//
// Акции нормализуем в контрактные единицы (100 акций ~ 1 контракт).
// Для путов short/long меняем местами: short put по направлению — лонг
// базового актива, long put — шорт, т.е. инверсия знаковой конвенции колла.
func Net(positions []models.Position) []models.NetExposure {
	type acc struct {
		short float64
		long  float64
	}
	bySymbol := make(map[string]*acc, len(positions))

	for _, p := range positions {
		var symbol string
		var short, long float64

		switch p.Instrument.AssetType {
		case models.AssetEquity:
			if p.Instrument.Symbol == "" {
				continue
			}
			symbol = p.Instrument.Symbol
			short = p.ShortQuantity / 100
			long = p.LongQuantity / 100
		case models.AssetOption:
			if p.Instrument.UnderlyingSymbol == "" {
				continue
			}
			symbol = p.Instrument.UnderlyingSymbol
			switch p.Instrument.PutCall {
			case models.PutCallCall:
				short, long = p.ShortQuantity, p.LongQuantity
			case models.PutCallPut:
				short, long = p.LongQuantity, p.ShortQuantity
			default:
				continue
			}
		default:
			continue
		}

		a := bySymbol[symbol]
		if a == nil {
			a = &acc{}
			bySymbol[symbol] = a
		}
		a.short += short
		a.long += long
	}

	exposures := make([]models.NetExposure, 0, len(bySymbol))
	for symbol, a := range bySymbol {
		exposures = append(exposures, models.NetExposure{
			Symbol: symbol,
			Short:  a.short,
			Long:   a.long,
		})
	}
	sort.Slice(exposures, func(i, j int) bool {
		return symbolCollator.CompareString(exposures[i].Symbol, exposures[j].Symbol) < 0
	})
	return exposures
}
