package service

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hbk671104/options-calculator/internal/models"
)

func equity(symbol string, short, long float64) models.Position {
	return models.Position{
		ShortQuantity: short,
		LongQuantity:  long,
		Instrument: models.Instrument{
			AssetType: models.AssetEquity,
			Symbol:    symbol,
		},
	}
}

func option(underlying, putCall string, short, long float64) models.Position {
	return models.Position{
		ShortQuantity: short,
		LongQuantity:  long,
		Instrument: models.Instrument{
			AssetType:        models.AssetOption,
			UnderlyingSymbol: underlying,
			PutCall:          putCall,
		},
	}
}

func TestNetEquityNormalization(t *testing.T) {
	got := Net([]models.Position{equity("AAPL", 200, 0)})

	require.Equal(t, []models.NetExposure{{Symbol: "AAPL", Short: 2, Long: 0}}, got)
}

func TestNetPutCallConvention(t *testing.T) {
	call := Net([]models.Position{option("TSLA", models.PutCallCall, 0, 5)})
	require.Equal(t, []models.NetExposure{{Symbol: "TSLA", Short: 0, Long: 5}}, call)

	// тот же сырой объём, но пут — стороны меняются местами
	put := Net([]models.Position{option("TSLA", models.PutCallPut, 0, 5)})
	require.Equal(t, []models.NetExposure{{Symbol: "TSLA", Short: 5, Long: 0}}, put)
}

func TestNetAggregatesAcrossInstruments(t *testing.T) {
	got := Net([]models.Position{
		equity("AAPL", 200, 0),
		option("AAPL", models.PutCallCall, 0, 5),
		option("AAPL", models.PutCallPut, 3, 0),
	})

	// equity short 2, call long 5, put short 3 -> long 3; итого long 8
	require.Equal(t, []models.NetExposure{{Symbol: "AAPL", Short: 2, Long: 8}}, got)
}

func TestNetSkipsUnknownAndMalformed(t *testing.T) {
	positions := []models.Position{
		{ShortQuantity: 1, LongQuantity: 1, Instrument: models.Instrument{AssetType: "CASH_EQUIVALENT", Symbol: "MMDA1"}},
		{ShortQuantity: 1, LongQuantity: 1, Instrument: models.Instrument{AssetType: models.AssetEquity}},                             // нет symbol
		{ShortQuantity: 1, LongQuantity: 1, Instrument: models.Instrument{AssetType: models.AssetOption, PutCall: models.PutCallPut}}, // нет underlying
		{ShortQuantity: 1, LongQuantity: 1, Instrument: models.Instrument{AssetType: models.AssetOption, UnderlyingSymbol: "SPY"}},    // нет putCall
		{},
		equity("AAPL", 100, 0),
	}

	require.NotPanics(t, func() {
		got := Net(positions)
		require.Equal(t, []models.NetExposure{{Symbol: "AAPL", Short: 1, Long: 0}}, got)
	})
}

func TestNetEmpty(t *testing.T) {
	require.Empty(t, Net(nil))
	require.Empty(t, Net([]models.Position{}))
}

func TestNetSortedNoDuplicates(t *testing.T) {
	got := Net([]models.Position{
		equity("MSFT", 0, 100),
		option("AAPL", models.PutCallCall, 1, 0),
		equity("AAPL", 100, 0),
		option("msft", models.PutCallPut, 0, 2), // другой символ, не склеивается с MSFT
		equity("GOOG", 0, 300),
	})

	seen := map[string]bool{}
	for _, e := range got {
		require.False(t, seen[e.Symbol], "duplicate symbol %s", e.Symbol)
		seen[e.Symbol] = true
	}
	require.True(t, sort.SliceIsSorted(got, func(i, j int) bool {
		return symbolCollator.CompareString(got[i].Symbol, got[j].Symbol) < 0
	}))
}

func TestNetOrderIndependent(t *testing.T) {
	positions := []models.Position{
		equity("AAPL", 200, 0),
		option("AAPL", models.PutCallCall, 0, 5),
		option("AAPL", models.PutCallPut, 3, 0),
		equity("MSFT", 0, 400),
		option("TSLA", models.PutCallPut, 2, 7),
		option("MSFT", models.PutCallCall, 1, 1),
	}
	want := Net(positions)

	for seed := int64(0); seed < 20; seed++ {
		shuffled := make([]models.Position, len(positions))
		copy(shuffled, positions)
		rand.New(rand.NewSource(seed)).Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		require.Equal(t, want, Net(shuffled), "seed %d", seed)
	}
}
