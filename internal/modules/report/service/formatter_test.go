package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hbk671104/options-calculator/internal/models"
)

func TestFormatLayout(t *testing.T) {
	at := time.Date(2024, time.March, 8, 16, 5, 0, 0, time.UTC)
	exposures := []models.NetExposure{
		{Symbol: "AAPL", Short: 2, Long: 8},
		{Symbol: "MSFT", Short: 0.5, Long: 0},
	}

	got := Format("123456789", exposures, at)

	want := "Portfolio Report of 123456789\n(on Mar 8, 2024 4:05 PM)\n\n" +
		"AAPL: \n2 shorts, 8 longs\n\n" +
		"MSFT: \n0.5 shorts, 0 longs\n\n"
	require.Equal(t, want, got)
}

func TestFormatDeterministic(t *testing.T) {
	at := time.Date(2024, time.March, 8, 16, 5, 0, 0, time.UTC)
	exposures := []models.NetExposure{{Symbol: "AAPL", Short: 1, Long: 2}}

	first := Format("X", exposures, at)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, Format("X", exposures, at))
	}
}

func TestFormatEmptyExposures(t *testing.T) {
	at := time.Date(2024, time.March, 8, 16, 5, 0, 0, time.UTC)

	got := Format("X", nil, at)

	require.Equal(t, "Portfolio Report of X\n(on Mar 8, 2024 4:05 PM)\n\n", got)
}

func TestFilename(t *testing.T) {
	at := time.Unix(1700000000, 0)

	require.Equal(t, "report_123_1700000000.txt", Filename("123", at))
}
