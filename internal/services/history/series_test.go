package history

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paineldocafe/panel/internal/domain"
)

func TestSeriesSkipsSnapshotsWithoutKey(t *testing.T) {
	// "KC" quoted in snapshots 0, 2 and 4 of 5
	snapshots := []domain.PriceSnapshot{
		{Stocks: []domain.StockQuote{{Symbol: "KC", Price: 230.5}}},
		{Stocks: []domain.StockQuote{{Symbol: "CC", Price: 99}}},
		{Stocks: []domain.StockQuote{{Symbol: "KC", Price: 228.0}}},
		{},
		{Stocks: []domain.StockQuote{{Symbol: "KC", Price: 225.1}}},
	}

	points := Series(snapshots, domain.SeriesStocks, "KC")
	require.Equal(t, []float64{230.5, 228.0, 225.1}, points)
}

func TestSeriesValuesMatchByName(t *testing.T) {
	snapshots := []domain.PriceSnapshot{
		{Values: []domain.ValueQuote{{Name: "Conilon 7/8", Value: 910}, {Name: "Dólar", Value: 5.4}}},
		{Values: []domain.ValueQuote{{Name: "Conilon 7/8", Value: 905}}},
	}

	require.Equal(t, []float64{910, 905}, Series(snapshots, domain.SeriesValues, "Conilon 7/8"))
	require.Equal(t, []float64{5.4}, Series(snapshots, domain.SeriesValues, "Dólar"))
}

func TestSeriesUnknownKeyYieldsEmpty(t *testing.T) {
	snapshots := []domain.PriceSnapshot{
		{Stocks: []domain.StockQuote{{Symbol: "KC", Price: 230.5}}},
	}

	require.Empty(t, Series(snapshots, domain.SeriesStocks, "ZZ"))
	require.Empty(t, Series(nil, domain.SeriesStocks, "KC"))
}

func TestSeriesFirstMatchPerSnapshotWins(t *testing.T) {
	snapshots := []domain.PriceSnapshot{
		{Stocks: []domain.StockQuote{
			{Symbol: "KC", Price: 230.5},
			{Symbol: "KC", Price: 999},
		}},
	}

	require.Equal(t, []float64{230.5}, Series(snapshots, domain.SeriesStocks, "KC"))
}
