package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/paineldocafe/panel/internal/domain"
)

func TestBuildRevenueRowsBothPricesResolved(t *testing.T) {
	inventory := []domain.InventoryRecord{
		{ID: "1", ProductID: "arabica", ProductName: "Arábica", Quantity: 20, HarvestSeason: "2024"},
	}
	current := map[string]decimal.Decimal{"arabica": decimal.RequireFromString("120")}
	harvest := map[string]decimal.Decimal{"arabica": decimal.RequireFromString("140")}

	rows := BuildRevenueRows(inventory, current, harvest)
	require.Len(t, rows, 1)
	require.True(t, decimal.RequireFromString("2400").Equal(rows[0].SellNowRevenue))
	require.True(t, decimal.RequireFromString("2800").Equal(rows[0].SellAtHarvestRev))
}

func TestBuildRevenueRowsHarvestFallback(t *testing.T) {
	// current 100, no harvest record: harvest revenue = qty * (100 * 1.10)
	inventory := []domain.InventoryRecord{
		{ID: "1", ProductID: "conilon", ProductName: "Conilon", Quantity: 10, HarvestSeason: "2024"},
	}
	current := map[string]decimal.Decimal{"conilon": decimal.RequireFromString("100")}

	rows := BuildRevenueRows(inventory, current, map[string]decimal.Decimal{})
	require.Len(t, rows, 1)
	require.True(t, decimal.RequireFromString("1000").Equal(rows[0].SellNowRevenue))
	require.True(t, decimal.RequireFromString("1100").Equal(rows[0].SellAtHarvestRev))
}

func TestBuildRevenueRowsUnresolvedCurrentDefaultsToZero(t *testing.T) {
	inventory := []domain.InventoryRecord{
		{ID: "1", ProductID: "conilon", ProductName: "Conilon", Quantity: 50, HarvestSeason: "2024"},
	}

	rows := BuildRevenueRows(inventory, map[string]decimal.Decimal{}, map[string]decimal.Decimal{})
	require.Len(t, rows, 1)
	require.True(t, rows[0].SellNowRevenue.IsZero())
	// fallback multiplies the zero current price
	require.True(t, rows[0].SellAtHarvestRev.IsZero())
}

func TestBuildRevenueRowsOneRowPerRecord(t *testing.T) {
	// same product in two seasons stays unmerged here
	inventory := []domain.InventoryRecord{
		{ID: "1", ProductID: "arabica", ProductName: "Arábica", Quantity: 10, HarvestSeason: "2023"},
		{ID: "2", ProductID: "arabica", ProductName: "Arábica", Quantity: 30, HarvestSeason: "2024"},
	}
	current := map[string]decimal.Decimal{"arabica": decimal.RequireFromString("100")}

	rows := BuildRevenueRows(inventory, current, map[string]decimal.Decimal{})
	require.Len(t, rows, 2)
	require.True(t, decimal.RequireFromString("1000").Equal(rows[0].SellNowRevenue))
	require.True(t, decimal.RequireFromString("3000").Equal(rows[1].SellNowRevenue))
}

func TestBuildRevenueRowsEmptyInventory(t *testing.T) {
	require.Empty(t, BuildRevenueRows(nil, map[string]decimal.Decimal{}, map[string]decimal.Decimal{}))
}

func TestBuildRevenueRowsDeterministic(t *testing.T) {
	inventory := []domain.InventoryRecord{
		{ID: "1", ProductID: "arabica", ProductName: "Arábica", Quantity: 7, HarvestSeason: "2024"},
		{ID: "2", ProductID: "conilon", ProductName: "Conilon", Quantity: 11, HarvestSeason: "2024"},
	}
	current := map[string]decimal.Decimal{
		"arabica": decimal.RequireFromString("123.45"),
		"conilon": decimal.RequireFromString("98.70"),
	}
	harvest := map[string]decimal.Decimal{"arabica": decimal.RequireFromString("150")}

	first := BuildRevenueRows(inventory, current, harvest)
	second := BuildRevenueRows(inventory, current, harvest)
	require.Equal(t, first, second)
}
