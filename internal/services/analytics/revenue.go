package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/paineldocafe/panel/internal/domain"
)

// harvestPremium projects a harvest price from the current one when no
// harvest record exists. The 10% markup is a product rule, keep it as is.
var harvestPremium = decimal.RequireFromString("1.10")

// BuildRevenueRows produces one revenue row per inventory record. The
// current price defaults to zero when unresolved; an unresolved harvest
// price falls back to the current price plus the projected premium. Rows
// sharing a product are merged later by MergeScenarios, not here.
func BuildRevenueRows(inventory []domain.InventoryRecord, current, harvest map[string]decimal.Decimal) []domain.RevenueScenarioRow {
	rows := make([]domain.RevenueScenarioRow, 0, len(inventory))
	for _, item := range inventory {
		currentPrice := current[item.ProductID]

		harvestPrice, ok := harvest[item.ProductID]
		if !ok {
			harvestPrice = currentPrice.Mul(harvestPremium)
		}

		quantity := decimal.NewFromInt(item.Quantity)
		rows = append(rows, domain.RevenueScenarioRow{
			ProductID:        item.ProductID,
			ProductName:      item.ProductName,
			SellNowRevenue:   quantity.Mul(currentPrice),
			SellAtHarvestRev: quantity.Mul(harvestPrice),
		})
	}
	return rows
}
