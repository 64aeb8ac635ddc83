package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SeasonProductionRow sums bag quantities per product for one harvest season.
// Quantities are keyed by product ID; display names are resolved at the
// presentation layer so two products sharing a name cannot collide.
type SeasonProductionRow struct {
	Season     string           `json:"season"`
	Quantities map[string]int64 `json:"quantities"`
}

// ProductionTotal sums bag quantities for one product across all seasons.
type ProductionTotal struct {
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	TotalQuantity int64  `json:"total_quantity"`
}

// RevenueScenarioRow carries the two revenue projections for one product.
// Both figures come from the same quantity, varying only in price.
type RevenueScenarioRow struct {
	ProductID        string          `json:"product_id"`
	ProductName      string          `json:"product_name"`
	SellNowRevenue   decimal.Decimal `json:"sell_now_revenue"`
	SellAtHarvestRev decimal.Decimal `json:"sell_at_harvest_revenue"`
}

// KpiSet is the scalar summary of one aggregation pass.
type KpiSet struct {
	TotalBags        int64           `json:"total_bags"`
	RevenueNow       decimal.Decimal `json:"revenue_now"`
	RevenueAtHarvest decimal.Decimal `json:"revenue_at_harvest"`
	SeasonCount      int             `json:"season_count"`
}

// Report bundles every derived view produced by one aggregation pass. A pass
// builds a whole Report from its inputs and replaces the prior one
// atomically; consumers never see a half-updated view.
type Report struct {
	GeneratedAt      time.Time             `json:"generated_at"`
	SeasonProduction []SeasonProductionRow `json:"season_production"`
	ProductionTotals []ProductionTotal     `json:"production_totals"`
	RevenueScenarios []RevenueScenarioRow  `json:"revenue_scenarios"`
	Kpis             KpiSet                `json:"kpis"`
}
