package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/paineldocafe/panel/internal/domain"
)

// GroupBySeason sums quantities per product within each harvest season,
// one row per distinct season, seasons ordered ascending by label.
func GroupBySeason(inventory []domain.InventoryRecord) []domain.SeasonProductionRow {
	bySeason := make(map[string]map[string]int64)
	for _, item := range inventory {
		quantities, ok := bySeason[item.HarvestSeason]
		if !ok {
			quantities = make(map[string]int64)
			bySeason[item.HarvestSeason] = quantities
		}
		quantities[item.ProductID] += item.Quantity
	}

	rows := make([]domain.SeasonProductionRow, 0, len(bySeason))
	for season, quantities := range bySeason {
		rows = append(rows, domain.SeasonProductionRow{Season: season, Quantities: quantities})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Season < rows[j].Season })
	return rows
}

// GroupByProduct sums quantities across all seasons, one row per product,
// ordered by product name for stable presentation.
func GroupByProduct(inventory []domain.InventoryRecord) []domain.ProductionTotal {
	totals := make(map[string]*domain.ProductionTotal)
	for _, item := range inventory {
		total, ok := totals[item.ProductID]
		if !ok {
			total = &domain.ProductionTotal{ProductID: item.ProductID, ProductName: item.ProductName}
			totals[item.ProductID] = total
		}
		total.TotalQuantity += item.Quantity
	}

	rows := make([]domain.ProductionTotal, 0, len(totals))
	for _, total := range totals {
		rows = append(rows, *total)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ProductName != rows[j].ProductName {
			return rows[i].ProductName < rows[j].ProductName
		}
		return rows[i].ProductID < rows[j].ProductID
	})
	return rows
}

// MergeScenarios collapses revenue rows to exactly one per product, summing
// both revenue figures, ordered by product name.
func MergeScenarios(rows []domain.RevenueScenarioRow) []domain.RevenueScenarioRow {
	merged := make(map[string]*domain.RevenueScenarioRow)
	for _, row := range rows {
		target, ok := merged[row.ProductID]
		if !ok {
			merged[row.ProductID] = &domain.RevenueScenarioRow{
				ProductID:        row.ProductID,
				ProductName:      row.ProductName,
				SellNowRevenue:   row.SellNowRevenue,
				SellAtHarvestRev: row.SellAtHarvestRev,
			}
			continue
		}
		target.SellNowRevenue = target.SellNowRevenue.Add(row.SellNowRevenue)
		target.SellAtHarvestRev = target.SellAtHarvestRev.Add(row.SellAtHarvestRev)
	}

	result := make([]domain.RevenueScenarioRow, 0, len(merged))
	for _, row := range merged {
		result = append(result, *row)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].ProductName != result[j].ProductName {
			return result[i].ProductName < result[j].ProductName
		}
		return result[i].ProductID < result[j].ProductID
	})
	return result
}

// ComputeKpis reduces inventory and revenue rows to the dashboard scalars.
// Empty inputs yield zeroed KPIs.
func ComputeKpis(inventory []domain.InventoryRecord, rows []domain.RevenueScenarioRow) domain.KpiSet {
	kpis := domain.KpiSet{
		RevenueNow:       decimal.Zero,
		RevenueAtHarvest: decimal.Zero,
	}

	seasons := make(map[string]struct{})
	for _, item := range inventory {
		kpis.TotalBags += item.Quantity
		seasons[item.HarvestSeason] = struct{}{}
	}
	kpis.SeasonCount = len(seasons)

	for _, row := range rows {
		kpis.RevenueNow = kpis.RevenueNow.Add(row.SellNowRevenue)
		kpis.RevenueAtHarvest = kpis.RevenueAtHarvest.Add(row.SellAtHarvestRev)
	}
	return kpis
}
