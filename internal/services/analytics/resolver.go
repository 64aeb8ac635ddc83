// Package analytics turns raw inventory and market-price records into the
// derived views and KPIs shown on the dashboard.
package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/paineldocafe/panel/internal/domain"
)

// Resolve picks the authoritative price for a (product, scenario) pair:
// among the matching records the latest effective date wins. When several
// records share the latest date the first one encountered is kept, so
// callers must not rely on ordering beyond "most recent wins". The second
// return is false when no record matches; that is an expected outcome, not
// an error.
func Resolve(records []domain.MarketPriceRecord, productID string, scenario domain.Scenario) (decimal.Decimal, bool) {
	var (
		best  domain.MarketPriceRecord
		found bool
	)
	for _, record := range records {
		if record.Scenario != scenario || record.ProductID != productID {
			continue
		}
		if !found || record.EffectiveDate.After(best.EffectiveDate) {
			best = record
			found = true
		}
	}
	if !found {
		return decimal.Decimal{}, false
	}
	return best.PricePerBag, true
}

// ResolveAll resolves every product present in records for one scenario.
// Products with no matching record are simply absent from the map.
func ResolveAll(records []domain.MarketPriceRecord, scenario domain.Scenario) map[string]decimal.Decimal {
	resolved := make(map[string]decimal.Decimal)
	seen := make(map[string]domain.MarketPriceRecord)
	for _, record := range records {
		if record.Scenario != scenario {
			continue
		}
		prior, ok := seen[record.ProductID]
		if ok && !record.EffectiveDate.After(prior.EffectiveDate) {
			continue
		}
		seen[record.ProductID] = record
		resolved[record.ProductID] = record.PricePerBag
	}
	return resolved
}
