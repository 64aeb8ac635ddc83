package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Scenario is the pricing context of a market-price record.
type Scenario string

const (
	// ScenarioCurrent is the spot price.
	ScenarioCurrent Scenario = "current"
	// ScenarioHarvest is the projected price at harvest time.
	ScenarioHarvest Scenario = "harvest"
)

// MarketPriceRecord is one candidate price for a product under a scenario.
// Multiple records may exist per (product, scenario) pair, differing by
// effective date; the resolver picks the authoritative one.
type MarketPriceRecord struct {
	ProductID     string          `json:"product_id"`
	PricePerBag   decimal.Decimal `json:"price_per_bag"`
	Scenario      Scenario        `json:"scenario"`
	EffectiveDate time.Time       `json:"effective_date"`
}
