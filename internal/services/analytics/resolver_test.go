package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/paineldocafe/panel/internal/domain"
)

func priceRecord(productID string, scenario domain.Scenario, price string, date string) domain.MarketPriceRecord {
	effective, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return domain.MarketPriceRecord{
		ProductID:     productID,
		PricePerBag:   decimal.RequireFromString(price),
		Scenario:      scenario,
		EffectiveDate: effective,
	}
}

func TestResolveLatestEffectiveDateWins(t *testing.T) {
	records := []domain.MarketPriceRecord{
		priceRecord("arabica", domain.ScenarioCurrent, "100", "2024-01-01"),
		priceRecord("arabica", domain.ScenarioCurrent, "130", "2024-03-01"),
	}

	price, ok := Resolve(records, "arabica", domain.ScenarioCurrent)
	require.True(t, ok)
	require.True(t, decimal.RequireFromString("130").Equal(price))
}

func TestResolveInputOrderDoesNotMatter(t *testing.T) {
	records := []domain.MarketPriceRecord{
		priceRecord("arabica", domain.ScenarioCurrent, "130", "2024-03-01"),
		priceRecord("arabica", domain.ScenarioCurrent, "100", "2024-01-01"),
	}

	price, ok := Resolve(records, "arabica", domain.ScenarioCurrent)
	require.True(t, ok)
	require.True(t, decimal.RequireFromString("130").Equal(price))
}

func TestResolveTiedDatesKeepFirstEncountered(t *testing.T) {
	records := []domain.MarketPriceRecord{
		priceRecord("arabica", domain.ScenarioCurrent, "110", "2024-03-01"),
		priceRecord("arabica", domain.ScenarioCurrent, "120", "2024-03-01"),
	}

	price, ok := Resolve(records, "arabica", domain.ScenarioCurrent)
	require.True(t, ok)
	require.True(t, decimal.RequireFromString("110").Equal(price))
}

func TestResolveFiltersScenarioAndProduct(t *testing.T) {
	records := []domain.MarketPriceRecord{
		priceRecord("arabica", domain.ScenarioHarvest, "150", "2024-06-01"),
		priceRecord("conilon", domain.ScenarioCurrent, "90", "2024-06-01"),
	}

	_, ok := Resolve(records, "arabica", domain.ScenarioCurrent)
	require.False(t, ok)

	price, ok := Resolve(records, "arabica", domain.ScenarioHarvest)
	require.True(t, ok)
	require.True(t, decimal.RequireFromString("150").Equal(price))
}

func TestResolveEmptyRecordsUnresolved(t *testing.T) {
	_, ok := Resolve(nil, "arabica", domain.ScenarioCurrent)
	require.False(t, ok)
}

func TestResolveAll(t *testing.T) {
	records := []domain.MarketPriceRecord{
		priceRecord("arabica", domain.ScenarioCurrent, "100", "2024-01-01"),
		priceRecord("arabica", domain.ScenarioCurrent, "130", "2024-03-01"),
		priceRecord("conilon", domain.ScenarioCurrent, "90", "2024-02-01"),
		priceRecord("conilon", domain.ScenarioHarvest, "95", "2024-02-01"),
	}

	current := ResolveAll(records, domain.ScenarioCurrent)
	require.Len(t, current, 2)
	require.True(t, decimal.RequireFromString("130").Equal(current["arabica"]))
	require.True(t, decimal.RequireFromString("90").Equal(current["conilon"]))

	harvest := ResolveAll(records, domain.ScenarioHarvest)
	require.Len(t, harvest, 1)
	_, ok := harvest["arabica"]
	require.False(t, ok)
}
