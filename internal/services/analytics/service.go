package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/paineldocafe/panel/internal/domain"
)

// InventoryProvider fetches the user's inventory joined with products.
type InventoryProvider interface {
	Inventory(ctx context.Context) ([]domain.InventoryRecord, error)
}

// MarketPriceProvider fetches the candidate market-price records.
type MarketPriceProvider interface {
	MarketPrices(ctx context.Context) ([]domain.MarketPriceRecord, error)
}

// ProductProvider fetches the product reference data.
type ProductProvider interface {
	Products(ctx context.Context) ([]domain.Product, error)
}

// Service recomputes the analytics report from the external datasets. Each
// refresh is computed fresh from that pass's inputs and replaces the prior
// report atomically; a partial fetch failure aborts the pass and keeps the
// previous report in place.
type Service struct {
	inventory InventoryProvider
	prices    MarketPriceProvider
	products  ProductProvider
	logger    *zap.Logger
	now       func() time.Time

	mu      sync.RWMutex
	report  domain.Report
	catalog []domain.Product
	hasData bool
}

// NewService wires the analytics service to its data providers.
func NewService(inventory InventoryProvider, prices MarketPriceProvider, products ProductProvider, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		inventory: inventory,
		prices:    prices,
		products:  products,
		logger:    logger,
		now:       time.Now,
	}
}

// Refresh runs one aggregation pass. The three fetches run concurrently and
// may finish in any order; the first failure aborts the pass.
func (s *Service) Refresh(ctx context.Context) error {
	var (
		wg        sync.WaitGroup
		inventory []domain.InventoryRecord
		records   []domain.MarketPriceRecord
		catalog   []domain.Product
		errInv    error
		errRec    error
		errCat    error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		inventory, errInv = s.inventory.Inventory(ctx)
	}()
	go func() {
		defer wg.Done()
		records, errRec = s.prices.MarketPrices(ctx)
	}()
	go func() {
		defer wg.Done()
		catalog, errCat = s.products.Products(ctx)
	}()
	wg.Wait()

	if errInv != nil {
		return errors.Wrap(errInv, "fetch inventory")
	}
	if errRec != nil {
		return errors.Wrap(errRec, "fetch market prices")
	}
	if errCat != nil {
		return errors.Wrap(errCat, "fetch products")
	}

	report := BuildReport(s.now(), inventory, records)

	s.mu.Lock()
	s.report = report
	s.catalog = catalog
	s.hasData = true
	s.mu.Unlock()

	s.logger.Debug("analytics report refreshed",
		zap.Int("inventory_records", len(inventory)),
		zap.Int("price_records", len(records)),
		zap.Int64("total_bags", report.Kpis.TotalBags))

	return nil
}

// Report returns the last successfully computed report. The second return
// is false until the first refresh succeeds.
func (s *Service) Report() (domain.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.report, s.hasData
}

// Products returns the catalog captured by the last successful refresh, for
// display-name resolution at the presentation layer.
func (s *Service) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.Product(nil), s.catalog...)
}

// BuildReport runs the pure aggregation pipeline over one pass's inputs.
func BuildReport(generatedAt time.Time, inventory []domain.InventoryRecord, records []domain.MarketPriceRecord) domain.Report {
	current := ResolveAll(records, domain.ScenarioCurrent)
	harvest := ResolveAll(records, domain.ScenarioHarvest)

	rows := BuildRevenueRows(inventory, current, harvest)

	return domain.Report{
		GeneratedAt:      generatedAt,
		SeasonProduction: GroupBySeason(inventory),
		ProductionTotals: GroupByProduct(inventory),
		RevenueScenarios: MergeScenarios(rows),
		Kpis:             ComputeKpis(inventory, rows),
	}
}
