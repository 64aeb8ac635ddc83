package history

import "github.com/paineldocafe/panel/internal/domain"

// Series extracts one chart-ready value per snapshot that quotes the given
// key: stock series match by symbol, value series by name. Snapshots without
// the key are skipped, order is preserved (newest-first, same as the input).
// Callers wanting a sparkline should require at least two points.
func Series(snapshots []domain.PriceSnapshot, kind domain.SeriesKind, key string) []float64 {
	points := make([]float64, 0, len(snapshots))
	for _, snapshot := range snapshots {
		switch kind {
		case domain.SeriesStocks:
			for _, stock := range snapshot.Stocks {
				if stock.Symbol == key {
					points = append(points, stock.Price)
					break
				}
			}
		case domain.SeriesValues:
			for _, value := range snapshot.Values {
				if value.Name == key {
					points = append(points, value.Value)
					break
				}
			}
		}
	}
	return points
}
