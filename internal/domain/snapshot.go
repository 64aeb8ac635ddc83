package domain

import "time"

// SeriesKind selects which side of a snapshot a chart series is read from.
type SeriesKind string

const (
	SeriesStocks SeriesKind = "stocks"
	SeriesValues SeriesKind = "values"
)

// PriceSnapshot is one timestamped capture of the quote board. Snapshots are
// immutable once taken; the history store only appends and evicts them.
type PriceSnapshot struct {
	CapturedAt time.Time    `json:"at"`
	Stocks     []StockQuote `json:"stocks"`
	Values     []ValueQuote `json:"values"`
}
