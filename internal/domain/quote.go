package domain

// StockQuote is one exchange-traded quote from the market feed (e.g. the
// KC arabica contract). Price movement metadata is carried through for the
// dashboard but ignored by the analytics layer.
type StockQuote struct {
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Change   float64 `json:"change,omitempty"`
	Movement string  `json:"movement,omitempty"`
	Type     string  `json:"type,omitempty"`
}

// ValueQuote is a flat named figure from the market feed (regional spot
// prices, currency rates).
type ValueQuote struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Message is an informational banner published by the quote feed.
type Message struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	Type  string `json:"type"`
}

// QuoteBoard is the full payload of one successful poll of the quote feed.
type QuoteBoard struct {
	Messages []Message    `json:"messages"`
	Stocks   []StockQuote `json:"stocks"`
	Values   []ValueQuote `json:"values"`
}
