// Package clients holds the HTTP clients for the external quote and weather
// feeds.
package clients

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/paineldocafe/panel/internal/domain"
	"github.com/paineldocafe/panel/pkg/retrier"
)

// DefaultQuotesURL is the home-information endpoint of the public feed.
const DefaultQuotesURL = "https://api.coffee-panel.mitrix.online/api/home/information"

// QuotesClient polls the market quote feed. Transient feed hiccups get a
// couple of quick in-poll retries; a still-failing poll is reported and the
// next tick tries again.
type QuotesClient struct {
	client  *resty.Client
	retrier *retrier.Retrier
	url     string
}

// NewQuotesClient creates a quote feed client. An empty url selects the
// default public endpoint.
func NewQuotesClient(url string) *QuotesClient {
	if url == "" {
		url = DefaultQuotesURL
	}
	client := resty.New().
		SetTimeout(15 * time.Second).
		SetHeader("Accept", "application/json")
	return &QuotesClient{client: client, retrier: retrier.New(), url: url}
}

// Fetch performs one poll of the quote feed.
func (c *QuotesClient) Fetch(ctx context.Context) (domain.QuoteBoard, error) {
	return retrier.DoWithData(c.retrier, ctx, func(ctx context.Context) (domain.QuoteBoard, error) {
		var board domain.QuoteBoard
		resp, err := c.client.R().
			SetContext(ctx).
			SetResult(&board).
			Get(c.url)
		if err != nil {
			return domain.QuoteBoard{}, errors.Wrap(err, "fetch quote board")
		}
		if resp.IsError() {
			return domain.QuoteBoard{}, errors.Errorf("quote feed returned %s", resp.Status())
		}
		return board, nil
	})
}
