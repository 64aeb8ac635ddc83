package internal

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/paineldocafe/panel/internal/domain"
	"github.com/paineldocafe/panel/internal/services/analytics"
	"github.com/paineldocafe/panel/internal/services/history"
)

// QuoteFetcher polls the market quote feed.
type QuoteFetcher interface {
	Fetch(ctx context.Context) (domain.QuoteBoard, error)
}

// Panel owns the periodic work: polling quotes into the snapshot history and
// refreshing the analytics report.
type Panel struct {
	quotes    QuoteFetcher
	history   *history.Store
	analytics *analytics.Service

	pollInterval    time.Duration
	refreshInterval time.Duration

	boardMu  sync.RWMutex
	board    domain.QuoteBoard
	hasBoard bool

	logger *zap.Logger
}

// NewPanel wires the panel loop.
func NewPanel(quotes QuoteFetcher, historyStore *history.Store, analyticsService *analytics.Service,
	pollInterval, refreshInterval time.Duration, logger *zap.Logger) *Panel {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Panel{
		quotes:          quotes,
		history:         historyStore,
		analytics:       analyticsService,
		pollInterval:    pollInterval,
		refreshInterval: refreshInterval,
		logger:          logger,
	}
}

// Run drives both periodic tasks until ctx is cancelled. A failed poll or
// refresh is logged and retried on the next tick; prior derived data stays
// available meanwhile.
func (p *Panel) Run(ctx context.Context) error {
	p.logger.Info("starting panel loop",
		zap.Duration("poll_interval", p.pollInterval),
		zap.Duration("refresh_interval", p.refreshInterval))

	// prime both pipelines so the API has data before the first tick
	p.pollQuotes(ctx)
	if err := p.analytics.Refresh(ctx); err != nil {
		p.logger.Warn("initial analytics refresh failed", zap.Error(err))
	}

	pollTicker := time.NewTicker(p.pollInterval)
	defer pollTicker.Stop()

	refreshTicker := time.NewTicker(p.refreshInterval)
	defer refreshTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("context done, stopping panel loop")
			return ctx.Err()
		case <-pollTicker.C:
			p.pollQuotes(ctx)
		case <-refreshTicker.C:
			if err := p.analytics.Refresh(ctx); err != nil {
				p.logger.Error("analytics refresh failed", zap.Error(err))
			}
		}
	}
}

func (p *Panel) pollQuotes(ctx context.Context) {
	board, err := p.quotes.Fetch(ctx)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			p.logger.Error("quote poll failed", zap.Error(err))
		}
		return
	}

	p.boardMu.Lock()
	p.board = board
	p.hasBoard = true
	p.boardMu.Unlock()

	p.history.Append(board.Stocks, board.Values)
	p.logger.Debug("quote snapshot appended",
		zap.Int("stocks", len(board.Stocks)),
		zap.Int("values", len(board.Values)),
		zap.Int("messages", len(board.Messages)))
}

// LatestBoard returns the board from the most recent successful poll,
// messages included. The second return is false until the first poll lands.
func (p *Panel) LatestBoard() (domain.QuoteBoard, bool) {
	p.boardMu.RLock()
	defer p.boardMu.RUnlock()
	return p.board, p.hasBoard
}
