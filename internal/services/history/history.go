// Package history keeps a bounded, persisted trail of price snapshots for
// client-side charting.
package history

import (
	"sync"
	"time"

	"github.com/paineldocafe/panel/internal/domain"
	"go.uber.org/zap"
)

// DefaultRetention bounds the history at roughly one day of 15-minute points.
const DefaultRetention = 96

// Storage persists the snapshot history as one blob. Implementations must
// treat Load of absent data as an empty history, nil error.
type Storage interface {
	Load() ([]domain.PriceSnapshot, error)
	Save(snapshots []domain.PriceSnapshot) error
}

// Store accumulates quote-board snapshots newest-first, evicting the oldest
// entries past the retention bound. Persistence is best-effort: corrupt or
// missing stored data reads as empty, and a failed save only logs.
type Store struct {
	storage   Storage
	retention int
	logger    *zap.Logger
	now       func() time.Time

	mu sync.Mutex
}

// NewStore creates a snapshot store over the given storage. A retention of
// zero or less falls back to DefaultRetention.
func NewStore(storage Storage, retention int, logger *zap.Logger) *Store {
	if retention <= 0 {
		retention = DefaultRetention
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		storage:   storage,
		retention: retention,
		logger:    logger,
		now:       time.Now,
	}
}

// Append captures a snapshot of the given quotes stamped with the current
// time, prepends it to the persisted history and truncates to the retention
// bound.
func (s *Store) Append(stocks []domain.StockQuote, values []domain.ValueQuote) {
	snapshot := domain.PriceSnapshot{
		CapturedAt: s.now(),
		Stocks:     append([]domain.StockQuote(nil), stocks...),
		Values:     append([]domain.ValueQuote(nil), values...),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.load()
	next := make([]domain.PriceSnapshot, 0, len(current)+1)
	next = append(next, snapshot)
	next = append(next, current...)
	if len(next) > s.retention {
		next = next[:s.retention]
	}

	if err := s.storage.Save(next); err != nil {
		s.logger.Warn("failed to persist price history", zap.Error(err))
	}
}

// All returns the persisted history, newest-first.
func (s *Store) All() []domain.PriceSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

func (s *Store) load() []domain.PriceSnapshot {
	snapshots, err := s.storage.Load()
	if err != nil {
		s.logger.Warn("discarding unreadable price history", zap.Error(err))
		return nil
	}
	if len(snapshots) > s.retention {
		snapshots = snapshots[:s.retention]
	}
	return snapshots
}
