// Package pricehistory persists the bounded snapshot history in a WAL so it
// survives restarts of the same installation.
package pricehistory

import (
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/gowal"

	"github.com/paineldocafe/panel/internal/domain"
)

const (
	defaultHistoryDir   = "./wal/pricehistory"
	historySegmentLimit = 1000
	historyMaxSegments  = 10
	historyKey          = "price_history"
)

// WALStore stores the whole history as one blob per write. Each Save appends
// the full bounded list, so the newest WAL entry always carries the complete
// state and segment rotation prunes stale entries.
type WALStore struct {
	wal *gowal.Wal
	mu  sync.RWMutex
}

// NewWALStore opens (or creates) the history WAL under dir.
func NewWALStore(dir string) (*WALStore, error) {
	if dir == "" {
		dir = defaultHistoryDir
	}

	cfg := gowal.Config{
		Dir:              dir,
		Prefix:           "history_",
		SegmentThreshold: historySegmentLimit,
		MaxSegments:      historyMaxSegments,
		IsInSyncDiskMode: true,
	}

	wal, err := gowal.NewWAL(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "init price history WAL")
	}

	return &WALStore{wal: wal}, nil
}

// Save writes the full history as the next WAL entry.
func (s *WALStore) Save(snapshots []domain.PriceSnapshot) error {
	if s == nil || s.wal == nil {
		return errors.New("price history store is not initialized")
	}

	payload, err := json.Marshal(snapshots)
	if err != nil {
		return errors.Wrap(err, "marshal price history")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	nextIndex := s.wal.CurrentIndex() + 1
	return s.wal.Write(nextIndex, historyKey, payload)
}

// Load returns the most recently written history, or an empty history when
// nothing has been written yet.
func (s *WALStore) Load() ([]domain.PriceSnapshot, error) {
	if s == nil || s.wal == nil {
		return nil, errors.New("price history store is not initialized")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for idx := s.wal.CurrentIndex(); idx >= 1; idx-- {
		key, payload, err := s.wal.Get(idx)
		if err != nil || key != historyKey {
			continue
		}
		var snapshots []domain.PriceSnapshot
		if err := json.Unmarshal(payload, &snapshots); err != nil {
			return nil, errors.Wrap(err, "decode price history")
		}
		return snapshots, nil
	}

	return nil, nil
}

// Close closes the underlying WAL.
func (s *WALStore) Close() error {
	if s == nil || s.wal == nil {
		return errors.New("price history store is not initialized")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.wal.Close()
}
