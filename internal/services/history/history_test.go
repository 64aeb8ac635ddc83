package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/paineldocafe/panel/internal/domain"
)

type memoryStorage struct {
	snapshots []domain.PriceSnapshot
	loadErr   error
	saveErr   error
	saves     int
}

func (m *memoryStorage) Load() ([]domain.PriceSnapshot, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]domain.PriceSnapshot(nil), m.snapshots...), nil
}

func (m *memoryStorage) Save(snapshots []domain.PriceSnapshot) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.snapshots = append([]domain.PriceSnapshot(nil), snapshots...)
	return nil
}

func newTestStore(t *testing.T, storage *memoryStorage, retention int) *Store {
	t.Helper()
	store := NewStore(storage, retention, zap.NewNop())

	// deterministic, strictly increasing capture times
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	return store
}

func stocksAt(price float64) []domain.StockQuote {
	return []domain.StockQuote{{Symbol: "KC", Name: "Café Arábica", Price: price}}
}

func TestStoreBoundedRetention(t *testing.T) {
	storage := &memoryStorage{}
	store := newTestStore(t, storage, DefaultRetention)

	for i := 0; i < DefaultRetention+30; i++ {
		store.Append(stocksAt(float64(i)), nil)
	}

	all := store.All()
	require.Len(t, all, DefaultRetention)

	// newest-first: the last appended price must be at index 0
	require.Equal(t, float64(DefaultRetention+29), all[0].Stocks[0].Price)
	// the oldest surviving snapshot is the 96th most recent
	require.Equal(t, float64(30), all[len(all)-1].Stocks[0].Price)
}

func TestStoreEvictionOrder(t *testing.T) {
	storage := &memoryStorage{}
	store := newTestStore(t, storage, DefaultRetention)

	for i := 0; i < DefaultRetention; i++ {
		store.Append(stocksAt(float64(i)), nil)
	}
	before := store.All()
	require.Len(t, before, DefaultRetention)

	store.Append(stocksAt(1000), nil)
	after := store.All()
	require.Len(t, after, DefaultRetention)

	// exactly the oldest entry is gone, everything else keeps relative order
	require.Equal(t, float64(1000), after[0].Stocks[0].Price)
	require.Equal(t, before[:DefaultRetention-1], after[1:])
}

func TestStoreAllIdempotent(t *testing.T) {
	storage := &memoryStorage{}
	store := newTestStore(t, storage, 10)

	store.Append(stocksAt(1), []domain.ValueQuote{{Name: "Conilon 7/8", Value: 900}})
	store.Append(stocksAt(2), nil)

	first := store.All()
	second := store.All()
	require.Equal(t, first, second)
}

func TestStoreUnreadableHistoryReadsEmpty(t *testing.T) {
	storage := &memoryStorage{loadErr: errors.New("corrupt blob")}
	store := NewStore(storage, 10, zap.NewNop())

	require.Empty(t, store.All())
}

func TestStoreSaveFailureIsNonFatal(t *testing.T) {
	storage := &memoryStorage{saveErr: errors.New("disk full")}
	store := newTestStore(t, storage, 10)

	require.NotPanics(t, func() {
		store.Append(stocksAt(1), nil)
	})
	require.Equal(t, 1, storage.saves)
	require.Empty(t, store.All())
}

func TestStoreAppendAfterCorruptHistoryStartsFresh(t *testing.T) {
	storage := &memoryStorage{loadErr: errors.New("corrupt blob")}
	store := newTestStore(t, storage, 10)

	store.Append(stocksAt(42), nil)

	storage.loadErr = nil
	all := store.All()
	require.Len(t, all, 1)
	require.Equal(t, float64(42), all[0].Stocks[0].Price)
}

func TestStoreRetentionDefault(t *testing.T) {
	for _, retention := range []int{0, -5} {
		t.Run(fmt.Sprintf("retention_%d", retention), func(t *testing.T) {
			store := NewStore(&memoryStorage{}, retention, nil)
			require.Equal(t, DefaultRetention, store.retention)
		})
	}
}
