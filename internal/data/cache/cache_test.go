package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equityscan/equityscan/internal/data"
	"github.com/equityscan/equityscan/internal/domain/fundamentals"
	"github.com/equityscan/equityscan/internal/domain/series"
)

type fakeProvider struct {
	priceCalls int64
	fundCalls  int64
	priceErr   error
	fundErr    error
	delay      time.Duration
}

func (f *fakeProvider) FetchOHLCV(ctx context.Context, symbol, period string) (series.Series, error) {
	atomic.AddInt64(&f.priceCalls, 1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.priceErr != nil {
		return nil, f.priceErr
	}
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := make(series.Series, 60)
	for i := range s {
		c := 100 + float64(i)
		s[i] = series.Bar{Time: start.AddDate(0, 0, i), Open: c, High: c + 1, Low: c - 1, Close: c, Volume: 1000}
	}
	return s, nil
}

func (f *fakeProvider) FetchFundamentals(ctx context.Context, symbol string) (*fundamentals.Bundle, error) {
	atomic.AddInt64(&f.fundCalls, 1)
	if f.fundErr != nil {
		return nil, f.fundErr
	}
	return &fundamentals.Bundle{
		Basics:    fundamentals.Basics{Symbol: symbol, Sector: "Technology"},
		Valuation: fundamentals.Valuation{PERatio: fundamentals.Float(20)},
	}, nil
}

func newTestCache(t *testing.T, p *fakeProvider, opts ...CacheOption) (*DataCache, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore(100)
	t.Cleanup(func() { store.Close() })
	return New(store, p, p, zerolog.Nop(), opts...), store
}

func TestPriceDataCachesAcrossCalls(t *testing.T) {
	p := &fakeProvider{}
	c, _ := newTestCache(t, p)
	ctx := context.Background()

	first, err := c.PriceData(ctx, "TCS")
	require.NoError(t, err)
	require.NotNil(t, first.Snapshot)
	assert.Equal(t, 60, first.Series.Len())

	second, err := c.PriceData(ctx, "TCS")
	require.NoError(t, err)
	assert.Equal(t, first.Snapshot.Close, second.Snapshot.Close)
	assert.EqualValues(t, 1, atomic.LoadInt64(&p.priceCalls))
}

func TestConcurrentMissesCollapseToOneFetch(t *testing.T) {
	p := &fakeProvider{delay: 50 * time.Millisecond}
	c, _ := newTestCache(t, p)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			payload, err := c.PriceData(ctx, "INFY")
			assert.NoError(t, err)
			assert.NotNil(t, payload)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt64(&p.priceCalls))
}

func TestExpiredEntryRefetches(t *testing.T) {
	p := &fakeProvider{}
	store := NewMemoryStore(100)
	t.Cleanup(func() { store.Close() })

	current := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	store.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return current
	}

	c := New(store, p, p, zerolog.Nop(), WithPriceTTL(5*time.Minute))
	ctx := context.Background()

	_, err := c.PriceData(ctx, "TCS")
	require.NoError(t, err)

	mu.Lock()
	current = current.Add(6 * time.Minute)
	mu.Unlock()

	_, err = c.PriceData(ctx, "TCS")
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt64(&p.priceCalls))
}

func TestFundamentalsCached(t *testing.T) {
	p := &fakeProvider{}
	c, _ := newTestCache(t, p)
	ctx := context.Background()

	b, err := c.Fundamentals(ctx, "TCS")
	require.NoError(t, err)
	assert.Equal(t, "TCS", b.Basics.Symbol)
	require.NotNil(t, b.Valuation.PERatio)
	assert.InDelta(t, 20.0, *b.Valuation.PERatio, 1e-9)

	_, err = c.Fundamentals(ctx, "TCS")
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt64(&p.fundCalls))
}

func TestFetchErrorNotCached(t *testing.T) {
	p := &fakeProvider{priceErr: data.ErrDataUnavailable}
	c, _ := newTestCache(t, p)
	ctx := context.Background()

	_, err := c.PriceData(ctx, "BAD")
	require.ErrorIs(t, err, data.ErrDataUnavailable)

	// A later call retries the provider instead of serving the failure.
	p.priceErr = nil
	_, err = c.PriceData(ctx, "BAD")
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt64(&p.priceCalls))
}

func TestInvalidateForcesRefetch(t *testing.T) {
	p := &fakeProvider{}
	c, _ := newTestCache(t, p)
	ctx := context.Background()

	_, err := c.PriceData(ctx, "TCS")
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx, "TCS"))

	_, err = c.PriceData(ctx, "TCS")
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt64(&p.priceCalls))
}

func TestMemoryStoreEvictsLRU(t *testing.T) {
	store := NewMemoryStore(2)
	t.Cleanup(func() { store.Close() })
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	current := base
	store.now = func() time.Time { return current }

	require.NoError(t, store.Set(ctx, "a", []byte("1"), time.Hour))
	current = current.Add(time.Second)
	require.NoError(t, store.Set(ctx, "b", []byte("2"), time.Hour))

	// Touch "a" so "b" becomes the eviction candidate.
	current = current.Add(time.Second)
	_, ok, err := store.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)

	current = current.Add(time.Second)
	require.NoError(t, store.Set(ctx, "c", []byte("3"), time.Hour))

	_, ok, _ = store.Get(ctx, "b")
	assert.False(t, ok)
	_, ok, _ = store.Get(ctx, "a")
	assert.True(t, ok)
	assert.Equal(t, 2, store.Len())
}

func TestStoreReadErrorDegradesToMiss(t *testing.T) {
	p := &fakeProvider{}
	c := New(failingStore{}, p, p, zerolog.Nop())

	payload, err := c.PriceData(context.Background(), "TCS")
	require.NoError(t, err)
	assert.NotNil(t, payload.Snapshot)
	assert.EqualValues(t, 1, atomic.LoadInt64(&p.priceCalls))
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("store down")
}
func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("store down")
}
func (failingStore) Delete(context.Context, string) error { return errors.New("store down") }
func (failingStore) Close() error                         { return nil }
