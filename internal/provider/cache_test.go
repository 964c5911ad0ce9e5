package provider

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockaura/stockaura/internal/domain/series"
)

type stubProvider struct {
	h     *series.History
	meta  Meta
	err   error
	calls int
}

func (s *stubProvider) History(ctx context.Context, ticker, period string) (*series.History, Meta, error) {
	s.calls++
	return s.h, s.meta, s.err
}

func stubBars() []series.PriceBar {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return []series.PriceBar{
		{Date: start, Open: 10, High: 11, Low: 9, Close: 10.5, Volume: 1000},
		{Date: start.AddDate(0, 0, 1), Open: 10.5, High: 12, Low: 10, Close: 11, Volume: 1200},
	}
}

func TestCachedProviderMissThenStore(t *testing.T) {
	bars := stubBars()
	h, err := series.NewHistory(bars)
	require.NoError(t, err)

	inner := &stubProvider{h: h, meta: Meta{Ticker: "AAPL", Currency: "USD", CurrentPrice: 11}}
	rdb, mock := redismock.NewClientMock()

	key := cacheKey("AAPL", "1y")
	payload, err := json.Marshal(cachedHistory{Bars: bars, Meta: inner.meta})
	require.NoError(t, err)

	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, payload, time.Hour).SetVal("OK")

	c := NewCachedProvider(inner, rdb, time.Hour)
	got, meta, err := c.History(context.Background(), "AAPL", "1y")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Len())
	assert.Equal(t, "AAPL", meta.Ticker)
	assert.Equal(t, 1, inner.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedProviderHitSkipsInner(t *testing.T) {
	bars := stubBars()
	meta := Meta{Ticker: "AAPL", Currency: "USD", CurrentPrice: 11}
	payload, err := json.Marshal(cachedHistory{Bars: bars, Meta: meta})
	require.NoError(t, err)

	inner := &stubProvider{}
	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet(cacheKey("AAPL", "1y")).SetVal(string(payload))

	c := NewCachedProvider(inner, rdb, time.Hour)
	got, gotMeta, err := c.History(context.Background(), "AAPL", "1y")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Len())
	assert.Equal(t, meta, gotMeta)
	assert.Equal(t, 0, inner.calls, "a cache hit must not reach the provider")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedProviderCorruptEntryDeletedAndRefetched(t *testing.T) {
	bars := stubBars()
	h, err := series.NewHistory(bars)
	require.NoError(t, err)
	meta := Meta{Ticker: "AAPL", Currency: "USD"}

	inner := &stubProvider{h: h, meta: meta}
	rdb, mock := redismock.NewClientMock()
	key := cacheKey("AAPL", "1y")

	payload, err := json.Marshal(cachedHistory{Bars: bars, Meta: meta})
	require.NoError(t, err)

	mock.ExpectGet(key).SetVal("{not json")
	mock.ExpectDel(key).SetVal(1)
	mock.ExpectSet(key, payload, time.Hour).SetVal("OK")

	c := NewCachedProvider(inner, rdb, time.Hour)
	got, _, err := c.History(context.Background(), "AAPL", "1y")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Len())
	assert.Equal(t, 1, inner.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedProviderWriteFailureNotFatal(t *testing.T) {
	bars := stubBars()
	h, err := series.NewHistory(bars)
	require.NoError(t, err)

	inner := &stubProvider{h: h, meta: Meta{Ticker: "AAPL"}}
	rdb, mock := redismock.NewClientMock()
	key := cacheKey("AAPL", "1y")

	payload, err := json.Marshal(cachedHistory{Bars: bars, Meta: inner.meta})
	require.NoError(t, err)

	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, payload, time.Hour).SetErr(redis.ErrClosed)

	c := NewCachedProvider(inner, rdb, time.Hour)
	got, _, err := c.History(context.Background(), "AAPL", "1y")
	require.NoError(t, err, "cache failures degrade, never fail the fetch")
	assert.Equal(t, 2, got.Len())
}
