package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"github.com/stockaura/stockaura/internal/domain/series"
)

// CachedProvider is a read-through redis cache in front of a BarProvider.
// Cache failures degrade to the inner provider; they never fail a fetch.
type CachedProvider struct {
	inner BarProvider
	rdb   redis.Cmdable
	ttl   time.Duration
}

// NewCachedProvider wraps inner with a redis bar cache.
func NewCachedProvider(inner BarProvider, rdb redis.Cmdable, ttl time.Duration) *CachedProvider {
	return &CachedProvider{inner: inner, rdb: rdb, ttl: ttl}
}

type cachedHistory struct {
	Bars []series.PriceBar `json:"bars"`
	Meta Meta              `json:"meta"`
}

func cacheKey(ticker, period string) string {
	return fmt.Sprintf("stockaura:bars:%s:%s", ticker, period)
}

// History implements BarProvider with a cache lookup first.
func (c *CachedProvider) History(ctx context.Context, ticker, period string) (*series.History, Meta, error) {
	key := cacheKey(ticker, period)
	if payload, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var cached cachedHistory
		if err := json.Unmarshal(payload, &cached); err == nil {
			if h, err := series.NewHistory(cached.Bars); err == nil {
				log.Debug().Str("ticker", ticker).Msg("bar cache hit")
				return h, cached.Meta, nil
			}
		}
		// Corrupt entry: drop it and fall through to the provider.
		c.rdb.Del(ctx, key)
	}

	h, meta, err := c.inner.History(ctx, ticker, period)
	if err != nil {
		return nil, meta, err
	}

	payload, err := json.Marshal(cachedHistory{Bars: h.Bars(), Meta: meta})
	if err == nil {
		if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			log.Warn().Err(err).Str("ticker", ticker).Msg("bar cache write failed")
		}
	}
	return h, meta, nil
}
