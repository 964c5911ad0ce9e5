package provider

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/stockaura/stockaura/internal/domain/series"
	"github.com/stockaura/stockaura/internal/metrics"
)

// HTTPProvider fetches daily OHLCV CSV from a Stooq-style endpoint. Requests
// are token-bucket rate limited and wrapped in a circuit breaker so a dead
// provider fails fast during batch scans.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// HTTPConfig configures the provider client.
type HTTPConfig struct {
	BaseURL        string
	Timeout        time.Duration
	RequestsPerSec float64
	Burst          int
}

// NewHTTPProvider builds the rate-limited, circuit-broken client.
func NewHTTPProvider(cfg HTTPConfig) *HTTPProvider {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RequestsPerSec <= 0 {
		cfg.RequestsPerSec = 1
	}
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "market-data",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit state change")
		},
	})
	return &HTTPProvider{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), cfg.Burst),
		breaker: breaker,
	}
}

// History implements BarProvider.
func (p *HTTPProvider) History(ctx context.Context, ticker, period string) (*series.History, Meta, error) {
	meta := Meta{Ticker: ticker, Currency: CurrencyFor(ticker)}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, meta, &FetchError{Ticker: ticker, Err: fmt.Errorf("%w: %v", ErrConnection, err)}
	}

	start := time.Now()
	raw, err := p.breaker.Execute(func() (interface{}, error) {
		return p.fetchCSV(ctx, ticker, period)
	})
	metrics.ProviderRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, meta, &FetchError{Ticker: ticker, Err: fmt.Errorf("%w: circuit open", ErrConnection)}
		}
		return nil, meta, &FetchError{Ticker: ticker, Err: err}
	}

	bars := raw.([]series.PriceBar)
	if len(bars) == 0 {
		return nil, meta, &FetchError{Ticker: ticker, Err: ErrNoData}
	}
	h, err := series.NewHistory(bars)
	if err != nil {
		return nil, meta, &FetchError{Ticker: ticker, Err: fmt.Errorf("%w: %v", ErrNoData, err)}
	}
	meta.CurrentPrice = h.Last().Close
	log.Debug().Str("ticker", ticker).Int("bars", h.Len()).Msg("history fetched")
	return h, meta, nil
}

func (p *HTTPProvider) fetchCSV(ctx context.Context, ticker, period string) ([]series.PriceBar, error) {
	start := periodStart(period, time.Now())
	q := url.Values{}
	q.Set("s", strings.ToLower(ticker))
	q.Set("i", "d")
	q.Set("d1", start.Format("20060102"))
	q.Set("d2", time.Now().Format("20060102"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d", ErrConnection, resp.StatusCode)
	}
	return ParseDailyCSV(resp.Body)
}

// ParseDailyCSV decodes a Date,Open,High,Low,Close,Volume daily file.
// Rows with unparseable numbers are skipped rather than failing the fetch.
func ParseDailyCSV(r io.Reader) ([]series.PriceBar, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: malformed csv: %v", ErrNoData, err)
	}
	var bars []series.PriceBar
	for i, rec := range records {
		if i == 0 && strings.EqualFold(rec[0], "date") {
			continue
		}
		if len(rec) < 6 {
			continue
		}
		date, err := time.Parse("2006-01-02", rec[0])
		if err != nil {
			continue
		}
		vals := make([]float64, 5)
		ok := true
		for j := 1; j <= 5; j++ {
			v, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j-1] = v
		}
		if !ok {
			continue
		}
		bars = append(bars, series.PriceBar{
			Date: date, Open: vals[0], High: vals[1], Low: vals[2], Close: vals[3], Volume: vals[4],
		})
	}
	return bars, nil
}

// periodStart maps a lookback label ("6m", "1y", "5y", "max") onto a start
// date; unknown labels fall back to 5 years.
func periodStart(period string, now time.Time) time.Time {
	switch strings.ToLower(period) {
	case "6m":
		return now.AddDate(0, -6, 0)
	case "1y":
		return now.AddDate(-1, 0, 0)
	case "2y":
		return now.AddDate(-2, 0, 0)
	case "10y":
		return now.AddDate(-10, 0, 0)
	case "max":
		return time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	default:
		return now.AddDate(-5, 0, 0)
	}
}
