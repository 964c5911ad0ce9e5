// Package scan orchestrates batch analysis of many instruments: paced
// provider calls, bounded retries with backoff, composite ranking, and top-N
// persistence. Everything stateful (timing, attempt counters) is owned by
// the loop, never by globals.
package scan

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/stockaura/stockaura/internal/application"
	applog "github.com/stockaura/stockaura/internal/log"
	"github.com/stockaura/stockaura/internal/metrics"
	"github.com/stockaura/stockaura/internal/provider"
)

// Target is one instrument to analyze.
type Target struct {
	Ticker string `json:"ticker"`
	Title  string `json:"title,omitempty"`
}

// Ranked pairs an analysis with its composite score.
type Ranked struct {
	Score  float64             `json:"score"`
	Result *application.Result `json:"result"`
}

// Config bounds the batch run.
type Config struct {
	Period     string
	TopN       int
	MaxRetries int
	RetryDelay time.Duration
}

// Runner drives one batch scan.
type Runner struct {
	analyzer *application.Analyzer
	bars     provider.BarProvider
	pacer    *Pacer
	cfg      Config
	sleep    func(context.Context, time.Duration) error
}

// NewRunner assembles the batch driver.
func NewRunner(analyzer *application.Analyzer, bars provider.BarProvider, pacer *Pacer, cfg Config) *Runner {
	return &Runner{analyzer: analyzer, bars: bars, pacer: pacer, cfg: cfg, sleep: sleepCtx}
}

// Run analyzes every target sequentially and returns the top-N by composite
// score, descending. Individual failures are logged and skipped; only
// context cancellation aborts the run.
func (r *Runner) Run(ctx context.Context, targets []Target) ([]Ranked, error) {
	var ranked []Ranked
	progress := applog.NewProgress("scan", len(targets))

	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := r.analyzeWithRetry(ctx, t)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			metrics.ScanFailures.Inc()
			log.Warn().Err(err).Str("ticker", t.Ticker).Msg("analysis failed, skipping")
			progress.Step(t.Ticker)
			continue
		}
		metrics.AnalysesCompleted.Inc()
		metrics.SignalsEmitted.WithLabelValues(string(res.Signal.Base())).Inc()
		score := CompositeScore(res)
		ranked = append(ranked, Ranked{Score: score, Result: res})
		log.Debug().
			Str("ticker", t.Ticker).
			Float64("score", score).
			Str("signal", string(res.Signal)).
			Msg("scanned")
		progress.Step(t.Ticker)
	}

	sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].Score > ranked[b].Score })
	if r.cfg.TopN > 0 && len(ranked) > r.cfg.TopN {
		ranked = ranked[:r.cfg.TopN]
	}
	progress.Done()
	return ranked, nil
}

// analyzeWithRetry is an explicit bounded loop with an attempt counter and
// linear backoff. Only provider-side retryable failures are retried;
// analysis errors are terminal for the instrument.
func (r *Runner) analyzeWithRetry(ctx context.Context, t Target) (*application.Result, error) {
	var lastErr error
	for attempt := 0; attempt <= r.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			log.Info().
				Str("ticker", t.Ticker).
				Int("attempt", attempt).
				Int("max", r.cfg.MaxRetries).
				Msg("retrying after provider failure")
			if err := r.sleep(ctx, r.cfg.RetryDelay); err != nil {
				return nil, err
			}
		}
		if err := r.pacer.Wait(ctx); err != nil {
			return nil, err
		}

		h, meta, err := r.bars.History(ctx, t.Ticker, r.cfg.Period)
		if err != nil {
			lastErr = err
			if provider.Retryable(err) {
				continue
			}
			return nil, r.mapProviderError(t.Ticker, err)
		}

		inst := application.Instrument{
			Ticker:       t.Ticker,
			Title:        firstNonEmpty(meta.Title, t.Title),
			CurrentPrice: meta.CurrentPrice,
			MarketCap:    meta.MarketCap,
			Currency:     meta.Currency,
		}
		return r.analyzer.Analyze(h, inst)
	}
	return nil, r.mapProviderError(t.Ticker, lastErr)
}

func (r *Runner) mapProviderError(ticker string, err error) error {
	kind := application.ErrConnection
	if errors.Is(err, provider.ErrNoData) {
		kind = application.ErrNoData
	}
	return &application.AnalysisError{Kind: kind, Ticker: ticker, Detail: err.Error(), Cause: err}
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
