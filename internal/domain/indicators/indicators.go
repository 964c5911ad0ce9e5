// Package indicators computes the descriptive overlays the decision layer
// reads: z-scores, the recent-return ladder, trend direction, Sharpe and
// volatility figures, and the moving-average cross flag.
package indicators

import (
	"math"

	"github.com/stockaura/stockaura/internal/domain/series"
	"github.com/stockaura/stockaura/internal/domain/stats"
)

const tradingDaysPerYear = 252

// TrendDirection labels the prevailing 1-year trend.
type TrendDirection string

const (
	TrendUp      TrendDirection = "UP"
	TrendDown    TrendDirection = "DOWN"
	TrendNeutral TrendDirection = "NEUTRAL"
)

// RecentReturns is the multi-horizon return ladder, all measured from the
// current close back a fixed number of trading days. Optional members use
// pointers: nil when the history is too short for that horizon.
type RecentReturns struct {
	OneYear   *float64 `json:"recent_return_1y,omitempty"`
	SixMonth  *float64 `json:"recent_return_6m,omitempty"`
	ThreeMonth *float64 `json:"recent_return_3m,omitempty"`
	OneMonth  *float64 `json:"recent_return_1m,omitempty"`
}

// Ladder computes the recent-return ladder (252/126/63/21 trading days).
func Ladder(h *series.History) RecentReturns {
	var out RecentReturns
	out.OneYear = horizonReturn(h, 252)
	out.SixMonth = horizonReturn(h, 126)
	out.ThreeMonth = horizonReturn(h, 63)
	out.OneMonth = horizonReturn(h, 21)
	return out
}

func horizonReturn(h *series.History, days int) *float64 {
	if h.Len() < days {
		return nil
	}
	anchor := h.Bar(h.Len() - days).Close
	if anchor <= 0 {
		return nil
	}
	r := (h.Last().Close - anchor) / anchor
	return &r
}

// Trend derives the 1-year trend direction. band is the +/- fraction inside
// which the trend is NEUTRAL; ok=false without a full year of history.
func Trend(h *series.History, band float64) (TrendDirection, bool) {
	r := horizonReturn(h, 252)
	if r == nil {
		return TrendNeutral, false
	}
	switch {
	case *r > band:
		return TrendUp, true
	case *r < -band:
		return TrendDown, true
	default:
		return TrendNeutral, true
	}
}

// ZScore returns how many rolling standard deviations the current close sits
// from its 20-day simple moving average.
func ZScore(h *series.History, window int) (float64, bool) {
	closes := h.Closes()
	m, ok := stats.SMA(closes, window)
	if !ok {
		return 0, false
	}
	s, ok := stats.RollingStd(closes, window)
	if !ok || s <= 0 {
		return 0, false
	}
	return (h.Last().Close - m) / s, true
}

// ZEMA returns the exponential z-score: distance of the current close from
// its exponential moving mean in units of exponential standard deviation.
func ZEMA(h *series.History, span int) (float64, bool) {
	closes := h.Closes()
	if len(closes) < span {
		return 0, false
	}
	mean, std, ok := stats.EWStats(closes, span)
	if !ok || std <= 0 {
		return 0, false
	}
	return (h.Last().Close - mean) / std, true
}

// RiskProfile is the annualized performance summary of a return series.
type RiskProfile struct {
	AnnualVolPct    float64  `json:"volatility"` // annualized volatility, percent
	AnnualReturnPct float64  `json:"annual_return"`
	Sharpe          *float64 `json:"sharpe,omitempty"`
	Category        string   `json:"volatility_category"`
}

// Risk annualizes mean and standard deviation of daily returns. Requires more
// than 2 observations; Sharpe is omitted when volatility is zero.
func Risk(daily []float64) (RiskProfile, bool) {
	if len(daily) <= 2 {
		return RiskProfile{}, false
	}
	m, _ := stats.Mean(daily)
	s, _ := stats.StdDev(daily)
	p := RiskProfile{
		AnnualVolPct:    s * math.Sqrt(tradingDaysPerYear) * 100,
		AnnualReturnPct: m * tradingDaysPerYear * 100,
	}
	if s > 0 {
		sharpe := m / s * math.Sqrt(tradingDaysPerYear)
		p.Sharpe = &sharpe
	}
	p.Category = volatilityCategory(p.AnnualVolPct)
	return p, true
}

func volatilityCategory(annualVolPct float64) string {
	switch {
	case annualVolPct < 15:
		return "VERY_LOW"
	case annualVolPct < 25:
		return "LOW"
	case annualVolPct < 35:
		return "MODERATE"
	case annualVolPct < 50:
		return "HIGH"
	default:
		return "VERY_HIGH"
	}
}

// DeathCrossShort reports whether the 20-day SMA sits below the 50-day SMA.
// ok=false with fewer than 50 bars.
func DeathCrossShort(h *series.History) (bool, bool) {
	closes := h.Closes()
	sma20, ok1 := stats.SMA(closes, 20)
	sma50, ok2 := stats.SMA(closes, 50)
	if !ok1 || !ok2 {
		return false, false
	}
	return sma20 < sma50, true
}
