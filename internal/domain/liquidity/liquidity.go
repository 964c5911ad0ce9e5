// Package liquidity models whether a detected pattern is economically
// exploitable: price impact, slippage, round-trip friction, and expected edge.
package liquidity

import (
	"fmt"
	"math"
	"strings"

	"github.com/stockaura/stockaura/internal/domain/series"
	"github.com/stockaura/stockaura/internal/domain/stats"
)

// Score labels liquidity quality.
type Score string

const (
	ScoreHigh    Score = "HIGH"
	ScoreMedium  Score = "MEDIUM"
	ScoreLow     Score = "LOW"
	ScoreUnknown Score = "UNKNOWN"
)

// Config holds the friction model parameters.
type Config struct {
	Window             int     `yaml:"window" default:"30"`              // recent days for Amihud / slippage / volume
	SlippageFraction   float64 `yaml:"slippage_fraction" default:"0.05"` // share of daily range lost to slippage
	FallbackSlippage   float64 `yaml:"fallback_slippage" default:"0.0005"`
	TransactionCost    float64 `yaml:"transaction_cost" default:"0.001"` // per leg
	MaxPositionVsVol   float64 `yaml:"max_position_vs_volume" default:"0.02"`
	EdgeFrictionRatio  float64 `yaml:"edge_friction_ratio" default:"3"`
	AmihudHigh         float64 `yaml:"amihud_high" default:"0.001"`
	AmihudMedium       float64 `yaml:"amihud_medium" default:"0.01"`
	HighPositionVsVol  float64 `yaml:"high_position_vs_volume" default:"0.005"`
	CriticalVsVol      float64 `yaml:"critical_position_vs_volume" default:"0.05"`
}

// DefaultConfig returns the production friction parameters.
func DefaultConfig() Config {
	return Config{
		Window:            30,
		SlippageFraction:  0.05,
		FallbackSlippage:  0.0005,
		TransactionCost:   0.001,
		MaxPositionVsVol:  0.02,
		EdgeFrictionRatio: 3,
		AmihudHigh:        0.001,
		AmihudMedium:      0.01,
		HighPositionVsVol: 0.005,
		CriticalVsVol:     0.05,
	}
}

// Assessment is the full liquidity/friction verdict.
type Assessment struct {
	AvgDailyVolume    float64  `json:"avg_daily_volume"`
	Amihud            *float64 `json:"amihud_illiquidity,omitempty"`
	PositionVsVolume  *float64 `json:"position_size_vs_volume,omitempty"`
	SlippagePct       float64  `json:"estimated_slippage_pct"`
	TotalFrictionPct  float64  `json:"total_friction_pct"`
	ExpectedEdgePct   *float64 `json:"expected_edge_pct,omitempty"`
	LiquidEnough      *bool    `json:"is_liquid_enough,omitempty"`
	LiquidityFailed   bool     `json:"liquidity_failed"` // position-size cause, distinct from a pattern failure
	Score             Score    `json:"liquidity_score"`
	Warning           string   `json:"liquidity_warning,omitempty"`
}

// Inputs feeds Assess. CalculatedShares is the intended pre-rounding,
// pre-affordability position: the market-impact question is about what the
// sizing model wanted, not what the account could afford.
type Inputs struct {
	History          *series.History
	CalculatedShares float64
	SharesOK         bool
	MomentumCorr     float64
	MomentumOK       bool
	AnnualVolPct     float64
	VolOK            bool
}

// Assess estimates Amihud illiquidity, dynamic slippage, round-trip friction,
// and expected statistical edge, then decides whether the intended position
// is executable without excessive market impact.
func Assess(in Inputs, cfg Config) Assessment {
	h := in.History
	bars := h.Tail(cfg.Window + 1)

	var out Assessment

	// 30-day average volume.
	vols := make([]float64, 0, len(bars))
	for _, b := range bars[1:] {
		vols = append(vols, b.Volume)
	}
	if len(vols) == 0 {
		vols = []float64{0}
	}
	avgVol, _ := stats.Mean(vols)
	out.AvgDailyVolume = avgVol

	// Amihud illiquidity: |return| / (volume * close), epsilon-guarded.
	var illiq []float64
	for i := 1; i < len(bars); i++ {
		prev := bars[i-1].Close
		if prev <= 0 {
			continue
		}
		ret := (bars[i].Close - prev) / prev
		illiq = append(illiq, math.Abs(ret)/(bars[i].Volume*bars[i].Close+1e-10))
	}
	if am, ok := stats.Mean(illiq); ok {
		out.Amihud = &am
	}

	// Dynamic slippage from the recent daily range; fixed fallback when the
	// range data is degenerate.
	var ranges []float64
	for _, b := range bars {
		if b.Close > 0 && b.High >= b.Low {
			ranges = append(ranges, (b.High-b.Low)/b.Close)
		}
	}
	slippage := cfg.FallbackSlippage
	if avgRange, ok := stats.Mean(ranges); ok && avgRange > 0 {
		slippage = avgRange * cfg.SlippageFraction
	}
	out.SlippagePct = slippage * 100

	// Round trip: in + out.
	out.TotalFrictionPct = 2 * (slippage + cfg.TransactionCost) * 100

	if in.MomentumOK && in.VolOK {
		edge := math.Abs(in.MomentumCorr) * in.AnnualVolPct
		out.ExpectedEdgePct = &edge
	}

	if in.SharesOK && avgVol > 0 {
		pv := in.CalculatedShares / avgVol
		out.PositionVsVolume = &pv
	}

	if out.PositionVsVolume != nil && out.ExpectedEdgePct != nil {
		liquid := *out.PositionVsVolume < cfg.MaxPositionVsVol &&
			*out.ExpectedEdgePct > cfg.EdgeFrictionRatio*out.TotalFrictionPct
		out.LiquidEnough = &liquid
		// A position that is itself too large for the market is a different
		// failure from an edge that cannot cover friction.
		out.LiquidityFailed = *out.PositionVsVolume >= cfg.MaxPositionVsVol
	}

	out.Score = scoreOf(out.Amihud, out.PositionVsVolume, cfg)
	if out.Score == ScoreLow || (out.PositionVsVolume != nil && *out.PositionVsVolume > cfg.MaxPositionVsVol) {
		out.Warning = warningFor(out.Amihud, out.PositionVsVolume, cfg)
	}
	return out
}

func scoreOf(amihud, posVsVol *float64, cfg Config) Score {
	if amihud == nil || posVsVol == nil {
		return ScoreUnknown
	}
	if *amihud < cfg.AmihudHigh && *posVsVol < cfg.HighPositionVsVol {
		return ScoreHigh
	}
	if *amihud < cfg.AmihudMedium && *posVsVol < cfg.MaxPositionVsVol {
		return ScoreMedium
	}
	return ScoreLow
}

func warningFor(amihud, posVsVol *float64, cfg Config) string {
	var warnings []string
	if posVsVol != nil {
		switch {
		case *posVsVol > cfg.CriticalVsVol:
			warnings = append(warnings, fmt.Sprintf("CRITICAL: position exceeds %.0f%% of daily volume - may not be executable", cfg.CriticalVsVol*100))
		case *posVsVol > cfg.MaxPositionVsVol:
			warnings = append(warnings, fmt.Sprintf("position is %.2f%% of daily volume - expect heavy slippage", *posVsVol*100))
		}
	}
	if amihud != nil && *amihud > cfg.AmihudMedium {
		warnings = append(warnings, "instrument is illiquid - high price impact on large orders")
	}
	return strings.Join(warnings, " | ")
}
