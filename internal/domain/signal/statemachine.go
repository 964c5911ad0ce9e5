package signal

import (
	"fmt"
	"math"
	"strings"

	"github.com/stockaura/stockaura/internal/domain/indicators"
)

// Thresholds are the named guard constants of the decision tree. Empirically
// chosen; configurable rather than hard invariants.
type Thresholds struct {
	MinScore         int     `yaml:"min_score" default:"2"`          // hard gate 1
	MinStability     float64 `yaml:"min_stability" default:"0.5"`    // hard gate 2
	MomentumFloor    float64 `yaml:"momentum_floor" default:"0.08"`  // gate 4 and refinement
	StrongMomentum   float64 `yaml:"strong_momentum" default:"0.15"` // neutral-trend wait threshold
	HurstTrending    float64 `yaml:"hurst_trending" default:"0.55"`
	ZOverbought      float64 `yaml:"z_overbought" default:"1.0"`
	ZPullback        float64 `yaml:"z_pullback" default:"-0.5"`
	SpeculativeScore int     `yaml:"speculative_score" default:"2"` // exactly this score = speculative tier
}

// DefaultThresholds returns the production guard constants.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinScore:         2,
		MinStability:     0.5,
		MomentumFloor:    0.08,
		StrongMomentum:   0.15,
		HurstTrending:    0.55,
		ZOverbought:      1.0,
		ZPullback:        -0.5,
		SpeculativeScore: 2,
	}
}

// Inputs are the guard operands, optional members in (value, ok) form.
type Inputs struct {
	Score            int
	Stability        float64
	StabilityOK      bool
	LiquidEnough     bool
	LiquidityOK      bool // whether the liquidity verdict was computable at all
	LiquidityFailed  bool // position-size cause
	Momentum         float64
	MomentumOK       bool
	Trend            indicators.TrendDirection
	TrendOK          bool
	Hurst            float64
	HurstOK          bool
	HurstSignificant bool
	ZEMA             float64
	ZEMAOK           bool
}

// Decision is the state machine output.
type Decision struct {
	Signal      Signal   `json:"signal"`
	Speculative bool     `json:"speculative"`
	Warnings    []string `json:"warnings,omitempty"`
	// EdgeSuppressed is set when a pattern failure (not a position-size
	// liquidity failure) produced DO_NOT_TRADE; the expected edge is then
	// forced to zero downstream.
	EdgeSuppressed bool `json:"edge_suppressed"`
}

// Decide runs the guards in fixed, documented order. Evaluated exactly once
// per analysis; no retries, no re-entry.
func Decide(in Inputs, th Thresholds) Decision {
	var warnings []string

	// Gate 1: minimum predictability evidence.
	if in.Score < th.MinScore {
		warnings = append(warnings, fmt.Sprintf("predictability score %d below minimum %d", in.Score, th.MinScore))
	}
	// Gate 2: the pattern must survive out-of-sample.
	if in.StabilityOK && in.Stability < th.MinStability {
		if in.Stability == 0 {
			warnings = append(warnings, "regime stability 0: pattern reversed or too weak out-of-sample")
		} else {
			warnings = append(warnings, fmt.Sprintf("regime stability %.2f below minimum %.2f", in.Stability, th.MinStability))
		}
	}
	// Gate 3: the position must be executable and the edge must cover friction.
	if !in.LiquidityOK || !in.LiquidEnough {
		if in.LiquidityFailed {
			warnings = append(warnings, "position too large for market volume")
		} else {
			warnings = append(warnings, "expected edge does not cover trading friction")
		}
	}
	if len(warnings) > 0 {
		return Decision{
			Signal:         DoNotTrade,
			Warnings:       warnings,
			EdgeSuppressed: !in.LiquidityFailed,
		}
	}

	// Gate 4: momentum must be measurable and strong enough.
	if !in.MomentumOK || math.Abs(in.Momentum) <= th.MomentumFloor {
		return Decision{Signal: NoClearSignal, Warnings: []string{"momentum correlation too weak or undefined"}}
	}

	// Gate 5: the 1-year trend must pick a side.
	if !in.TrendOK || (in.Trend != indicators.TrendUp && in.Trend != indicators.TrendDown) {
		if math.Abs(in.Momentum) > th.StrongMomentum {
			return Decision{Signal: WaitForTrend, Warnings: []string{"strong momentum but no clear trend direction"}}
		}
		return Decision{
			Signal:         DoNotTrade,
			Warnings:       []string{"weak momentum in a directionless market"},
			EdgeSuppressed: true,
		}
	}

	// Gate 6: directional refinement.
	sig := refine(in, th)

	// Gate 7: conviction tiering. Minimum passing score = speculative: halve
	// position size and mark the signal.
	dec := Decision{Signal: sig}
	if in.Score == th.SpeculativeScore && sig.Actionable() {
		dec.Signal = sig.AsSpeculative()
		dec.Speculative = true
		dec.Warnings = append(dec.Warnings, "minimum passing evidence: speculative tier, position halved")
	}
	return dec
}

// refine stratifies a clear trend by momentum sign, trending regime, and
// exponential z-score.
func refine(in Inputs, th Thresholds) Signal {
	trendingRegime := in.HurstOK && in.HurstSignificant && in.Hurst > th.HurstTrending

	if in.Trend == indicators.TrendUp {
		if in.Momentum <= th.MomentumFloor {
			// Momentum faded inside an uptrend: reversal watch.
			return WaitOrShortBounce
		}
		if !trendingRegime {
			return BuyMomentum
		}
		if !in.ZEMAOK {
			return BuyUptrend
		}
		switch {
		case in.ZEMA > th.ZOverbought:
			return WaitPullback
		case in.ZEMA > th.ZPullback:
			return BuyUptrend
		default:
			return BuyPullback
		}
	}

	// Downtrend mirror. Positive block momentum means the downtrend persists.
	if in.Momentum <= th.MomentumFloor {
		return WaitForReversal
	}
	if !trendingRegime {
		return ShortMomentum
	}
	if !in.ZEMAOK {
		return ShortDowntrend
	}
	switch {
	case in.ZEMA < -th.ZOverbought:
		return WaitShortBounce
	case in.ZEMA < -th.ZPullback:
		return ShortDowntrend
	default:
		return ShortBouncesOnly
	}
}

// ComposeWarnings joins the decision warnings with any pre-existing liquidity
// warning into the user-visible failure explanation.
func ComposeWarnings(dec Decision, liquidityWarning string) string {
	parts := make([]string, 0, len(dec.Warnings)+1)
	parts = append(parts, dec.Warnings...)
	if liquidityWarning != "" {
		parts = append(parts, liquidityWarning)
	}
	return strings.Join(parts, "; ")
}
