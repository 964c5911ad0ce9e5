package scan

import "github.com/stockaura/stockaura/internal/application"

// signalScores grades the terminal signal for ranking. A veto is a strong
// negative so vetoed instruments sink below everything tradeable.
var signalScores = map[string]float64{
	"BUY_UPTREND":          20,
	"BUY_PULLBACK":         20,
	"SHORT_DOWNTREND":      18,
	"BUY_MOMENTUM":         15,
	"SHORT_MOMENTUM":       15,
	"SHORT_BOUNCES_ONLY":   12,
	"WAIT_PULLBACK":        8,
	"WAIT_SHORT_BOUNCE":    8,
	"WAIT_OR_SHORT_BOUNCE": 5,
	"WAIT_FOR_REVERSAL":    5,
	"WAIT_FOR_TREND":       3,
	"NO_CLEAR_SIGNAL":      0,
	"DO_NOT_TRADE":         -50,
}

// CompositeScore ranks an analysis for the top-N table:
// predictability*10 + stability*20 + edge/friction bonus + signal quality
// + liquidity bonus - volatility penalty.
func CompositeScore(res *application.Result) float64 {
	score := float64(res.Predictability.Score) * 10

	if res.Stability != nil {
		score += *res.Stability * 20
	}

	// Edge over friction, capped at 20 once the edge clears 3x friction.
	if res.Liquidity.ExpectedEdgePct != nil && res.Liquidity.TotalFrictionPct > 0 {
		ratio := *res.Liquidity.ExpectedEdgePct / res.Liquidity.TotalFrictionPct
		if ratio > 3 {
			bonus := (ratio - 3) * 4
			if bonus > 20 {
				bonus = 20
			}
			score += bonus
		}
	}

	// Signal quality table; speculative variants score as their base signal.
	if s, ok := signalScores[string(res.Signal.Base())]; ok {
		score += s
	}

	if !res.Liquidity.LiquidityFailed {
		score += 10
	}

	if res.Risk != nil && res.Risk.AnnualVolPct > 50 {
		score -= 5
	}
	return score
}
