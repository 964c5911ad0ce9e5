// Package report renders one analysis result as a human-readable narration:
// each test's outcome, its caveats, and the final recommendation. Pure
// formatting over the result record; no recomputation.
package report

import (
	"fmt"
	"io"

	"github.com/stockaura/stockaura/internal/application"
)

// Write renders the full narration to w.
func Write(w io.Writer, res *application.Result) {
	line := func(format string, args ...any) { fmt.Fprintf(w, format+"\n", args...) }
	rule := func() { line("%s", "--------------------------------------------------------------------------------") }

	line("================================================================================")
	line("%s - STATISTICAL ANALYSIS (%d-day window, period %s)", res.Instrument.Ticker, res.WindowDays, res.Period)
	line("================================================================================")
	if res.Instrument.Title != "" {
		line("%s  |  last price %.2f %s", res.Instrument.Title, res.Instrument.CurrentPrice, res.Instrument.Currency)
	}
	line("Data points: %d", res.DataPoints)

	if res.Stability != nil {
		line("")
		line("REGIME STABILITY (train vs test): %.0f%%", *res.Stability*100)
		switch {
		case *res.Stability < 0.5:
			line("  WARNING: in-sample pattern did not hold in the held-out period")
		case *res.Stability < 1:
			line("  CAUTION: some pattern degradation out-of-sample")
		default:
			line("  pattern held across periods")
		}
	}
	if res.TrendDirection != "" {
		line("")
		line("Current trend (1-year): %s", res.TrendDirection)
		if res.Recent.OneYear != nil {
			line("1-year return: %.2f%%", *res.Recent.OneYear*100)
		}
	}

	line("")
	line("1. AUTOCORRELATION (Ljung-Box)")
	rule()
	if res.Predictability.LjungBoxP != nil {
		p := *res.Predictability.LjungBoxP
		line("p-value = %.4f", p)
		if p < 0.05 {
			line("  returns are autocorrelated - but correlation strength is not a tradeable edge")
		} else {
			line("  returns look independent (random walk)")
		}
	} else {
		line("(insufficient data)")
	}

	line("")
	line("2. STATIONARITY (Augmented Dickey-Fuller)")
	rule()
	if res.Predictability.ADFP != nil {
		p := *res.Predictability.ADFP
		line("p-value = %.4f", p)
		if p < 0.05 {
			line("  price is stationary (mean-reverting)")
		} else {
			line("  price has a unit root (random walk)")
		}
	} else {
		line("(insufficient data)")
	}

	line("")
	line("3. MEAN REVERSION AFTER EXTREMES")
	rule()
	if res.Predictability.MeanRevUp != nil && res.Predictability.MeanRevDown != nil {
		line("after top-quartile block: next %d-day return = %.2f%%", res.WindowDays, *res.Predictability.MeanRevUp*100)
		line("after bottom-quartile block: next %d-day return = %.2f%%", res.WindowDays, *res.Predictability.MeanRevDown*100)
		if res.Predictability.MeanRevUpOOS != nil && res.Predictability.MeanRevDownOOS != nil {
			line("out-of-sample: %.2f%% / %.2f%%", *res.Predictability.MeanRevUpOOS*100, *res.Predictability.MeanRevDownOOS*100)
		}
	} else {
		line("(insufficient data)")
	}

	line("")
	line("4. MOMENTUM (block-return autocorrelation)")
	rule()
	if res.Predictability.MomentumCorr != nil {
		m := *res.Predictability.MomentumCorr
		line("consecutive block correlation = %.4f", m)
		switch {
		case m > 0.08:
			line("  momentum: recent moves tend to continue")
		case m < -0.08:
			line("  mean reversion: recent moves tend to reverse")
		default:
			line("  no clear pattern")
		}
		if res.Predictability.MomentumCorrOOS != nil {
			o := *res.Predictability.MomentumCorrOOS
			line("out-of-sample correlation = %.4f", o)
			if (m >= 0) != (o >= 0) {
				line("  WARNING: strategy direction reversed out-of-sample")
			}
		}
	} else {
		line("(insufficient data)")
	}

	line("")
	line("5. HURST EXPONENT (DFA, shuffled baseline)")
	rule()
	if res.Predictability.Hurst != nil {
		h := *res.Predictability.Hurst
		line("H = %.4f", h)
		switch {
		case h > 0.55:
			line("  trending regime: follow strength")
		case h < 0.45:
			line("  mean-reverting regime: fade extremes")
		default:
			line("  random walk: no regime edge")
		}
		if res.Predictability.HurstShuffledMean != nil {
			line("shuffled-baseline mean H = %.4f, significant: %v", *res.Predictability.HurstShuffledMean, res.Predictability.HurstSignificant)
		}
		if !res.Predictability.HurstSignificant {
			line("  CAUTION: H is indistinguishable from its shuffled copies")
		}
		if res.Predictability.HurstOOS != nil {
			line("out-of-sample H = %.4f", *res.Predictability.HurstOOS)
		}
	} else {
		line("(insufficient data)")
	}

	line("")
	line("6. VOLUME-PRICE CONFIRMATION")
	rule()
	if res.Volume != nil {
		line("up-day / down-day volume ratio = %.2f (3-month trend %s)", res.Volume.UpDownRatio, res.Volume.Trend3M)
		if res.Volume.Confirming {
			line("  volume confirms the trend")
		} else {
			line("  volume does not confirm the trend")
		}
	} else {
		line("(insufficient data)")
	}

	line("")
	line("7. RISK & COSTS")
	rule()
	if res.Risk != nil {
		if res.Risk.Sharpe != nil {
			line("Sharpe %.2f  |  volatility %.1f%% (%s)  |  annual return %.1f%%",
				*res.Risk.Sharpe, res.Risk.AnnualVolPct, res.Risk.Category, res.Risk.AnnualReturnPct)
		}
		line("  past Sharpe does not predict future performance")
	}
	line("estimated slippage %.3f%%  |  round-trip friction %.3f%%", res.Liquidity.SlippagePct, res.Liquidity.TotalFrictionPct)
	if res.Liquidity.ExpectedEdgePct != nil {
		line("expected edge %.2f%%", *res.Liquidity.ExpectedEdgePct)
	}
	line("liquidity score: %s", res.Liquidity.Score)
	if res.Liquidity.Warning != "" {
		line("  %s", res.Liquidity.Warning)
	}

	if res.Position != nil {
		line("")
		line("8. POSITION PLAN")
		rule()
		line("verdict: %s", res.Position.Verdict)
		if res.Position.SuggestedShares > 0 {
			if res.UnhalvedShares > 0 {
				line("suggested shares: %d (halved from %d, speculative tier)", res.Position.SuggestedShares, res.UnhalvedShares)
			} else {
				line("suggested shares: %d", res.Position.SuggestedShares)
			}
			line("risk amount: %.2f", res.Position.PositionRisk)
		}
		if res.StopLossPrice != nil {
			side := "long"
			if res.Signal.ShortSide() {
				side = "short"
			}
			line("stop loss (%s side): %.2f", side, *res.StopLossPrice)
		}
		if res.Position.Note != "" {
			line("  %s", res.Position.Note)
		}
	}

	line("")
	line("================================================================================")
	line("FINAL SIGNAL: %s", res.Signal)
	line("================================================================================")
	if res.Speculative {
		line("speculative tier: minimum passing evidence, position halved")
	}
	if res.TradeQuality != nil {
		line("trade quality: %.1f/10 (%s)", res.TradeQuality.Score, res.TradeQuality.Label)
		for name, score := range res.TradeQuality.Components {
			line("  %-16s %.1f/2", name, score)
		}
	}
	if res.Warning != "" {
		line("warnings: %s", res.Warning)
	}
	line("")
	line("Caveats: all statistics are historical; in-sample results overfit; obvious")
	line("patterns are arbitraged; costs and regime changes erode thin edges. Use as")
	line("one input among many, with conservative sizing and hard stops.")
}
