package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stockaura/stockaura/internal/application"
	"github.com/stockaura/stockaura/internal/domain/liquidity"
	"github.com/stockaura/stockaura/internal/domain/momentum"
	"github.com/stockaura/stockaura/internal/domain/position"
	"github.com/stockaura/stockaura/internal/domain/signal"
)

func f64(v float64) *float64 { return &v }

func TestWriteFullResult(t *testing.T) {
	stop := 94.20
	res := &application.Result{
		Instrument: application.Instrument{Ticker: "AAPL", Title: "Apple Inc.", CurrentPrice: 100, Currency: "USD"},
		DataPoints: 1250,
		Period:     "5y",
		WindowDays: 5,
		Predictability: application.Predictability{
			LjungBoxP:        f64(0.012),
			ADFP:             f64(0.34),
			Hurst:            f64(0.61),
			HurstSignificant: true,
			HurstShuffledMean: f64(0.50),
			MomentumCorr:     f64(0.21),
			MomentumCorrOOS:  f64(-0.05),
			MeanRevUp:        f64(-0.012),
			MeanRevDown:      f64(0.018),
			Score:            4,
		},
		Stability:      f64(0.5),
		TrendDirection: "UP",
		Volume:         &momentum.VolumeConfirmation{UpDownRatio: 1.4, Trend3M: "UP", Confirming: true},
		Liquidity: liquidity.Assessment{
			SlippagePct:      0.05,
			TotalFrictionPct: 0.3,
			ExpectedEdgePct:  f64(4.2),
			Score:            liquidity.ScoreHigh,
		},
		Position: &position.Plan{
			Verdict:         "ACCEPTED",
			SuggestedShares: 42,
			PositionRisk:    200,
		},
		Signal:        signal.BuyUptrend,
		StopLossPrice: &stop,
		TradeQuality: &signal.Quality{
			Score: 7.5, Label: "GOOD",
			Components: map[string]float64{"trend_alignment": 2, "sharpe": 1.5},
		},
		Warning: "some pattern degradation out-of-sample",
	}

	var sb strings.Builder
	Write(&sb, res)
	out := sb.String()

	assert.Contains(t, out, "AAPL - STATISTICAL ANALYSIS")
	assert.Contains(t, out, "Apple Inc.")
	assert.Contains(t, out, "REGIME STABILITY (train vs test): 50%")
	assert.Contains(t, out, "1. AUTOCORRELATION")
	assert.Contains(t, out, "returns are autocorrelated")
	assert.Contains(t, out, "unit root")
	assert.Contains(t, out, "momentum: recent moves tend to continue")
	assert.Contains(t, out, "WARNING: strategy direction reversed out-of-sample")
	assert.Contains(t, out, "trending regime")
	assert.Contains(t, out, "volume confirms the trend")
	assert.Contains(t, out, "8. POSITION PLAN")
	assert.Contains(t, out, "suggested shares: 42")
	assert.Contains(t, out, "stop loss (long side): 94.20")
	assert.Contains(t, out, "FINAL SIGNAL: BUY_UPTREND")
	assert.Contains(t, out, "trade quality: 7.5/10 (GOOD)")
	assert.Contains(t, out, "warnings: some pattern degradation")
	assert.Contains(t, out, "Caveats:")
}

func TestWriteSparseResult(t *testing.T) {
	res := &application.Result{
		Instrument: application.Instrument{Ticker: "XYZ"},
		DataPoints: 30,
		Period:     "6mo",
		WindowDays: 5,
		Liquidity:  liquidity.Assessment{Score: liquidity.ScoreUnknown},
		Signal:     signal.DoNotTrade,
	}

	var sb strings.Builder
	Write(&sb, res)
	out := sb.String()

	assert.Contains(t, out, "XYZ - STATISTICAL ANALYSIS")
	assert.Contains(t, out, "(insufficient data)")
	assert.Contains(t, out, "FINAL SIGNAL: DO_NOT_TRADE")
	assert.NotContains(t, out, "POSITION PLAN")
	assert.NotContains(t, out, "trade quality")
}

func TestWriteShortSideStop(t *testing.T) {
	stop := 108.0
	res := &application.Result{
		Instrument: application.Instrument{Ticker: "BEAR"},
		Period:     "5y",
		WindowDays: 5,
		Liquidity:  liquidity.Assessment{Score: liquidity.ScoreMedium},
		Position:   &position.Plan{Verdict: "ACCEPTED", SuggestedShares: 10, PositionRisk: 80},
		Signal:        signal.ShortDowntrend,
		StopLossPrice: &stop,
	}

	var sb strings.Builder
	Write(&sb, res)
	assert.Contains(t, sb.String(), "stop loss (short side): 108.00")
}
