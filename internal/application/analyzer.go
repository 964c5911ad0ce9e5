// Package application wires the statistical estimators, the liquidity and
// sizing models, and the terminal state machine into the single synchronous
// analysis pipeline. One call, one instrument, one result; no I/O and no
// shared mutable state, so concurrent calls for different instruments need no
// coordination.
package application

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/stockaura/stockaura/internal/config"
	"github.com/stockaura/stockaura/internal/domain/indicators"
	"github.com/stockaura/stockaura/internal/domain/liquidity"
	"github.com/stockaura/stockaura/internal/domain/momentum"
	"github.com/stockaura/stockaura/internal/domain/position"
	"github.com/stockaura/stockaura/internal/domain/regime"
	"github.com/stockaura/stockaura/internal/domain/series"
	"github.com/stockaura/stockaura/internal/domain/signal"
	"github.com/stockaura/stockaura/internal/domain/stats"
)

// minHurstSamples is the smallest training/test partition the DFA estimator
// is asked to judge; below this the Hurst field stays undefined.
const minHurstSamples = 100

// Analyzer runs the predictability-and-decision engine.
type Analyzer struct {
	cfg config.Engine
}

// NewAnalyzer builds an analyzer from engine configuration.
func NewAnalyzer(cfg config.Engine) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Analyze turns one instrument's bar history into a Result. Terminal errors
// (AnalysisError) cover only input/data problems; every statistical
// degeneracy is absorbed locally by leaving the affected field undefined.
func (a *Analyzer) Analyze(h *series.History, inst Instrument) (*Result, error) {
	if h == nil || h.Len() == 0 {
		return nil, &AnalysisError{Kind: ErrNoData, Ticker: inst.Ticker, Detail: "no bars supplied"}
	}
	if h.Len() < a.cfg.MinBars {
		return nil, &AnalysisError{
			Kind:   ErrInsufficientHistory,
			Ticker: inst.Ticker,
			Detail: fmt.Sprintf("%d bars, need at least %d", h.Len(), a.cfg.MinBars),
		}
	}

	price := inst.CurrentPrice
	if price <= 0 {
		price = h.Last().Close
		inst.CurrentPrice = price
	}

	res := &Result{
		Instrument: inst,
		DataPoints: h.Len(),
		Period:     a.cfg.Period,
		WindowDays: a.cfg.WindowDays,
	}

	daily := h.DailyReturns()
	if risk, ok := indicators.Risk(daily); ok {
		res.Risk = &risk
	}

	// Affordability precheck: if the account cannot carry even one share at
	// this risk tolerance, fail before paying for the shuffle baseline.
	var plan *position.Plan
	if res.Risk != nil {
		if p, ok := position.Size(price, res.Risk.AnnualVolPct, a.cfg.AccountSize, a.cfg.RiskPerTrade); ok {
			if p.Verdict == position.Unexecutable {
				return nil, &AnalysisError{Kind: ErrAccountTooSmall, Ticker: inst.Ticker, Detail: p.Note}
			}
			plan = &p
			res.Position = plan
		}
	}

	res.Recent = indicators.Ladder(h)
	if trend, ok := indicators.Trend(h, a.cfg.TrendBand); ok {
		res.TrendDirection = string(trend)
	}
	if z, ok := indicators.ZScore(h, a.cfg.ZWindow); ok {
		res.ZScore = &z
	}
	if z, ok := indicators.ZEMA(h, a.cfg.ZWindow); ok {
		res.ZEMA = &z
	}
	if dc, ok := indicators.DeathCrossShort(h); ok {
		res.DeathCross = &dc
	}

	split := series.SplitAt(daily, a.cfg.TrainFrac)
	pred := a.predictability(h, split, res)
	res.Predictability = pred.result
	res.Stability = pred.stability

	// Liquidity reasons about the intended (pre-rounding) position.
	liqIn := liquidity.Inputs{History: h}
	if plan != nil {
		liqIn.CalculatedShares = plan.CalculatedShares
		liqIn.SharesOK = true
	}
	if pred.result.MomentumCorr != nil {
		liqIn.MomentumCorr = *pred.result.MomentumCorr
		liqIn.MomentumOK = true
	}
	if res.Risk != nil {
		liqIn.AnnualVolPct = res.Risk.AnnualVolPct
		liqIn.VolOK = true
	}
	res.Liquidity = liquidity.Assess(liqIn, a.liquidityConfig())

	decision := signal.Decide(a.signalInputs(res), a.thresholds())
	res.Signal = decision.Signal
	res.Speculative = decision.Speculative

	// Conviction tiering: the minimum passing score halves the position.
	if decision.Speculative && plan != nil && plan.Verdict == position.Accepted {
		res.UnhalvedShares = plan.HalveForSpeculative()
	}

	// Stop side follows the final signal direction.
	if plan != nil && plan.Verdict == position.Accepted {
		stop := plan.StopLossLong
		if res.Signal.ShortSide() {
			stop = plan.StopLossShort
		}
		res.StopLossPrice = &stop
	}

	// A pattern-caused veto reports zero exploitable edge; a position-size
	// liquidity failure keeps the measured edge so the caller can see what
	// was left on the table.
	if res.Signal == signal.DoNotTrade && !res.Liquidity.LiquidityFailed {
		zero := 0.0
		res.Liquidity.ExpectedEdgePct = &zero
	}

	if res.Signal.Tradeable() {
		q := a.tradeQuality(res)
		res.TradeQuality = &q
	}

	res.Warning = a.composeWarning(decision, res)

	log.Debug().
		Str("ticker", inst.Ticker).
		Int("score", res.Predictability.Score).
		Str("signal", string(res.Signal)).
		Msg("analysis complete")
	return res, nil
}

type predictabilityOutcome struct {
	result    Predictability
	stability *float64
}

// predictability runs the statistical battery on the train/test split and
// aggregates the conviction score.
func (a *Analyzer) predictability(h *series.History, split series.Split, res *Result) predictabilityOutcome {
	var out predictabilityOutcome
	hc := a.cfg.Hurst

	// Hurst via DFA with shuffle baseline, in-sample.
	dfa := regime.DFAConfig{MinBox: hc.MinBox, MaxBox: hc.MaxBox, NScales: hc.NScales}
	var inEst regime.Estimate
	var inEstOK bool
	if len(split.Train) >= minHurstSamples {
		est := regime.NewEstimator(dfa, hc.Shuffles, hc.SigmaThreshold, hc.TrendingAbove, hc.MeanRevertingBelow, a.cfg.Seed)
		if e, ok := est.Estimate(split.Train); ok {
			inEst, inEstOK = e, true
			out.result.Hurst = f64ptr(e.Hurst)
			out.result.HurstSignificant = e.Significant
			if !e.BaselineFailed {
				out.result.HurstShuffledMean = f64ptr(e.ShuffledMean)
			}
		}
	}

	// Out-of-sample Hurst: fewer shuffle trials, value feeds only the
	// stability check.
	var oosHurst float64
	var oosHurstOK bool
	if len(split.Test) >= minHurstSamples {
		est := regime.NewEstimator(dfa, hc.ShufflesOOS, hc.SigmaThreshold, hc.TrendingAbove, hc.MeanRevertingBelow, a.cfg.Seed+1)
		if e, ok := est.Estimate(split.Test); ok {
			oosHurst, oosHurstOK = e.Hurst, true
			out.result.HurstOOS = f64ptr(e.Hurst)
		}
	}

	// Block momentum, in-sample and out-of-sample.
	mc := a.cfg.Momentum
	momIn, momInOK := momentum.BlockCorrelation(split.Train, mc.BlockDays)
	if momInOK {
		out.result.MomentumCorr = f64ptr(momIn)
	}
	momOut, momOutOK := momentum.BlockCorrelation(split.Test, mc.BlockDays)
	if momOutOK {
		out.result.MomentumCorrOOS = f64ptr(momOut)
	}

	// Conditional mean reversion after extremes.
	if rev, ok := momentum.MeanReversion(split.Train, a.cfg.WindowDays); ok {
		out.result.MeanRevUp = f64ptr(rev.AfterUp)
		out.result.MeanRevDown = f64ptr(rev.AfterDown)
	}
	if rev, ok := momentum.MeanReversion(split.Test, a.cfg.WindowDays); ok {
		out.result.MeanRevUpOOS = f64ptr(rev.AfterUp)
		out.result.MeanRevDownOOS = f64ptr(rev.AfterDown)
	}

	// Volume-price confirmation over recent bars.
	if vc, ok := momentum.ConfirmVolume(h, a.volumeConfig()); ok {
		res.Volume = &vc
		out.result.VolumeConfirming = &vc.Confirming
	}

	// Legacy tests: computed and reported, never scored.
	if p, ok := stats.LjungBox(split.Train, 10); ok {
		out.result.LjungBoxP = f64ptr(p)
	}
	if p, ok := stats.ADF(h.Closes()); ok {
		out.result.ADFP = f64ptr(p)
	}

	// Regime stability across the split.
	stab, stabOK := regime.Stability(regime.StabilityInputs{
		MomentumIn:    momIn,
		MomentumInOK:  momInOK,
		MomentumOut:   momOut,
		MomentumOutOK: momOutOK,
		HurstIn:       inEst.Hurst,
		HurstInOK:     inEstOK,
		HurstInSignif: inEst.Significant,
		HurstOut:      oosHurst,
		HurstOutOK:    oosHurstOK,
		TrendingAbove: hc.TrendingAbove,
		MeanRevBelow:  hc.MeanRevertingBelow,
		WeakCorrFloor: a.cfg.Stability.WeakCorrFloor,
		HoldMagnitude: a.cfg.Stability.HoldMagnitude,
	})
	if stabOK {
		out.stability = f64ptr(stab)
	}

	// Conviction score: one point per independent line of evidence.
	score := 0
	if inEstOK && inEst.SignificantRegime() {
		score++
	}
	if momInOK && math.Abs(momIn) > mc.CorrThreshold {
		score++
	}
	if out.result.MeanRevUp != nil && out.result.MeanRevDown != nil &&
		math.Abs(*out.result.MeanRevUp) > mc.RevThreshold && math.Abs(*out.result.MeanRevDown) > mc.RevThreshold {
		score++
	}
	if stabOK && stab >= a.cfg.Signal.MinStability {
		score++
	}
	if out.result.VolumeConfirming != nil && *out.result.VolumeConfirming {
		score++
	}
	out.result.Score = score
	return out
}

func (a *Analyzer) signalInputs(res *Result) signal.Inputs {
	in := signal.Inputs{
		Score:           res.Predictability.Score,
		LiquidityFailed: res.Liquidity.LiquidityFailed,
	}
	if res.Stability != nil {
		in.Stability = *res.Stability
		in.StabilityOK = true
	}
	if res.Liquidity.LiquidEnough != nil {
		in.LiquidityOK = true
		in.LiquidEnough = *res.Liquidity.LiquidEnough
	}
	if res.Predictability.MomentumCorr != nil {
		in.Momentum = *res.Predictability.MomentumCorr
		in.MomentumOK = true
	}
	if res.TrendDirection != "" {
		in.Trend = indicators.TrendDirection(res.TrendDirection)
		in.TrendOK = true
	}
	if res.Predictability.Hurst != nil {
		in.Hurst = *res.Predictability.Hurst
		in.HurstOK = true
		in.HurstSignificant = res.Predictability.HurstSignificant
	}
	if res.ZEMA != nil {
		in.ZEMA = *res.ZEMA
		in.ZEMAOK = true
	}
	return in
}

func (a *Analyzer) tradeQuality(res *Result) signal.Quality {
	in := signal.QualityInputs{
		Signal: res.Signal,
		Recent: res.Recent,
		Trend:  indicators.TrendDirection(res.TrendDirection),
	}
	if res.ZEMA != nil {
		in.ZEMA, in.ZEMAOK = *res.ZEMA, true
	}
	if res.Risk != nil {
		in.AnnualVolPct, in.VolOK = res.Risk.AnnualVolPct, true
		if res.Risk.Sharpe != nil {
			in.Sharpe, in.SharpeOK = *res.Risk.Sharpe, true
		}
	}
	if res.Volume != nil {
		in.VolumeRatio, in.VolumeOK = res.Volume.UpDownRatio, true
		in.VolumeConfirm = res.Volume.Confirming
	}
	return signal.ScoreQuality(in)
}

// composeWarning lists every specific validation that failed, concatenated
// with any pre-existing liquidity warning.
func (a *Analyzer) composeWarning(dec signal.Decision, res *Result) string {
	warnings := dec.Warnings
	if res.Signal == signal.DoNotTrade || res.Signal == signal.NoClearSignal {
		if res.Predictability.Hurst != nil && !res.Predictability.HurstSignificant {
			warnings = append(warnings, "Hurst exponent not significant against shuffled baseline")
		}
		if res.Predictability.VolumeConfirming != nil && !*res.Predictability.VolumeConfirming {
			warnings = append(warnings, "volume not confirming the prevailing trend")
		}
	}
	return signal.ComposeWarnings(signal.Decision{Warnings: warnings}, res.Liquidity.Warning)
}

func (a *Analyzer) liquidityConfig() liquidity.Config {
	lc := liquidity.DefaultConfig()
	c := a.cfg.Liquidity
	lc.Window = c.Window
	lc.SlippageFraction = c.SlippageFraction
	lc.FallbackSlippage = c.FallbackSlippage
	lc.TransactionCost = c.TransactionCost
	lc.MaxPositionVsVol = c.MaxPositionVsVol
	lc.EdgeFrictionRatio = c.EdgeFrictionRatio
	return lc
}

func (a *Analyzer) volumeConfig() momentum.VolumeConfig {
	v := a.cfg.Volume
	return momentum.VolumeConfig{
		Lookback:       v.Lookback,
		MinSideDays:    v.MinSideDays,
		TrendDays:      v.TrendDays,
		TrendBand:      v.TrendBand,
		ConfirmUpOver:  v.ConfirmUpOver,
		ConfirmDnUnder: v.ConfirmDnUnder,
	}
}

func (a *Analyzer) thresholds() signal.Thresholds {
	s := a.cfg.Signal
	return signal.Thresholds{
		MinScore:         s.MinScore,
		MinStability:     s.MinStability,
		MomentumFloor:    s.MomentumFloor,
		StrongMomentum:   s.StrongMomentum,
		HurstTrending:    a.cfg.Hurst.TrendingAbove,
		ZOverbought:      s.ZOverbought,
		ZPullback:        s.ZPullback,
		SpeculativeScore: s.MinScore,
	}
}

func f64ptr(v float64) *float64 { return &v }
