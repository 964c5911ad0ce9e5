package regime

import (
	"math"
	"math/rand"

	"github.com/stockaura/stockaura/internal/domain/stats"
)

// Estimate is a Hurst estimate together with its shuffled-baseline context.
type Estimate struct {
	Hurst          float64 `json:"hurst"`
	Significant    bool    `json:"significant"`
	ShuffledMean   float64 `json:"shuffled_mean"`
	ShuffledStd    float64 `json:"shuffled_std"`
	ValidShuffles  int     `json:"valid_shuffles"`
	Regime         Type    `json:"regime"`
	BaselineFailed bool    `json:"baseline_failed"` // too few valid shuffles to judge
}

// Estimator computes DFA Hurst exponents with a randomized-shuffle
// significance baseline. Randomness is local to the estimator, seeded
// explicitly, so repeated runs on the same input are byte-identical.
type Estimator struct {
	dfa                DFAConfig
	shuffles           int
	sigmaThreshold     float64
	trendingAbove      float64
	meanRevertingBelow float64
	seed               int64
}

// NewEstimator builds an estimator. shuffles is the trial count for the null
// baseline; sigmaThreshold is the |H-mean|/std cutoff for significance.
func NewEstimator(dfa DFAConfig, shuffles int, sigmaThreshold, trendingAbove, meanRevertingBelow float64, seed int64) *Estimator {
	return &Estimator{
		dfa:                dfa,
		shuffles:           shuffles,
		sigmaThreshold:     sigmaThreshold,
		trendingAbove:      trendingAbove,
		meanRevertingBelow: meanRevertingBelow,
		seed:               seed,
	}
}

// Estimate computes H for the series and tests it against the shuffled null.
// Shuffling destroys temporal structure while preserving the marginal
// distribution; a real H indistinguishable from its shuffled copies carries
// no regime information. At least 10 valid shuffled estimates are required
// before significance is judged at all.
func (e *Estimator) Estimate(returns []float64) (Estimate, bool) {
	h, ok := HurstDFA(returns, e.dfa)
	if !ok {
		return Estimate{}, false
	}
	est := Estimate{
		Hurst:  h,
		Regime: Classify(h, e.trendingAbove, e.meanRevertingBelow),
	}

	rng := rand.New(rand.NewSource(e.seed))
	shuffled := make([]float64, len(returns))
	copy(shuffled, returns)

	var nullHs []float64
	for i := 0; i < e.shuffles; i++ {
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		if hs, ok := HurstDFA(shuffled, e.dfa); ok && !math.IsNaN(hs) {
			nullHs = append(nullHs, hs)
		}
	}
	est.ValidShuffles = len(nullHs)
	if len(nullHs) < 10 {
		est.BaselineFailed = true
		return est, true
	}

	mean, _ := stats.Mean(nullHs)
	std, _ := stats.SampleStdDev(nullHs)
	est.ShuffledMean = mean
	est.ShuffledStd = std
	if std > 0 && math.Abs(h-mean)/std > e.sigmaThreshold {
		est.Significant = true
	}
	return est, true
}

// SignificantRegime reports whether the estimate is a significant trending or
// mean-reverting classification; only those contribute to predictability.
func (est Estimate) SignificantRegime() bool {
	return est.Significant && est.Regime != RandomWalk
}
