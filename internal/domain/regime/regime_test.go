package regime

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// persistentReturns produces a return series with strong positive
// autocorrelation (AR(1), phi close to 1) so DFA should read H > 0.5.
func persistentReturns(n int, phi float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	prev := 0.0
	for i := range out {
		prev = phi*prev + rng.NormFloat64()*0.01
		out[i] = prev
	}
	return out
}

func whiteNoise(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.NormFloat64() * 0.01
	}
	return out
}

// antipersistentReturns alternate around zero so increments anticorrelate.
func antipersistentReturns(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	prev := 0.0
	for i := range out {
		x := -0.9*prev + rng.NormFloat64()*0.002
		out[i] = x - prev
		prev = x
	}
	return out
}

func TestClassify(t *testing.T) {
	assert.Equal(t, Trending, Classify(0.60, 0.55, 0.45))
	assert.Equal(t, MeanReverting, Classify(0.40, 0.55, 0.45))
	assert.Equal(t, RandomWalk, Classify(0.50, 0.55, 0.45))
	assert.Equal(t, RandomWalk, Classify(0.55, 0.55, 0.45), "band edges are inclusive of random walk")
}

func TestHurstDFAWhiteNoiseNearHalf(t *testing.T) {
	h, ok := HurstDFA(whiteNoise(1000, 3), DefaultDFAConfig())
	require.True(t, ok)
	assert.InDelta(t, 0.5, h, 0.12)
}

func TestHurstDFAPersistentSeriesHigh(t *testing.T) {
	h, ok := HurstDFA(persistentReturns(1000, 0.95, 5), DefaultDFAConfig())
	require.True(t, ok)
	assert.Greater(t, h, 0.7)
}

func TestHurstDFAAntipersistentSeriesLow(t *testing.T) {
	h, ok := HurstDFA(antipersistentReturns(1000, 7), DefaultDFAConfig())
	require.True(t, ok)
	assert.Less(t, h, 0.45)
}

func TestHurstDFAInsufficientData(t *testing.T) {
	_, ok := HurstDFA(whiteNoise(10, 1), DefaultDFAConfig())
	assert.False(t, ok)

	_, ok = HurstDFA(make([]float64, 500), DefaultDFAConfig())
	assert.False(t, ok, "constant series has zero fluctuation at every scale")
}

func TestEstimatorDeterministic(t *testing.T) {
	returns := persistentReturns(600, 0.9, 9)
	e := NewEstimator(DefaultDFAConfig(), 30, 1.5, 0.55, 0.45, 42)

	a, ok := e.Estimate(returns)
	require.True(t, ok)
	b, ok := e.Estimate(returns)
	require.True(t, ok)
	assert.Equal(t, a, b, "same seed must reproduce the estimate exactly")
}

func TestEstimatorPersistentSeriesSignificant(t *testing.T) {
	returns := persistentReturns(800, 0.95, 13)
	e := NewEstimator(DefaultDFAConfig(), 30, 1.5, 0.55, 0.45, 42)

	est, ok := e.Estimate(returns)
	require.True(t, ok)
	assert.False(t, est.BaselineFailed)
	assert.GreaterOrEqual(t, est.ValidShuffles, 10)
	assert.Equal(t, Trending, est.Regime)
	assert.True(t, est.Significant, "shuffling destroys persistence, so real H should stand out")
	assert.True(t, est.SignificantRegime())
	// Shuffled copies should look like white noise.
	assert.InDelta(t, 0.5, est.ShuffledMean, 0.12)
}

func TestEstimatorWhiteNoiseNotSignificantRegime(t *testing.T) {
	returns := whiteNoise(800, 17)
	e := NewEstimator(DefaultDFAConfig(), 30, 1.5, 0.55, 0.45, 42)

	est, ok := e.Estimate(returns)
	require.True(t, ok)
	assert.False(t, est.SignificantRegime(), "iid noise carries no regime information")
}

func TestEstimatorZeroShufflesBaselineFailed(t *testing.T) {
	e := NewEstimator(DefaultDFAConfig(), 0, 1.5, 0.55, 0.45, 42)
	est, ok := e.Estimate(persistentReturns(400, 0.9, 21))
	require.True(t, ok)
	assert.True(t, est.BaselineFailed)
	assert.False(t, est.Significant)
}

func TestStabilityGrades(t *testing.T) {
	base := StabilityInputs{
		MomentumInOK: true, MomentumOutOK: true,
		TrendingAbove: 0.55, MeanRevBelow: 0.45,
		WeakCorrFloor: 0.05, HoldMagnitude: 0.05,
	}

	held := base
	held.MomentumIn, held.MomentumOut = 0.20, 0.15
	s, ok := Stability(held)
	require.True(t, ok)
	assert.Equal(t, 1.0, s)

	weaker := base
	weaker.MomentumIn, weaker.MomentumOut = 0.20, 0.02
	s, _ = Stability(weaker)
	assert.Equal(t, 0.5, s)

	flipped := base
	flipped.MomentumIn, flipped.MomentumOut = 0.20, -0.15
	s, _ = Stability(flipped)
	assert.Equal(t, 0.0, s)

	tooWeak := base
	tooWeak.MomentumIn, tooWeak.MomentumOut = 0.03, 0.20
	s, _ = Stability(tooWeak)
	assert.Equal(t, 0.0, s, "in-sample signal below the floor cannot be assessed")
}

func TestStabilityHurstDisagreementCap(t *testing.T) {
	in := StabilityInputs{
		MomentumIn: 0.20, MomentumInOK: true,
		MomentumOut: 0.15, MomentumOutOK: true,
		HurstIn: 0.65, HurstInOK: true, HurstInSignif: true,
		HurstOut: 0.40, HurstOutOK: true,
		TrendingAbove: 0.55, MeanRevBelow: 0.45,
		WeakCorrFloor: 0.05, HoldMagnitude: 0.05,
	}
	s, ok := Stability(in)
	require.True(t, ok)
	assert.Equal(t, 0.5, s, "regime type reversal caps an otherwise held pattern")

	// Insignificant in-sample Hurst never caps.
	in.HurstInSignif = false
	s, _ = Stability(in)
	assert.Equal(t, 1.0, s)
}

func TestStabilityMissingLeg(t *testing.T) {
	_, ok := Stability(StabilityInputs{MomentumInOK: true})
	assert.False(t, ok)
}
