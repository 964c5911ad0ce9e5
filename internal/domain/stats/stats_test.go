package stats

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanAndStdDev(t *testing.T) {
	m, ok := Mean([]float64{1, 2, 3, 4})
	require.True(t, ok)
	assert.InDelta(t, 2.5, m, 1e-12)

	s, ok := StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.True(t, ok)
	assert.InDelta(t, 2.0, s, 1e-12)

	ss, ok := SampleStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.True(t, ok)
	assert.Greater(t, ss, s)

	_, ok = Mean(nil)
	assert.False(t, ok)
	_, ok = SampleStdDev([]float64{1})
	assert.False(t, ok)
}

func TestPearson(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	up := []float64{2, 4, 6, 8, 10}
	dn := []float64{10, 8, 6, 4, 2}

	r, ok := Pearson(xs, up)
	require.True(t, ok)
	assert.InDelta(t, 1.0, r, 1e-12)

	r, ok = Pearson(xs, dn)
	require.True(t, ok)
	assert.InDelta(t, -1.0, r, 1e-12)

	_, ok = Pearson(xs, []float64{7, 7, 7, 7, 7})
	assert.False(t, ok, "constant side has no correlation")

	_, ok = Pearson(xs, xs[:3])
	assert.False(t, ok)
}

func TestPercentileLinearInterpolation(t *testing.T) {
	xs := []float64{15, 20, 35, 40, 50}

	p, ok := Percentile(xs, 25)
	require.True(t, ok)
	assert.InDelta(t, 20.0, p, 1e-12)

	p, _ = Percentile(xs, 50)
	assert.InDelta(t, 35.0, p, 1e-12)

	p, _ = Percentile(xs, 75)
	assert.InDelta(t, 40.0, p, 1e-12)

	p, _ = Percentile(xs, 40)
	assert.InDelta(t, 29.0, p, 1e-12) // between 20 and 35

	p, _ = Percentile(xs, 0)
	assert.Equal(t, 15.0, p)
	p, _ = Percentile(xs, 100)
	assert.Equal(t, 50.0, p)
}

func TestLinearFit(t *testing.T) {
	xs := []float64{0, 1, 2, 3}
	ys := []float64{1, 3, 5, 7} // y = 1 + 2x

	a, b, ok := LinearFit(xs, ys)
	require.True(t, ok)
	assert.InDelta(t, 1.0, a, 1e-12)
	assert.InDelta(t, 2.0, b, 1e-12)

	_, _, ok = LinearFit([]float64{2, 2, 2}, []float64{1, 2, 3})
	assert.False(t, ok, "vertical line has no slope")
}

func TestAutocorrelationsAlternatingSeries(t *testing.T) {
	xs := make([]float64, 100)
	for i := range xs {
		if i%2 == 0 {
			xs[i] = 1
		} else {
			xs[i] = -1
		}
	}
	rho, ok := Autocorrelations(xs, 2)
	require.True(t, ok)
	assert.Less(t, rho[0], -0.9)
	assert.Greater(t, rho[1], 0.9)
}

func TestEWStatsWeightsRecentMore(t *testing.T) {
	// Old level 10, recent level 20: the EW mean should sit well above the
	// arithmetic mean of 15.
	xs := make([]float64, 40)
	for i := range xs {
		if i < 20 {
			xs[i] = 10
		} else {
			xs[i] = 20
		}
	}
	mean, std, ok := EWStats(xs, 5)
	require.True(t, ok)
	assert.Greater(t, mean, 18.0)
	assert.Greater(t, std, 0.0)

	_, _, ok = EWStats([]float64{1}, 5)
	assert.False(t, ok)
}

func TestEWStatsConstantSeries(t *testing.T) {
	mean, std, ok := EWStats([]float64{3, 3, 3, 3, 3}, 3)
	require.True(t, ok)
	assert.InDelta(t, 3.0, mean, 1e-12)
	assert.InDelta(t, 0.0, std, 1e-12)
}

func TestSMAAndRollingStd(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5, 6}
	m, ok := SMA(xs, 3)
	require.True(t, ok)
	assert.InDelta(t, 5.0, m, 1e-12)

	s, ok := RollingStd(xs, 3)
	require.True(t, ok)
	assert.InDelta(t, 1.0, s, 1e-12)

	_, ok = SMA(xs, 7)
	assert.False(t, ok)
}

func TestChiSquareSurvival(t *testing.T) {
	// Median of chi-square with 10 dof is about 9.34.
	p := ChiSquareSurvival(9.34, 10)
	assert.InDelta(t, 0.5, p, 0.01)

	assert.InDelta(t, 1.0, ChiSquareSurvival(0, 10), 1e-9)
	assert.Less(t, ChiSquareSurvival(30, 10), 0.001)
	assert.Greater(t, ChiSquareSurvival(3, 10), 0.97)
}

func TestLjungBoxIndependentSeries(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	xs := make([]float64, 500)
	for i := range xs {
		xs[i] = rng.NormFloat64()
	}
	p, ok := LjungBox(xs, 10)
	require.True(t, ok)
	assert.Greater(t, p, 0.05, "white noise should not reject independence")
}

func TestLjungBoxAutocorrelatedSeries(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	xs := make([]float64, 500)
	prev := 0.0
	for i := range xs {
		prev = 0.8*prev + rng.NormFloat64()
		xs[i] = prev
	}
	p, ok := LjungBox(xs, 10)
	require.True(t, ok)
	assert.Less(t, p, 0.001, "AR(1) with phi=0.8 is strongly autocorrelated")
}

func TestLjungBoxDegenerate(t *testing.T) {
	_, ok := LjungBox([]float64{1, 2, 3}, 10)
	assert.False(t, ok)
	_, ok = LjungBox(make([]float64, 100), 10)
	assert.False(t, ok, "constant series has no autocovariance")
}

func TestADFStationaryVsRandomWalk(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	// Strongly mean-reverting AR(1) level series.
	stationary := make([]float64, 400)
	prev := 0.0
	for i := range stationary {
		prev = 0.2*prev + rng.NormFloat64()
		stationary[i] = prev
	}

	walk := make([]float64, 400)
	level := 100.0
	for i := range walk {
		level += rng.NormFloat64()
		walk[i] = level
	}

	pStat, ok := ADF(stationary)
	require.True(t, ok)
	pWalk, ok := ADF(walk)
	require.True(t, ok)

	assert.Less(t, pStat, 0.05, "mean-reverting series should reject unit root")
	assert.Greater(t, pWalk, pStat)
	assert.GreaterOrEqual(t, pWalk, 0.0)
	assert.LessOrEqual(t, pWalk, 1.0)
}

func TestADFDegenerate(t *testing.T) {
	_, ok := ADF([]float64{1, 2})
	assert.False(t, ok)

	constant := make([]float64, 100)
	for i := range constant {
		constant[i] = 5
	}
	_, ok = ADF(constant)
	assert.False(t, ok)
}

func TestRegularizedGammaBounds(t *testing.T) {
	for _, x := range []float64{0.1, 1, 5, 20} {
		p := ChiSquareSurvival(x, 10)
		assert.False(t, math.IsNaN(p))
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}
