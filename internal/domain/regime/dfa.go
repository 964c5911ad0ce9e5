// Package regime estimates whether a return series trends or mean-reverts.
// The Hurst exponent comes from Detrended Fluctuation Analysis and is only
// trusted when it clears a shuffled-series null baseline.
package regime

import (
	"math"

	"github.com/stockaura/stockaura/internal/domain/stats"
)

// Type classifies the detected regime.
type Type string

const (
	Trending      Type = "TRENDING"
	MeanReverting Type = "MEAN_REVERTING"
	RandomWalk    Type = "RANDOM_WALK"
)

// Classify maps a Hurst exponent to a regime using the configured band.
func Classify(hurst, trendingAbove, meanRevertingBelow float64) Type {
	switch {
	case hurst > trendingAbove:
		return Trending
	case hurst < meanRevertingBelow:
		return MeanReverting
	default:
		return RandomWalk
	}
}

// DFAConfig controls the fluctuation analysis.
type DFAConfig struct {
	MinBox  int `yaml:"min_box"`  // smallest box size
	MaxBox  int `yaml:"max_box"`  // 0 = series length / 4
	NScales int `yaml:"n_scales"` // log-spaced scale count
}

// DefaultDFAConfig returns the production scale layout.
func DefaultDFAConfig() DFAConfig {
	return DFAConfig{MinBox: 4, MaxBox: 0, NScales: 20}
}

// HurstDFA estimates the Hurst exponent of a return series by DFA.
// The estimate is undefined (ok=false) when fewer than 4 scales survive the
// validity filters.
func HurstDFA(returns []float64, cfg DFAConfig) (float64, bool) {
	n := len(returns)
	if n < 4*cfg.MinBox {
		return 0, false
	}

	// Integrate the mean-centered series.
	mean, ok := stats.Mean(returns)
	if !ok {
		return 0, false
	}
	profile := make([]float64, n)
	acc := 0.0
	for i, r := range returns {
		acc += r - mean
		profile[i] = acc
	}

	maxBox := cfg.MaxBox
	if maxBox <= 0 {
		maxBox = n / 4
	}
	if maxBox > n/2 {
		maxBox = n / 2
	}
	scales := logScales(cfg.MinBox, maxBox, cfg.NScales)

	var logS, logF []float64
	for _, s := range scales {
		f, ok := fluctuation(profile, s)
		if !ok || f <= 0 || math.IsNaN(f) {
			continue
		}
		logS = append(logS, math.Log(float64(s)))
		logF = append(logF, math.Log(f))
	}
	if len(logS) < 4 {
		return 0, false
	}
	_, slope, ok := stats.LinearFit(logS, logF)
	if !ok {
		return 0, false
	}
	return slope, true
}

// fluctuation computes F(s): partition the profile into non-overlapping boxes
// of size s from the front and again from the back (maximizing data use when
// the length is not a multiple of s), detrend each box linearly, and combine
// the per-box residual RMS values into one root-mean-square.
func fluctuation(profile []float64, s int) (float64, bool) {
	n := len(profile)
	boxes := n / s
	if boxes < 2 {
		return 0, false
	}

	var sumSq float64
	var count int
	for b := 0; b < boxes; b++ {
		// Forward pass.
		rms, ok := detrendedRMS(profile[b*s : (b+1)*s])
		if ok {
			sumSq += rms * rms
			count++
		}
		// Backward pass.
		start := n - (b+1)*s
		rms, ok = detrendedRMS(profile[start : start+s])
		if ok {
			sumSq += rms * rms
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return math.Sqrt(sumSq / float64(count)), true
}

// detrendedRMS fits a degree-1 trend within one box and returns the RMS of
// the residual.
func detrendedRMS(box []float64) (float64, bool) {
	xs := make([]float64, len(box))
	for i := range xs {
		xs[i] = float64(i)
	}
	a, b, ok := stats.LinearFit(xs, box)
	if !ok {
		return 0, false
	}
	var ss float64
	for i, y := range box {
		d := y - (a + b*float64(i))
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(box))), true
}

// logScales builds a deduplicated logarithmic sequence of box sizes.
func logScales(min, max, n int) []int {
	if min < 2 {
		min = 2
	}
	if max <= min {
		return []int{min}
	}
	lmin := math.Log(float64(min))
	lmax := math.Log(float64(max))
	out := make([]int, 0, n)
	seen := make(map[int]bool)
	for i := 0; i < n; i++ {
		frac := 0.0
		if n > 1 {
			frac = float64(i) / float64(n-1)
		}
		s := int(math.Round(math.Exp(lmin + frac*(lmax-lmin))))
		if s < min {
			s = min
		}
		if s > max {
			s = max
		}
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
