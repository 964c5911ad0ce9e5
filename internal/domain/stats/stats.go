// Package stats provides the shared scalar estimators the engine is built on.
// Every function degrades to (0, false) on degenerate input instead of
// returning an error; callers leave the corresponding result field undefined.
package stats

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean.
func Mean(xs []float64) (float64, bool) {
	if len(xs) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs)), true
}

// StdDev returns the population standard deviation.
func StdDev(xs []float64) (float64, bool) {
	m, ok := Mean(xs)
	if !ok {
		return 0, false
	}
	ss := 0.0
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs))), true
}

// SampleStdDev returns the n-1 standard deviation.
func SampleStdDev(xs []float64) (float64, bool) {
	if len(xs) < 2 {
		return 0, false
	}
	m, _ := Mean(xs)
	ss := 0.0
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1)), true
}

// Pearson returns the correlation between two equal-length samples.
// False when lengths differ, fewer than 2 points, or either side is constant.
func Pearson(xs, ys []float64) (float64, bool) {
	if len(xs) != len(ys) || len(xs) < 2 {
		return 0, false
	}
	mx, _ := Mean(xs)
	my, _ := Mean(ys)
	var sxy, sxx, syy float64
	for i := range xs {
		dx := xs[i] - mx
		dy := ys[i] - my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0, false
	}
	r := sxy / math.Sqrt(sxx*syy)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return r, true
}

// Percentile returns the pth percentile (0-100) with linear interpolation
// between order statistics, matching the numpy default.
func Percentile(xs []float64, p float64) (float64, bool) {
	if len(xs) == 0 {
		return 0, false
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	if p <= 0 {
		return sorted[0], true
	}
	if p >= 100 {
		return sorted[len(sorted)-1], true
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo], true
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac, true
}

// LinearFit fits y = a + b*x by least squares and returns (intercept, slope).
func LinearFit(xs, ys []float64) (a, b float64, ok bool) {
	if len(xs) != len(ys) || len(xs) < 2 {
		return 0, 0, false
	}
	mx, _ := Mean(xs)
	my, _ := Mean(ys)
	var sxy, sxx float64
	for i := range xs {
		dx := xs[i] - mx
		sxy += dx * (ys[i] - my)
		sxx += dx * dx
	}
	if sxx == 0 {
		return 0, 0, false
	}
	b = sxy / sxx
	a = my - b*mx
	if math.IsNaN(b) || math.IsInf(b, 0) {
		return 0, 0, false
	}
	return a, b, true
}

// Autocorrelations returns the sample autocorrelations rho_1..rho_maxLag.
func Autocorrelations(xs []float64, maxLag int) ([]float64, bool) {
	n := len(xs)
	if n <= maxLag+1 {
		return nil, false
	}
	m, _ := Mean(xs)
	var c0 float64
	for _, x := range xs {
		d := x - m
		c0 += d * d
	}
	if c0 == 0 {
		return nil, false
	}
	out := make([]float64, maxLag)
	for k := 1; k <= maxLag; k++ {
		var ck float64
		for t := k; t < n; t++ {
			ck += (xs[t] - m) * (xs[t-k] - m)
		}
		out[k-1] = ck / c0
	}
	return out, true
}

// EWStats returns the exponentially weighted mean and standard deviation of xs
// with the given span (alpha = 2/(span+1)), weighting the newest observation
// most heavily. The variance uses reliability-weight bias correction.
func EWStats(xs []float64, span int) (mean, std float64, ok bool) {
	n := len(xs)
	if n < 2 || span < 1 {
		return 0, 0, false
	}
	alpha := 2.0 / (float64(span) + 1.0)
	decay := 1 - alpha

	var sw, swx float64
	w := 1.0
	// Newest sample carries weight 1, each older sample decays by (1-alpha).
	for i := n - 1; i >= 0; i-- {
		sw += w
		swx += w * xs[i]
		w *= decay
	}
	mean = swx / sw

	var sw2, swd float64
	w = 1.0
	for i := n - 1; i >= 0; i-- {
		d := xs[i] - mean
		swd += w * d * d
		sw2 += w * w
		w *= decay
	}
	denom := sw - sw2/sw
	if denom <= 0 {
		return mean, 0, false
	}
	std = math.Sqrt(swd / denom)
	return mean, std, true
}

// SMA returns the simple moving average of the last window values.
func SMA(xs []float64, window int) (float64, bool) {
	if window <= 0 || len(xs) < window {
		return 0, false
	}
	return Mean(xs[len(xs)-window:])
}

// RollingStd returns the sample standard deviation of the last window values.
func RollingStd(xs []float64, window int) (float64, bool) {
	if window <= 0 || len(xs) < window {
		return 0, false
	}
	return SampleStdDev(xs[len(xs)-window:])
}
