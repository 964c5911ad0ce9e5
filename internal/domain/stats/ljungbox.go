package stats

// LjungBox tests a return series for autocorrelation up to maxLag lags.
// Q = n(n+2) * sum_k rho_k^2/(n-k); under the null Q ~ chi-square(maxLag).
// Returns the p-value. Informational only: the predictability score never
// consumes it, daily-return autocorrelation is too easily arbitraged to count.
func LjungBox(xs []float64, maxLag int) (pvalue float64, ok bool) {
	n := len(xs)
	if maxLag < 1 || n <= maxLag+1 {
		return 0, false
	}
	rhos, ok := Autocorrelations(xs, maxLag)
	if !ok {
		return 0, false
	}
	q := 0.0
	for k := 1; k <= maxLag; k++ {
		rho := rhos[k-1]
		q += rho * rho / float64(n-k)
	}
	q *= float64(n) * float64(n+2)
	return ChiSquareSurvival(q, maxLag), true
}
