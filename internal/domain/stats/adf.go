package stats

import "math"

// ADF runs an Augmented Dickey-Fuller unit-root test on a price level series
// (constant-only specification) and returns the approximate MacKinnon p-value.
// Informational only; the predictability score never consumes it. Lag order
// follows the Schwert rule 12*(n/100)^0.25.
func ADF(levels []float64) (pvalue float64, ok bool) {
	n := len(levels)
	if n < 20 {
		return 0, false
	}
	lags := int(12 * math.Pow(float64(n)/100, 0.25))
	maxUsable := (n - 2) / 2
	if lags > maxUsable {
		lags = maxUsable
	}
	if lags < 0 {
		lags = 0
	}

	diffs := make([]float64, n-1)
	for i := 1; i < n; i++ {
		diffs[i-1] = levels[i] - levels[i-1]
	}

	// Regression: diff[t] = alpha + beta*level[t-1] + sum gamma_i*diff[t-i].
	nobs := len(diffs) - lags
	k := 2 + lags
	if nobs <= k {
		return 0, false
	}
	y := make([]float64, nobs)
	x := make([][]float64, nobs)
	for t := 0; t < nobs; t++ {
		row := make([]float64, k)
		row[0] = 1
		row[1] = levels[lags+t]
		for i := 1; i <= lags; i++ {
			row[1+i] = diffs[lags+t-i]
		}
		x[t] = row
		y[t] = diffs[lags+t]
	}

	beta, se, ok := olsCoefficient(x, y, 1)
	if !ok || se <= 0 {
		return 0, false
	}
	tau := beta / se
	return mackinnonP(tau), true
}

// olsCoefficient solves least squares by normal equations and returns the
// coefficient and standard error at index j.
func olsCoefficient(x [][]float64, y []float64, j int) (coef, stderr float64, ok bool) {
	n := len(x)
	k := len(x[0])

	xtx := make([][]float64, k)
	xty := make([]float64, k)
	for a := 0; a < k; a++ {
		xtx[a] = make([]float64, k)
	}
	for t := 0; t < n; t++ {
		for a := 0; a < k; a++ {
			xty[a] += x[t][a] * y[t]
			for b := a; b < k; b++ {
				xtx[a][b] += x[t][a] * x[t][b]
			}
		}
	}
	for a := 0; a < k; a++ {
		for b := 0; b < a; b++ {
			xtx[a][b] = xtx[b][a]
		}
	}

	coefs, ok := solveSymmetric(xtx, xty)
	if !ok {
		return 0, 0, false
	}

	// Residual variance.
	var rss float64
	for t := 0; t < n; t++ {
		pred := 0.0
		for a := 0; a < k; a++ {
			pred += x[t][a] * coefs[a]
		}
		r := y[t] - pred
		rss += r * r
	}
	dof := n - k
	if dof <= 0 {
		return 0, 0, false
	}
	sigma2 := rss / float64(dof)

	// (X'X)^-1 diagonal entry j via solving against the unit vector.
	unit := make([]float64, k)
	unit[j] = 1
	col, ok := solveSymmetric(xtx, unit)
	if !ok || col[j] <= 0 {
		return 0, 0, false
	}
	return coefs[j], math.Sqrt(sigma2 * col[j]), true
}

// solveSymmetric solves A z = b by Gaussian elimination with partial pivoting.
func solveSymmetric(a [][]float64, b []float64) ([]float64, bool) {
	k := len(b)
	m := make([][]float64, k)
	for i := 0; i < k; i++ {
		m[i] = make([]float64, k+1)
		copy(m[i], a[i])
		m[i][k] = b[i]
	}
	for col := 0; col < k; col++ {
		pivot := col
		for r := col + 1; r < k; r++ {
			if math.Abs(m[r][col]) > math.Abs(m[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(m[pivot][col]) < 1e-12 {
			return nil, false
		}
		m[col], m[pivot] = m[pivot], m[col]
		for r := col + 1; r < k; r++ {
			f := m[r][col] / m[col][col]
			for c := col; c <= k; c++ {
				m[r][c] -= f * m[col][c]
			}
		}
	}
	z := make([]float64, k)
	for r := k - 1; r >= 0; r-- {
		sum := m[r][k]
		for c := r + 1; c < k; c++ {
			sum -= m[r][c] * z[c]
		}
		z[r] = sum / m[r][r]
	}
	return z, true
}

// mackinnonP maps an ADF tau statistic (constant-only case) to an approximate
// p-value using the MacKinnon (1994) response-surface polynomials.
func mackinnonP(tau float64) float64 {
	const (
		tauStar = -1.61
		tauMin  = -18.83
		tauMax  = 2.74
	)
	if tau < tauMin {
		return 0
	}
	if tau > tauMax {
		return 1
	}
	var z float64
	if tau <= tauStar {
		z = 2.1659 + 1.4412*tau + 0.038269*tau*tau
	} else {
		z = 1.7339 + 0.93202*tau - 0.12745*tau*tau - 0.010368*tau*tau*tau
	}
	return normCDF(z)
}

func normCDF(z float64) float64 {
	return 0.5 * math.Erfc(-z/math.Sqrt2)
}
