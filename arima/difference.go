package arima

// difference returns x[t] - x[t-lag] for every t >= lag
func difference(x []float64, lag int) []float64 {
	if len(x) <= lag {
		return nil
	}
	res := make([]float64, len(x)-lag)
	for i := lag; i < len(x); i++ {
		res[i-lag] = x[i] - x[i-lag]
	}
	return res
}

// integrate reverses a single difference of the given lag. history is the series before it was
// differenced and diffForecast continues the differenced series past the end of history.
func integrate(history, diffForecast []float64, lag int) []float64 {
	n := len(history)
	ext := make([]float64, n+len(diffForecast))
	copy(ext, history)
	for i, v := range diffForecast {
		ext[n+i] = v + ext[n+i-lag]
	}
	return ext[n:]
}

// polyMul multiplies two lag polynomials given as coefficients of B^0, B^1, ...
func polyMul(a, b []float64) []float64 {
	res := make([]float64, len(a)+len(b)-1)
	for i, av := range a {
		if av == 0 {
			continue
		}
		for j, bv := range b {
			res[i+j] += av * bv
		}
	}
	return res
}

// expandAR returns the lag coefficients a_k of phi(B)Phi(B^m) written as 1 - sum a_k B^k. The
// returned slice is indexed by lag with a[0] unused.
func expandAR(ar, sar []float64, period int) []float64 {
	nonSeasonal := make([]float64, len(ar)+1)
	nonSeasonal[0] = 1
	for i, c := range ar {
		nonSeasonal[i+1] = -c
	}
	seasonal := make([]float64, len(sar)*period+1)
	seasonal[0] = 1
	for i, c := range sar {
		seasonal[(i+1)*period] = -c
	}

	poly := polyMul(nonSeasonal, seasonal)
	for k := 1; k < len(poly); k++ {
		poly[k] = -poly[k]
	}
	poly[0] = 0
	return poly
}

// expandMA returns the lag coefficients b_k of theta(B)Theta(B^m) written as 1 + sum b_k B^k. The
// returned slice is indexed by lag with b[0] unused.
func expandMA(ma, sma []float64, period int) []float64 {
	nonSeasonal := make([]float64, len(ma)+1)
	nonSeasonal[0] = 1
	copy(nonSeasonal[1:], ma)
	seasonal := make([]float64, len(sma)*period+1)
	seasonal[0] = 1
	for i, c := range sma {
		seasonal[(i+1)*period] = c
	}

	poly := polyMul(nonSeasonal, seasonal)
	poly[0] = 0
	return poly
}
