package indicator

// SMA returns the latest simple moving average over the given period, or nil
// when fewer than period prices are available.
func SMA(prices []float64, period int) *float64 {
	if period <= 0 || len(prices) < period {
		return nil
	}
	var sum float64
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return f64(sum / float64(period))
}

// EMA returns the latest exponential moving average, seeded by the first
// observation, or nil for an empty series.
func EMA(prices []float64, period int) *float64 {
	series := emaSeries(prices, period)
	if len(series) == 0 {
		return nil
	}
	return f64(series[len(series)-1])
}

// emaSeries computes the full recursive EMA with smoothing factor
// 2/(period+1). The first value is the first observation, not a leading SMA.
func emaSeries(values []float64, period int) []float64 {
	if len(values) == 0 {
		return nil
	}
	alpha := 2.0 / float64(period+1)
	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}
