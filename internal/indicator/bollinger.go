package indicator

import "math"

// Bollinger returns the latest upper, middle, and lower band values: an SMA
// plus/minus numStd rolling standard deviations. All three are nil when fewer
// than period prices are available.
//
// The deviation uses the sample divisor (n−1), matching the rolling
// deviation the scoring thresholds were tuned against.
func Bollinger(prices []float64, period int, numStd float64) (upper, middle, lower *float64) {
	if period < 2 {
		return nil, nil, nil
	}
	mid := SMA(prices, period)
	if mid == nil {
		return nil, nil, nil
	}

	var variance float64
	for i := len(prices) - period; i < len(prices); i++ {
		d := prices[i] - *mid
		variance += d * d
	}
	sd := math.Sqrt(variance / float64(period-1))

	return f64(*mid + numStd*sd), mid, f64(*mid - numStd*sd)
}
