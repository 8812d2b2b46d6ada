package indicator

// RSI returns the latest Relative Strength Index over the given period, or
// nil when fewer than period+1 prices are available.
//
// Gains and losses are averaged with an unweighted rolling mean rather than
// Wilder's smoothing. The trend and confidence thresholds downstream are
// tuned against this variant; do not replace it with the textbook formula.
func RSI(prices []float64, period int) *float64 {
	if period <= 0 || len(prices) < period+1 {
		return nil
	}

	var gains, losses float64
	for i := len(prices) - period; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}
	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	if avgLoss == 0 {
		if avgGain == 0 {
			// Flat window: relative strength is undefined.
			return nil
		}
		return f64(100.0)
	}

	rs := avgGain / avgLoss
	return f64(100.0 - 100.0/(1.0+rs))
}
