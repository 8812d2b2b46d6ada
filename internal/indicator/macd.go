package indicator

// MACD returns the latest MACD line, signal line, and histogram values.
// The MACD line is EMA(fast) − EMA(slow); the signal line is an EMA of the
// MACD line; the histogram is their difference. All three are nil for an
// empty series.
func MACD(prices []float64, fastPeriod, slowPeriod, signalPeriod int) (line, signal, histogram *float64) {
	if len(prices) == 0 {
		return nil, nil, nil
	}

	fastEMA := emaSeries(prices, fastPeriod)
	slowEMA := emaSeries(prices, slowPeriod)

	macdLine := make([]float64, len(prices))
	for i := range prices {
		macdLine[i] = fastEMA[i] - slowEMA[i]
	}
	signalLine := emaSeries(macdLine, signalPeriod)

	last := len(prices) - 1
	return f64(macdLine[last]), f64(signalLine[last]), f64(macdLine[last] - signalLine[last])
}
