// Package indicator provides pure rolling-window statistics over an ordered
// price/volume series. Every function returns only the most recent value of
// its computation; a nil result means the trailing window required is longer
// than the available history.
package indicator

import "github.com/r0mik/dogecoinanalyzer/internal/domain"

// Default periods used by CalculateAll.
const (
	DefaultRSIPeriod  = 14
	DefaultMACDFast   = 12
	DefaultMACDSlow   = 26
	DefaultMACDSignal = 9
	DefaultBBPeriod   = 20
	DefaultBBStdDev   = 2.0
)

func f64(v float64) *float64 { return &v }

// CalculateAll computes the full indicator set for an ascending price series.
// An empty series yields an empty set, which downstream components treat as
// the "insufficient data" signal.
func CalculateAll(points []domain.MarketData) domain.IndicatorSet {
	var set domain.IndicatorSet
	if len(points) == 0 {
		return set
	}

	prices := make([]float64, len(points))
	volumes := make([]float64, 0, len(points))
	for i, p := range points {
		prices[i] = p.PriceUSD
		if p.Volume24h != nil {
			volumes = append(volumes, *p.Volume24h)
		}
	}

	set.RSI = RSI(prices, DefaultRSIPeriod)

	set.SMA20 = SMA(prices, 20)
	set.SMA50 = SMA(prices, 50)
	set.SMA200 = SMA(prices, 200)

	set.EMA12 = EMA(prices, 12)
	set.EMA26 = EMA(prices, 26)

	set.MACD, set.MACDSignal, set.MACDHistogram = MACD(prices, DefaultMACDFast, DefaultMACDSlow, DefaultMACDSignal)

	set.BBUpper, set.BBMiddle, set.BBLower = Bollinger(prices, DefaultBBPeriod, DefaultBBStdDev)

	set.CurrentPrice = f64(prices[len(prices)-1])

	if len(volumes) > 0 {
		va := AnalyzeVolume(volumes)
		set.AvgVolume = f64(va.AvgVolume)
		set.CurrentVolume = f64(va.CurrentVolume)
		set.VolumeRatio = f64(va.Ratio)
		set.VolumeTrend = va.Trend
	}

	return set
}
