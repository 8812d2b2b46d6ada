package domain

import "time"

// TrendDirection is the ternary heuristic trend classification.
type TrendDirection string

const (
	TrendBullish TrendDirection = "bullish"
	TrendBearish TrendDirection = "bearish"
	TrendNeutral TrendDirection = "neutral"
)

// IndicatorSet holds the most recent value of each rolling computation.
// A nil field means the trailing window needed is longer than the available
// history; values are never zero-filled.
type IndicatorSet struct {
	RSI           *float64 `json:"rsi"`
	SMA20         *float64 `json:"sma_20"`
	SMA50         *float64 `json:"sma_50"`
	SMA200        *float64 `json:"sma_200"`
	EMA12         *float64 `json:"ema_12"`
	EMA26         *float64 `json:"ema_26"`
	MACD          *float64 `json:"macd"`
	MACDSignal    *float64 `json:"macd_signal"`
	MACDHistogram *float64 `json:"macd_histogram"`
	BBUpper       *float64 `json:"bb_upper"`
	BBMiddle      *float64 `json:"bb_middle"`
	BBLower       *float64 `json:"bb_lower"`
	CurrentPrice  *float64 `json:"current_price,omitempty"`
	AvgVolume     *float64 `json:"avg_volume,omitempty"`
	CurrentVolume *float64 `json:"current_volume,omitempty"`
	VolumeRatio   *float64 `json:"volume_ratio,omitempty"`
	VolumeTrend   string   `json:"volume_trend,omitempty"`
}

// Empty reports whether the set is the universal "insufficient data" signal
// returned for an empty input series.
func (s IndicatorSet) Empty() bool {
	return s.CurrentPrice == nil
}

// NumericCount returns how many numeric values in the set resolved. The
// volume trend label is not numeric and is not counted.
func (s IndicatorSet) NumericCount() int {
	count := 0
	for _, v := range []*float64{
		s.RSI, s.SMA20, s.SMA50, s.SMA200, s.EMA12, s.EMA26,
		s.MACD, s.MACDSignal, s.MACDHistogram,
		s.BBUpper, s.BBMiddle, s.BBLower,
		s.CurrentPrice, s.AvgVolume, s.CurrentVolume, s.VolumeRatio,
	} {
		if v != nil {
			count++
		}
	}
	return count
}

// AnalysisResult is the immutable outcome of analyzing one timeframe.
type AnalysisResult struct {
	ID              int64          `json:"id"`
	Timestamp       time.Time      `json:"timestamp"`
	Timeframe       Timeframe      `json:"timeframe"`
	PredictedPrice  float64        `json:"predicted_price"`
	ConfidenceScore int            `json:"confidence_score"`
	TrendDirection  TrendDirection `json:"trend_direction"`
	Indicators      IndicatorSet   `json:"technical_indicators"`
	Reasoning       string         `json:"reasoning"`
	CreatedAt       time.Time      `json:"created_at"`
}
