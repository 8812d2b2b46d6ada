package domain

// Timeframe is a forecast horizon. It controls how much trailing history is
// analyzed, how far the prediction is allowed to move, and the confidence
// baseline.
type Timeframe string

const (
	Timeframe1h  Timeframe = "1h"
	Timeframe4h  Timeframe = "4h"
	Timeframe24h Timeframe = "24h"
	Timeframe7d  Timeframe = "7d"
	Timeframe30d Timeframe = "30d"
)

// AllTimeframes lists every horizon analyzed per run, in order.
var AllTimeframes = []Timeframe{Timeframe1h, Timeframe4h, Timeframe24h, Timeframe7d, Timeframe30d}

// Hours returns the horizon length in hours. Unknown timeframes fall back
// to 24.
func (tf Timeframe) Hours() int {
	switch tf {
	case Timeframe1h:
		return 1
	case Timeframe4h:
		return 4
	case Timeframe24h:
		return 24
	case Timeframe7d:
		return 7 * 24
	case Timeframe30d:
		return 30 * 24
	}
	return 24
}

// Multiplier is the expected percentage-change range for the horizon.
func (tf Timeframe) Multiplier() float64 {
	switch tf {
	case Timeframe1h:
		return 0.02
	case Timeframe4h:
		return 0.05
	case Timeframe24h:
		return 0.10
	case Timeframe7d:
		return 0.20
	case Timeframe30d:
		return 0.40
	}
	return 0.05
}

// ConfidenceAdjustment lowers the confidence baseline for longer horizons.
func (tf Timeframe) ConfidenceAdjustment() int {
	switch tf {
	case Timeframe1h:
		return 0
	case Timeframe4h:
		return -2
	case Timeframe24h:
		return -5
	case Timeframe7d:
		return -15
	case Timeframe30d:
		return -25
	}
	return 0
}

// DisplayName is the human-readable horizon label used in reasoning text.
func (tf Timeframe) DisplayName() string {
	switch tf {
	case Timeframe1h:
		return "1 hour"
	case Timeframe4h:
		return "4 hours"
	case Timeframe24h:
		return "24 hours"
	case Timeframe7d:
		return "7 days"
	case Timeframe30d:
		return "30 days (1 month)"
	}
	return string(tf)
}
