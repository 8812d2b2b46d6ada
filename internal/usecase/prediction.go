package usecase

import (
	"fmt"
	"math"
	"strings"

	"github.com/r0mik/dogecoinanalyzer/internal/domain"
)

// determineTrend accumulates independent bullish/bearish votes from the
// indicator set. Missing indicators abstain. The final call requires a
// margin of more than one vote, which suppresses flip-flopping on marginal
// differentials.
func determineTrend(ind domain.IndicatorSet, window []domain.MarketData) domain.TrendDirection {
	bullish, bearish := 0, 0

	if ind.RSI != nil {
		switch {
		case *ind.RSI < 30:
			bullish++ // oversold
		case *ind.RSI > 70:
			bearish++ // overbought
		}
	}

	var price float64
	if ind.CurrentPrice != nil {
		price = *ind.CurrentPrice
	}

	if ind.SMA20 != nil {
		if price > *ind.SMA20 {
			bullish++
		} else if price < *ind.SMA20 {
			bearish++
		}
	}
	if ind.SMA50 != nil {
		if price > *ind.SMA50 {
			bullish++
		} else if price < *ind.SMA50 {
			bearish++
		}
	}
	if ind.EMA12 != nil && ind.EMA26 != nil {
		if *ind.EMA12 > *ind.EMA26 {
			bullish++
		} else if *ind.EMA12 < *ind.EMA26 {
			bearish++
		}
	}

	if ind.MACD != nil && ind.MACDSignal != nil {
		if *ind.MACD > *ind.MACDSignal {
			bullish++
		} else {
			bearish++
		}
	}
	if ind.MACDHistogram != nil {
		if *ind.MACDHistogram > 0 {
			bullish++
		} else if *ind.MACDHistogram < 0 {
			bearish++
		}
	}

	// Mean-reversion read of the Bollinger envelope: a close outside the
	// band votes for a move back toward the middle.
	if ind.BBUpper != nil && ind.BBLower != nil && price != 0 {
		if price < *ind.BBLower {
			bullish++
		} else if price > *ind.BBUpper {
			bearish++
		}
	}

	if len(window) >= 2 {
		prev := window[len(window)-2].PriceUSD
		changePct := (window[len(window)-1].PriceUSD - prev) / prev * 100
		if changePct > 1 {
			bullish++
		} else if changePct < -1 {
			bearish++
		}
	}

	// High volume confirms whichever side already leads; it never breaks a
	// tie.
	if ind.VolumeTrend == "high" {
		if bullish > bearish {
			bullish++
		} else if bearish > bullish {
			bearish++
		}
	}

	switch {
	case bullish > bearish+1:
		return domain.TrendBullish
	case bearish > bullish+1:
		return domain.TrendBearish
	}
	return domain.TrendNeutral
}

// predictPrice projects a horizon-scaled target, skewed by RSI and clamped
// to the Bollinger envelope when both bounds are available.
//
// The neutral path always drifts slightly upward regardless of any bearish
// lean behind the neutral call. Intentional; keep it.
func predictPrice(currentPrice float64, ind domain.IndicatorSet, trend domain.TrendDirection, tf domain.Timeframe) float64 {
	multiplier := tf.Multiplier()
	predicted := currentPrice

	switch trend {
	case domain.TrendBullish:
		changePct := multiplier * 0.5
		if ind.RSI != nil {
			changePct = multiplier * (0.5 + (*ind.RSI-30)/80)
		}
		predicted = currentPrice * (1 + changePct)
	case domain.TrendBearish:
		changePct := multiplier * 0.5
		if ind.RSI != nil {
			changePct = multiplier * (0.5 + (70-*ind.RSI)/80)
		}
		predicted = currentPrice * (1 - changePct)
	default:
		predicted = currentPrice * (1 + multiplier*0.1)
	}

	if ind.BBUpper != nil && ind.BBLower != nil {
		predicted = math.Max(*ind.BBLower*0.95, math.Min(*ind.BBUpper*1.05, predicted))
	}

	return math.Round(predicted*1e8) / 1e8
}

// confidenceScore maps indicator completeness, signal strength, and data
// volume into an integer in [0,100].
func confidenceScore(ind domain.IndicatorSet, trend domain.TrendDirection, dataPoints int, tf domain.Timeframe) int {
	confidence := 50 + tf.ConfidenceAdjustment()

	bonus := ind.NumericCount() * 2
	if bonus > 20 {
		bonus = 20
	}
	confidence += bonus

	if trend != domain.TrendNeutral {
		confidence += 10
	}

	if ind.RSI != nil {
		rsi := *ind.RSI
		switch {
		case rsi < 25 || rsi > 75:
			confidence += 10
		case (30 < rsi && rsi < 40) || (60 < rsi && rsi < 70):
			confidence += 5
		}
	}

	if dataPoints > 100 {
		confidence += 10
	} else if dataPoints > 50 {
		confidence += 5
	}

	// Price caught strictly between the two moving averages reads as
	// conflicting signals.
	if ind.SMA20 != nil && ind.SMA50 != nil && ind.CurrentPrice != nil {
		price := *ind.CurrentPrice
		if (price > *ind.SMA20 && price < *ind.SMA50) ||
			(price < *ind.SMA20 && price > *ind.SMA50) {
			confidence -= 10
		}
	}

	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}
	return confidence
}

// buildReasoning assembles the canonical deterministic explanation. Its
// parts and their order are fixed; the enhancer may only append to it.
func buildReasoning(ind domain.IndicatorSet, trend domain.TrendDirection, predictedPrice, currentPrice float64, tf domain.Timeframe) string {
	changePct := (predictedPrice - currentPrice) / currentPrice * 100
	direction := "decrease"
	if changePct > 0 {
		direction = "increase"
	}

	parts := []string{
		fmt.Sprintf("Analysis for %s timeframe:", tf.DisplayName()),
		fmt.Sprintf("Current price: $%.8f", currentPrice),
		fmt.Sprintf("Predicted price: $%.8f (%.2f%% %s)", predictedPrice, math.Abs(changePct), direction),
		fmt.Sprintf("Trend: %s", strings.ToUpper(string(trend))),
	}

	if tf == domain.Timeframe7d || tf == domain.Timeframe30d {
		parts = append(parts, fmt.Sprintf("Note: Longer-term predictions (%s) have higher uncertainty", tf.DisplayName()))
	}

	if ind.RSI != nil {
		rsi := *ind.RSI
		switch {
		case rsi < 30:
			parts = append(parts, fmt.Sprintf("RSI (%.2f) indicates oversold conditions", rsi))
		case rsi > 70:
			parts = append(parts, fmt.Sprintf("RSI (%.2f) indicates overbought conditions", rsi))
		default:
			parts = append(parts, fmt.Sprintf("RSI (%.2f) is in neutral range", rsi))
		}
	}

	if ind.SMA20 != nil && ind.SMA50 != nil {
		switch {
		case currentPrice > *ind.SMA20 && *ind.SMA20 > *ind.SMA50:
			parts = append(parts, "Price is above both SMA 20 and SMA 50 (bullish)")
		case currentPrice < *ind.SMA20 && *ind.SMA20 < *ind.SMA50:
			parts = append(parts, "Price is below both SMA 20 and SMA 50 (bearish)")
		}
	}

	if ind.MACD != nil && ind.MACDSignal != nil {
		if *ind.MACD > *ind.MACDSignal {
			parts = append(parts, "MACD is above signal line (bullish momentum)")
		} else {
			parts = append(parts, "MACD is below signal line (bearish momentum)")
		}
	}

	if ind.VolumeTrend != "" {
		parts = append(parts, fmt.Sprintf("Volume is %s", ind.VolumeTrend))
	}

	return strings.Join(parts, " | ")
}
