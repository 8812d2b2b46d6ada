package domain

import "time"

// MarketData is one observed snapshot of the DOGE/USD market from a single
// source. Optional fields stay nil when the source does not report them.
type MarketData struct {
	ID             int64     `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	PriceUSD       float64   `json:"price_usd"`
	Volume24h      *float64  `json:"volume_24h"`
	MarketCap      *float64  `json:"market_cap"`
	PriceChange24h *float64  `json:"price_change_24h"`
	High24h        *float64  `json:"high_24h"`
	Low24h         *float64  `json:"low_24h"`
	Source         string    `json:"source"`
	CreatedAt      time.Time `json:"created_at"`
}
