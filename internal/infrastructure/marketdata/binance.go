package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/r0mik/dogecoinanalyzer/internal/domain"
)

const (
	binanceBaseURL   = "https://api.binance.com"
	binanceRateLimit = 1200
	binanceSymbol    = "DOGEUSDT"
)

// BinanceSource fetches the 24h ticker for DOGEUSDT. USDT prices are taken
// as USD. Binance reports no market cap.
type BinanceSource struct {
	client  *Client
	baseURL string
	timeNow func() time.Time
}

func NewBinanceSource(timeout time.Duration) *BinanceSource {
	return &BinanceSource{
		client:  NewClient(timeout, binanceRateLimit),
		baseURL: binanceBaseURL,
		timeNow: time.Now,
	}
}

func (s *BinanceSource) Name() string { return "binance" }

func (s *BinanceSource) Fetch(ctx context.Context) (*domain.MarketData, error) {
	body, err := s.client.Get(ctx, s.baseURL+"/api/v3/ticker/24hr?symbol="+binanceSymbol, nil)
	if err != nil {
		return nil, fmt.Errorf("binance request: %w", err)
	}

	var payload struct {
		LastPrice          string `json:"lastPrice"`
		PriceChangePercent string `json:"priceChangePercent"`
		QuoteVolume        string `json:"quoteVolume"`
		HighPrice          string `json:"highPrice"`
		LowPrice           string `json:"lowPrice"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("binance response: %w", err)
	}

	price, err := strconv.ParseFloat(payload.LastPrice, 64)
	if err != nil {
		return nil, fmt.Errorf("binance price %q: %w", payload.LastPrice, err)
	}

	data := &domain.MarketData{
		Timestamp: s.timeNow().UTC(),
		PriceUSD:  price,
		Source:    s.Name(),
	}
	if v, err := strconv.ParseFloat(payload.PriceChangePercent, 64); err == nil {
		data.PriceChange24h = &v
	}
	if v, err := strconv.ParseFloat(payload.QuoteVolume, 64); err == nil {
		data.Volume24h = &v
	}
	if v, err := strconv.ParseFloat(payload.HighPrice, 64); err == nil {
		data.High24h = &v
	}
	if v, err := strconv.ParseFloat(payload.LowPrice, 64); err == nil {
		data.Low24h = &v
	}
	return data, nil
}
