package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/r0mik/dogecoinanalyzer/internal/domain"
)

const (
	coinGeckoBaseURL   = "https://api.coingecko.com/api/v3"
	coinGeckoRateLimit = 50 // free tier allows 10-50 calls per minute
	dogecoinID         = "dogecoin"
)

// CoinGeckoSource fetches the current DOGE quote from the CoinGecko
// simple-price endpoint. That endpoint carries no volume or daily range.
type CoinGeckoSource struct {
	client  *Client
	baseURL string
	apiKey  string
	timeNow func() time.Time
}

func NewCoinGeckoSource(apiKey string, timeout time.Duration) *CoinGeckoSource {
	return &CoinGeckoSource{
		client:  NewClient(timeout, coinGeckoRateLimit),
		baseURL: coinGeckoBaseURL,
		apiKey:  apiKey,
		timeNow: time.Now,
	}
}

func (s *CoinGeckoSource) Name() string { return "coingecko" }

func (s *CoinGeckoSource) Fetch(ctx context.Context) (*domain.MarketData, error) {
	params := url.Values{}
	params.Set("ids", dogecoinID)
	params.Set("vs_currencies", "usd")
	params.Set("include_24hr_change", "true")
	params.Set("include_market_cap", "true")
	if s.apiKey != "" {
		params.Set("x_cg_demo_api_key", s.apiKey)
	}

	body, err := s.client.Get(ctx, s.baseURL+"/simple/price?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("coingecko request: %w", err)
	}

	var payload map[string]struct {
		USD          *float64 `json:"usd"`
		USD24hChange *float64 `json:"usd_24h_change"`
		USDMarketCap *float64 `json:"usd_market_cap"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("coingecko response: %w", err)
	}

	quote, ok := payload[dogecoinID]
	if !ok || quote.USD == nil {
		return nil, errors.New("coingecko response missing dogecoin data")
	}

	return &domain.MarketData{
		Timestamp:      s.timeNow().UTC(),
		PriceUSD:       *quote.USD,
		PriceChange24h: quote.USD24hChange,
		MarketCap:      quote.USDMarketCap,
		Source:         s.Name(),
	}, nil
}
