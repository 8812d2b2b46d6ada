package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/r0mik/dogecoinanalyzer/internal/domain"
)

const (
	cryptoCompareBaseURL   = "https://min-api.cryptocompare.com"
	cryptoCompareRateLimit = 100
	dogecoinSymbol         = "DOGE"
)

// CryptoCompareSource fetches the full DOGE/USD quote, including volume,
// market cap, and the daily range.
type CryptoCompareSource struct {
	client  *Client
	baseURL string
	apiKey  string
	timeNow func() time.Time
}

func NewCryptoCompareSource(apiKey string, timeout time.Duration) *CryptoCompareSource {
	return &CryptoCompareSource{
		client:  NewClient(timeout, cryptoCompareRateLimit),
		baseURL: cryptoCompareBaseURL,
		apiKey:  apiKey,
		timeNow: time.Now,
	}
}

func (s *CryptoCompareSource) Name() string { return "cryptocompare" }

func (s *CryptoCompareSource) Fetch(ctx context.Context) (*domain.MarketData, error) {
	var headers map[string]string
	if s.apiKey != "" {
		headers = map[string]string{"authorization": "Apikey " + s.apiKey}
	}

	body, err := s.client.Get(ctx, s.baseURL+"/data/pricemultifull?fsyms="+dogecoinSymbol+"&tsyms=USD", headers)
	if err != nil {
		return nil, fmt.Errorf("cryptocompare request: %w", err)
	}

	var payload struct {
		Raw map[string]map[string]struct {
			Price        *float64 `json:"PRICE"`
			ChangePct24h *float64 `json:"CHANGEPCT24HOUR"`
			Volume24h    *float64 `json:"VOLUME24HOUR"`
			MarketCap    *float64 `json:"MKTCAP"`
			High24h      *float64 `json:"HIGH24HOUR"`
			Low24h       *float64 `json:"LOW24HOUR"`
		} `json:"RAW"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("cryptocompare response: %w", err)
	}

	quote, ok := payload.Raw[dogecoinSymbol]["USD"]
	if !ok || quote.Price == nil {
		return nil, errors.New("cryptocompare response missing dogecoin data")
	}

	return &domain.MarketData{
		Timestamp:      s.timeNow().UTC(),
		PriceUSD:       *quote.Price,
		PriceChange24h: quote.ChangePct24h,
		Volume24h:      quote.Volume24h,
		MarketCap:      quote.MarketCap,
		High24h:        quote.High24h,
		Low24h:         quote.Low24h,
		Source:         s.Name(),
	}, nil
}
