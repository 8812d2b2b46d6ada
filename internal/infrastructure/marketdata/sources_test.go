package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCoinGeckoFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/simple/price" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("ids") != "dogecoin" || q.Get("vs_currencies") != "usd" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		if q.Get("x_cg_demo_api_key") != "test-key" {
			t.Errorf("api key not forwarded: %q", r.URL.RawQuery)
		}
		w.Write([]byte(`{"dogecoin":{"usd":0.1234,"usd_24h_change":-2.5,"usd_market_cap":18000000000}}`))
	}))
	defer srv.Close()

	src := NewCoinGeckoSource("test-key", 5*time.Second)
	src.baseURL = srv.URL

	data, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if data.PriceUSD != 0.1234 {
		t.Fatalf("price = %v, want 0.1234", data.PriceUSD)
	}
	if data.PriceChange24h == nil || *data.PriceChange24h != -2.5 {
		t.Fatalf("change = %v, want -2.5", data.PriceChange24h)
	}
	if data.MarketCap == nil || *data.MarketCap != 18000000000 {
		t.Fatalf("market cap = %v", data.MarketCap)
	}
	// The simple-price endpoint carries no volume or daily range.
	if data.Volume24h != nil || data.High24h != nil || data.Low24h != nil {
		t.Fatal("expected nil volume and range")
	}
	if data.Source != "coingecko" {
		t.Fatalf("source = %q", data.Source)
	}
	if data.Timestamp.IsZero() {
		t.Fatal("expected timestamp")
	}
}

func TestCoinGeckoFetchMissingCoin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	src := NewCoinGeckoSource("", 5*time.Second)
	src.baseURL = srv.URL

	if _, err := src.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for missing coin data")
	}
}

func TestCryptoCompareFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("authorization"); got != "Apikey cc-key" {
			t.Errorf("authorization header = %q", got)
		}
		w.Write([]byte(`{"RAW":{"DOGE":{"USD":{
			"PRICE":0.1234,
			"CHANGEPCT24HOUR":3.1,
			"VOLUME24HOUR":500000000,
			"MKTCAP":18000000000,
			"HIGH24HOUR":0.13,
			"LOW24HOUR":0.12
		}}}}`))
	}))
	defer srv.Close()

	src := NewCryptoCompareSource("cc-key", 5*time.Second)
	src.baseURL = srv.URL

	data, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if data.PriceUSD != 0.1234 {
		t.Fatalf("price = %v", data.PriceUSD)
	}
	if data.High24h == nil || *data.High24h != 0.13 {
		t.Fatalf("high = %v", data.High24h)
	}
	if data.Low24h == nil || *data.Low24h != 0.12 {
		t.Fatalf("low = %v", data.Low24h)
	}
	if data.Source != "cryptocompare" {
		t.Fatalf("source = %q", data.Source)
	}
}

func TestBinanceFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("symbol"); got != "DOGEUSDT" {
			t.Errorf("symbol = %q", got)
		}
		w.Write([]byte(`{
			"lastPrice":"0.12340000",
			"priceChangePercent":"-1.250",
			"quoteVolume":"450000000.5",
			"highPrice":"0.13000000",
			"lowPrice":"0.12000000"
		}`))
	}))
	defer srv.Close()

	src := NewBinanceSource(5 * time.Second)
	src.baseURL = srv.URL

	data, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if data.PriceUSD != 0.1234 {
		t.Fatalf("price = %v", data.PriceUSD)
	}
	if data.PriceChange24h == nil || *data.PriceChange24h != -1.25 {
		t.Fatalf("change = %v", data.PriceChange24h)
	}
	if data.Volume24h == nil || *data.Volume24h != 450000000.5 {
		t.Fatalf("volume = %v", data.Volume24h)
	}
	// Binance reports no market cap.
	if data.MarketCap != nil {
		t.Fatal("expected nil market cap")
	}
	if data.Source != "binance" {
		t.Fatalf("source = %q", data.Source)
	}
}

func TestBinanceFetchBadPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"lastPrice":"oops"}`))
	}))
	defer srv.Close()

	src := NewBinanceSource(5 * time.Second)
	src.baseURL = srv.URL

	if _, err := src.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for unparseable price")
	}
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`ok`))
	}))
	defer srv.Close()

	client := NewClient(5*time.Second, 600)
	body, err := client.Get(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(body) != "ok" {
		t.Fatalf("body = %q", body)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}
