// Package marketdata contains the external price API clients feeding the
// collector, plus the Binance live trade stream used by the dashboard.
package marketdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"
)

const maxRetries = 3

// Client wraps an HTTP client with per-source rate limiting and retries.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient builds a client limited to callsPerMinute requests, with a full
// burst available at startup.
func NewClient(timeout time.Duration, callsPerMinute int) *Client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	if callsPerMinute <= 0 {
		callsPerMinute = 60
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(callsPerMinute)), callsPerMinute),
	}
}

// Get fetches the URL, waiting on the rate limiter first and retrying
// transient failures with exponential backoff.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return &HTTPStatusError{StatusCode: resp.StatusCode}
		}

		body, err = io.ReadAll(resp.Body)
		return err
	}

	strategy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	if err := backoff.Retry(operation, strategy); err != nil {
		return nil, err
	}
	return body, nil
}

// HTTPStatusError represents a non-200 response.
type HTTPStatusError struct {
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}
