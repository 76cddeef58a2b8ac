package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Defaults for HTTPFetcher.
const (
	DefaultHTTPTimeout  = 30 * time.Second
	DefaultHTTPAttempts = 3
	DefaultRetryDelay   = time.Second
)

// HTTPFetcher downloads drawings over HTTP(S), retrying network errors and
// 5xx responses with exponential backoff.
type HTTPFetcher struct {
	Client   *http.Client
	Attempts int
	Delay    time.Duration
	Headers  map[string]string
}

// NewHTTPFetcher returns a fetcher with its own client. Zero values select
// the defaults.
func NewHTTPFetcher(timeout time.Duration, attempts int) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	if attempts <= 0 {
		attempts = DefaultHTTPAttempts
	}
	return &HTTPFetcher{
		Client:   &http.Client{Timeout: timeout},
		Attempts: attempts,
		Delay:    DefaultRetryDelay,
	}
}

// Fetch GETs url and returns the body.
func (h *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var data []byte
	err := Retry(ctx, h.Attempts, h.Delay, func() error {
		var err error
		data, err = h.get(ctx, url)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (h *HTTPFetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, unavailable(url, err)
	}
	for k, v := range h.Headers {
		req.Header.Set(k, v)
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &RetryableError{Err: unavailable(url, err)}
	}
	defer resp.Body.Close()

	if err := checkStatus(url, resp.StatusCode); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RetryableError{Err: unavailable(url, err)}
	}
	return data, nil
}

func checkStatus(url string, code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return notFound(url)
	case code >= 500:
		return &RetryableError{Err: unavailable(url, fmt.Errorf("status %d", code))}
	default:
		return unavailable(url, fmt.Errorf("status %d", code))
	}
}
