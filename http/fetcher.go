// Package http provides an HTTP implementation of wikimd.Fetcher with
// request timeouts, retry-with-backoff on transient failures, and optional
// request rate limiting.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	wikimd "github.com/DyllonWright/wikipedia-to-markdown"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent identifies the tool to the Wikimedia servers, which
// require a descriptive User-Agent for automated access.
const DefaultUserAgent = "wikipedia-to-markdown/1.1 (+https://github.com/DyllonWright/wikipedia-to-markdown)"

// DefaultAccept prefers HTML but accepts PDF, matching the two document
// formats the pipeline retrieves.
const DefaultAccept = "text/html,application/pdf;q=0.9,*/*;q=0.8"

// DefaultRetryDelays returns the backoff delays applied between retry
// attempts on transient failures: 1s, 2s, 4s, 8s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second}
}

// retryable reports whether an HTTP status signals a transient condition
// worth retrying: rate limiting or server unavailability. Every other
// non-2xx status fails immediately.
func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// Ensure Fetcher implements wikimd.Fetcher at compile time.
var _ wikimd.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves bytes from URLs using HTTP GET requests.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	accept    string
	delays    []time.Duration
	limiter   *rate.Limiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithAccept overrides the Accept header.
func WithAccept(accept string) Option {
	return func(f *Fetcher) {
		f.accept = accept
	}
}

// WithRetryDelays replaces the backoff delay schedule. The number of
// delays bounds the number of retries: len(delays)+1 total attempts.
// This is useful for testing without waiting for real delays.
func WithRetryDelays(delays []time.Duration) Option {
	return func(f *Fetcher) {
		f.delays = delays
	}
}

// WithRateLimit caps outgoing requests at rps requests per second.
// Disabled by default.
func WithRateLimit(rps float64) Option {
	return func(f *Fetcher) {
		f.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
		accept:    DefaultAccept,
		delays:    DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch performs a GET request and returns the response body. Transient
// failures (429/5xx and transport errors) are retried with exponential
// backoff until the delay schedule is exhausted; the last error wins.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	maxAttempts := len(f.delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if f.limiter != nil {
			if err := f.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		body, retry, err := f.get(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !retry || attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.delays[attempt]):
		}
	}

	return nil, lastErr
}

// get performs a single request attempt. The second return value reports
// whether the failure is transient and worth retrying.
func (f *Fetcher) get(ctx context.Context, url string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, wikimd.Errorf(wikimd.EINVALID, "invalid request for %s: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", f.accept)
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		// Transport-level failures (timeouts, resets) are transient.
		return nil, true, err
	}
	defer resp.Body.Close()

	if retryable(resp.StatusCode) {
		return nil, true, wikimd.Errorf(wikimd.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, false, wikimd.Errorf(wikimd.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}

	return body, false, nil
}
