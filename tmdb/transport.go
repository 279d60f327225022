package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Response is what a Transport hands back for a completed exchange
type Response struct {
	StatusCode int
	Body       []byte
}

// Transport performs a fully formed request. Implementations return an error
// for connection-level failures; non-2xx statuses are reported through Response.
type Transport interface {
	Do(ctx context.Context, method, url string) (*Response, error)
}

// Decoder turns raw bytes into v. It must not have side effects.
type Decoder interface {
	Decode(data []byte, v any) error
}

// JSONDecoder decodes JSON bodies
type JSONDecoder struct{}

// Decode implements Decoder
func (JSONDecoder) Decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// HTTPTransport is the default Transport, backed by an *http.Client
type HTTPTransport struct {
	client    *http.Client
	userAgent string
}

// NewHTTPTransport wraps client. A nil client gets a 30 second timeout.
func NewHTTPTransport(client *http.Client, userAgent string) *HTTPTransport {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPTransport{client: client, userAgent: userAgent}
}

// Do implements Transport
func (t *HTTPTransport) Do(ctx context.Context, method, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// ErrRateLimitWait is returned when waiting for a rate limit token fails
var ErrRateLimitWait = errors.New("rate limit wait failed")

// throttle is an http.RoundTripper that delays outbound calls with a token bucket.
type throttle struct {
	limiter *rate.Limiter
	next    http.RoundTripper
}

func newThrottle(rps float64, burst int, next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &throttle{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		next:    next,
	}
}

func (t *throttle) RoundTrip(r *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(r.Context()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRateLimitWait, err)
	}
	return t.next.RoundTrip(r)
}
