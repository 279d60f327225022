package tmdb

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	timeout    time.Duration
	httpClient *http.Client
	transport  Transport
	decoder    Decoder
	userAgent  string
	rps        float64
	burst      int
}

func defaultOptions() clientOptions {
	return clientOptions{
		timeout: 30 * time.Second,
		decoder: JSONDecoder{},
	}
}

// WithTimeout sets the HTTP client timeout.
// It has no effect when a custom Transport is supplied.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithHTTPClient sets the *http.Client used by the default transport.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithTransport replaces the network transport entirely.
func WithTransport(t Transport) Option {
	return func(o *clientOptions) {
		o.transport = t
	}
}

// WithDecoder replaces the JSON decoder.
func WithDecoder(d Decoder) Option {
	return func(o *clientOptions) {
		if d != nil {
			o.decoder = d
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithRateLimit throttles outbound requests to rps with the given burst.
// Requests wait for a token; nothing is retried.
func WithRateLimit(rps float64, burst int) Option {
	return func(o *clientOptions) {
		if rps > 0 && burst > 0 {
			o.rps = rps
			o.burst = burst
		}
	}
}

// buildTransport resolves the Transport the client will use.
func (o clientOptions) buildTransport() Transport {
	if o.transport != nil {
		return o.transport
	}

	hc := o.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: o.timeout}
	}

	if o.rps > 0 {
		cpy := *hc
		cpy.Transport = newThrottle(o.rps, o.burst, hc.Transport)
		hc = &cpy
	}

	return NewHTTPTransport(hc, o.userAgent)
}
