package tmdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultBaseURL is the TMDB v3 API root
const DefaultBaseURL = "https://api.themoviedb.org/3"

// apiKeyParam is the query parameter carrying the API key on every request
const apiKeyParam = "api_key"

// maxErrBodySize caps how much of a failed response body ends up in a StatusError.
const maxErrBodySize = 4 << 10

const tracerName = "github.com/s0up4200/marquee/tmdb"

// ErrNoResponse indicates a transport returned neither a response nor an error
var ErrNoResponse = errors.New("transport returned no response")

// Client represents a TMDB API client
type Client struct {
	baseURL   *url.URL
	apiKey    string
	transport Transport
	decoder   Decoder
	tracer    trace.Tracer
	logger    zerolog.Logger
}

// NewClient creates a new TMDB client. baseURL defaults to DefaultBaseURL.
func NewClient(baseURL, apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: API key is required", ErrInvalidConfig)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base URL: %w", ErrInvalidConfig, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: base URL must be absolute: %s", ErrInvalidConfig, baseURL)
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	return &Client{
		baseURL:   u,
		apiKey:    apiKey,
		transport: options.buildTransport(),
		decoder:   options.decoder,
		tracer:    otel.Tracer(tracerName),
		logger:    logger,
	}, nil
}

// BaseURL returns the API root requests are sent to
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// URL renders the absolute URL for a request, API key included.
func URL[T any](c *Client, req Request[T]) string {
	return c.resolve(req.Path(), req.Query())
}

func (c *Client) resolve(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if query == nil {
		query = url.Values{}
	}
	query.Set(apiKeyParam, c.apiKey)
	u.RawQuery = query.Encode()
	return u.String()
}

// requestLogger prefers an enabled logger carried by ctx, so requests made
// on behalf of a fetch cycle carry its cycle fields.
func (c *Client) requestLogger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &c.logger
}

// redact hides the API key in a URL destined for logs.
func (c *Client) redact(rawURL string) string {
	return strings.ReplaceAll(rawURL, apiKeyParam+"="+url.QueryEscape(c.apiKey), apiKeyParam+"=REDACTED")
}

// Execute sends req and decodes the response body into T.
//
// Transport failures, including non-2xx statuses, are reported as KindTransport
// and take priority over any body that came back. Success responses that cannot
// be decoded, are empty, or carry a TMDB failure envelope are reported as
// KindDecoding. Nothing is retried or cached.
func Execute[T any](ctx context.Context, c *Client, req Request[T]) (T, error) {
	var zero T

	method := string(req.Method())
	ctx, span := c.tracer.Start(ctx, "tmdb.Execute",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("tmdb.path", req.Path()),
		),
	)
	defer span.End()

	fail := func(kind ErrorKind, err error) (T, error) {
		e := &Error{Kind: kind, Op: method, Path: req.Path(), Err: err}
		span.RecordError(e)
		span.SetStatus(codes.Error, e.Error())
		return zero, e
	}

	target := URL(c, req)
	start := time.Now()
	resp, err := c.transport.Do(ctx, method, target)

	c.requestLogger(ctx).Debug().
		Str("method", method).
		Str("url", c.redact(target)).
		Dur("duration", time.Since(start)).
		Bool("transport_error", err != nil).
		Msg("TMDB API request")

	if err != nil {
		return fail(KindTransport, err)
	}
	if resp == nil {
		return fail(KindTransport, ErrNoResponse)
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body := resp.Body
		if len(body) > maxErrBodySize {
			body = body[:maxErrBodySize]
		}
		return fail(KindTransport, &StatusError{StatusCode: resp.StatusCode, Body: string(body)})
	}

	v, err := decode[T](c.decoder, resp.Body)
	if err != nil {
		return fail(KindDecoding, err)
	}

	return v, nil
}

func decode[T any](d Decoder, body []byte) (T, error) {
	var v T

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return v, ErrEmptyBody
	}

	// Non-object bodies fail this probe; the typed decode below reports them.
	var status APIStatus
	if err := d.Decode(trimmed, &status); err == nil && status.failed() {
		return v, &status
	}

	if err := d.Decode(trimmed, &v); err != nil {
		return v, fmt.Errorf("failed to parse response: %w", err)
	}

	return v, nil
}

// Ping verifies the API is reachable and the key is accepted
func (c *Client) Ping(ctx context.Context) error {
	if _, err := Execute(ctx, c, Configuration()); err != nil {
		return fmt.Errorf("failed to connect to TMDB: %w", err)
	}
	return nil
}
