package http

import (
	"context"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// ErrStatus wraps non-200 responses.
var ErrStatus = errors.New("unexpected HTTP status")

// Options configures a Client.
type Options struct {
	// UserAgent is sent with every request.
	UserAgent string
	// Timeout bounds a single attempt.
	Timeout time.Duration
	// MaxRetries is the number of attempts after the first one.
	MaxRetries int
	// RetryCooldown is the wait before the first retry, in seconds.
	RetryCooldown float64
	// RetryExponent multiplies the cooldown after each retry.
	RetryExponent float64
	// RequestsPerSecond throttles requests. Zero disables throttling.
	RequestsPerSecond float64
	// Proxy is an optional proxy URL ("http://host:port").
	Proxy string
}

// DefaultOptions returns the options used by NewClient.
func DefaultOptions() Options {
	return Options{
		UserAgent:         "BandcampTrackExtractor",
		Timeout:           60 * time.Second,
		MaxRetries:        3,
		RetryCooldown:     0.2,
		RetryExponent:     4.0,
		RequestsPerSecond: 2,
	}
}

// Client wraps HTTP operations with Bandcamp-specific configuration.
//
// Client provides:
//   - Configured User-Agent header for Bandcamp compatibility
//   - Timeout handling
//   - Retries with exponential cooldown
//   - Request throttling
//
// Client is the page fetcher used by the extractors:
//
//	client := NewClient()
//	html, err := client.GetString(ctx, "https://artist.bandcamp.com/track/name")
type Client struct {
	httpClient *http.Client
	opts       Options
	limiter    *rate.Limiter
}

// NewClient creates a new HTTP client with DefaultOptions.
func NewClient() *Client {
	c, _ := NewClientWithOptions(DefaultOptions())
	return c
}

// NewClientWithOptions creates a new HTTP client.
//
// Returns an error if opts.Proxy is not a valid URL.
func NewClientWithOptions(opts Options) (*Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.Proxy != "" {
		proxyURL, err := url.Parse(opts.Proxy)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid proxy %q", opts.Proxy)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		opts:    opts,
		limiter: limiter,
	}, nil
}

// Get performs a GET request and returns the response body as bytes.
//
// Failed attempts are retried up to MaxRetries times, waiting
// RetryCooldown * RetryExponent^attempt seconds in between. A 4xx response
// other than 429 is not retried.
//
// Returns an error if:
//   - Every attempt fails
//   - The context is cancelled
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	logger := zerolog.Ctx(ctx)

	var lastErr error
	for tries := 0; tries <= c.opts.MaxRetries; tries++ {
		if tries > 0 {
			logger.Debug().Str("url", url).Int("try", tries).Err(lastErr).Msg("retrying request")
			if err := c.waitForRetry(ctx, tries-1); err != nil {
				return nil, err
			}
		}

		body, err := c.get(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable(err) || ctx.Err() != nil {
			break
		}
	}

	return nil, errors.Wrapf(lastErr, "GET %s", url)
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &permanentError{err}
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		statusErr := errors.Wrapf(ErrStatus, "HTTP %d: %s", resp.StatusCode, resp.Status)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, &permanentError{statusErr}
		}
		return nil, statusErr
	}

	return io.ReadAll(resp.Body)
}

// GetString performs a GET request and returns the response body as a string.
//
// This is a convenience wrapper around Get for fetching text content like HTML.
//
// Example:
//
//	html, err := client.GetString(ctx, "https://artist.bandcamp.com/track/name")
func (c *Client) GetString(ctx context.Context, url string) (string, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// DownloadBytes downloads a small file, such as cover art, into memory.
//
// Example:
//
//	imageData, err := client.DownloadBytes(ctx, meta.ThumbnailURL)
func (c *Client) DownloadBytes(ctx context.Context, url string) ([]byte, error) {
	return c.Get(ctx, url)
}

func (c *Client) waitForRetry(ctx context.Context, tries int) error {
	cooldown := c.opts.RetryCooldown * math.Pow(c.opts.RetryExponent, float64(tries))
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Duration(cooldown * float64(time.Second))):
		return nil
	}
}

// permanentError marks failures that retrying cannot fix.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

func retryable(err error) bool {
	var perm *permanentError
	return !errors.As(err, &perm)
}
