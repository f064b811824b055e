package apiclient

import (
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ClientOption defines options for configuring the admin API client.
type ClientOption func(*Client)

// WithLogger sets a custom logger for the client.
// If not provided, a no-op logger will be used.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger.Named("apiclient").With(zap.String("baseURL", c.baseURL.String()))
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout sets the request timeout on the client's transport.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithTokenSource sets the bearer token source attached to requests.
func WithTokenSource(tokens TokenSource) ClientOption {
	return func(c *Client) {
		c.tokens = tokens
	}
}

// WithDefaultLanguage sets the Accept-Language sent when a call does
// not override it.
func WithDefaultLanguage(locale string) ClientOption {
	return func(c *Client) {
		if locale != "" {
			c.language = locale
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithRetryMax sets how many times GET requests are retried after a
// transient failure. Zero disables retries.
func WithRetryMax(retries int) ClientOption {
	return func(c *Client) {
		if retries >= 0 {
			c.retryMax = retries
		}
	}
}

// WithRetryPolicy replaces the backoff used between GET retries.
func WithRetryPolicy(factory func() backoff.BackOff) ClientOption {
	return func(c *Client) {
		if factory != nil {
			c.newBackOff = factory
		}
	}
}

// WithRateLimit throttles outgoing requests to rps requests per second
// with the given burst. A non-positive rps leaves the client unthrottled.
func WithRateLimit(rps float64, burst int) ClientOption {
	return func(c *Client) {
		if rps > 0 {
			if burst < 1 {
				burst = 1
			}
			c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// CallOption adjusts a single request.
type CallOption func(*callOptions)

type callOptions struct {
	language string
}

// WithLanguage overrides the Accept-Language header for one request,
// so translated fields can be read or written in a specific locale
// without changing the client default.
func WithLanguage(locale string) CallOption {
	return func(o *callOptions) {
		if locale != "" {
			o.language = locale
		}
	}
}
