// Package apiclient implements the HTTP client for the Joanie admin
// API. It speaks the Django REST Framework dialect: trailing-slash
// routes, Bearer authentication, Accept-Language negotiation and
// paginated list envelopes.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/openfun/joanie-sub003/internal/pkg/apperror"
)

// Client provides methods to interact with the admin API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *zap.Logger
	tokens     TokenSource
	language   string
	userAgent  string
	limiter    *rate.Limiter
	retryMax   int
	newBackOff func() backoff.BackOff
	headers    map[string]string
}

// New creates a new admin API client instance. baseURL is the API root
// (e.g. "https://example.com/api/v1.0/"); a missing trailing slash is
// added so resource paths resolve beneath it.
func New(baseURL string, options ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL cannot be empty")
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse baseURL: %w", err)
	}

	client := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     zap.NewNop(),
		language:   "en",
		userAgent:  "joanie-admin",
		retryMax:   3,
		newBackOff: func() backoff.BackOff { return backoff.NewExponentialBackOff() },
		headers:    make(map[string]string),
	}
	for _, option := range options {
		option(client)
	}
	client.logger.Debug("admin API client created", zap.String("baseURL", client.baseURL.String()))
	return client, nil
}

// BaseURL returns the resolved API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Language returns the default Accept-Language sent with requests.
func (c *Client) Language() string {
	return c.language
}

// Get performs a GET request against path with the given query string.
// Transient failures (network errors, 5xx) are retried with backoff.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any, opts ...CallOption) error {
	u, err := c.endpoint(path, query)
	if err != nil {
		return err
	}
	return c.execute(ctx, http.MethodGet, u, "", nil, out, c.callOptions(opts))
}

// Post sends body as JSON to path.
func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...CallOption) error {
	return c.sendJSON(ctx, http.MethodPost, path, body, out, opts)
}

// Patch sends a partial update for the resource at path.
func (c *Client) Patch(ctx context.Context, path string, body, out any, opts ...CallOption) error {
	return c.sendJSON(ctx, http.MethodPatch, path, body, out, opts)
}

// Put replaces the resource at path.
func (c *Client) Put(ctx context.Context, path string, body, out any, opts ...CallOption) error {
	return c.sendJSON(ctx, http.MethodPut, path, body, out, opts)
}

// Delete removes the resource at path. A 204 response is expected.
func (c *Client) Delete(ctx context.Context, path string, opts ...CallOption) error {
	u, err := c.endpoint(path, nil)
	if err != nil {
		return err
	}
	return c.execute(ctx, http.MethodDelete, u, "", nil, nil, c.callOptions(opts))
}

// FilePart is one file attached to a multipart request.
type FilePart struct {
	Field    string
	Filename string
	MIME     string
	Content  []byte
}

// Upload sends a multipart/form-data request carrying fields and files.
// method is POST for creations and PATCH for partial updates.
func (c *Client) Upload(ctx context.Context, method, path string, fields url.Values, files []FilePart, out any, opts ...CallOption) error {
	u, err := c.endpoint(path, nil)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, values := range fields {
		for _, value := range values {
			if err := writer.WriteField(key, value); err != nil {
				return fmt.Errorf("write field %s: %w", key, err)
			}
		}
	}
	for _, file := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.Field, file.Filename))
		if file.MIME != "" {
			header.Set("Content-Type", file.MIME)
		}
		part, err := writer.CreatePart(header)
		if err != nil {
			return fmt.Errorf("create part %s: %w", file.Field, err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return fmt.Errorf("write part %s: %w", file.Field, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}

	return c.execute(ctx, method, u, writer.FormDataContentType(), buf.Bytes(), out, c.callOptions(opts))
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body, out any, opts []CallOption) error {
	u, err := c.endpoint(path, nil)
	if err != nil {
		return err
	}

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s body: %w", method, path, err)
		}
	}
	return c.execute(ctx, method, u, "application/json", payload, out, c.callOptions(opts))
}

// endpoint resolves a resource path against the API root. Paths keep
// their trailing slash since Django redirects bare routes otherwise.
func (c *Client) endpoint(path string, query url.Values) (string, error) {
	ref, err := url.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return "", fmt.Errorf("parse path %q: %w", path, err)
	}
	u := c.baseURL.ResolveReference(ref)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

func (c *Client) callOptions(opts []CallOption) callOptions {
	options := callOptions{language: c.language}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// execute runs the request through the retry policy. Only GETs are
// retried; everything else gets a single attempt since mutations are
// not idempotent.
func (c *Client) execute(ctx context.Context, method, u, contentType string, payload []byte, out any, options callOptions) error {
	operation := func() error {
		return c.roundTrip(ctx, method, u, contentType, payload, out, options)
	}

	var attempts uint64
	if method == http.MethodGet {
		attempts = uint64(c.retryMax)
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), attempts), ctx)
	return backoff.Retry(operation, policy)
}

func (c *Client) roundTrip(ctx context.Context, method, u, contentType string, payload []byte, out any, options callOptions) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(apperror.Wrap(err, apperror.KindTransport, "common.network_error", "rate limit wait interrupted"))
		}
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("create %s request: %w", method, err))
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" && payload != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if options.language != "" {
		req.Header.Set("Accept-Language", options.language)
	}
	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return backoff.Permanent(err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("url", u),
			zap.Error(err),
		)
		wrapped := apperror.Wrap(err, apperror.KindTransport, "common.network_error", "server unreachable")
		if ctx.Err() != nil {
			return backoff.Permanent(wrapped)
		}
		return wrapped
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperror.Wrap(err, apperror.KindTransport, "common.network_error", "read response body")
	}

	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("url", u),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode >= 400 {
		apiErr := decodeAPIError(resp.StatusCode, respBody)
		if resp.StatusCode >= 500 {
			return apiErr
		}
		return backoff.Permanent(apiErr)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return backoff.Permanent(apperror.Wrap(err, apperror.KindServer, "common.unexpected_error", "decode response body"))
	}
	return nil
}
