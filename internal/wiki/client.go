// Package wiki is the PRTS wiki collaborator: MediaWiki search, the
// cargoquery recruit catalog pull, and page content extraction. Everything
// here is I/O; matching semantics live in the recruit package.
package wiki

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const defaultTimeout = 30 * time.Second

type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
	logger    *slog.Logger
}

type Options struct {
	UserAgent string
	Timeout   time.Duration
	// RequestsPerSecond caps outbound requests; zero disables limiting.
	RequestsPerSecond float64
	Logger            *slog.Logger
	// HTTPClient overrides the default client, for tests.
	HTTPClient *http.Client
}

func New(baseURL string, opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:   baseURL,
		userAgent: opts.UserAgent,
		http:      httpClient,
		limiter:   limiter,
		logger:    logger,
	}
}

// BaseURL returns the wiki root, without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// PageURL returns the canonical URL of a wiki page.
func (c *Client) PageURL(title string) string {
	return c.baseURL + "/w/" + url.PathEscape(title)
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("requesting %s: unexpected status %d", path, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", path, err)
	}
	c.logger.Debug("wiki request", "path", path, "bytes", len(body), "elapsed", time.Since(start))
	return body, nil
}
