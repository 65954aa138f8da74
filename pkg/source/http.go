package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/packnav/pkg/buildinfo"
	"github.com/matzehuels/packnav/pkg/httputil"
	pnio "github.com/matzehuels/packnav/pkg/io"
	"github.com/matzehuels/packnav/pkg/observability"
	"github.com/matzehuels/packnav/pkg/pack"
)

const (
	httpTimeout = 10 * time.Second
	maxPayload  = 32 << 20
)

// HTTP fetches JSON payloads over http and https.
type HTTP struct {
	client   *http.Client
	cache    *httputil.Cache
	headers  map[string]string
	refresh  bool
	attempts int
	delay    time.Duration
	log      *log.Logger
}

// HTTPOption configures an HTTP fetcher.
type HTTPOption func(*HTTP)

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(h *HTTP) { h.client = c }
}

// WithCache caches decoded payloads. Entries are keyed by URL in the
// "payload:" namespace.
func WithCache(c *httputil.Cache) HTTPOption {
	return func(h *HTTP) {
		if c != nil {
			h.cache = c.Namespace("payload:")
		}
	}
}

// WithRefresh bypasses cached entries but still writes fresh ones.
func WithRefresh(refresh bool) HTTPOption {
	return func(h *HTTP) { h.refresh = refresh }
}

// WithHeaders adds headers to every request.
func WithHeaders(headers map[string]string) HTTPOption {
	return func(h *HTTP) { h.headers = headers }
}

// WithRetry sets the retry policy for transient failures.
func WithRetry(attempts int, delay time.Duration) HTTPOption {
	return func(h *HTTP) { h.attempts, h.delay = attempts, delay }
}

// WithHTTPLogger sets the logger.
func WithHTTPLogger(l *log.Logger) HTTPOption {
	return func(h *HTTP) {
		if l != nil {
			h.log = l
		}
	}
}

// NewHTTP returns an HTTP fetcher.
func NewHTTP(opts ...HTTPOption) *HTTP {
	h := &HTTP{
		client:   &http.Client{Timeout: httpTimeout},
		attempts: httputil.DefaultAttempts,
		delay:    httputil.DefaultDelay,
		log:      log.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Fetch implements Fetcher.
func (h *HTTP) Fetch(ctx context.Context, rawURL string) (*pack.Node, error) {
	if h.cache != nil && !h.refresh {
		var cached pack.Node
		if ok, _ := h.cache.Get(rawURL, &cached); ok {
			observability.Cache().OnCacheHit(ctx, "payload")
			if err := pack.Validate(&cached); err == nil {
				pack.Prepare(&cached)
				return &cached, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "payload")
	}

	var body []byte
	err := httputil.Retry(ctx, h.attempts, h.delay, func() error {
		var err error
		body, err = h.get(ctx, rawURL)
		return err
	})
	if err != nil {
		return nil, err
	}

	tree, err := pnio.ParseJSON(body)
	if err != nil {
		return nil, err
	}
	if h.cache != nil {
		if err := h.cache.Set(rawURL, tree); err != nil {
			h.log.Warn("cache write failed", "url", rawURL, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "payload", len(body))
		}
	}
	h.log.Debug("payload fetched", "url", rawURL, "nodes", tree.Count())
	return tree, nil
}

func (h *HTTP) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	for k, v := range h.headers {
		req.Header.Set(k, v)
	}

	host, path := hostPath(req.URL)
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := h.client.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode, rawURL); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(resp.Body, maxPayload)); err != nil {
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: read body: %v", ErrNetwork, err)}
	}
	return buf.Bytes(), nil
}

func hostPath(u *url.URL) (string, string) {
	if u == nil {
		return "", ""
	}
	return u.Host, u.Path
}

func checkStatus(code int, rawURL string) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, rawURL)
	case code == http.StatusTooManyRequests || code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
