// Package transport fetches content files from the content root over HTTP,
// retrying transient failures with exponential backoff and preferring
// localized copies when a language other than the default is active.
package transport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/hexref/internal/locale"
	"github.com/samdwyer/hexref/internal/telemetry"
)

const (
	// DefaultMaxRetries is the number of retries after the first attempt.
	DefaultMaxRetries = 3

	// DefaultBaseDelay is the wait before the first retry. Each later retry
	// doubles it (1s, 2s, 4s).
	DefaultBaseDelay = time.Second

	// DefaultTimeout bounds a single HTTP request.
	DefaultTimeout = 10 * time.Second

	// maxBodySize caps how much of a response body is read.
	maxBodySize = 32 << 20
)

// Response is a fully read HTTP response.
type Response struct {
	URL        string
	StatusCode int
	Body       []byte
}

// OK reports whether the response has a 2xx status.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// NotFound reports whether the file is definitively absent.
func (r *Response) NotFound() bool {
	return r != nil && r.StatusCode == http.StatusNotFound
}

// RetryHook is called before every backoff wait. attempt counts the attempts
// made so far, starting at 1.
type RetryHook func(attempt int, delay time.Duration, err error)

// Fetcher retrieves files relative to a content root.
type Fetcher struct {
	root       *url.URL
	client     *http.Client
	maxRetries int
	baseDelay  time.Duration
	logger     *slog.Logger
	tracer     trace.Tracer
	onRetry    RetryHook
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// WithMaxRetries sets how many times a failed request is retried.
func WithMaxRetries(n int) Option {
	return func(f *Fetcher) {
		if n < 0 {
			n = 0
		}
		f.maxRetries = n
	}
}

// WithBaseDelay sets the wait before the first retry.
func WithBaseDelay(d time.Duration) Option {
	return func(f *Fetcher) { f.baseDelay = d }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(f *Fetcher) { f.logger = l }
}

// WithTracer sets the tracer used for fetch spans.
func WithTracer(t trace.Tracer) Option {
	return func(f *Fetcher) { f.tracer = t }
}

// WithRetryHook registers a callback invoked before each retry wait.
func WithRetryHook(h RetryHook) Option {
	return func(f *Fetcher) { f.onRetry = h }
}

// New creates a fetcher for the given content root, e.g.
// "https://example.org/hexref/".
func New(root string, opts ...Option) (*Fetcher, error) {
	u, err := url.Parse(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRoot, err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	f := &Fetcher{
		root:       u,
		client:     &http.Client{Timeout: DefaultTimeout},
		maxRetries: DefaultMaxRetries,
		baseDelay:  DefaultBaseDelay,
		logger:     slog.Default(),
		tracer:     telemetry.Tracer("transport"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Root returns the content root URL.
func (f *Fetcher) Root() string {
	return f.root.String()
}

// CanFetch reports whether the content root is reachable over the network.
// Local file roots cannot be fetched.
func (f *Fetcher) CanFetch() bool {
	return (f.root.Scheme == "http" || f.root.Scheme == "https") && f.root.Host != ""
}

// resolve turns a content path into an absolute URL under the root.
func (f *Fetcher) resolve(path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("invalid content path %q: %w", path, err)
	}
	return f.root.ResolveReference(ref).String(), nil
}

// FetchWithRetry fetches path, retrying transient failures. A 2xx response
// is returned at once; a 404 is returned at once without retrying and
// without an error. Any other status or network error is retried with
// exponential backoff; once retries are exhausted the last error is returned.
func (f *Fetcher) FetchWithRetry(ctx context.Context, path string) (*Response, error) {
	target, err := f.resolve(path)
	if err != nil {
		return nil, err
	}

	ctx, span := f.tracer.Start(ctx, "transport.fetch",
		trace.WithAttributes(attribute.String("url", target)))
	defer span.End()

	attempts := 0
	operation := func() (*Response, error) {
		attempts++
		resp, err := f.get(ctx, target)
		if err != nil {
			return nil, err
		}
		if resp.OK() || resp.NotFound() {
			return resp, nil
		}
		return nil, &StatusError{
			URL:        target,
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
		}
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = f.baseDelay
	policy.Multiplier = 2
	policy.RandomizationFactor = 0
	policy.MaxInterval = maxInterval(f.baseDelay, f.maxRetries)

	resp, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(f.maxRetries+1)),
		backoff.WithNotify(func(err error, delay time.Duration) {
			f.logger.Info("retrying fetch",
				slog.String("url", target),
				slog.Int("retry", attempts),
				slog.Int("max_retries", f.maxRetries),
				slog.Duration("delay", delay),
				slog.Any("error", err),
			)
			if f.onRetry != nil {
				f.onRetry(attempts, delay, err)
			}
		}),
	)

	span.SetAttributes(attribute.Int("fetch.attempts", attempts))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		f.logger.Error("fetch failed",
			slog.String("url", target),
			slog.Int("attempts", attempts),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	return resp, nil
}

// maxInterval returns the longest wait, base doubled once per retry,
// saturating instead of overflowing.
func maxInterval(base time.Duration, retries int) time.Duration {
	if base <= 0 {
		return base
	}
	if retries >= 63 || base > time.Duration(math.MaxInt64>>uint(retries)) {
		return time.Duration(math.MaxInt64)
	}
	return base << uint(retries)
}

// FetchWithTranslations fetches the lang copy of path when lang is not the
// default, falling back to the base file. path may already carry a locale
// segment; it is normalized first. The base attempt's outcome is final, so
// a missing base file comes back as a 404 response.
func (f *Fetcher) FetchWithTranslations(ctx context.Context, lang, path string) (*Response, error) {
	basePath := locale.BasePath(path)

	if lang != locale.Default {
		localized := locale.LocalizedPath(basePath, lang)
		resp, err := f.FetchWithRetry(ctx, localized)
		if err == nil && resp.OK() {
			f.logger.Debug("loaded translation", slog.String("path", localized))
			return resp, nil
		}
		f.logger.Debug("translation not found, using base",
			slog.String("path", localized),
			slog.String("base", basePath),
		)
	}

	return f.FetchWithRetry(ctx, basePath)
}

// get performs one GET request and reads the body.
func (f *Fetcher) get(ctx context.Context, target string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodySize))
	if err != nil {
		return nil, err
	}

	return &Response{
		URL:        target,
		StatusCode: res.StatusCode,
		Body:       body,
	}, nil
}
