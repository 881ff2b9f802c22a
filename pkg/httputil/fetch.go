package httputil

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sketchnote/pkg/errors"
)

const (
	// MaxBodySize limits a downloaded image.
	MaxBodySize = 32 << 20

	defaultAttempts = 3
	defaultDelay    = time.Second
	defaultTimeout  = 30 * time.Second
)

// IsURL reports whether s is an http or https URL.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Fetcher downloads remote images.
type Fetcher struct {
	client   *http.Client
	cache    *Cache
	attempts int
	delay    time.Duration
	logger   *log.Logger
}

// FetcherOption configures a [Fetcher].
type FetcherOption func(*Fetcher)

// WithClient sets the HTTP client.
func WithClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) { f.client = c }
}

// WithCache serves repeated fetches from c.
func WithCache(c *Cache) FetcherOption {
	return func(f *Fetcher) { f.cache = c.Namespace("fetch:") }
}

// WithRetry sets the number of attempts and the initial delay.
func WithRetry(attempts int, delay time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.attempts = attempts
		f.delay = delay
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) FetcherOption {
	return func(f *Fetcher) { f.logger = l }
}

// NewFetcher returns a Fetcher with a 30s client timeout and three attempts.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:   &http.Client{Timeout: defaultTimeout},
		attempts: defaultAttempts,
		delay:    defaultDelay,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the body of rawURL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if !IsURL(rawURL) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "not an http(s) URL: %q", rawURL)
	}
	if f.cache != nil {
		data, ok, err := f.cache.Get(rawURL)
		if ok {
			f.logger.Debug("fetch cache hit", "url", rawURL)
			return data, nil
		}
		if err != nil && err != ErrExpired {
			f.logger.Warn("fetch cache read failed", "url", rawURL, "error", err)
		}
	}

	var data []byte
	err := Retry(ctx, f.attempts, f.delay, func() error {
		var err error
		data, err = f.get(ctx, rawURL)
		if err != nil {
			f.logger.Debug("fetch failed", "url", rawURL, "error", err)
		}
		return err
	})
	if err != nil {
		var re *RetryableError
		if stderrors.As(err, &re) {
			err = re.Err
		}
		return nil, err
	}

	if f.cache != nil {
		if err := f.cache.Set(rawURL, data); err != nil {
			f.logger.Warn("fetch cache write failed", "url", rawURL, "error", err)
		}
	}
	return data, nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "request %s", rawURL)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RetryableError{Err: errors.Wrap(errors.ErrCodeIO, err, "get %s", rawURL)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeNotFound, "get %s: %s", rawURL, resp.Status)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, &RetryableError{Err: errors.New(errors.ErrCodeIO, "get %s: %s", rawURL, resp.Status)}
	default:
		return nil, errors.New(errors.ErrCodeIO, "get %s: %s", rawURL, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, &RetryableError{Err: errors.Wrap(errors.ErrCodeIO, err, "read %s", rawURL)}
	}
	if len(data) > MaxBodySize {
		return nil, errors.New(errors.ErrCodeInvalidInput, "get %s: body exceeds %d MiB", rawURL, MaxBodySize>>20)
	}
	return data, nil
}
