// Package alphavantage loads daily closing prices from the AlphaVantage API, keeping a copy of every
// series in a local cache folder.
package alphavantage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/folio"
	"github.com/phuslu/log"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://www.alphavantage.co/query"
	DefaultTimeout = 30 * time.Second
	// DefaultRequestsPerMinute is the limit of the free tier.
	DefaultRequestsPerMinute = 5
	// APIKeyEnv is the environment variable holding the API key.
	APIKeyEnv = "ALPHAVANTAGE_API_KEY"
)

// ErrMissingAPIKey is returned when a series must be fetched without an API key.
var ErrMissingAPIKey = errors.New("missing AlphaVantage API key")

// Client implements folio.Loader.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *log.Logger
	limiter    *rate.Limiter
	cacheDir   string
	maxAge     time.Duration
	now        func() time.Time
}

var _ folio.Loader = (*Client)(nil)

// Option configures the client
type Option func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRateLimit sets the number of requests per minute, 0 or less disables the limit.
func WithRateLimit(requestsPerMinute int) Option {
	return func(c *Client) {
		c.limiter = newLimiter(requestsPerMinute)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithCacheDir sets the folder where series are cached as <ticker>.csv. An empty dir disables the
// cache.
func WithCacheDir(dir string) Option {
	return func(c *Client) {
		c.cacheDir = dir
	}
}

// WithMaxAge sets how long a cached series is used before being fetched again, 0 means forever.
func WithMaxAge(maxAge time.Duration) Option {
	return func(c *Client) {
		c.maxAge = maxAge
	}
}

func newLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1)
}

// NewClient creates a new AlphaVantage client
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: newLimiter(DefaultRequestsPerMinute),
		logger:  &log.Logger{Writer: log.IOWriter{Writer: io.Discard}},
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an error reported by AlphaVantage, either with an HTTP status or with a JSON
// message in place of the CSV data.
type APIError struct {
	StatusCode int
	Symbol     string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("AlphaVantage API error for %s: %s (status: %d)", e.Symbol, e.Message, e.StatusCode)
}

// Load returns the daily closing prices of ticker.
//
// A fresh cached copy is used when available. Otherwise the series is fetched and cached; if the
// fetch fails, a stale cached copy is used instead.
func (c *Client) Load(ctx context.Context, ticker string) (*folio.PriceSeries, error) {
	if ticker == "" || strings.ContainsAny(ticker, `/\`) || strings.HasPrefix(ticker, ".") {
		return nil, fmt.Errorf("%w: invalid ticker %q", folio.ErrInvalidArgument, ticker)
	}

	cached, fresh := c.cached(ticker)
	if fresh {
		s, err := c.decodeFile(ticker, cached)
		if err == nil {
			c.logger.Debug().Str("ticker", ticker).Str("file", cached).Msg("prices loaded from cache")
			return s, nil
		}
		c.logger.Warn().Str("ticker", ticker).Err(err).Msg("ignoring invalid cache file")
		cached = ""
	}

	data, err := c.fetch(ctx, ticker)
	if err != nil {
		if cached == "" {
			return nil, err
		}
		s, cerr := c.decodeFile(ticker, cached)
		if cerr != nil {
			return nil, errors.Join(err, cerr)
		}
		c.logger.Warn().Str("ticker", ticker).Err(err).Msg("using stale cached prices")
		return s, nil
	}

	s, err := folio.DecodePriceSeries(ticker, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if err := c.store(ticker, data); err != nil {
		c.logger.Warn().Str("ticker", ticker).Err(err).Msg("cache write error (ignored)")
	}
	return s, nil
}

// cached returns the cache file of ticker if it exists, and whether it is fresh.
func (c *Client) cached(ticker string) (filename string, fresh bool) {
	if c.cacheDir == "" {
		return "", false
	}
	filename = filepath.Join(c.cacheDir, ticker+".csv")
	info, err := os.Stat(filename)
	if err != nil {
		return "", false
	}
	return filename, c.maxAge <= 0 || c.now().Sub(info.ModTime()) < c.maxAge
}

func (c *Client) decodeFile(ticker, filename string) (*folio.PriceSeries, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return folio.DecodePriceSeries(ticker, f)
}

// store writes data in the cache file of ticker.
func (c *Client) store(ticker string, data []byte) error {
	if c.cacheDir == "" {
		return nil
	}
	if err := os.MkdirAll(c.cacheDir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(c.cacheDir, "."+ticker+"-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(c.cacheDir, ticker+".csv"))
}

// fetch performs a rate-limited request of the full daily series as CSV.
func (c *Client) fetch(ctx context.Context, ticker string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: cannot fetch %s, set %s", ErrMissingAPIKey, ticker, APIKeyEnv)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("function", "TIME_SERIES_DAILY")
	params.Set("outputsize", "full")
	params.Set("symbol", ticker)
	params.Set("apikey", c.apiKey)
	params.Set("datatype", "csv")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Info().Str("ticker", ticker).Str("url", c.baseURL).Msg("AlphaVantage API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Symbol: ticker, Message: strings.TrimSpace(string(body))}
	}
	// Errors come back as a JSON object, with a 200 status.
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '{' {
		return nil, parseAPIError(resp.StatusCode, ticker, trimmed)
	}
	return body, nil
}

// messagePaths are the places where AlphaVantage writes its error messages.
var messagePaths = []string{`$["Error Message"]`, `$.Note`, `$.Information`}

// parseAPIError extracts the message of a JSON error response.
func parseAPIError(status int, ticker string, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Symbol: ticker, Message: string(body)}
	var jobj any
	if err := json.Unmarshal(body, &jobj); err != nil {
		return apiErr
	}
	for _, path := range messagePaths {
		jval, err := jsonpath.Get(path, jobj)
		if err != nil {
			continue
		}
		if msg, ok := jval.(string); ok && msg != "" {
			apiErr.Message = msg
			return apiErr
		}
	}
	return apiErr
}
