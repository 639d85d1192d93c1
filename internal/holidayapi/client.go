package holidayapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultEndpoint = "https://holidayapi.com/v1/holidays"
	defaultTimeout  = 10 * time.Second
)

// Source returns the holidays of one country for the configured year
type Source interface {
	Holidays(ctx context.Context, country string) (*Response, error)
}

// Client implements Source using the holidayapi.com REST API
type Client struct {
	endpoint   string
	apiKey     string
	year       int
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimit paces requests to at most rps per second.
// A zero or negative value disables pacing.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient creates a new holidays API client
func NewClient(endpoint, apiKey string, year int, logger *zap.Logger, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	c := &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		year:     year,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Holidays fetches all holidays of country for the client's year.
// Every call issues exactly one request; failures are returned as is.
func (c *Client) Holidays(ctx context.Context, country string) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{Country: country, Err: err}
		}
	}

	reqURL, err := c.buildURL(country)
	if err != nil {
		return nil, &TransportError{Country: country, Err: err}
	}

	// The query carries the API key, so only the country is logged
	c.logger.Debug("Fetching holidays",
		zap.String("country", country),
		zap.Int("year", c.year))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &TransportError{Country: country, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Country: country, Err: fmt.Errorf("HTTP request failed: %w", redact(err))}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Country: country, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{
			Country:    country,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
		}
	}

	result, err := decode(country, body)
	if err != nil {
		return nil, err
	}

	if result.Warning != "" {
		c.logger.Warn("Holiday API warning",
			zap.String("country", country),
			zap.String("warning", result.Warning))
	}

	c.logger.Info("Holidays fetched",
		zap.String("country", country),
		zap.Int("count", len(result.Holidays)),
		zap.Int("requests_used", result.Requests.Used),
		zap.Int("requests_available", result.Requests.Available))

	return result, nil
}

func (c *Client) buildURL(country string) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", c.endpoint, err)
	}

	q := u.Query()
	q.Set("key", c.apiKey)
	q.Set("country", country)
	q.Set("year", strconv.Itoa(c.year))
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// decode parses a response body shared by every Source implementation
func decode(country string, body []byte) (*Response, error) {
	var result Response
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &DecodeError{Country: country, Err: err}
	}
	if result.Holidays == nil {
		return nil, &DecodeError{Country: country, Err: fmt.Errorf("missing holidays list")}
	}
	return &result, nil
}

// errorMessage extracts the "error" field of a failed response, if any
func errorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	if len(body) > 200 {
		return string(body[:200])
	}
	return string(body)
}

// redact strips the request URL (and the API key in it) from transport errors
func redact(err error) error {
	if urlErr, ok := err.(*url.Error); ok {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
