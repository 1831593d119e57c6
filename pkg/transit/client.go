package transit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"commutectl/pkg/commute"

	"github.com/sirupsen/logrus"
)

var _ commute.Fetcher = (*Client)(nil)

var baseURL = "http://www.viaggiatreno.it/infomobilita/resteasy/viaggiatreno"

const (
	// TimeFormatEpoch appends the query instant as epoch milliseconds
	TimeFormatEpoch = "epoch"
	// TimeFormatDate appends the query instant as a JavaScript date string
	TimeFormatDate = "date"

	jsDateLayout = "Mon Jan 02 2006 15:04:05 GMT-0700"
	userAgent    = "Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X) AppleWebKit/605.1.15"
)

// Client interacts with the ViaggiaTreno REST API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	timeFormat  string
	maxAttempts int
	backoff     time.Duration
	logger      *logrus.Logger
}

// Option customises a Client
type Option func(*Client)

// WithBaseURL points the client at another ViaggiaTreno compatible endpoint
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithTimeFormat selects how the query instant is serialized into the URL
func WithTimeFormat(format string) Option {
	return func(c *Client) {
		if format == TimeFormatDate || format == TimeFormatEpoch {
			c.timeFormat = format
		}
	}
}

// WithRetries allows transient 502/503/504 responses to be retried
func WithRetries(attempts int, backoff time.Duration) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.maxAttempts = attempts
		}
		c.backoff = backoff
	}
}

// WithTimeout sets the per-request HTTP timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger sets the logger used for retry notices
func WithLogger(l *logrus.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		baseURL:     baseURL,
		timeFormat:  TimeFormatEpoch,
		maxAttempts: 1,
		backoff:     time.Second,
		logger:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// getWithRetries issues a GET, retrying 502/503/504 and network errors up to maxAttempts times
func (c *Client) getWithRetries(ctx context.Context, reqURL string) (*http.Response, error) {
	var lastErr error
	var resp *http.Response

	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}
		// ViaggiaTreno rejects the default Go user agent
		req.Header.Set("User-Agent", userAgent)

		resp, lastErr = c.httpClient.Do(req)

		if lastErr == nil && (resp.StatusCode == 503 || resp.StatusCode == 504 || resp.StatusCode == 502) {
			resp.Body.Close()
			lastErr = fmt.Errorf("transient status code: %d", resp.StatusCode)
		} else if lastErr == nil {
			return resp, nil
		}

		if ctx.Err() != nil || attempt == c.maxAttempts-1 {
			break
		}

		c.logger.WithFields(logrus.Fields{
			"attempt": attempt + 1,
			"max":     c.maxAttempts,
		}).WithError(lastErr).Warn("transit API congested, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt+1) * c.backoff):
		}
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", c.maxAttempts, lastErr)
}

// departuresURL builds the /partenze endpoint for a station and instant
func (c *Client) departuresURL(stationCode string, now time.Time) string {
	stamp := strconv.FormatInt(now.UnixMilli(), 10)
	if c.timeFormat == TimeFormatDate {
		stamp = url.PathEscape(now.Format(jsDateLayout))
	}
	return fmt.Sprintf("%s/partenze/%s/%s", c.baseURL, url.PathEscape(stationCode), stamp)
}

// FetchDepartures gets the departure board for a station at instant now.
// Transport failures wrap commute.ErrFetchFailed, undecodable bodies wrap
// commute.ErrMalformedPayload.
func (c *Client) FetchDepartures(ctx context.Context, stationCode string, now time.Time) ([]commute.Departure, error) {
	reqURL := c.departuresURL(stationCode, now)

	resp, err := c.getWithRetries(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", commute.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status code: %d", commute.ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read departure response body: %v", commute.ErrFetchFailed, err)
	}

	records, err := decodeDepartures(body)
	if err != nil {
		return nil, err
	}

	deps := make([]commute.Departure, 0, len(records))
	for _, r := range records {
		deps = append(deps, r.toDeparture())
	}

	c.logger.WithFields(logrus.Fields{
		"station": stationCode,
		"count":   len(deps),
	}).Debug("fetched departure board")

	return deps, nil
}

func decodeDepartures(body []byte) ([]departureRecord, error) {
	trimmed := strings.TrimSpace(string(body))
	if !strings.HasPrefix(trimmed, "[") {
		return nil, fmt.Errorf("%w: expected a JSON list", commute.ErrMalformedPayload)
	}

	var records []departureRecord
	if err := json.Unmarshal([]byte(trimmed), &records); err != nil {
		return nil, fmt.Errorf("%w: failed to decode departures JSON: %v", commute.ErrMalformedPayload, err)
	}
	return records, nil
}

// FetchStations searches stations whose name starts with query
func (c *Client) FetchStations(ctx context.Context, query string) ([]Station, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("station query must not be empty")
	}
	reqURL := fmt.Sprintf("%s/cercaStazione/%s", c.baseURL, url.PathEscape(query))

	resp, err := c.getWithRetries(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stations: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read station response body: %w", err)
	}

	var stations []Station
	if err := json.Unmarshal(body, &stations); err != nil {
		return nil, fmt.Errorf("failed to decode stations JSON: %w", err)
	}

	var filtered []Station
	for _, s := range stations {
		if s.ID != "" {
			filtered = append(filtered, s)
		}
	}
	return filtered, nil
}
