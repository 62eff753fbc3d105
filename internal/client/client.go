// Package client talks to the remote usage backend. Responses are
// decoded strictly against the documented schema; an unexpected field is
// a decode error, never a silent guess at what the backend meant.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// Environment selects which backend environment's usage to query.
type Environment string

const (
	EnvProduction Environment = "Production"
	EnvUAT        Environment = "UAT"
	EnvEvals      Environment = "Evals"
	EnvAll        Environment = "All"
)

// ParseEnvironment converts a string to Environment. Unknown values
// default to All.
func ParseEnvironment(s string) Environment {
	switch s {
	case "Production", "production":
		return EnvProduction
	case "UAT", "uat":
		return EnvUAT
	case "Evals", "evals":
		return EnvEvals
	default:
		return EnvAll
	}
}

// Config contains backend client configuration.
type Config struct {
	BaseURL string
	APIKey  string

	// Timeout per request (default 30s).
	Timeout time.Duration

	// RequestsPerSecond throttles outbound calls (default 5).
	RequestsPerSecond float64
}

// Client is a configured HTTP client for the usage backend.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a backend client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = 5
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}, nil
}

// UsageQuery selects a window of usage records.
type UsageQuery struct {
	Environment Environment
	StartDate   time.Time
	EndDate     time.Time
	Limit       int
	Offset      int
}

func (q UsageQuery) values() url.Values {
	v := url.Values{}
	env := q.Environment
	if env == "" {
		env = EnvAll
	}
	v.Set("environment", string(env))
	if !q.StartDate.IsZero() {
		v.Set("start_date", q.StartDate.Format("2006-01-02"))
	}
	if !q.EndDate.IsZero() {
		v.Set("end_date", q.EndDate.Format("2006-01-02"))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	return v
}

// usageResponse is the backend's list envelope.
type usageResponse struct {
	Records []UsageRecord `json:"records"`
	Total   int           `json:"total"`
}

// ListUsage fetches one page of usage records.
func (c *Client) ListUsage(ctx context.Context, q UsageQuery) ([]UsageRecord, int, error) {
	var resp usageResponse
	if err := c.getJSON(ctx, "/api/v1/usage", q.values(), &resp); err != nil {
		return nil, 0, err
	}

	for i, rec := range resp.Records {
		if err := rec.Validate(); err != nil {
			return nil, 0, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return resp.Records, resp.Total, nil
}

// FetchAllUsage pages through the full result set for the query window.
func (c *Client) FetchAllUsage(ctx context.Context, q UsageQuery) ([]UsageRecord, error) {
	if q.Limit <= 0 {
		q.Limit = 500
	}
	q.Offset = 0

	var all []UsageRecord
	for {
		records, total, err := c.ListUsage(ctx, q)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)

		q.Offset += len(records)
		if len(records) == 0 || q.Offset >= total {
			return all, nil
		}
	}
}

// getJSON performs a throttled GET and strictly decodes the response.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dst any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	u := c.cfg.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend returned status %d: %s", resp.StatusCode, string(body))
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("response does not match the documented schema: %w", err)
	}
	return nil
}
