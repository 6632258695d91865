package hrisapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cmlabs-hris/hris-duty-report/internal/config"
	"github.com/cmlabs-hris/hris-duty-report/internal/domain/attendance"
)

// maxErrorBody caps how much of an error response is kept for logging.
const maxErrorBody = 512

// Client talks to the HRIS API that owns schedules, attendance logs and holidays
type Client struct {
	baseURL    string
	httpClient *http.Client
	retryCount int
	retryDelay time.Duration
}

// NewClient creates a new HRIS API client. httpClient should already carry
// authentication, see oauth.NewHTTPClient.
func NewClient(cfg config.UpstreamConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	retryCount := cfg.RetryCount
	if retryCount < 1 {
		retryCount = 1
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		retryCount: retryCount,
		retryDelay: cfg.RetryDelay,
	}
}

// APIError represents a non-2xx HRIS API response
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hris API error [%d]: %s", e.StatusCode, e.Message)
}

// Unwrap lets callers match on the attendance upstream sentinels.
func (e *APIError) Unwrap() error {
	if e.StatusCode >= 500 {
		return attendance.ErrUpstreamUnavailable
	}
	return attendance.ErrUpstreamRejected
}

func (e *APIError) retryable() bool {
	return e.StatusCode >= 500
}

// get fetches path and decodes the response into out. Transport failures and
// 5xx responses are retried with a fixed delay; 4xx responses are returned
// immediately.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 1; attempt <= c.retryCount; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}

		body, err := c.fetch(ctx, endpoint)
		if err == nil {
			return decodeEnvelope(body, out)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.retryable() {
			return err
		}

		lastErr = err
		slog.WarnContext(ctx, "HRIS API request failed",
			"path", path,
			"attempt", attempt,
			"max_attempts", c.retryCount,
			"error", err,
		)
	}

	return lastErr
}

func (c *Client) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", attendance.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", attendance.ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(bytes.TrimSpace(body))}
	}
	return body, nil
}

// decodeEnvelope accepts either a bare JSON array or an object wrapping it in "data".
func decodeEnvelope(body []byte, out any) error {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '{' {
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return fmt.Errorf("%w: failed to decode response envelope: %w", attendance.ErrMalformedPayload, err)
		}
		body = envelope.Data
	}
	if len(body) == 0 || string(body) == "null" {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %w", attendance.ErrMalformedPayload, err)
	}
	return nil
}
