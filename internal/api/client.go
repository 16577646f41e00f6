package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/weiC29/prediction-web/internal/review"
)

const defaultHTTPTimeout = 15 * time.Second

// Client talks to a running daemon over its HTTP API. It maps the
// daemon's error statuses back onto the review package's sentinel
// errors so callers behave identically on both entry paths.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// ClientOption customizes the API client.
type ClientOption func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// NewClient constructs a client for the daemon at baseURL, e.g.
// "http://127.0.0.1:8099".
func NewClient(baseURL string, opts ...ClientOption) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Claim requests an available record. A nil response with nil error
// means no work is available.
func (c *Client) Claim(ctx context.Context, identity string) (*ClaimResponse, error) {
	var resp ClaimResponse
	status, err := c.do(ctx, http.MethodPost, "/api/claims", ClaimRequest{Identity: identity}, &resp)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNoContent {
		return nil, nil
	}
	return &resp, nil
}

// Submit finalizes a claimed record.
func (c *Client) Submit(ctx context.Context, row int, req SubmissionRequest) error {
	path := fmt.Sprintf("/api/claims/%d/submission", row)
	_, err := c.do(ctx, http.MethodPost, path, req, nil)
	return err
}

// Records fetches the administrative record list.
func (c *Client) Records(ctx context.Context) ([]RecordSummary, error) {
	var resp RecordListResponse
	if _, err := c.do(ctx, http.MethodGet, "/api/records", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

// Stats fetches record counts by review state.
func (c *Client) Stats(ctx context.Context) (StatsResponse, error) {
	var resp StatsResponse
	if _, err := c.do(ctx, http.MethodGet, "/api/stats", nil, &resp); err != nil {
		return StatsResponse{}, err
	}
	return resp, nil
}

// Reclaim asks the daemon to release expired claims now.
func (c *Client) Reclaim(ctx context.Context) (int, error) {
	var resp ReclaimResponse
	if _, err := c.do(ctx, http.MethodPost, "/api/reclaim", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Released, nil
}

// Status fetches daemon runtime information.
func (c *Client) Status(ctx context.Context) (StatusResponse, error) {
	var resp StatusResponse
	if _, err := c.do(ctx, http.MethodGet, "/api/status", nil, &resp); err != nil {
		return StatusResponse{}, err
	}
	return resp, nil
}

// ExportCSV streams the daemon's CSV export into w.
func (c *Client) ExportCSV(ctx context.Context, w io.Writer) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/export.csv", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("daemon request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return responseError(resp)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("read csv export: %w", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return nil, fmt.Errorf("build url: %w", err)
	}
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) (int, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return 0, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("daemon request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return resp.StatusCode, responseError(resp)
	}
	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func responseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	message := strings.TrimSpace(string(body))
	var apiErr ErrorResponse
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
		message = apiErr.Error
	}
	switch resp.StatusCode {
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", review.ErrNotEditable, message)
	case http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", review.ErrInvalidResult, message)
	}
	return fmt.Errorf("daemon returned %d: %s", resp.StatusCode, message)
}
