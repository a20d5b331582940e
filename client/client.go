package client

// go generate: mockery --name ScammerAPI

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

	"go.uber.org/zap"

	"github.com/linesmerrill/scammer-blacklist/models"
)

// ScammerAPI contains the registry API calls used by the web front end
type ScammerAPI interface {
	ReportScammer(ctx context.Context, input models.ReportInput, token string) (*models.Report, error)
	DeleteReport(ctx context.Context, profileID, reportID, token string) error
	SearchScammers(ctx context.Context, query string) ([]models.ScammerProfile, error)
	ListScammers(ctx context.Context) ([]models.ScammerProfile, error)
	UserReports(ctx context.Context, token string) ([]models.ScammerProfile, error)
	CurrentUser(ctx context.Context, token string) (*models.User, error)
	LoginURL() string
}

const (
	defaultTimeout     = 10 * time.Second
	defaultMaxBodySize = 5 << 20
	defaultUserAgent   = "scammer-blacklist-web"
)

// Client talks to the registry REST API over HTTP
type Client struct {
	baseURL     string
	httpClient  *http.Client
	userAgent   string
	maxBodySize int64
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per request timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header sent to the API
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMaxBodySize limits how much of a response body is read
func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		c.maxBodySize = size
	}
}

// New creates a client for the API rooted at baseURL, e.g. http://localhost:5000/api
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: defaultTimeout},
		userAgent:   defaultUserAgent,
		maxBodySize: defaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ReportScammer creates a report
func (c *Client) ReportScammer(ctx context.Context, input models.ReportInput, token string) (*models.Report, error) {
	var report models.Report
	if err := c.do(ctx, http.MethodPost, "/scammers/report", token, input, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// DeleteReport deletes one report of a profile
func (c *Client) DeleteReport(ctx context.Context, profileID, reportID, token string) error {
	path := fmt.Sprintf("/scammers/%s/reports/%s", url.PathEscape(profileID), url.PathEscape(reportID))
	return c.do(ctx, http.MethodDelete, path, token, nil, nil)
}

// SearchScammers looks up reported profiles matching query
func (c *Client) SearchScammers(ctx context.Context, query string) ([]models.ScammerProfile, error) {
	var profiles []models.ScammerProfile
	path := "/scammers/search?" + url.Values{"query": {query}}.Encode()
	if err := c.do(ctx, http.MethodGet, path, "", nil, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// ListScammers returns reported profiles, most recent first
func (c *Client) ListScammers(ctx context.Context) ([]models.ScammerProfile, error) {
	var profiles []models.ScammerProfile
	if err := c.do(ctx, http.MethodGet, "/scammers", "", nil, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// UserReports returns the profiles the token's user has reported
func (c *Client) UserReports(ctx context.Context, token string) ([]models.ScammerProfile, error) {
	var profiles []models.ScammerProfile
	if err := c.do(ctx, http.MethodGet, "/scammers/user", token, nil, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// CurrentUser resolves the user a token belongs to
func (c *Client) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, &user); err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, &APIError{Status: http.StatusUnauthorized, Message: "no user for token"}
	}
	return &user, nil
}

// LoginURL is where visitors start the LinkedIn sign in
func (c *Client) LoginURL() string {
	return c.baseURL + "/auth/linkedin"
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	zap.S().Debugw("registry api call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		var msg models.ErrorMessageResponse
		if json.Unmarshal(b, &msg) == nil {
			apiErr.Message = msg.Message
		}
		if apiErr.Message == "" {
			apiErr.Err = fmt.Errorf("%s %s: %s", method, path, http.StatusText(resp.StatusCode))
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
