// Package jobspy is the HTTP client for the remote job search service.
// The service scrapes and aggregates job boards; this package only speaks its
// request/response contract.
package jobspy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobspy-client/models"
	"jobspy-client/utils"
)

const (
	searchPath    = "/search"
	exportCSVPath = "/export/csv"
	sitesPath     = "/sites"
	jobTypesPath  = "/job-types"
	countriesPath = "/countries"

	requestIDHeader = "X-Request-ID"

	// maxErrorBody caps how much of a failed response is kept as the error message.
	maxErrorBody = 64 << 10
)

// APIError is returned when the service answers with a non-2xx status.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Client talks to the search service rooted at BaseURL.
type Client struct {
	baseURL      string
	client       *http.Client
	exportClient *http.Client
	logger       *utils.Logger
}

// NewClient constructs a Client. timeout bounds search and metadata requests,
// exportTimeout bounds the server-side CSV export which re-runs the whole search.
func NewClient(baseURL string, timeout, exportTimeout time.Duration, logger *utils.Logger) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		client:       &http.Client{Timeout: timeout},
		exportClient: &http.Client{Timeout: exportTimeout},
		logger:       logger,
	}
}

// Search submits q and decodes the result set.
func (c *Client) Search(ctx context.Context, q models.SearchQuery) (*models.ResultSet, error) {
	resp, err := c.post(ctx, c.client, searchPath, q)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, newAPIError("search", resp, "request failed")
	}

	var rs models.ResultSet
	if err := json.NewDecoder(resp.Body).Decode(&rs); err != nil {
		return nil, fmt.Errorf("search: decode response: %w", err)
	}
	if rs.Jobs == nil {
		rs.Jobs = []models.JobResult{}
	}
	return &rs, nil
}

// ExportCSV asks the service to run q again and return a CSV file.
// The caller owns the returned body and must close it.
func (c *Client) ExportCSV(ctx context.Context, q models.SearchQuery) (io.ReadCloser, error) {
	resp, err := c.post(ctx, c.exportClient, exportCSVPath, q)
	if err != nil {
		return nil, fmt.Errorf("export csv: %w", err)
	}
	if !isSuccess(resp.StatusCode) {
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{
			Op:         "export csv",
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("export failed: %d", resp.StatusCode),
		}
	}
	return resp.Body, nil
}

// Sites lists the selectable job boards.
func (c *Client) Sites(ctx context.Context) ([]models.Option, error) {
	return c.options(ctx, sitesPath)
}

// JobTypes lists the selectable job types.
func (c *Client) JobTypes(ctx context.Context) ([]models.Option, error) {
	return c.options(ctx, jobTypesPath)
}

// Countries lists the selectable countries.
func (c *Client) Countries(ctx context.Context) ([]models.Option, error) {
	return c.options(ctx, countriesPath)
}

func (c *Client) options(ctx context.Context, path string) ([]models.Option, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(c.client, req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, newAPIError("GET "+path, resp, "request failed")
	}

	var opts []models.Option
	if err := json.NewDecoder(resp.Body).Decode(&opts); err != nil {
		return nil, fmt.Errorf("GET %s: decode response: %w", path, err)
	}
	return opts, nil
}

func (c *Client) post(ctx context.Context, hc *http.Client, path string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(hc, req)
}

func (c *Client) do(hc *http.Client, req *http.Request) (*http.Response, error) {
	id := uuid.NewString()
	req.Header.Set(requestIDHeader, id)

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		c.logger.Debug("[jobspy] %s %s request_id=%s failed after %v: %v",
			req.Method, req.URL.Path, id, time.Since(start), err)
		return nil, err
	}
	c.logger.Debug("[jobspy] %s %s request_id=%s status=%d in %v",
		req.Method, req.URL.Path, id, resp.StatusCode, time.Since(start))
	return resp, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// newAPIError uses the response body as the message, or "<fallback>: <status>"
// when the body is empty.
func newAPIError(op string, resp *http.Response, fallback string) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = fmt.Sprintf("%s: %d", fallback, resp.StatusCode)
	}
	return &APIError{Op: op, StatusCode: resp.StatusCode, Message: msg}
}
