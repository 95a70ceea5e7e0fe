// Package snipeitapi provides a typed client for the Snipe-IT REST API (v1).
//
// The client exposes generic resource verbs (List, Get, Create, Update,
// Delete) plus a raw Do primitive for the endpoints Snipe-IT does not model
// as REST sub-resources (checkout, checkin, audit, restore, reorder, ...).
// HTTP and application failures are normalized into a closed set of error
// types: NotFoundError, AuthenticationError, ValidationError and APIError.
// Anything else (DNS failures, timeouts, malformed bodies) surfaces as a
// plain wrapped error and is logged, since it indicates infrastructure
// trouble rather than a usage error.
package snipeitapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-querystring/query"
)

// Config carries the connection settings for a Snipe-IT instance. It is
// passed explicitly rather than read from ambient process state so tests can
// inject fixtures without environment mutation.
type Config struct {
	// BaseURL is the root of the Snipe-IT instance, e.g. https://snipe.example.com.
	// The /api/v1 prefix is appended by the client.
	BaseURL string
	// Token is the API bearer token.
	Token string
}

// Client issues requests against a single Snipe-IT instance. It holds no
// mutable state beyond the configured base URL and credential, so a single
// client is safe for concurrent use.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client. Used by tests to install a
// mock transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for transport-level failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a Client for the given instance. It fails fast with
// ErrNotConfigured when the URL or token is unset, before any network call
// is attempted.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" || cfg.Token == "" {
		return nil, ErrNotConfigured
	}
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/") + "/api/v1/",
		token:   cfg.Token,
		http:    http.DefaultClient,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListOptions carries the offset-based pagination parameters shared by every
// Snipe-IT list endpoint, plus per-resource filters. Zero-valued optional
// fields are omitted from the query string.
type ListOptions struct {
	Limit  int    `url:"limit"`
	Offset int    `url:"offset"`
	Search string `url:"search,omitempty"`
	Sort   string `url:"sort,omitempty"`
	Order  string `url:"order,omitempty"`

	// Filters holds resource-specific query parameters (status_id, model_id, ...).
	Filters map[string]string `url:"-"`
}

func (o ListOptions) values() (url.Values, error) {
	v, err := query.Values(o)
	if err != nil {
		return nil, fmt.Errorf("encoding list options: %w", err)
	}
	for k, val := range o.Filters {
		v.Set(k, val)
	}
	return v, nil
}

// ListResponse is the decoded shape of a Snipe-IT list endpoint:
// {"total": N, "rows": [...]}.
type ListResponse struct {
	Total int64
	Rows  []map[string]any
}

// newRequest builds an authenticated JSON request for an endpoint relative to
// /api/v1.
func (c *Client) newRequest(ctx context.Context, method, endpoint string, q url.Values, body io.Reader, contentType string) (*http.Request, error) {
	u := c.baseURL + strings.TrimLeft(endpoint, "/")
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil && contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

// send executes the request and normalizes non-2xx statuses into the typed
// error set. On success the caller owns the response body.
func (c *Client) send(ctx context.Context, req *http.Request, endpoint string) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "snipe-it request failed",
			"method", req.Method,
			"endpoint", endpoint,
			"error", err)
		return nil, fmt.Errorf("%s %s: %w", req.Method, endpoint, err)
	}
	if err := checkStatus(resp, endpoint); err != nil {
		_ = resp.Body.Close()
		return nil, err
	}
	return resp, nil
}

// checkStatus maps a non-2xx response onto the error taxonomy. The body is
// consumed only on failure.
func checkStatus(resp *http.Response, endpoint string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	switch resp.StatusCode {
	case http.StatusNotFound:
		return &NotFoundError{Endpoint: endpoint}
	case http.StatusUnauthorized:
		return &AuthenticationError{Message: "authentication failed"}
	case http.StatusUnprocessableEntity:
		var payload struct {
			Messages json.RawMessage `json:"messages"`
		}
		if err := json.Unmarshal(body, &payload); err == nil && len(payload.Messages) > 0 {
			return newValidationError(payload.Messages)
		}
		return newValidationError(body)
	default:
		return &APIError{StatusCode: resp.StatusCode, Endpoint: endpoint, Body: string(body)}
	}
}

// Do issues a single API request and decodes the JSON response. A 2xx body
// carrying {"status": "error"} is treated as a validation failure, since
// Snipe-IT reports many application errors that way.
func (c *Client) Do(ctx context.Context, method, endpoint string, q url.Values, body any) (map[string]any, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		rdr = bytes.NewReader(b)
	}
	req, err := c.newRequest(ctx, method, endpoint, q, rdr, "application/json")
	if err != nil {
		return nil, err
	}
	resp, err := c.send(ctx, req, endpoint)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data := map[string]any{}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil && err != io.EOF {
		c.logger.ErrorContext(ctx, "snipe-it response malformed",
			"method", method,
			"endpoint", endpoint,
			"error", err)
		return nil, fmt.Errorf("%s %s: malformed response: %w", method, endpoint, err)
	}
	if apiErr := applicationError(data); apiErr != nil {
		return nil, apiErr
	}
	return data, nil
}

// applicationError detects {"status":"error","messages":...} bodies returned
// with a 2xx status.
func applicationError(data map[string]any) error {
	status, _ := data["status"].(string)
	if status != "error" {
		return nil
	}
	messages, err := json.Marshal(data["messages"])
	if err != nil || string(messages) == "null" {
		messages = []byte(`"unknown error"`)
	}
	return newValidationError(messages)
}

// List fetches one page of a collection endpoint. Iterating further pages is
// the caller's responsibility.
func (c *Client) List(ctx context.Context, endpoint string, opts ListOptions) (*ListResponse, error) {
	q, err := opts.values()
	if err != nil {
		return nil, err
	}
	data, err := c.Do(ctx, http.MethodGet, endpoint, q, nil)
	if err != nil {
		return nil, err
	}
	return decodeListResponse(data), nil
}

func decodeListResponse(data map[string]any) *ListResponse {
	out := &ListResponse{}
	if total, ok := data["total"].(float64); ok {
		out.Total = int64(total)
	}
	rows, _ := data["rows"].([]any)
	for _, row := range rows {
		if m, ok := row.(map[string]any); ok {
			out.Rows = append(out.Rows, m)
		}
	}
	return out
}

// Get fetches a single record by ID.
func (c *Client) Get(ctx context.Context, endpoint string, id int64) (map[string]any, error) {
	return c.Do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", endpoint, id), nil, nil)
}

// Create posts a new record and returns it, unwrapping the {"payload": {...}}
// envelope Snipe-IT uses on create responses.
func (c *Client) Create(ctx context.Context, endpoint string, payload map[string]any) (map[string]any, error) {
	data, err := c.Do(ctx, http.MethodPost, endpoint, nil, payload)
	if err != nil {
		return nil, err
	}
	return unwrapPayload(data), nil
}

// Update patches an existing record. Only the fields present in payload are
// sent, so absent fields are left untouched on the server.
func (c *Client) Update(ctx context.Context, endpoint string, id int64, payload map[string]any) (map[string]any, error) {
	data, err := c.Do(ctx, http.MethodPatch, fmt.Sprintf("%s/%d", endpoint, id), nil, payload)
	if err != nil {
		return nil, err
	}
	return unwrapPayload(data), nil
}

// Delete removes a record. Deletion is not idempotent at this layer: deleting
// an already-deleted ID yields a NotFoundError.
func (c *Client) Delete(ctx context.Context, endpoint string, id int64) (map[string]any, error) {
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", endpoint, id), nil, nil)
}

// unwrapPayload returns the "payload" object of a create/update response when
// present, since callers care about the record rather than the wrapper.
func unwrapPayload(data map[string]any) map[string]any {
	if payload, ok := data["payload"].(map[string]any); ok {
		return payload
	}
	return data
}
