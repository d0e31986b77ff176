// Package client is a typed HTTP client for the record shop API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"recordshop/internal/model"
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int               `json:"-"`
	Message string            `json:"message"`
	Code    string            `json:"code,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.Status, http.StatusText(e.Status))
	}
	return e.Message
}

// Me is the signed-in user as reported by the API.
type Me struct {
	ID    uint       `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
	Title string     `json:"title"`
}

// DeleteResult is the body of a successful delete.
type DeleteResult struct {
	Message string       `json:"message"`
	Record  model.Record `json:"record"`
}

// Client calls the API. Set a token to reach session-guarded routes.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a client for the API rooted at baseURL, e.g. http://localhost:8080.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/login", body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Logout ends the current session on the server.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/logout", nil, nil)
}

// Me returns the signed-in user.
func (c *Client) Me(ctx context.Context) (*Me, error) {
	var me Me
	if err := c.do(ctx, http.MethodGet, "/api/me", nil, &me); err != nil {
		return nil, err
	}
	return &me, nil
}

// Formats lists the media formats.
func (c *Client) Formats(ctx context.Context) ([]string, error) {
	var formats []string
	if err := c.do(ctx, http.MethodGet, "/api/formats", nil, &formats); err != nil {
		return nil, err
	}
	return formats, nil
}

// Genres lists the genres.
func (c *Client) Genres(ctx context.Context) ([]string, error) {
	var genres []string
	if err := c.do(ctx, http.MethodGet, "/api/genres", nil, &genres); err != nil {
		return nil, err
	}
	return genres, nil
}

// ListRecords fetches the full inventory.
func (c *Client) ListRecords(ctx context.Context) ([]model.Record, error) {
	var records []model.Record
	if err := c.do(ctx, http.MethodGet, "/api/records", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetRecord fetches one record.
func (c *Client) GetRecord(ctx context.Context, id uint) (*model.Record, error) {
	var record model.Record
	if err := c.do(ctx, http.MethodGet, recordPath(id), nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// CreateRecord adds a record and returns it with its new id.
func (c *Client) CreateRecord(ctx context.Context, in model.RecordInput) (*model.Record, error) {
	var record model.Record
	if err := c.do(ctx, http.MethodPost, "/api/records", in, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateRecord applies a patch.
func (c *Client) UpdateRecord(ctx context.Context, id uint, patch model.RecordPatch) (*model.Record, error) {
	var record model.Record
	if err := c.do(ctx, http.MethodPut, recordPath(id), patch, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteRecord removes a record and returns what was removed.
func (c *Client) DeleteRecord(ctx context.Context, id uint) (*DeleteResult, error) {
	var result DeleteResult
	if err := c.do(ctx, http.MethodDelete, recordPath(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func recordPath(id uint) string {
	return "/api/records/" + strconv.FormatUint(uint64(id), 10)
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		_ = json.Unmarshal(data, apiErr)
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
