// Package notion implements the subset of the Notion REST API the intake
// handlers need: page creation and filtered database queries.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"intake-api/internal/common/metrics"
)

const apiVersion = "2022-06-28"

type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTimeout overrides the default HTTP timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		token:   token,
		baseURL: "https://api.notion.com/v1",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx response from the Notion API.
type APIError struct {
	StatusCode int    `json:"status"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notion API error (status %d, code %s): %s", e.StatusCode, e.Code, e.Message)
}

type createPageRequest struct {
	Parent     Parent              `json:"parent"`
	Properties map[string]Property `json:"properties"`
}

type Parent struct {
	DatabaseID string `json:"database_id"`
}

// Page is one record in the database. Properties are keyed by the database's
// configured property names.
type Page struct {
	ID             string              `json:"id"`
	LastEditedTime time.Time           `json:"last_edited_time"`
	Properties     map[string]Property `json:"properties"`
}

// DatabaseQuery is the body of a databases.query call.
type DatabaseQuery struct {
	Filter   *PropertyFilter `json:"filter,omitempty"`
	PageSize int             `json:"page_size,omitempty"`
}

// PropertyFilter matches pages by a single property condition.
type PropertyFilter struct {
	Property string         `json:"property"`
	Title    *TextCondition `json:"title,omitempty"`
	RichText *TextCondition `json:"rich_text,omitempty"`
}

type TextCondition struct {
	Equals string `json:"equals,omitempty"`
}

// TitleEquals builds the exact-match title filter used for receipt lookups.
func TitleEquals(property, value string) *PropertyFilter {
	return &PropertyFilter{
		Property: property,
		Title:    &TextCondition{Equals: value},
	}
}

type QueryResult struct {
	Results []Page `json:"results"`
	HasMore bool   `json:"has_more"`
}

// CreatePage creates a new page in the given database.
func (c *Client) CreatePage(ctx context.Context, databaseID string, properties map[string]Property) (*Page, error) {
	url := fmt.Sprintf("%s/pages", c.baseURL)

	payload := createPageRequest{
		Parent:     Parent{DatabaseID: databaseID},
		Properties: properties,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal page: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.NotionCallsTotal.WithLabelValues("pages.create", "error").Inc()
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.NotionCallsTotal.WithLabelValues("pages.create", "error").Inc()
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		metrics.NotionCallsTotal.WithLabelValues("pages.create", "error").Inc()
		return nil, apiError(resp.StatusCode, body)
	}

	var page Page
	if err := json.Unmarshal(body, &page); err != nil {
		metrics.NotionCallsTotal.WithLabelValues("pages.create", "error").Inc()
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	metrics.NotionCallsTotal.WithLabelValues("pages.create", "success").Inc()
	return &page, nil
}

// QueryDatabase runs a filtered query against the given database.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, query *DatabaseQuery) (*QueryResult, error) {
	url := fmt.Sprintf("%s/databases/%s/query", c.baseURL, databaseID)

	jsonData, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.NotionCallsTotal.WithLabelValues("databases.query", "error").Inc()
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.NotionCallsTotal.WithLabelValues("databases.query", "error").Inc()
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.NotionCallsTotal.WithLabelValues("databases.query", "error").Inc()
		return nil, apiError(resp.StatusCode, body)
	}

	var result QueryResult
	if err := json.Unmarshal(body, &result); err != nil {
		metrics.NotionCallsTotal.WithLabelValues("databases.query", "error").Inc()
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	metrics.NotionCallsTotal.WithLabelValues("databases.query", "success").Inc()
	return &result, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", apiVersion)
}

func apiError(statusCode int, body []byte) error {
	apiErr := APIError{StatusCode: statusCode}
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = string(body)
	}
	apiErr.StatusCode = statusCode
	return &apiErr
}
