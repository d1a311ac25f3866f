// Package solidtime talks to a Solidtime instance over its REST API and maps
// its projects and time entries onto the export domain via the bracketed
// identifier tag convention.
package solidtime

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

	"github.com/bnema/wakasync/internal/domain"
)

const (
	apiTimeLayout   = "2006-01-02T15:04:05Z"
	maxResponseSize = 1 << 20
)

// Client is a thin wrapper over the organization-scoped Solidtime API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, organizationID string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + "/api/v1/organizations/" + organizationID,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

type apiProject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type apiEntry struct {
	ID          string  `json:"id"`
	Start       string  `json:"start"`
	End         *string `json:"end"`
	Description *string `json:"description"`
	ProjectID   *string `json:"project_id"`
}

type projectList struct {
	Data []apiProject `json:"data"`
}

type entryList struct {
	Data []apiEntry `json:"data"`
}

type projectEnvelope struct {
	Data apiProject `json:"data"`
}

type entryEnvelope struct {
	Data apiEntry `json:"data"`
}

func (c *Client) listProjects(ctx context.Context) ([]apiProject, error) {
	var list projectList
	if err := c.do(ctx, http.MethodGet, "/projects", nil, nil, &list); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	return list.Data, nil
}

func (c *Client) listTimeEntries(ctx context.Context, timeRange domain.TimeRange) ([]apiEntry, error) {
	query := url.Values{}
	query.Set("start", formatAPITime(timeRange.From))
	query.Set("end", formatAPITime(timeRange.To))

	var list entryList
	if err := c.do(ctx, http.MethodGet, "/time-entries", query, nil, &list); err != nil {
		return nil, fmt.Errorf("list time entries: %w", err)
	}

	return list.Data, nil
}

func (c *Client) createProject(ctx context.Context, name string) (apiProject, error) {
	body := map[string]any{"name": name}

	var envelope projectEnvelope
	if err := c.do(ctx, http.MethodPost, "/projects", nil, body, &envelope); err != nil {
		return apiProject{}, fmt.Errorf("create project: %w", err)
	}

	return envelope.Data, nil
}

func (c *Client) createTimeEntry(ctx context.Context, start, end time.Time, description, projectID string) (apiEntry, error) {
	body := map[string]any{
		"start":       formatAPITime(start),
		"end":         formatAPITime(end),
		"description": description,
		"project_id":  projectID,
	}

	var envelope entryEnvelope
	if err := c.do(ctx, http.MethodPost, "/time-entries", nil, body, &envelope); err != nil {
		return apiEntry{}, fmt.Errorf("create time entry: %w", err)
	}

	return envelope.Data, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Authorization", "Bearer "+c.apiKey)
	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return fmt.Errorf("%s %s: status %d: %s", method, path, response.StatusCode, strings.TrimSpace(string(payload)))
	}

	if out != nil {
		if err := json.Unmarshal(payload, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

func formatAPITime(t time.Time) string {
	return t.UTC().Format(apiTimeLayout)
}

func parseAPITime(s string) (time.Time, error) {
	if ts, err := time.Parse(apiTimeLayout, s); err == nil {
		return ts, nil
	}

	return time.Parse(time.RFC3339, s)
}
