package geoapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultBaseURL is the opendatasoft Explore v2.1 catalog that publishes
	// the Portuguese administrative reference datasets.
	DefaultBaseURL = "https://public.opendatasoft.com/api/explore/v2.1/catalog/datasets"

	DefaultPageLimit = 100
)

// Client pages through opendatasoft dataset records. It is only used at
// startup to load the administrative reference set.
type Client struct {
	host       string
	pageLimit  int
	httpClient *http.Client
}

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("geo reference API error (%d): %s", e.Status, e.Body)
}

func NewClient(httpClient *http.Client, host string, pageLimit int) *Client {
	if host == "" {
		host = DefaultBaseURL
	}
	host = strings.TrimRight(host, "/")
	if pageLimit <= 0 {
		pageLimit = DefaultPageLimit
	}
	return &Client{
		host:       host,
		pageLimit:  pageLimit,
		httpClient: httpClient,
	}
}

type recordsPage struct {
	TotalCount int              `json:"total_count"`
	Results    []map[string]any `json:"results"`
}

// Records fetches every record of a dataset, following offset pagination
// until a short page or the reported total is reached.
func (c *Client) Records(ctx context.Context, dataset, selectFields string) ([]map[string]any, error) {
	offset := 0
	var out []map[string]any
	for {
		page, err := c.fetchPage(ctx, dataset, selectFields, offset)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Results...)
		offset += len(page.Results)
		if len(page.Results) < c.pageLimit {
			break
		}
		if page.TotalCount > 0 && offset >= page.TotalCount {
			break
		}
	}
	return out, nil
}

func (c *Client) fetchPage(ctx context.Context, dataset, selectFields string, offset int) (*recordsPage, error) {
	query := url.Values{}
	query.Set("select", selectFields)
	query.Set("limit", strconv.Itoa(c.pageLimit))
	query.Set("offset", strconv.Itoa(offset))
	fullURL := c.host + "/" + url.PathEscape(dataset) + "/records?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	var page recordsPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to decode records page: %w", err)
	}
	return &page, nil
}

// StringField reads a record field that the API may return either as a
// plain string or as a single-element array.
func StringField(row map[string]any, key string) string {
	switch v := row[key].(type) {
	case string:
		return v
	case []any:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return s
			}
		}
	}
	return ""
}
