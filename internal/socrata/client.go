// Package socrata provides access to a Socrata open-data resource endpoint.
// It pulls the complete record set through offset pagination: fixed-size pages
// ordered by timestamp ascending, stopping at the first empty page.
//
// There is deliberately no retry or rate-limit handling on this path: any
// non-success response or transport error aborts the whole fetch, since a
// partially fetched dataset would silently skew the monthly aggregates.
package socrata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shelterpulse/shelterpulse/internal/logger"
)

// Record is the wire-level shape of one outcome row as the API returns it.
// Fields stay strings here; parsing and filtering happen at the next stage.
type Record struct {
	DateTime    string `json:"datetime"`
	AnimalType  string `json:"animal_type"`
	OutcomeType string `json:"outcome_type"`
}

// Client provides access to a Socrata resource endpoint
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewClient creates a new Socrata client
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchPage retrieves one page of records, ordered by datetime ascending and
// excluding rows with a null datetime. Any non-2xx response is an error.
func (c *Client) FetchPage(ctx context.Context, limit, offset int) ([]Record, error) {
	params := url.Values{}
	params.Set("$limit", strconv.Itoa(limit))
	params.Set("$offset", strconv.Itoa(offset))
	params.Set("$order", "datetime ASC")
	params.Set("$where", "datetime IS NOT NULL")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d at offset %d", resp.StatusCode, offset)
	}

	var page []Record
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode page at offset %d: %w", offset, err)
	}
	return page, nil
}

// FetchAll folds over FetchPage, advancing the offset by pageSize until an
// empty page signals the end of the dataset. Concatenation preserves request
// order; with the server-side sort on datetime the result is chronological.
func (c *Client) FetchAll(ctx context.Context, pageSize int) ([]Record, error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("invalid page size %d: must be positive", pageSize)
	}

	var all []Record
	for offset := 0; ; offset += pageSize {
		page, err := c.FetchPage(ctx, pageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch page at offset %d: %w", offset, err)
		}
		if len(page) == 0 {
			break
		}
		all = append(all, page...)
		logger.Debug("Fetched page at offset %d: %d records (%d total)", offset, len(page), len(all))
	}
	return all, nil
}
