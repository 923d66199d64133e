// Package reputation is a client for the external reputation API that the
// scanner consumes as a black box.
package reputation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"scamshield/internal/apperr"
	"scamshield/internal/models"
)

// Source is the single external lookup a scan performs for URL and file
// targets.
type Source interface {
	Lookup(ctx context.Context, target models.ScanTarget) (*LookupResponse, error)
}

// LookupResponse is the reputation API's answer for one artifact.
type LookupResponse struct {
	MaliciousCount int             `json:"malicious_count"`
	Engines        map[string]bool `json:"engines,omitempty"`
}

// Client talks to the reputation service over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new reputation API client.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Lookup submits the artifact and returns its malicious-hit count. Any
// transport, status or decode failure wraps apperr.ErrSourceUnavailable so
// the scanner surfaces it instead of defaulting to a safe verdict.
func (c *Client) Lookup(ctx context.Context, target models.ScanTarget) (*LookupResponse, error) {
	endpoint := fmt.Sprintf("%s/api/v1/lookup?kind=%s&value=%s",
		c.baseURL, url.QueryEscape(string(target.Kind)), url.QueryEscape(target.Value))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: reputation lookup: %w", apperr.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: reputation service returned status %d", apperr.ErrSourceUnavailable, resp.StatusCode)
	}

	var result LookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", apperr.ErrSourceUnavailable, err)
	}

	return &result, nil
}
