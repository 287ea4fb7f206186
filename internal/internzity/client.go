// Package internzity proxies live metrics from the external Internzity
// backend into the CRM dashboard.
package internzity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"zylentrix_crm_backend/platform/logger"
)

// Client is the HTTP client for the Internzity backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *logger.Logger
}

func NewClient(baseURL string, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		log:        log,
	}
}

// FetchLiveMetrics pulls the customer metrics feed and returns the raw JSON
// payload untouched so dashboard clients see exactly what Internzity serves.
func (c *Client) FetchLiveMetrics(ctx context.Context) (json.RawMessage, error) {
	reqURL := c.baseURL + "/api/crm/customers"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("internzity request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("internzity backend returned status %d", resp.StatusCode)
	}

	var payload json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode internzity response: %w", err)
	}
	return payload, nil
}
