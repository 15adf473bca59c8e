// internal/adapter/remote/client.go

package remote

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

	"fixmate/internal/domain/ticket"
)

// Client talks to the remote ticket store over JSON/HTTP
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given base URL, e.g.
// "http://127.0.0.1:8000". A zero timeout leaves requests unbounded, which
// matches the original dashboard's behavior.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// FetchTickets retrieves and normalizes the full ticket collection
func (c *Client) FetchTickets(ctx context.Context) ([]ticket.Ticket, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tickets", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ticket.ErrFetch, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ticket.ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", ticket.ErrFetch, resp.StatusCode)
	}

	var records []ticket.Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: decoding ticket list: %v", ticket.ErrMalformedResponse, err)
	}

	out := make([]ticket.Ticket, 0, len(records))
	for _, r := range records {
		out = append(out, r.Normalize())
	}
	return out, nil
}

// UpdateStatus PATCHes one ticket's status, translating the canonical value
// to the store's vocabulary on the wire. It returns the normalized updated
// record when the response carries one and nil when the body is empty or
// unusable; a nil result with a nil error means the caller should patch
// locally.
func (c *Client) UpdateStatus(ctx context.Context, id string, status ticket.Status) (*ticket.Ticket, error) {
	body, err := json.Marshal(map[string]string{"status": ticket.BackendStatus(status)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ticket.ErrMutation, err)
	}

	endpoint := fmt.Sprintf("%s/api/tickets/%s/status", c.baseURL, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ticket.ErrMutation, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ticket.ErrMutation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", ticket.ErrMutation, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	var record ticket.Record
	if err := json.Unmarshal(raw, &record); err != nil {
		// Confirmed but undecodable; let the caller patch locally.
		return nil, nil
	}
	t := record.Normalize()
	if t.ID == "" {
		return nil, nil
	}
	return &t, nil
}

// Stats are backend-aggregated ticket counts, consumed read-only by the
// assistant collaborator.
type Stats struct {
	Total      int            `json:"total"`
	ByCategory map[string]int `json:"by_category"`
	BySeverity map[string]int `json:"by_severity"`
	ByStatus   map[string]int `json:"by_status"`
}

// FetchStats retrieves the aggregate ticket statistics
func (c *Client) FetchStats(ctx context.Context) (*Stats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/ticket-stats", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ticket.ErrFetch, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ticket.ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", ticket.ErrFetch, resp.StatusCode)
	}
	var stats Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("%w: decoding stats: %v", ticket.ErrMalformedResponse, err)
	}
	return &stats, nil
}

// FetchLocations retrieves ticket location summaries for one severity level
func (c *Client) FetchLocations(ctx context.Context, severity ticket.Severity) ([]ticket.Location, error) {
	endpoint := fmt.Sprintf("%s/api/ticket-locations?severity=%s", c.baseURL, url.QueryEscape(string(severity)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ticket.ErrFetch, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ticket.ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", ticket.ErrFetch, resp.StatusCode)
	}
	var locations []ticket.Location
	if err := json.NewDecoder(resp.Body).Decode(&locations); err != nil {
		return nil, fmt.Errorf("%w: decoding locations: %v", ticket.ErrMalformedResponse, err)
	}
	return locations, nil
}
