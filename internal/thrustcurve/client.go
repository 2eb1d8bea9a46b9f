package thrustcurve

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultBaseURL is the production thrustcurve.org API root
const DefaultBaseURL = "https://www.thrustcurve.org/api/v1"

// userAgent matches what OpenRocket itself sends, so the API treats the
// updater like any other client
const userAgent = "OpenRocket-Updater/1.0"

// Client is a thin thrustcurve.org v1 API client. No retries; the caller
// decides what a failed request means for the sync.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for the given API root. An empty baseURL
// selects the production API.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *Client) post(ctx context.Context, endpoint string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d", endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return nil
}

// Manufacturers fetches the canonical manufacturer list from the metadata
// endpoint
func (c *Client) Manufacturers(ctx context.Context) ([]Manufacturer, error) {
	var out struct {
		Manufacturers []Manufacturer `json:"manufacturers"`
	}
	payload := map[string]any{"availability": "all"}
	if err := c.post(ctx, "metadata.json", payload, &out); err != nil {
		return nil, err
	}
	return out.Manufacturers, nil
}

// Search returns all motors of one manufacturer, regardless of availability
func (c *Client) Search(ctx context.Context, manufacturer string) ([]MotorMetadata, error) {
	var out struct {
		Results []MotorMetadata `json:"results"`
	}
	payload := map[string]any{
		"manufacturer": manufacturer,
		"maxResults":   9999,
		"availability": "all",
	}
	if err := c.post(ctx, "search.json", payload, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// Download fetches the simfiles of one motor in the given format
// ("RASP" or "RockSim")
func (c *Client) Download(ctx context.Context, motorID, format string) ([]DownloadResult, error) {
	var out struct {
		Results []DownloadResult `json:"results"`
	}
	payload := map[string]any{
		"motorIds": []string{motorID},
		"format":   format,
	}
	if err := c.post(ctx, "download.json", payload, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// DecodePayload decodes a simfile's base64 data field
func DecodePayload(r DownloadResult) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(r.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode simfile %s: %w", r.SimfileID, err)
	}
	return data, nil
}
