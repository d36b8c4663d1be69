package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/example/maternal/pkg/models"
)

// Client delivers tracking events to the spreadsheet relay. The relay is a
// stateless row-appender: it accepts a JSON array of events and writes one
// row per event. The response is never inspected — the relay runs behind an
// opaque web-app endpoint, so delivery is inferred from the absence of a
// transport error, exactly like the browser client's no-cors mode.
type Client struct {
	webAppURL  string
	httpClient *http.Client
}

// NewClient creates a relay client for the given web-app URL
func NewClient(webAppURL string) *Client {
	return &Client{
		webAppURL: webAppURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Upload posts the batch as one JSON array. An empty batch is a no-op.
// Only transport-level failures count as errors; the HTTP status does not.
func (c *Client) Upload(ctx context.Context, events []models.TrackingEvent) error {
	if len(events) == 0 {
		return nil
	}

	body, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("failed to encode events: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webAppURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	// text/plain avoids a CORS preflight on Apps Script deployments
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach relay: %w", err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused; the content is irrelevant
	io.Copy(io.Discard, resp.Body)
	return nil
}
