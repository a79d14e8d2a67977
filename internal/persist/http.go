package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultEndpointPath is where the serve command mounts the gateway.
const DefaultEndpointPath = "/api/db/gravitdam"

// HTTPGateway POSTs statements as JSON to a remote endpoint.
type HTTPGateway struct {
	url    string
	client *http.Client
}

// NewHTTPGateway creates a gateway posting to url. A nil client gets a
// 15 second timeout.
func NewHTTPGateway(url string, client *http.Client) *HTTPGateway {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPGateway{url: url, client: client}
}

func (g *HTTPGateway) Execute(ctx context.Context, stmt Statement) error {
	body, err := json.Marshal(stmt)
	if err != nil {
		return fmt.Errorf("encode statement: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("post statement: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("gateway returned HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}
	return nil
}
