package order

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// GatewayClient relays signed payment requests to the external gateway.
// One attempt per call: a failed create is surfaced to the caller, who
// retries by creating a new order if they choose to.
type GatewayClient struct {
	apiURL     string
	httpClient *http.Client
}

func NewGatewayClient(apiURL string) *GatewayClient {
	return &GatewayClient{
		apiURL: apiURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreatePayment posts the signed params and returns the gateway's raw
// response document.
func (c *GatewayClient) CreatePayment(ctx context.Context, params map[string]string) (map[string]any, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	log.Printf("[Pay Gateway] POST %s order=%s", c.apiURL, params["trade_order_id"])

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gateway response: %w", err)
	}

	if resp.StatusCode >= 400 {
		log.Printf("[Pay Gateway] ERROR: gateway returned %d: %s", resp.StatusCode, string(respBody))
		return nil, fmt.Errorf("gateway returned %d", resp.StatusCode)
	}

	var doc map[string]any
	if err := json.Unmarshal(respBody, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse gateway response: %w", err)
	}
	return doc, nil
}
