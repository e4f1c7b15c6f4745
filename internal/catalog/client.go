package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bazarbot/pkg/models"
)

// APIClient persists listings through the catalog HTTP API instead of a
// local backend. This is the bot's persistence path when it runs in a
// separate process from the api-server.
type APIClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *APIClient) Create(ctx context.Context, in models.NewListing) (models.Listing, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return models.Listing{}, fmt.Errorf("marshal listing: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/products", bytes.NewReader(body))
	if err != nil {
		return models.Listing{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return models.Listing{}, fmt.Errorf("post listing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return models.Listing{}, fmt.Errorf("post listing: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var created models.Listing
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return models.Listing{}, fmt.Errorf("decode created listing: %w", err)
	}
	return created, nil
}
