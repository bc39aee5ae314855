package traefik

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/portico-home/portico/internal/logger"
	"github.com/portico-home/portico/internal/utils"
)

// routersPaths are the router-listing endpoints, tried in order. Older
// control planes only expose the second shape.
var routersPaths = []string{"/api/http/routers", "/api/routers"}

// Client fetches the live router table from the proxy control-plane API.
type Client struct {
	baseURL string
	http    *http.Client
	log     logger.Logger
}

// NewClient creates a router-table client for the given base API URL.
func NewClient(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// FetchRouters queries the primary router-listing endpoint, falling back to
// the legacy one. It returns an error only when every endpoint failed.
func (c *Client) FetchRouters(ctx context.Context) ([]NamedRouter, error) {
	var lastErr error
	for _, path := range routersPaths {
		routers, err := c.fetch(ctx, c.baseURL+path)
		if err != nil {
			c.log.Debug("router endpoint failed, trying next",
				logger.String("url", c.baseURL+path),
				logger.Error(err))
			lastErr = err
			continue
		}
		return routers, nil
	}
	return nil, fmt.Errorf("all router endpoints failed: %w", lastErr)
}

func (c *Client) fetch(ctx context.Context, url string) ([]NamedRouter, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("router request failed: %w", err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("router endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read router response: %w", err)
	}

	return decodeRouters(body)
}

// decodeRouters accepts both response shapes: an object keyed by router
// identifier, or an array of per-router objects carrying their own
// identifier field.
func decodeRouters(body []byte) ([]NamedRouter, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil, fmt.Errorf("empty router response")
	}

	switch trimmed[0] {
	case '{':
		var byID map[string]Router
		if err := json.Unmarshal(body, &byID); err != nil {
			return nil, fmt.Errorf("failed to decode router object: %w", err)
		}
		// Deterministic order: callers dedupe per key, but key insertion
		// order in the URL map follows this slice.
		routers := make([]NamedRouter, 0, len(byID))
		for _, id := range sortedRouterIDs(byID) {
			routers = append(routers, NamedRouter{ID: id, Router: byID[id]})
		}
		return routers, nil

	case '[':
		var items []Router
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, fmt.Errorf("failed to decode router array: %w", err)
		}
		routers := make([]NamedRouter, 0, len(items))
		for _, item := range items {
			id := item.Name
			if id == "" {
				id = item.Router
			}
			routers = append(routers, NamedRouter{ID: id, Router: item})
		}
		return routers, nil

	default:
		return nil, fmt.Errorf("unexpected router response shape")
	}
}
