package docker

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/portico-home/portico/internal/logger"
	"github.com/portico-home/portico/internal/utils"
)

// composeServiceLabel carries the logical service name assigned by compose.
const composeServiceLabel = "com.docker.compose.service"

// Entity is one discovered runtime unit with its raw annotation map.
type Entity struct {
	// Name is the container name, leading slash trimmed.
	Name string
	// Service is the display-service name: the compose service label when
	// present, otherwise the container name.
	Service string
	// Labels is the flat key/value annotation map.
	Labels map[string]string
	// Running reports the container state at listing time.
	Running bool
}

// Client is a minimal Docker Engine API client. It only lists containers;
// everything else the engine offers is out of scope here.
type Client struct {
	http *http.Client
	base string
	log  logger.Logger
}

type containerJSON struct {
	Names  []string          `json:"Names"`
	Labels map[string]string `json:"Labels"`
	State  string            `json:"State"`
}

// NewClient creates an engine client for a host of the form
// "unix:///var/run/docker.sock", "tcp://host:2375" or "http://host:2375".
func NewClient(host string, timeout time.Duration, log logger.Logger) (*Client, error) {
	transport := &http.Transport{}
	base := "http://docker"

	switch {
	case strings.HasPrefix(host, "unix://"):
		socketPath := strings.TrimPrefix(host, "unix://")
		transport.DialContext = func(ctx context.Context, _, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "unix", socketPath)
		}
	case strings.HasPrefix(host, "tcp://"):
		base = "http://" + strings.TrimPrefix(host, "tcp://")
	case strings.HasPrefix(host, "http://"), strings.HasPrefix(host, "https://"):
		base = host
	default:
		return nil, fmt.Errorf("unsupported docker host %q", host)
	}

	return &Client{
		http: &http.Client{Timeout: timeout, Transport: transport},
		base: strings.TrimRight(base, "/"),
		log:  log,
	}, nil
}

// ListEntities returns every container (running or not) as an Entity.
func (c *Client) ListEntities(ctx context.Context) ([]Entity, error) {
	url := c.base + "/containers/json?all=true"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("container listing failed: %w", err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("container listing returned status %d", resp.StatusCode)
	}

	var containers []containerJSON
	if err := json.NewDecoder(resp.Body).Decode(&containers); err != nil {
		return nil, fmt.Errorf("failed to decode container listing: %w", err)
	}

	entities := make([]Entity, 0, len(containers))
	for _, ct := range containers {
		name := containerName(ct.Names)
		if name == "" {
			continue
		}
		labels := ct.Labels
		if labels == nil {
			labels = map[string]string{}
		}
		service := labels[composeServiceLabel]
		if service == "" {
			service = name
		}
		entities = append(entities, Entity{
			Name:    name,
			Service: service,
			Labels:  labels,
			Running: ct.State == "running",
		})
	}

	c.log.Debug("listed containers", logger.Int("count", len(entities)))
	return entities, nil
}

func containerName(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return strings.TrimPrefix(names[0], "/")
}
