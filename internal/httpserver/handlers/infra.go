package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/portico-home/portico/internal/httpserver/deps"
)

type componentStatus struct {
	OK             bool   `json:"ok"`
	EntriesLoaded  *int   `json:"entries_loaded,omitempty"`
	LastGeneration string `json:"last_generation,omitempty"`
	Mode           string `json:"mode,omitempty"`
	Impact         string `json:"impact,omitempty"`
	Error          string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		entriesCount := d.Snapshot.Count()
		lastGeneration := "never"
		if at := d.Snapshot.GeneratedAt(); !at.IsZero() {
			lastGeneration = at.Format("2006-01-02 15:04:05")
		}

		components := map[string]componentStatus{
			"generator": {
				OK:             entriesCount > 0,
				EntriesLoaded:  &entriesCount,
				LastGeneration: lastGeneration,
			},
			"redis": checkRedis(d),
		}

		response := infraResponse{
			Mode:       determineMode(components),
			Components: components,
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

func determineMode(components map[string]componentStatus) string {
	if gen, exists := components["generator"]; exists {
		if !gen.OK || (gen.EntriesLoaded != nil && *gen.EntriesLoaded == 0) {
			return "empty" // No entries yet = nothing to serve
		}
	}
	if rds, exists := components["redis"]; exists && !rds.OK {
		return "degraded" // Redis down = no snapshot survival across restarts
	}
	return "nominal"
}

func checkRedis(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     true,
			Mode:   "disabled",
			Impact: "snapshot-cache-disabled",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "snapshot-cache-unavailable",
			Error:  err.Error(),
		}
	}
	return componentStatus{OK: true}
}
