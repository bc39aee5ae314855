package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/portico-home/portico/internal/generator"
	"github.com/portico-home/portico/internal/httpserver/deps"
)

// Apps serves the current entry list in the same document shape the
// generator publishes to disk.
func Apps(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")

		doc := generator.Document{
			GeneratedAt: d.Snapshot.GeneratedAt().UTC(),
			Config:      d.Page,
			Apps:        d.Snapshot.Entries(),
		}
		_ = json.NewEncoder(w).Encode(doc)
	}
}
