package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// CategoryApps is the default category for regular entries.
	CategoryApps = "Apps"
	// CategoryAdmin is the default category for admin-flagged entries.
	CategoryAdmin = "Admin"
)

// AppEntry is the canonical, fully-resolved record describing one
// dashboard-visible application. It is the sole output of a merge pass.
//
// Invariant: an AppEntry is never emitted with an empty URL list.
type AppEntry struct {
	Name        string   `json:"name"`
	URLs        []string `json:"urls"`
	Icon        string   `json:"icon"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Badge       string   `json:"badge"`
	PrimaryURL  string   `json:"primary_url"`
}

var titleCaser = cases.Title(language.English)

// DisplayName derives a human-readable default name from an entity key.
// Separators become spaces and each word is title-cased.
// Example: "home-assistant" -> "Home Assistant".
func DisplayName(key string) string {
	name := strings.NewReplacer("-", " ", "_", " ").Replace(key)
	return titleCaser.String(name)
}

// firstNonEmpty returns the first non-empty string, applying the
// override -> source -> default attribute precedence used by the merge.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
