package docker

import (
	"reflect"
	"testing"
)

func TestExternalAppsParsing(t *testing.T) {
	collector := newTestCollector()

	entities := []Entity{
		{
			Name:    "portico",
			Service: "portico",
			Labels: map[string]string{
				"portico.app.nas.enable":      "true",
				"portico.app.nas.url":         "https://nas.example.com, https://nas-alt.example.com",
				"portico.app.nas.icon":        "nas.svg",
				"portico.app.nas.category":    "Storage",
				"portico.app.nas.description": "Network storage",
				"portico.app.wiki.enable":     "true",
				"portico.app.wiki.router":     "bookstack",
				"portico.app.wiki.admin":      "true",
				"portico.app.old.alias":       "Old App",
			},
		},
	}

	apps := collector.ExternalApps(entities)

	if len(apps) != 3 {
		t.Fatalf("ExternalApps() = %d apps, want 3", len(apps))
	}

	nas := apps["nas"]
	if !nas.Enabled {
		t.Error("nas.Enabled = false, want true")
	}
	expectedURLs := []string{"https://nas.example.com", "https://nas-alt.example.com"}
	if !reflect.DeepEqual(nas.URLs, expectedURLs) {
		t.Errorf("nas.URLs = %v, want comma-split %v", nas.URLs, expectedURLs)
	}
	if nas.Icon != "nas.svg" || nas.Category != "Storage" || nas.Description != "Network storage" {
		t.Errorf("nas attributes = %+v, want icon/category/description set", nas)
	}

	wiki := apps["wiki"]
	if wiki.Router != "bookstack" || !wiki.Admin {
		t.Errorf("wiki = %+v, want router reference and admin flag", wiki)
	}

	// Declarations without an enable label stay disabled.
	if apps["old"].Enabled {
		t.Error("old.Enabled = true, want declarations to fail closed")
	}
}

func TestExternalAppsMalformedLabelsSkipped(t *testing.T) {
	collector := newTestCollector()

	entities := []Entity{
		{
			Name:    "portico",
			Service: "portico",
			Labels: map[string]string{
				"portico.app.noattr":      "x",
				"portico.app..enable":     "true",
				"portico.app.trailing.":   "x",
				"portico.app.good.enable": "true",
			},
		},
	}

	apps := collector.ExternalApps(entities)
	if len(apps) != 1 {
		t.Fatalf("ExternalApps() = %d apps, want only the well-formed one", len(apps))
	}
	if _, ok := apps["good"]; !ok {
		t.Error("apps[good] missing")
	}
}

func TestFindControlFallbacks(t *testing.T) {
	collector := newTestCollector()

	tests := []struct {
		name     string
		entities []Entity
		expected string
		found    bool
	}{
		{
			name: "exact name wins",
			entities: []Entity{
				{Name: "portico-old", Labels: map[string]string{"portico.app.a.enable": "true"}},
				{Name: "portico"},
			},
			expected: "portico",
			found:    true,
		},
		{
			name: "name containment",
			entities: []Entity{
				{Name: "stack-portico-1"},
			},
			expected: "stack-portico-1",
			found:    true,
		},
		{
			name: "declaration labels as last resort",
			entities: []Entity{
				{Name: "dashboard", Labels: map[string]string{"portico.app.a.enable": "true"}},
			},
			expected: "dashboard",
			found:    true,
		},
		{
			name:     "nothing matches",
			entities: []Entity{{Name: "grafana"}},
			found:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			control, ok := collector.findControl(tt.entities)
			if ok != tt.found {
				t.Fatalf("findControl() ok = %v, want %v", ok, tt.found)
			}
			if ok && control.Name != tt.expected {
				t.Errorf("findControl() = %q, want %q", control.Name, tt.expected)
			}
		})
	}
}

func TestExternalAppsNoControlEntity(t *testing.T) {
	collector := newTestCollector()

	apps := collector.ExternalApps([]Entity{{Name: "grafana"}})
	if len(apps) != 0 {
		t.Errorf("ExternalApps() = %v, want empty map", apps)
	}
}
