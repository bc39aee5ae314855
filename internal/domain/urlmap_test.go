package domain

import (
	"reflect"
	"testing"
)

func TestURLMapAdd(t *testing.T) {
	m := NewURLMap()
	m.Add("omv", "http://omv.local.dev")
	m.Add("omv", "http://omv.local.dev", "https://omv.local.dev")
	m.Add("grafana", "https://grafana.local.dev")

	urls, ok := m.Lookup("omv")
	if !ok {
		t.Fatal("Lookup(omv) = false, want true")
	}
	expected := []string{"http://omv.local.dev", "https://omv.local.dev"}
	if !reflect.DeepEqual(urls, expected) {
		t.Errorf("Lookup(omv) = %v, want %v", urls, expected)
	}

	if got := m.Keys(); !reflect.DeepEqual(got, []string{"omv", "grafana"}) {
		t.Errorf("Keys() = %v, want insertion order [omv grafana]", got)
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

func TestURLMapRejectsEmptyAndReservedKeys(t *testing.T) {
	m := NewURLMap()
	m.Add("", "http://nowhere.example.com")
	m.Add("router", "http://proxy.example.com")
	m.Add("Router", "http://proxy.example.com")
	m.Add("ROUTER", "http://proxy.example.com")

	if m.Len() != 0 {
		t.Errorf("Len() = %d after reserved/empty adds, want 0", m.Len())
	}
	if m.Has("router") {
		t.Error("Has(router) = true, want false")
	}
}

func TestURLMapEmptyURLsIgnored(t *testing.T) {
	m := NewURLMap()
	m.Add("omv", "", "http://omv.local.dev", "")

	urls, _ := m.Lookup("omv")
	if !reflect.DeepEqual(urls, []string{"http://omv.local.dev"}) {
		t.Errorf("Lookup(omv) = %v, want empty URLs dropped", urls)
	}
}

func TestURLMapHasWithEmptyURLSet(t *testing.T) {
	m := NewURLMap()
	m.Add("ghost")

	if !m.Has("ghost") {
		t.Error("Has(ghost) = false, want true for key with no URLs")
	}
	if urls, _ := m.Lookup("ghost"); len(urls) != 0 {
		t.Errorf("Lookup(ghost) = %v, want empty", urls)
	}
}

func TestURLMapMerge(t *testing.T) {
	a := NewURLMap()
	a.Add("omv", "http://omv.local.dev")

	b := NewURLMap()
	b.Add("omv", "http://omv.local.dev", "https://omv.local.dev")
	b.Add("pihole", "http://pihole.local.dev")

	a.Merge(b)

	urls, _ := a.Lookup("omv")
	expected := []string{"http://omv.local.dev", "https://omv.local.dev"}
	if !reflect.DeepEqual(urls, expected) {
		t.Errorf("merged omv URLs = %v, want %v", urls, expected)
	}
	if !a.Has("pihole") {
		t.Error("Has(pihole) = false after merge, want true")
	}

	// merging nil is a no-op
	a.Merge(nil)
	if a.Len() != 2 {
		t.Errorf("Len() = %d after nil merge, want 2", a.Len())
	}
}

func TestStripProvider(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"omv@docker", "omv"},
		{"omv@file", "omv"},
		{"omv", "omv"},
		{"", ""},
		{"a@b@c", "a"},
	}

	for _, tt := range tests {
		if got := StripProvider(tt.input); got != tt.expected {
			t.Errorf("StripProvider(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestDedupeURLs(t *testing.T) {
	got := DedupeURLs([]string{"a", "b", "a", "c", "b"})
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("DedupeURLs = %v, want [a b c]", got)
	}
}
