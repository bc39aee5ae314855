package domain

import (
	"reflect"
	"testing"
)

func TestParseRule(t *testing.T) {
	tests := []struct {
		name     string
		rule     string
		scheme   string
		expected []string
	}{
		{
			name:     "single host with backticks",
			rule:     "Host(`omv.local.dev`)",
			scheme:   "http",
			expected: []string{"http://omv.local.dev"},
		},
		{
			name:     "single host with double quotes",
			rule:     `Host("grafana.example.com")`,
			scheme:   "https",
			expected: []string{"https://grafana.example.com"},
		},
		{
			name:     "single host with single quotes",
			rule:     "Host('pihole.lan')",
			scheme:   "http",
			expected: []string{"http://pihole.lan"},
		},
		{
			name:     "double pipe OR across hosts",
			rule:     "Host(`a.example.com`) || Host(`b.example.com`)",
			scheme:   "https",
			expected: []string{"https://a.example.com", "https://b.example.com"},
		},
		{
			name:     "single pipe OR across hosts",
			rule:     "Host(`a.example.com`) | Host(`b.example.com`)",
			scheme:   "http",
			expected: []string{"http://a.example.com", "http://b.example.com"},
		},
		{
			name:     "host combined with path prefix",
			rule:     "Host(`api.example.com`) && PathPrefix(`/v1`)",
			scheme:   "https",
			expected: []string{"https://api.example.com"},
		},
		{
			name:     "host regexp with braces",
			rule:     "HostRegexp(`{subdomain:[a-z]+}.example.com`)",
			scheme:   "http",
			expected: []string{"http://subdomain:[a-z]+.example.com"},
		},
		{
			name:     "host regexp keeps part before first comma",
			rule:     "HostRegexp(`example.com, www.example.com`)",
			scheme:   "http",
			expected: []string{"http://example.com"},
		},
		{
			name:     "branch without host atom contributes nothing",
			rule:     "PathPrefix(`/admin`) || Host(`admin.example.com`)",
			scheme:   "https",
			expected: []string{"https://admin.example.com"},
		},
		{
			name:     "malformed atom missing closing paren is skipped",
			rule:     "Host(`broken.example.com",
			scheme:   "http",
			expected: nil,
		},
		{
			name:     "malformed branch does not poison siblings",
			rule:     "Host(`broken || Host(`ok.example.com`)",
			scheme:   "http",
			expected: []string{"http://ok.example.com"},
		},
		{
			name:     "empty rule",
			rule:     "",
			scheme:   "http",
			expected: nil,
		},
		{
			name:     "empty scheme falls back to http",
			rule:     "Host(`plain.example.com`)",
			scheme:   "",
			expected: []string{"http://plain.example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRule(tt.rule, tt.scheme)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ParseRule(%q, %q) = %v, want %v", tt.rule, tt.scheme, got, tt.expected)
			}
		})
	}
}

func TestSchemeFromEntrypoints(t *testing.T) {
	tests := []struct {
		name        string
		entrypoints []string
		expected    string
	}{
		{"websecure", []string{"websecure"}, SchemeHTTPS},
		{"https named", []string{"https"}, SchemeHTTPS},
		{"mixed case secure", []string{"WebSecure"}, SchemeHTTPS},
		{"plain web", []string{"web"}, SchemeHTTP},
		{"web before websecure", []string{"web", "websecure"}, SchemeHTTPS},
		{"empty list", nil, SchemeHTTP},
		{"custom non-tls name", []string{"metrics"}, SchemeHTTP},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SchemeFromEntrypoints(tt.entrypoints); got != tt.expected {
				t.Errorf("SchemeFromEntrypoints(%v) = %q, want %q", tt.entrypoints, got, tt.expected)
			}
		})
	}
}
