package domain

import "strings"

// ReservedRouterKey is a provider artifact emitted by some Traefik setups.
// It names the proxy's own internal router, not a real entity, and must
// never appear as a key in a URLMap.
const ReservedRouterKey = "router"

// URLMap maps a name key to an ordered, deduplicated set of URLs.
//
// Several key variants (service name, full router identifier, suffix-stripped
// router base) may point at the same URL set. This is intentional: downstream
// consumers look entities up by whichever naming convention they know.
//
// Key insertion order is preserved so that repeated passes over the same
// inputs produce the same output ordering.
type URLMap struct {
	keys []string
	urls map[string][]string
	seen map[string]map[string]struct{}
}

// NewURLMap creates an empty URLMap.
func NewURLMap() *URLMap {
	return &URLMap{
		urls: make(map[string][]string),
		seen: make(map[string]map[string]struct{}),
	}
}

// Add appends URLs under key, dropping duplicates while preserving first-seen
// order. Empty keys and the reserved "router" key are ignored.
func (m *URLMap) Add(key string, urls ...string) {
	if key == "" || strings.EqualFold(key, ReservedRouterKey) {
		return
	}
	set, ok := m.seen[key]
	if !ok {
		set = make(map[string]struct{})
		m.seen[key] = set
		m.keys = append(m.keys, key)
	}
	for _, u := range urls {
		if u == "" {
			continue
		}
		if _, dup := set[u]; dup {
			continue
		}
		set[u] = struct{}{}
		m.urls[key] = append(m.urls[key], u)
	}
}

// Lookup returns the URLs stored under an exact key.
func (m *URLMap) Lookup(key string) ([]string, bool) {
	urls, ok := m.urls[key]
	return urls, ok
}

// Has reports whether key is present, even with an empty URL set.
func (m *URLMap) Has(key string) bool {
	_, ok := m.seen[key]
	return ok
}

// Keys returns all keys in insertion order.
func (m *URLMap) Keys() []string {
	return m.keys
}

// Len returns the number of keys.
func (m *URLMap) Len() int {
	return len(m.keys)
}

// Merge folds every key of other into m, keeping m's dedupe semantics.
func (m *URLMap) Merge(other *URLMap) {
	if other == nil {
		return
	}
	for _, key := range other.keys {
		m.Add(key, other.urls[key]...)
	}
}

// StripProvider removes a "@provider" suffix from a router or service
// identifier. Example: "omv@docker" -> "omv".
func StripProvider(name string) string {
	if i := strings.IndexByte(name, '@'); i >= 0 {
		return name[:i]
	}
	return name
}

// DedupeURLs removes duplicates from urls preserving first-seen order.
func DedupeURLs(urls []string) []string {
	if len(urls) < 2 {
		return urls
	}
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
