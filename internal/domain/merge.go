package domain

import (
	"sort"

	"github.com/portico-home/portico/internal/logger"
)

// MergeInput carries the per-source snapshots consumed by one merge pass.
// All maps are read-only to the merge; a pass holds no state of its own.
type MergeInput struct {
	// URLs is the combined service URL map (label-derived + router table).
	URLs *URLMap
	// Metadata holds opt-in display attributes keyed by entity name.
	Metadata map[string]ServiceMetadata
	// External holds manual declarations keyed by declaration name.
	External map[string]ExternalApp
	// Overrides holds user override records keyed by entity name.
	Overrides map[string]OverrideRecord
}

// Merge combines the label-sourced, external-app and override-only
// populations into the final entry list.
//
// The result is sorted by display name (ascending, case-sensitive) with ties
// kept in encounter order. Per-entry URL lists are deduplicated preserving
// first-seen order, and no entry is emitted with an empty URL list.
func Merge(in MergeInput, log logger.Logger) []AppEntry {
	if in.URLs == nil {
		in.URLs = NewURLMap()
	}

	entries := make([]AppEntry, 0, len(in.Metadata)+len(in.External)+len(in.Overrides))
	entries = append(entries, mergeLabelSourced(in, log)...)
	entries = append(entries, mergeExternal(in, log)...)
	entries = append(entries, mergeOverrideOnly(in, log)...)

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// mergeLabelSourced emits entries for URL map keys that opted in via
// annotation metadata and are not claimed by an external declaration.
// External declarations take precedence to avoid double-listing.
func mergeLabelSourced(in MergeInput, log logger.Logger) []AppEntry {
	var entries []AppEntry
	for _, key := range in.URLs.Keys() {
		meta, optedIn := in.Metadata[key]
		if !optedIn {
			// Router-table key variant or an entity that never opted in.
			continue
		}
		if _, claimed := in.External[key]; claimed {
			log.Debug("entity claimed by external declaration, skipping label entry",
				logger.String("entity", key))
			continue
		}

		ov := in.Overrides[key]
		// Hide is OR'd across sources: once hidden, an override cannot
		// un-hide the entity.
		if meta.Hide || ov.Hide {
			log.Debug("entity hidden", logger.String("entity", key))
			continue
		}
		if !resolveEnable(ov.Enable, meta.Enable, true) {
			log.Debug("entity disabled", logger.String("entity", key))
			continue
		}

		urls, _ := in.URLs.Lookup(key)
		if len(urls) == 0 {
			log.Debug("entity has no URLs, skipping", logger.String("entity", key))
			continue
		}

		entries = append(entries, newEntry(
			firstNonEmpty(ov.Name, meta.Alias, DisplayName(key)),
			urls,
			firstNonEmpty(ov.Icon, meta.Icon),
			ov.Description,
			firstNonEmpty(ov.Category, defaultCategory(meta.Admin)),
			ov.Badge,
		))
	}
	return entries
}

// mergeExternal resolves manual declarations to URLs and emits entries,
// honoring the enabled flag and the override file.
func mergeExternal(in MergeInput, log logger.Logger) []AppEntry {
	var entries []AppEntry
	for _, name := range sortedKeys(in.External) {
		decl := in.External[name]
		if !decl.Enabled {
			log.Debug("external app not enabled, skipping",
				logger.String("app", name))
			continue
		}

		urls, ok := resolveExternalURLs(decl, in.URLs, log)
		if !ok {
			continue
		}

		ov := in.Overrides[name]
		if ov.Hide {
			log.Debug("external app hidden by override",
				logger.String("app", name))
			continue
		}
		if !resolveEnable(ov.Enable, nil, true) {
			log.Debug("external app disabled by override",
				logger.String("app", name))
			continue
		}

		entries = append(entries, newEntry(
			firstNonEmpty(ov.Name, decl.Alias, DisplayName(name)),
			urls,
			firstNonEmpty(ov.Icon, decl.Icon),
			firstNonEmpty(ov.Description, decl.Description),
			firstNonEmpty(ov.Category, decl.Category, defaultCategory(decl.Admin)),
			ov.Badge,
		))
	}
	return entries
}

// resolveExternalURLs applies the resolution ladder: explicit URLs, explicit
// router reference, then fuzzy matching. Explicit URLs are additive on top of
// a resolved reference or fuzzy matches.
func resolveExternalURLs(decl ExternalApp, urlMap *URLMap, log logger.Logger) ([]string, bool) {
	urls := append([]string(nil), decl.URLs...)

	switch {
	case decl.Router != "":
		routed, ok := urlMap.Lookup(decl.Router)
		if !ok {
			// An explicit reference that does not resolve is a
			// configuration error, not something to paper over.
			log.Warn("external app references unknown router, dropping",
				logger.String("app", decl.Name),
				logger.String("router", decl.Router))
			return nil, false
		}
		urls = append(urls, routed...)

	case len(urls) == 0:
		for _, m := range MatchKeys(decl.Name, urlMap) {
			matched, _ := urlMap.Lookup(m.Key)
			urls = append(urls, matched...)
			log.Info("external app matched router key",
				logger.String("app", decl.Name),
				logger.String("key", m.Key),
				logger.String("tier", m.Tier.String()))
		}
	}

	urls = DedupeURLs(urls)
	if len(urls) == 0 {
		log.Warn("external app resolved to no URLs, dropping",
			logger.String("app", decl.Name))
		return nil, false
	}
	return urls, true
}

// mergeOverrideOnly emits purely manual entries: override keys with no
// discovered URLs and no external declaration. With no other source vouching
// for them they fail closed and must set Enable explicitly.
func mergeOverrideOnly(in MergeInput, log logger.Logger) []AppEntry {
	var entries []AppEntry
	for _, key := range sortedKeys(in.Overrides) {
		if in.URLs.Has(key) {
			continue
		}
		if _, isExternal := in.External[key]; isExternal {
			continue
		}

		ov := in.Overrides[key]
		if ov.Hide {
			log.Debug("override-only entry hidden", logger.String("entity", key))
			continue
		}
		if !resolveEnable(ov.Enable, nil, false) {
			log.Debug("override-only entry not explicitly enabled, skipping",
				logger.String("entity", key))
			continue
		}

		var urls []string
		if ov.URL != "" {
			urls = []string{ov.URL}
		} else {
			urls = DedupeURLs(ov.URLs)
		}
		if len(urls) == 0 {
			log.Warn("override-only entry has no URL, dropping",
				logger.String("entity", key))
			continue
		}

		entries = append(entries, newEntry(
			firstNonEmpty(ov.Name, DisplayName(key)),
			urls,
			ov.Icon,
			ov.Description,
			firstNonEmpty(ov.Category, CategoryApps),
			ov.Badge,
		))
	}
	return entries
}

func newEntry(name string, urls []string, icon, description, category, badge string) AppEntry {
	return AppEntry{
		Name:        name,
		URLs:        urls,
		Icon:        icon,
		Description: description,
		Category:    category,
		Badge:       badge,
		PrimaryURL:  urls[0],
	}
}

// resolveEnable applies the enable precedence chain: override value, then
// source value, then the population's default.
func resolveEnable(override, source *bool, def bool) bool {
	if override != nil {
		return *override
	}
	if source != nil {
		return *source
	}
	return def
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
