package docker

import (
	"sort"
	"strings"

	"github.com/portico-home/portico/internal/domain"
	"github.com/portico-home/portico/internal/logger"
)

const (
	// LabelPrefix is the annotation namespace entities opt in with.
	LabelPrefix = "portico."

	labelIcon   = LabelPrefix + "icon"
	labelAlias  = LabelPrefix + "alias"
	labelHide   = LabelPrefix + "hide"
	labelAdmin  = LabelPrefix + "admin"
	labelEnable = LabelPrefix + "enable"

	routerLabelPrefix = "traefik.http.routers."
	ruleLabelSuffix   = ".rule"
	entrypointsSuffix = ".entrypoints"
)

// Collector turns per-entity annotation maps into routing-rule URLs and
// opt-in display metadata.
type Collector struct {
	control string
	log     logger.Logger
}

// NewCollector creates a collector. controlEntity names the container that
// carries external-app declarations; it is skipped as a regular entity.
func NewCollector(controlEntity string, log logger.Logger) *Collector {
	return &Collector{control: controlEntity, log: log}
}

// Collect extracts rule-derived URLs (keyed by display-service name) and
// metadata for every entity that opted in via at least one recognized
// annotation key. Entities without any such key stay invisible even when
// they have routed URLs.
func (c *Collector) Collect(entities []Entity) (*domain.URLMap, map[string]domain.ServiceMetadata) {
	urlMap := domain.NewURLMap()
	metadata := make(map[string]domain.ServiceMetadata)

	for _, e := range entities {
		if c.isControl(e) {
			continue
		}

		if meta, optedIn := collectMetadata(e.Labels); optedIn {
			if _, dup := metadata[e.Service]; !dup {
				metadata[e.Service] = meta
			}
		} else {
			c.log.Debug("entity has no recognized annotation, invisible to merge",
				logger.String("entity", e.Service))
		}

		for _, url := range collectRuleURLs(e.Labels) {
			urlMap.Add(e.Service, url)
		}
	}

	c.log.Info("collected entity labels",
		logger.Int("entities", len(entities)),
		logger.Int("opted_in", len(metadata)))
	return urlMap, metadata
}

func (c *Collector) isControl(e Entity) bool {
	return e.Name == c.control || e.Service == c.control
}

// collectMetadata reads the recognized annotation keys. The bool result is
// the opt-in gate: false means no recognized key was present at all.
func collectMetadata(labels map[string]string) (domain.ServiceMetadata, bool) {
	var meta domain.ServiceMetadata
	optedIn := false

	if v, ok := labels[labelIcon]; ok {
		meta.Icon = v
		optedIn = true
	}
	if v, ok := labels[labelAlias]; ok {
		meta.Alias = v
		optedIn = true
	}
	if v, ok := labels[labelHide]; ok {
		meta.Hide = strings.EqualFold(v, "true")
		optedIn = true
	}
	if v, ok := labels[labelAdmin]; ok {
		meta.Admin = strings.EqualFold(v, "true")
		optedIn = true
	}
	if v, ok := labels[labelEnable]; ok {
		meta.Enable = parseTristate(v)
		optedIn = true
	}

	return meta, optedIn
}

// collectRuleURLs scans proxy router labels and parses each rule into URLs.
// Router names containing "redirect" are HTTP->HTTPS artifacts carrying no
// real destination and contribute nothing.
func collectRuleURLs(labels map[string]string) []string {
	var urls []string
	for _, key := range sortedLabelKeys(labels) {
		if !strings.HasPrefix(key, routerLabelPrefix) || !strings.HasSuffix(key, ruleLabelSuffix) {
			continue
		}
		routerName := key[len(routerLabelPrefix) : len(key)-len(ruleLabelSuffix)]
		if routerName == "" || strings.Contains(strings.ToLower(routerName), "redirect") {
			continue
		}

		scheme := domain.SchemeHTTP
		if eps, ok := labels[routerLabelPrefix+routerName+entrypointsSuffix]; ok {
			scheme = domain.SchemeFromEntrypoints(strings.Split(eps, ","))
		}

		urls = append(urls, domain.ParseRule(labels[key], scheme)...)
	}
	return urls
}

// parseTristate maps an explicit "true"/"false" to a pointer and anything
// else to unset.
func parseTristate(v string) *bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true":
		b := true
		return &b
	case "false":
		b := false
		return &b
	default:
		return nil
	}
}

// sortedLabelKeys keeps URL order deterministic across passes; Go map
// iteration order would otherwise reshuffle multi-router entities.
func sortedLabelKeys(labels map[string]string) []string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
