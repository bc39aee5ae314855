package traefik

import (
	"context"
	"sort"
	"strings"

	"github.com/portico-home/portico/internal/domain"
	"github.com/portico-home/portico/internal/logger"
)

// Resolver normalizes the live router table into a service URL map.
type Resolver struct {
	client *Client
	log    logger.Logger
}

// NewResolver creates a resolver on top of a router-table client.
func NewResolver(client *Client, log logger.Logger) *Resolver {
	return &Resolver{client: client, log: log}
}

// Resolve fetches the router table and builds the name-key to URL-set map.
//
// Each router's URLs are stored under three keys: the provider-suffix-
// stripped service name, the full router identifier, and the identifier's
// own stripped base name when distinct. Downstream consumers look entities
// up by whichever naming convention they know.
//
// A failed fetch degrades to an empty map with a warning; the router table
// is one source among several and must never abort a pass.
func (r *Resolver) Resolve(ctx context.Context) *domain.URLMap {
	urlMap := domain.NewURLMap()

	routers, err := r.client.FetchRouters(ctx)
	if err != nil {
		r.log.Warn("router table unavailable, continuing without it",
			logger.Error(err))
		return urlMap
	}

	skipped := 0
	for _, nr := range routers {
		scheme := domain.SchemeFromEntrypoints(nr.Router.EntryPoints)
		urls := domain.ParseRule(nr.Router.Rule, scheme)
		if len(urls) == 0 {
			continue
		}

		service := domain.StripProvider(nr.Router.Service)
		if service == "" && nr.ID != "" {
			// Routers without a service field: derive a name from the
			// identifier's last dot segment.
			parts := strings.Split(nr.ID, ".")
			service = parts[len(parts)-1]
		}

		// The proxy's own internal "router" entries are provider
		// artifacts, not real entities.
		if strings.EqualFold(service, domain.ReservedRouterKey) ||
			strings.EqualFold(nr.ID, domain.ReservedRouterKey) {
			skipped++
			continue
		}

		urlMap.Add(service, urls...)
		if nr.ID != "" {
			urlMap.Add(nr.ID, urls...)
			if base := domain.StripProvider(nr.ID); base != service {
				urlMap.Add(base, urls...)
			}
		}
	}

	r.log.Info("resolved router table",
		logger.Int("keys", urlMap.Len()),
		logger.Int("skipped_router_artifacts", skipped))
	return urlMap
}

func sortedRouterIDs(byID map[string]Router) []string {
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
