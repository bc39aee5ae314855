package traefik

// Router is one router entry from the proxy control-plane API.
//
// encoding/json matches keys case-insensitively, so the single tags below
// also accept the "Rule"/"entrypoints"/"Service" spellings seen in the wild.
type Router struct {
	Name        string   `json:"name"`
	Rule        string   `json:"rule"`
	EntryPoints []string `json:"entryPoints"`
	Service     string   `json:"service"`
	// Some list-shaped responses carry the identifier under "router"
	// instead of "name".
	Router string `json:"router"`
}

// NamedRouter pairs a router identifier with its data, normalized from
// either response shape (object keyed by identifier, or array of objects).
type NamedRouter struct {
	ID     string
	Router Router
}
