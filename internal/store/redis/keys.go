package redis

const (
	// KeySnapshot holds the JSON document of the last generated entry list.
	KeySnapshot = "portico:apps:snapshot"
)
