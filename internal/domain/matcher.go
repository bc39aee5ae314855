package domain

import "strings"

// MatchTier identifies which naming heuristic produced a fuzzy match.
// Tiers are tried in declaration order and matching stops at the first tier
// that yields at least one key, so a precise match is never diluted by the
// looser heuristics below it.
type MatchTier int

const (
	// MatchExact: the declaration name equals the key.
	MatchExact MatchTier = iota
	// MatchHyphen: one side is the other plus a hyphen-prefixed suffix.
	MatchHyphen
	// MatchContains: one side contains the other as a substring.
	MatchContains
)

func (t MatchTier) String() string {
	switch t {
	case MatchExact:
		return "exact"
	case MatchHyphen:
		return "hyphen-suffix"
	case MatchContains:
		return "containment"
	default:
		return "unknown"
	}
}

// Match records one fuzzy-matched URL map key.
type Match struct {
	Key  string
	Tier MatchTier
}

// MatchKeys fuzzy-matches a declaration name against the URL map keys.
// It returns every key of the highest non-empty tier (union within the tier
// tolerates multi-router fan-out) or nil when nothing matches.
// Comparisons are case-insensitive to tolerate naming drift between the
// runtime and the declaration.
func MatchKeys(name string, urls *URLMap) []Match {
	name = strings.ToLower(name)
	if name == "" {
		return nil
	}

	tiers := []struct {
		tier  MatchTier
		match func(name, key string) bool
	}{
		{MatchExact, func(name, key string) bool {
			return name == key
		}},
		{MatchHyphen, func(name, key string) bool {
			return strings.HasPrefix(key, name+"-") || strings.HasPrefix(name, key+"-")
		}},
		{MatchContains, func(name, key string) bool {
			return strings.Contains(key, name) || strings.Contains(name, key)
		}},
	}

	for _, t := range tiers {
		var matches []Match
		for _, key := range urls.Keys() {
			if t.match(name, strings.ToLower(key)) {
				matches = append(matches, Match{Key: key, Tier: t.tier})
			}
		}
		if len(matches) > 0 {
			return matches
		}
	}
	return nil
}
