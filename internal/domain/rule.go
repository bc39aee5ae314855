package domain

import "strings"

const (
	// SchemeHTTP is the scheme used when no entrypoint hints at TLS.
	SchemeHTTP = "http"
	// SchemeHTTPS is the scheme used when an entrypoint name hints at TLS.
	SchemeHTTPS = "https"
)

// SchemeFromEntrypoints derives the URL scheme from entrypoint names.
// Any entrypoint whose name contains "secure" or "https" (which covers
// "websecure") marks the router as TLS-terminated.
func SchemeFromEntrypoints(entrypoints []string) string {
	for _, ep := range entrypoints {
		ep = strings.ToLower(ep)
		if strings.Contains(ep, "secure") || strings.Contains(ep, "https") {
			return SchemeHTTPS
		}
	}
	return SchemeHTTP
}

// ParseRule extracts URLs from a routing rule expression.
//
// The rule is split on the OR operator ("||" or "|"). Each branch may carry
// a Host(...) or HostRegexp(...) atom; the quoted hostname (backtick, single
// or double quotes) becomes "{scheme}://{hostname}". For HostRegexp the
// brace characters are stripped and only the part before the first comma is
// kept (regex modifiers carry no hostname information).
//
// Branches with neither atom, and atoms missing their closing parenthesis,
// contribute nothing. The result is ordered and NOT deduplicated; callers
// dedupe when building the service URL map.
func ParseRule(rule, scheme string) []string {
	if rule == "" {
		return nil
	}
	if scheme == "" {
		scheme = SchemeHTTP
	}

	var urls []string
	branches := strings.Split(strings.ReplaceAll(rule, "||", "|"), "|")
	for _, branch := range branches {
		host := extractHost(branch)
		if host == "" {
			continue
		}
		urls = append(urls, scheme+"://"+host)
	}
	return urls
}

// extractHost pulls the hostname out of a single rule branch.
func extractHost(branch string) string {
	if start := strings.Index(branch, "HostRegexp("); start >= 0 {
		expr := unquote(untilParen(branch[start+len("HostRegexp("):]))
		if expr == "" {
			return ""
		}
		expr = strings.NewReplacer("{", "", "}", "").Replace(expr)
		if i := strings.IndexByte(expr, ','); i >= 0 {
			expr = expr[:i]
		}
		return strings.TrimSpace(expr)
	}
	if start := strings.Index(branch, "Host("); start >= 0 {
		return unquote(untilParen(branch[start+len("Host("):]))
	}
	return ""
}

// untilParen returns the content up to the closing parenthesis, or "" for a
// malformed atom. Malformed atoms are skipped silently on purpose: a single
// broken label must not take the whole entity off the dashboard.
func untilParen(s string) string {
	end := strings.IndexByte(s, ')')
	if end < 0 {
		return ""
	}
	return s[:end]
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	return strings.Trim(s, "`'\"")
}
