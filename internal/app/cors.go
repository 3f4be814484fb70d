package app

import (
	"net/url"
	"strings"
)

// allowOriginFunc builds the CORS origin predicate from the configured host
// patterns. A pattern is an exact "host[:port]", a "*.domain" subdomain
// wildcard, or a "host:*" any-port wildcard; the scheme of the Origin
// header is ignored.
func allowOriginFunc(patterns []string) func(origin string) bool {
	return func(origin string) bool {
		host := originHost(origin)
		for _, pattern := range patterns {
			if hostMatches(pattern, host) {
				return true
			}
		}
		return false
	}
}

// originHost reduces an Origin header value to its "host[:port]" part.
func originHost(origin string) string {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return origin
	}
	return u.Host
}

func hostMatches(pattern, host string) bool {
	switch {
	case pattern == host:
		return true
	case strings.HasPrefix(pattern, "*."):
		return strings.HasSuffix(host, pattern[1:])
	case strings.HasSuffix(pattern, ":*"):
		return strings.HasPrefix(host, pattern[:len(pattern)-1])
	default:
		return false
	}
}
