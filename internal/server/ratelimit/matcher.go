package ratelimit

import (
	"net/http"
	"strings"
)

// unlimited is returned for routes that are never throttled.
var unlimited = EndpointConfig{Limit: 0}

// MatchEndpoint returns the rule for a request. Health checks and CORS
// preflights are unlimited. ok is false when no rule matches and the default
// limit applies.
func MatchEndpoint(path, method string, configs []EndpointConfig) (EndpointConfig, bool) {
	if method == http.MethodOptions || (path == "/health" && method == http.MethodGet) {
		return unlimited, true
	}

	for _, c := range configs {
		if c.Method == method && c.Path == path {
			return c, true
		}
	}

	for _, c := range configs {
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c, true
		}
	}

	return EndpointConfig{}, false
}
