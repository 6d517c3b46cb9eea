package cache

import (
	"sort"
	"strings"
)

// MakeKey derives the cache key for a route and its query parameters.
// Parameters are sorted by name so equal parameter sets produce the same
// key byte for byte regardless of their original order. A route with no
// parameters maps to the bare route path.
func MakeKey(route string, params map[string]string) string {
	if len(params) == 0 {
		return route
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(route)
	for _, name := range names {
		b.WriteByte(':')
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(params[name])
	}
	return b.String()
}
