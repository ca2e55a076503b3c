// ABOUTME: Deep-link projection of a list query to and from a query string.
// ABOUTME: page, search, and tag map 1:1 to query fields; absence means the default.
package listing

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/google/go-querystring/query"
)

// linkParams is the shareable subset of a Query.
type linkParams struct {
	Page   int    `url:"page,omitempty"`
	Search string `url:"search,omitempty"`
	Tag    string `url:"tag,omitempty"`
}

// Encode projects q into a query string. Page 1 and empty filters are omitted.
func Encode(q Query) string {
	p := linkParams{Search: q.Search, Tag: q.Tag}
	if q.Page > 1 {
		p.Page = q.Page
	}
	v, err := query.Values(p)
	if err != nil {
		return ""
	}
	return v.Encode()
}

// Decode reads a query string (optionally a full URL or a leading "?")
// into a Query. Missing or malformed values fall back to defaults.
func Decode(raw string, pageSize int) Query {
	q := NewQuery(pageSize)

	raw = strings.TrimSpace(raw)
	if i := strings.Index(raw, "?"); i >= 0 {
		raw = raw[i+1:]
	}
	if raw == "" {
		return q
	}

	// ParseQuery keeps every pair it could parse even when it reports an error.
	values, _ := url.ParseQuery(raw)

	if n, err := strconv.Atoi(values.Get("page")); err == nil && n > 1 {
		q.Page = n
	}
	q.Search = strings.TrimSpace(values.Get("search"))
	q.Tag = strings.TrimSpace(values.Get("tag"))
	return q
}
