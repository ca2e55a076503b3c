// ABOUTME: Immutable query state for paginated, filterable lists.
// ABOUTME: Mutators return copies; changing a filter always returns to page 1.
package listing

import "strings"

// DefaultPageSize is used when a non-positive page size is requested.
const DefaultPageSize = 10

// Query is the page position and filter predicates of a list view.
type Query struct {
	Page     int
	PageSize int
	Search   string
	Tag      string
	AuthorID string
}

// NewQuery returns page 1 with no filters.
func NewQuery(pageSize int) Query {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return Query{Page: 1, PageSize: pageSize}
}

// WithPage returns a copy positioned at page n, clamped to at least 1.
func (q Query) WithPage(n int) Query {
	if n < 1 {
		n = 1
	}
	q.Page = n
	return q
}

// Filter is a patch of filter fields. Nil fields are left unchanged.
type Filter struct {
	Search   *string
	Tag      *string
	AuthorID *string
}

// SearchFilter patches only the search text.
func SearchFilter(s string) Filter { return Filter{Search: &s} }

// TagFilter patches only the tag. An empty tag clears it.
func TagFilter(tag string) Filter { return Filter{Tag: &tag} }

// AuthorFilter patches only the author id.
func AuthorFilter(id string) Filter { return Filter{AuthorID: &id} }

// WithFilter merges f and resets the page to 1.
func (q Query) WithFilter(f Filter) Query {
	if f.Search != nil {
		q.Search = strings.TrimSpace(*f.Search)
	}
	if f.Tag != nil {
		q.Tag = strings.TrimSpace(*f.Tag)
	}
	if f.AuthorID != nil {
		q.AuthorID = strings.TrimSpace(*f.AuthorID)
	}
	q.Page = 1
	return q
}

// Clamp returns a copy with Page inside [1, totalPages].
// A totalPages below 1 means unknown and only the lower bound applies.
func (q Query) Clamp(totalPages int) Query {
	if totalPages >= 1 && q.Page > totalPages {
		q.Page = totalPages
	}
	if q.Page < 1 {
		q.Page = 1
	}
	return q
}

// HasFilters reports whether search text or a tag narrows the list.
func (q Query) HasFilters() bool {
	return q.Search != "" || q.Tag != ""
}
