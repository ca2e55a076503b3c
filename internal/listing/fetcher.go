// ABOUTME: Stateless single-shot page fetcher over a pluggable data source.
// ABOUTME: Normalises pages so totalPages >= 1 and items never exceed the page size.
package listing

import (
	"context"
	"errors"
)

// ErrInvalidPage is returned when a fetch is attempted below page 1.
var ErrInvalidPage = errors.New("page must be at least 1")

// Page is one page of items as reported by a data source.
type Page[T any] struct {
	Items      []T
	Page       int
	TotalPages int
}

// Source lists one page of items for a query. Implementations pass
// page, limit=PageSize, and the non-empty filters through to the backend.
type Source[T any] interface {
	List(ctx context.Context, q Query) (Page[T], error)
}

// SourceFunc adapts a function to a Source.
type SourceFunc[T any] func(ctx context.Context, q Query) (Page[T], error)

// List implements Source.
func (f SourceFunc[T]) List(ctx context.Context, q Query) (Page[T], error) {
	return f(ctx, q)
}

// Fetcher performs exactly one source call per Fetch and owns no state,
// so it may be called from any goroutine.
type Fetcher[T any] struct {
	source Source[T]
}

// NewFetcher wraps a source.
func NewFetcher[T any](source Source[T]) Fetcher[T] {
	return Fetcher[T]{source: source}
}

// Fetch lists the page described by q.
func (f Fetcher[T]) Fetch(ctx context.Context, q Query) (Page[T], error) {
	if q.Page < 1 {
		return Page[T]{}, ErrInvalidPage
	}
	p, err := f.source.List(ctx, q)
	if err != nil {
		return Page[T]{}, err
	}
	return normalize(p, q), nil
}

func normalize[T any](p Page[T], q Query) Page[T] {
	if p.TotalPages < 1 {
		p.TotalPages = 1
	}
	if p.Page < 1 {
		p.Page = q.Page
	}
	if q.PageSize > 0 && len(p.Items) > q.PageSize {
		p.Items = p.Items[:q.PageSize]
	}
	if p.Items == nil {
		p.Items = []T{}
	}
	return p
}
