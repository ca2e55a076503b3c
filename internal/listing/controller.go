// ABOUTME: List controller owning query state, the last applied page, and fetch tokens.
// ABOUTME: Only the result of the most recently issued fetch is ever applied.
package listing

import (
	"context"
	"slices"
)

// State is the lifecycle of a controller's current fetch.
type State int

const (
	Idle State = iota
	Loading
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Token identifies one issued fetch. Tokens increase strictly per controller.
type Token uint64

// Request is a fetch the caller must run, typically off the UI loop.
type Request struct {
	Token Token
	Query Query
}

// Result is the outcome of running a Request.
type Result[T any] struct {
	Token Token
	Query Query
	Page  Page[T]
	Err   error
}

// Controller drives one paginated list. It is not safe for concurrent
// mutation: call everything except Fetch from a single loop, such as a
// bubbletea Update.
type Controller[T any] struct {
	fetcher Fetcher[T]
	key     func(T) string

	query  Query
	page   Page[T]
	state  State
	err    error
	latest Token

	hasPage bool

	// set when a result reported fewer pages than the requested position
	clampPending bool
}

// NewController creates an idle controller for the initial query.
// key returns the identity used by RemoveItem.
func NewController[T any](source Source[T], key func(T) string, initial Query) *Controller[T] {
	if initial.PageSize < 1 {
		initial.PageSize = DefaultPageSize
	}
	initial = initial.WithPage(initial.Page)
	return &Controller[T]{
		fetcher: NewFetcher(source),
		key:     key,
		query:   initial,
		page:    Page[T]{Items: []T{}, Page: initial.Page, TotalPages: 1},
		state:   Idle,
	}
}

func (c *Controller[T]) issue(q Query) Request {
	c.query = q
	c.latest++
	c.state = Loading
	c.clampPending = false
	return Request{Token: c.latest, Query: q}
}

// Start issues the initial fetch.
func (c *Controller[T]) Start() Request {
	return c.issue(c.query)
}

// Reload re-issues the current query, superseding anything in flight.
func (c *Controller[T]) Reload() Request {
	return c.issue(c.query)
}

// SetPage moves to page n. It is a no-op returning false when n is
// outside [1, TotalPages].
func (c *Controller[T]) SetPage(n int) (Request, bool) {
	if n < 1 || n > c.TotalPages() {
		return Request{}, false
	}
	return c.issue(c.query.WithPage(n)), true
}

// SetFilter merges f into the query, returns to page 1, and issues one fetch.
func (c *Controller[T]) SetFilter(f Filter) Request {
	return c.issue(c.query.WithFilter(f))
}

// Fetch runs req against the source. It reads no mutable controller
// state, so it may run on another goroutine.
func (c *Controller[T]) Fetch(ctx context.Context, req Request) Result[T] {
	p, err := c.fetcher.Fetch(ctx, req.Query)
	return Result[T]{Token: req.Token, Query: req.Query, Page: p, Err: err}
}

// Apply installs res if it answers the latest issued request and reports
// whether it did. Stale results are dropped. A failure keeps the last
// good page on display.
func (c *Controller[T]) Apply(res Result[T]) bool {
	if res.Token != c.latest {
		return false
	}
	if res.Err != nil {
		c.state = Failed
		c.err = res.Err
		return true
	}

	c.state = Loaded
	c.err = nil
	c.page = res.Page
	c.hasPage = true

	q := c.query
	if res.Page.Page >= 1 && res.Page.Page <= res.Page.TotalPages {
		q.Page = res.Page.Page
	}
	c.clampPending = q.Page > res.Page.TotalPages
	c.query = q.Clamp(res.Page.TotalPages)
	return true
}

// Settle returns a follow-up request when the last applied page lay beyond
// the server's page count, so the clamped page can be loaded.
func (c *Controller[T]) Settle() (Request, bool) {
	if !c.clampPending {
		return Request{}, false
	}
	return c.issue(c.query), true
}

// Run fetches and applies req synchronously, following one clamp if needed.
func (c *Controller[T]) Run(ctx context.Context, req Request) bool {
	applied := c.Apply(c.Fetch(ctx, req))
	if next, ok := c.Settle(); ok {
		return c.Apply(c.Fetch(ctx, next))
	}
	return applied
}

// RemoveItem drops the item with the given key from the displayed page
// without refetching. TotalPages is left as is. Returns false when absent.
func (c *Controller[T]) RemoveItem(key string) bool {
	idx := slices.IndexFunc(c.page.Items, func(item T) bool { return c.key(item) == key })
	if idx < 0 {
		return false
	}
	items := make([]T, 0, len(c.page.Items)-1)
	items = append(items, c.page.Items[:idx]...)
	items = append(items, c.page.Items[idx+1:]...)
	c.page.Items = items
	return true
}

// PrependItem inserts item at the head of the displayed page without refetching.
func (c *Controller[T]) PrependItem(item T) {
	items := make([]T, 0, len(c.page.Items)+1)
	items = append(items, item)
	items = append(items, c.page.Items...)
	c.page.Items = items
}

// Query returns the current query.
func (c *Controller[T]) Query() Query { return c.query }

// Items returns the displayed items.
func (c *Controller[T]) Items() []T { return c.page.Items }

// Page returns the current page position.
func (c *Controller[T]) Page() int { return c.query.Page }

// TotalPages returns the page count from the last applied result, at least 1.
func (c *Controller[T]) TotalPages() int {
	if c.page.TotalPages < 1 {
		return 1
	}
	return c.page.TotalPages
}

// State returns the lifecycle state.
func (c *Controller[T]) State() State { return c.state }

// Err returns the failure of the latest fetch, or nil.
func (c *Controller[T]) Err() error {
	if c.state != Failed {
		return nil
	}
	return c.err
}

// Message returns a human readable failure, or "".
func (c *Controller[T]) Message() string {
	if err := c.Err(); err != nil {
		return err.Error()
	}
	return ""
}

// Latest returns the most recently issued token.
func (c *Controller[T]) Latest() Token { return c.latest }

// HasPage reports whether any result has been applied successfully, so the
// view can keep showing stale items while a new fetch is loading.
func (c *Controller[T]) HasPage() bool { return c.hasPage }
