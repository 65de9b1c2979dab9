package list

import (
	"context"
	"errors"
)

// ErrNoFetcher is returned by LoadRequest.Fetch when the request was never issued.
var ErrNoFetcher = errors.New("no fetcher configured")

// PageRequest is what a Fetcher receives.
type PageRequest struct {
	PageNumber int
	PageSize   int
	SearchText string
}

// Fetcher retrieves one page of items. Returning fewer than PageSize items marks the
// last page; an empty result is end of data, not an error.
type Fetcher interface {
	Fetch(ctx context.Context, req PageRequest) ([]Item, error)
}

// FetchFunc adapts a function to Fetcher.
type FetchFunc func(ctx context.Context, req PageRequest) ([]Item, error)

// Fetch calls f.
func (f FetchFunc) Fetch(ctx context.Context, req PageRequest) ([]Item, error) {
	return f(ctx, req)
}

// LoadRequest is one issued load, tagged with the state it was issued for.
// Fetch may run on any goroutine; the result must be handed back to Controller.Apply
// on the owning one.
type LoadRequest struct {
	Page     int
	PageSize int
	Query    string

	generation uint64
	ctx        context.Context
	fetcher    Fetcher
}

// Fetch performs the request. It returns the context error once a newer request has
// superseded this one.
func (r LoadRequest) Fetch() ([]Item, error) {
	if r.fetcher == nil || r.ctx == nil {
		return nil, ErrNoFetcher
	}
	if err := r.ctx.Err(); err != nil {
		return nil, err
	}
	return r.fetcher.Fetch(r.ctx, PageRequest{
		PageNumber: r.Page,
		PageSize:   r.PageSize,
		SearchText: r.Query,
	})
}
