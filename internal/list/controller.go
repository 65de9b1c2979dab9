// Package list holds the list controller: paged loading, sorting, searching,
// pagination and selection state for a collection of items, independent of rendering.
//
// A Controller has a single owner and is not safe for concurrent use. Only
// LoadRequest.Fetch may run elsewhere.
package list

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
)

// DefaultPageSize is used when Config.PageSize is not positive.
const DefaultPageSize = 20

// Config configures a Controller.
type Config struct {
	// Data is a static collection. When non-nil no fetching happens.
	Data    []Item
	Fetcher Fetcher

	PageSize          int
	SearchAtServer    bool
	SearchPlaceholder string
	SearchType        MatchKind
	SingleSelect      bool
	SortDirection     Direction
	SortOn            string

	Logger *zerolog.Logger
}

// Controller is the list state machine.
type Controller struct {
	fetcher      Fetcher
	static       bool
	pageSize     int
	strategy     SearchStrategy
	placeholder  string
	singleSelect bool
	sort         SortSpec
	log          zerolog.Logger

	canonical []Item
	index     map[string]int
	displayed []string

	page     int
	query    string
	filter   string
	loading  bool
	lastPage bool
	failed   bool

	generation uint64
	cancel     context.CancelFunc
	observer   *Observer
	closed     bool
}

// New builds a controller. Static data is sorted and shown immediately.
func New(cfg Config) *Controller {
	c := &Controller{
		fetcher:      cfg.Fetcher,
		static:       cfg.Data != nil,
		pageSize:     cfg.PageSize,
		placeholder:  cfg.SearchPlaceholder,
		singleSelect: cfg.SingleSelect,
		sort:         SortSpec{On: cfg.SortOn, Direction: cfg.SortDirection},
		log:          zerolog.Nop(),
		page:         1,
	}
	if cfg.Logger != nil {
		c.log = cfg.Logger.With().Str("component", "list").Logger()
	}
	if c.pageSize <= 0 {
		c.pageSize = DefaultPageSize
	}
	if cfg.SearchAtServer && cfg.Fetcher != nil && !c.static {
		c.strategy = ServerSearch{}
	} else {
		c.strategy = ClientSearch{Match: cfg.SearchType}
	}

	if c.static {
		c.setCanonical(Sort(c.ingest(nil, cfg.Data), c.sort))
		c.displayed = c.allKeys()
	}
	return c
}

// --- Data Loader ---

// NeedsLoad reports whether the controller gets its items from a fetcher.
func (c *Controller) NeedsLoad() bool {
	return !c.closed && !c.static && c.fetcher != nil
}

// BeginLoad issues a load for the current page and query, cancelling any load still in
// flight. It returns false when there is nothing to fetch from.
func (c *Controller) BeginLoad(parent context.Context) (LoadRequest, bool) {
	if !c.NeedsLoad() {
		return LoadRequest{}, false
	}
	if parent == nil {
		parent = context.Background()
	}
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	c.cancel = cancel
	c.generation++
	c.loading = true
	c.failed = false

	req := LoadRequest{
		Page:       c.page,
		PageSize:   c.pageSize,
		Query:      c.query,
		generation: c.generation,
		ctx:        ctx,
		fetcher:    c.fetcher,
	}
	c.log.Debug().Int("page", req.Page).Str("query", req.Query).Uint64("gen", req.generation).Msg("load issued")
	return req, true
}

// Apply hands a settled load back to the controller. Results for superseded requests
// are dropped and reported as not applied. A failed load empties both collections and
// returns the wrapped fetch error.
func (c *Controller) Apply(req LoadRequest, batch []Item, fetchErr error) (bool, error) {
	if !c.current(req) {
		c.log.Debug().Int("page", req.Page).Str("query", req.Query).Msg("stale load discarded")
		return false, nil
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.loading = false

	if fetchErr != nil {
		c.failed = true
		c.canonical = nil
		c.index = nil
		c.displayed = nil
		c.log.Warn().Err(fetchErr).Int("page", req.Page).Msg("load failed")
		return false, fmt.Errorf("load page %d: %w", req.Page, fetchErr)
	}

	c.lastPage = len(batch) < req.PageSize

	if req.Page <= 1 {
		c.setCanonical(Sort(c.ingest(nil, batch), c.sort))
		c.displayed = c.allKeys()
	} else {
		prevShown := c.project(c.displayed)
		merged := Sort(c.ingest(c.canonical, batch), c.sort)
		c.setCanonical(merged)

		shown := make(map[string]bool, len(prevShown))
		for i, it := range prevShown {
			// refresh values replaced by the batch
			if j, ok := c.index[it.Key]; ok {
				prevShown[i] = c.canonical[j]
			}
			shown[it.Key] = true
		}
		for _, it := range batch {
			if shown[it.Key] {
				continue
			}
			if j, ok := c.index[it.Key]; ok {
				prevShown = append(prevShown, c.canonical[j])
				shown[it.Key] = true
			}
		}
		c.displayed = keysOf(Sort(prevShown, c.sort))
	}

	c.log.Debug().
		Int("page", req.Page).
		Int("batch", len(batch)).
		Int("total", len(c.canonical)).
		Bool("last_page", c.lastPage).
		Msg("load applied")
	return true, nil
}

// Load runs one full load cycle on the calling goroutine.
func (c *Controller) Load(ctx context.Context) error {
	req, ok := c.BeginLoad(ctx)
	if !ok {
		return nil
	}
	batch, err := req.Fetch()
	_, err = c.Apply(req, batch, err)
	return err
}

// Reset rewinds pagination to page 1 and clears the end-of-data and failure flags,
// keeping the query.
// It reports whether a load must be issued.
func (c *Controller) Reset() bool {
	if !c.NeedsLoad() {
		return false
	}
	c.page = 1
	c.lastPage = false
	c.failed = false
	c.log.Debug().Str("query", c.query).Msg("pagination reset")
	return true
}

func (c *Controller) current(req LoadRequest) bool {
	return !c.closed &&
		req.generation != 0 &&
		req.generation == c.generation &&
		req.Page == c.page &&
		req.Query == c.query
}

// ingest appends copies of incoming onto base. An incoming item whose key is already
// present replaces that record in place and keeps its selection flag.
func (c *Controller) ingest(base, incoming []Item) []Item {
	out := slices.Clone(base)
	pos := make(map[string]int, len(base)+len(incoming))
	for i, it := range out {
		pos[it.Key] = i
	}
	for _, it := range incoming {
		if it.Key == "" {
			c.log.Warn().Str("caption", it.Caption).Msg("item without key dropped")
			continue
		}
		it = it.clone()
		if i, ok := pos[it.Key]; ok {
			if i < len(base) {
				it.Selected = out[i].Selected
			}
			out[i] = it
			continue
		}
		pos[it.Key] = len(out)
		out = append(out, it)
	}
	if c.singleSelect {
		seen := false
		for i := range out {
			if !out[i].Selected {
				continue
			}
			if seen {
				out[i].Selected = false
			}
			seen = true
		}
	}
	return out
}

func (c *Controller) setCanonical(items []Item) {
	c.canonical = items
	c.index = make(map[string]int, len(items))
	for i, it := range items {
		c.index[it.Key] = i
	}
}

func (c *Controller) allKeys() []string {
	return keysOf(c.canonical)
}

func (c *Controller) project(keys []string) []Item {
	out := make([]Item, 0, len(keys))
	for _, k := range keys {
		if i, ok := c.index[k]; ok {
			out = append(out, c.canonical[i])
		}
	}
	return out
}

func keysOf(items []Item) []string {
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = it.Key
	}
	return keys
}

// --- Search Filter ---

// Search feeds one search input event. activation is the key that triggered it
// (ActivationKey to commit) and value the full input text. It reports whether a load
// from page 1 must be issued.
func (c *Controller) Search(activation, value string) bool {
	if c.closed {
		return false
	}
	return c.strategy.search(c, activation, value)
}

// --- Selection Synchronizer ---

// ToggleSelection flips the selection of the item with key. With single select every
// other item is cleared. The displayed subset keeps its membership.
func (c *Controller) ToggleSelection(key string) {
	target, ok := c.index[key]
	if !ok || c.closed {
		return
	}

	next := make([]Item, len(c.canonical))
	for i, it := range c.canonical {
		switch {
		case i == target:
			it.Selected = !it.Selected
		case c.singleSelect && it.Selected:
			it.Selected = false
		}
		next[i] = it
	}
	c.canonical = next

	shown := make(map[string]bool, len(c.displayed))
	for _, k := range c.displayed {
		shown[k] = true
	}
	displayed := make([]string, 0, len(c.displayed))
	for _, it := range c.canonical {
		if shown[it.Key] {
			displayed = append(displayed, it.Key)
		}
	}
	c.displayed = displayed
	c.log.Debug().Str("key", key).Bool("selected", next[target].Selected).Msg("selection toggled")
}

// --- Accessors ---

// Items returns a copy of the canonical collection.
func (c *Controller) Items() []Item { return cloneItems(c.canonical) }

// Displayed returns a copy of the displayed collection.
func (c *Controller) Displayed() []Item { return cloneItems(c.project(c.displayed)) }

// Selected returns the selected items in canonical order.
func (c *Controller) Selected() []Item {
	var out []Item
	for _, it := range c.canonical {
		if it.Selected {
			out = append(out, it.clone())
		}
	}
	return out
}

// SelectedKeys returns the keys of the selected items in canonical order.
func (c *Controller) SelectedKeys() []string {
	var keys []string
	for _, it := range c.canonical {
		if it.Selected {
			keys = append(keys, it.Key)
		}
	}
	return keys
}

func (c *Controller) Page() int { return c.page }
func (c *Controller) PageSize() int { return c.pageSize }
func (c *Controller) Query() string { return c.query }
func (c *Controller) Filter() string { return c.filter }
func (c *Controller) Loading() bool { return c.loading }
func (c *Controller) LastPage() bool { return c.lastPage }

// Failed reports whether the last load failed. Scrolling stays inert until a new load
// is issued through Reset or a search.
func (c *Controller) Failed() bool { return c.failed }
func (c *Controller) Static() bool { return c.static }
func (c *Controller) Placeholder() string { return c.placeholder }
func (c *Controller) SortSpec() SortSpec { return c.sort }
func (c *Controller) Strategy() SearchStrategy { return c.strategy }

// Close cancels any load in flight and releases the scroll observer. The controller
// ignores further input afterwards.
func (c *Controller) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.observer.Release()
	c.observer = nil
	c.loading = false
	return nil
}
