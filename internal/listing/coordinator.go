// Package listing implements the coordination layer behind every
// paginated admin list: it owns the page, search and filter state for
// one view, debounces keystrokes, keeps the page number in sync with a
// location, and turns API responses into renderable snapshots. The
// actual fetching, caching and request dedup belong to the resource
// repositories it is given.
package listing

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/openfun/joanie-sub003/internal/pkg/apperror"
	"github.com/openfun/joanie-sub003/internal/pkg/queryfilter"
	"github.com/openfun/joanie-sub003/internal/pkg/response"
	"github.com/openfun/joanie-sub003/internal/resource"
)

// DefaultPageSize is used when the caller does not pick a page size.
const DefaultPageSize = 20

// DefaultDebounce is the quiet period applied to search input.
const DefaultDebounce = 300 * time.Millisecond

// Source produces one page of rows. *resource.Repository and the
// entity repositories satisfy it.
type Source[T any] interface {
	List(ctx context.Context, params resource.ListParams) (*response.Paginated[T], error)
}

// Chip is a removable token representing one active filter constraint.
// Delete clears the underlying field and refetches.
type Chip struct {
	Name   string
	Label  string
	Value  string
	Delete func()
}

// Snapshot is the state of the list view at one point in time, ready
// to hand to a table and its filter bar.
type Snapshot[T any] struct {
	Rows     []T
	RowCount int
	Loading  bool
	Page     int
	PageSize int
	Search   string
	Chips    []Chip
	Err      error
}

// Options configures a Coordinator. The zero value is usable: page 0,
// the default page size and debounce, no location sync.
type Options struct {
	// InitialPage is the zero-based page shown first. A "page" query
	// parameter on Location (one-based) takes precedence.
	InitialPage int
	// PageSize defaults to DefaultPageSize.
	PageSize int
	// DefaultFilters seeds the active filters. Location query
	// parameters are merged on top, then the union is sanitized.
	DefaultFilters *queryfilter.Query
	// Debounce is the search quiet period, DefaultDebounce when zero.
	Debounce time.Duration
	// Location enables page/URL synchronization when non-nil.
	Location Location
	// Language pins the response language for every fetch issued by
	// this view. Empty means the client default.
	Language string
	// ChipLabel resolves the display label of a filter field. The
	// field name itself is used when nil.
	ChipLabel func(field string) string
	// OnUpdate is invoked after every state change, including the
	// loading flips around a fetch. Callers pull the new Snapshot.
	OnUpdate func()
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
	// Context bounds the lifetime of every fetch. Defaults to
	// context.Background; Close cancels the derived context.
	Context context.Context
}

// Coordinator owns the pagination, search and filter state of one
// mounted list view. It is safe for concurrent use; fetches run in
// their own goroutines and only the most recent one may commit.
type Coordinator[T any] struct {
	source   Source[T]
	debounce *Debouncer
	location Location
	language string
	label    func(field string) string
	onUpdate func()
	logger   *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu         sync.Mutex
	page       int
	pageSize   int
	search     string
	filters    *queryfilter.Query
	loading    bool
	rows       []T
	rowCount   int
	err        error
	generation uint64
	closed     bool
}

// New builds a coordinator and issues the initial fetch, mirroring a
// view mounting. Call Close when the view goes away.
func New[T any](source Source[T], opts Options) *Coordinator[T] {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.ChipLabel == nil {
		opts.ChipLabel = func(field string) string { return field }
	}
	if opts.OnUpdate == nil {
		opts.OnUpdate = func() {}
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	ctx, cancel := context.WithCancel(opts.Context)

	c := &Coordinator[T]{
		source:   source,
		debounce: NewDebouncer(opts.Debounce),
		location: opts.Location,
		language: opts.Language,
		label:    opts.ChipLabel,
		onUpdate: opts.OnUpdate,
		logger:   opts.Logger.Named("listing"),
		ctx:      ctx,
		cancel:   cancel,
		page:     initialPage(opts),
		pageSize: opts.PageSize,
		filters:  initialFilters(opts),
		rows:     []T{},
	}
	c.refetch()
	return c
}

// initialPage resolves the starting page: the location's one-based
// "page" parameter wins, then the caller's initial page, then zero.
func initialPage(opts Options) int {
	if opts.Location != nil {
		if raw := opts.Location.Query().Get("page"); raw != "" {
			if page, err := strconv.Atoi(raw); err == nil && page >= 1 {
				return page - 1
			}
		}
	}
	if opts.InitialPage > 0 {
		return opts.InitialPage
	}
	return 0
}

// initialFilters merges the location parameters over the caller's
// defaults and sanitizes the union, so reserved keys such as "page"
// never become content filters.
func initialFilters(opts Options) *queryfilter.Query {
	filters := queryfilter.New().Merge(opts.DefaultFilters)
	if opts.Location != nil {
		filters.Merge(queryFromValues(opts.Location.Query()))
	}
	return queryfilter.Sanitize(filters)
}

// SearchChanged records a keystroke in the search box. The commit is
// debounced so rapid typing collapses into a single fetch for the
// final text; committing resets the page to zero.
func (c *Coordinator[T]) SearchChanged(text string) {
	c.debounce.Debounce(func() { c.commitSearch(text) })
}

// SearchSubmitted commits the search text right away, dropping any
// pending debounced keystroke. Explicit submission (the enter key on a
// search box) uses it so the user does not wait out the quiet period.
func (c *Coordinator[T]) SearchSubmitted(text string) {
	c.debounce.Immediate(func() { c.commitSearch(text) })
}

func (c *Coordinator[T]) commitSearch(text string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.search = text
	c.setPageLocked(0)
	c.mu.Unlock()
	c.refetch()
}

// FilterChanged merges a partial filter update into the active set,
// sanitizes the result and resets the page to zero. Setting a field to
// an unset value (nil, "", a sentinel) removes it.
func (c *Coordinator[T]) FilterChanged(partial *queryfilter.Query) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.filters = queryfilter.Sanitize(c.filters.Clone().Merge(partial))
	c.setPageLocked(0)
	c.mu.Unlock()
	c.refetch()
}

// ClearFilters drops every active filter and refetches.
func (c *Coordinator[T]) ClearFilters() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.filters = queryfilter.New()
	c.setPageLocked(0)
	c.mu.Unlock()
	c.refetch()
}

// PageChanged moves to another page or page size. Filters and search
// are left untouched.
func (c *Coordinator[T]) PageChanged(page, pageSize int) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if page < 0 {
		page = 0
	}
	if pageSize > 0 {
		c.pageSize = pageSize
	}
	c.setPageLocked(page)
	c.mu.Unlock()
	c.refetch()
}

// Refresh refetches the current page without touching any state.
func (c *Coordinator[T]) Refresh() {
	c.refetch()
}

// setPageLocked records the new page and pushes it to the location as
// a one-based "page" parameter, keeping unrelated parameters intact.
// Callers hold c.mu.
func (c *Coordinator[T]) setPageLocked(page int) {
	c.page = page
	if c.location == nil {
		return
	}
	values := c.location.Query()
	values.Set("page", strconv.Itoa(page+1))
	c.location.SetQuery(values)
}

// refetch starts a fetch for the current state. The state change that
// triggered it is already visible when the request leaves; a stale
// response from a superseded request never commits.
func (c *Coordinator[T]) refetch() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.generation++
	generation := c.generation
	params := resource.ListParams{
		Page:     c.page,
		PageSize: c.pageSize,
		Search:   c.search,
		Query:    c.filters.Clone(),
		Language: c.language,
	}
	c.loading = true
	c.mu.Unlock()

	c.onUpdate()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		page, err := c.source.List(c.ctx, params)
		c.commit(generation, page, err)
	}()
}

// commit lands a fetch result. A response whose generation has been
// superseded is dropped. A validation failure while filters are active
// means the server rejected the filter combination: the filters are
// cleared and the view recovers with an unfiltered fetch. Transport
// and server errors keep the user's filters.
func (c *Coordinator[T]) commit(generation uint64, page *response.Paginated[T], err error) {
	c.mu.Lock()
	if c.closed || generation != c.generation {
		c.mu.Unlock()
		return
	}

	c.loading = false
	if err != nil {
		c.err = err
		clearFilters := apperror.IsValidation(err) && len(queryfilter.Available(c.filters)) > 0
		if clearFilters {
			c.filters = queryfilter.New()
			c.setPageLocked(0)
		}
		c.mu.Unlock()

		c.logger.Warn("list fetch failed", zap.Bool("filtersCleared", clearFilters), zap.Error(err))
		c.onUpdate()
		if clearFilters {
			c.refetch()
		}
		return
	}

	c.err = nil
	c.rows = page.Results
	c.rowCount = page.Count
	c.mu.Unlock()

	c.onUpdate()
}

// Snapshot returns a copy of the current view state.
func (c *Coordinator[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows := make([]T, len(c.rows))
	copy(rows, c.rows)

	return Snapshot[T]{
		Rows:     rows,
		RowCount: c.rowCount,
		Loading:  c.loading,
		Page:     c.page,
		PageSize: c.pageSize,
		Search:   c.search,
		Chips:    c.chipsLocked(),
		Err:      c.err,
	}
}

// Filters returns a copy of the active filter set.
func (c *Coordinator[T]) Filters() *queryfilter.Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters.Clone()
}

// chipsLocked derives the filter chips from the active filters, in
// field insertion order. Callers hold c.mu.
func (c *Coordinator[T]) chipsLocked() []Chip {
	names := queryfilter.Available(c.filters)
	chips := make([]Chip, 0, len(names))
	for _, name := range names {
		value, _ := c.filters.Get(name)
		chips = append(chips, Chip{
			Name:   name,
			Label:  c.label(name),
			Value:  queryfilter.DisplayValue(value),
			Delete: func() { c.FilterChanged(queryfilter.New().Set(name, nil)) },
		})
	}
	return chips
}

// Close cancels pending debounced searches and in-flight fetches and
// waits for the fetch goroutines to finish. The coordinator ignores
// events after Close.
func (c *Coordinator[T]) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.debounce.Cancel()
	c.cancel()
	c.wg.Wait()
}
