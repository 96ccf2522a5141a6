package view

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/s0up4200/marquee/catalog"
	"github.com/s0up4200/marquee/fetch"
	"github.com/s0up4200/marquee/tmdb"
)

// DiscoverView is a snapshot of the discover screen
type DiscoverView struct {
	State        ListState
	Page         int
	TotalPages   int
	SortKey      tmdb.SortKey
	IncludeAdult bool
	Results      *catalog.Page
	Err          string
	CanPrev      bool
	CanNext      bool
}

// Discover coordinates the paginated discover listing
type Discover struct {
	ctrl   *fetch.Controller[tmdb.DiscoverQuery, *catalog.Page]
	logger zerolog.Logger

	dispatchMu sync.Mutex

	mu           sync.Mutex
	page         int
	sortKey      tmdb.SortKey
	includeAdult bool
}

// NewDiscover creates a discover coordinator. initial seeds the query
// fields; an empty sort key falls back to tmdb.DefaultSortKey.
func NewDiscover(api tmdb.API, initial tmdb.DiscoverQuery, logger zerolog.Logger) *Discover {
	logger = logger.With().Str("view", "discover").Logger()

	if initial.SortBy == "" {
		initial.SortBy = tmdb.DefaultSortKey
	}

	return &Discover{
		ctrl: fetch.New("discover", followLastPage(api, logger),
			fetch.WithLogger(logger),
			fetch.WithErrorMessage(errorMessage),
		),
		logger:       logger,
		page:         min(max(initial.Page, 1), tmdb.MaxPage),
		sortKey:      initial.SortBy,
		includeAdult: initial.IncludeAdult,
	}
}

// followLastPage fetches the last page instead when a response reports fewer
// pages than were asked for, so the applied result always belongs to a page
// inside the reported range. Both fetches share one sequence number.
func followLastPage(api tmdb.API, logger zerolog.Logger) fetch.Func[tmdb.DiscoverQuery, *catalog.Page] {
	return func(ctx context.Context, q tmdb.DiscoverQuery) (*catalog.Page, error) {
		page, err := api.DiscoverMovies(ctx, q)
		if err != nil || page == nil {
			return page, err
		}

		last := min(max(page.TotalPages, 1), tmdb.MaxPage)
		if q.Page <= last {
			return page, nil
		}

		logger.Debug().Int("page", q.Page).Int("total_pages", last).Msg("Page beyond total, loading last page")
		q.Page = last
		return api.DiscoverMovies(ctx, q)
	}
}

// totalPages reports the page count of the latest applied success. known is
// false before any success, in which case total is 1.
func (d *Discover) totalPages() (total int, known bool) {
	page, ok := d.ctrl.LastSuccess()
	if !ok || page == nil {
		return 1, false
	}
	return min(max(page.TotalPages, 1), tmdb.MaxPage), true
}

// clampedLocked returns page limited to the known range. Must hold mu.
func (d *Discover) clampedLocked() int {
	upper, known := d.totalPages()
	if !known {
		upper = tmdb.MaxPage
	}
	return min(max(d.page, 1), upper)
}

// clampLocked moves page inside the known range before an action. Must
// hold mu.
func (d *Discover) clampLocked() {
	d.page = d.clampedLocked()
}

func (d *Discover) queryLocked() tmdb.DiscoverQuery {
	return tmdb.DiscoverQuery{
		Page:         d.page,
		SortBy:       d.sortKey,
		IncludeAdult: d.includeAdult,
	}
}

// Load fetches the current page with the current filters
func (d *Discover) Load(ctx context.Context) *fetch.Ticket {
	d.dispatchMu.Lock()
	defer d.dispatchMu.Unlock()

	d.mu.Lock()
	d.clampLocked()
	q := d.queryLocked()
	d.mu.Unlock()

	return d.ctrl.Dispatch(ctx, q)
}

// Next moves one page forward. It returns false without dispatching on the
// last page.
func (d *Discover) Next(ctx context.Context) (*fetch.Ticket, bool) {
	d.dispatchMu.Lock()
	defer d.dispatchMu.Unlock()

	d.mu.Lock()
	total, _ := d.totalPages()
	d.clampLocked()
	if d.page >= total {
		d.mu.Unlock()
		return nil, false
	}
	d.page++
	q := d.queryLocked()
	d.mu.Unlock()

	return d.ctrl.Dispatch(ctx, q), true
}

// Prev moves one page back. It returns false without dispatching on page 1.
func (d *Discover) Prev(ctx context.Context) (*fetch.Ticket, bool) {
	d.dispatchMu.Lock()
	defer d.dispatchMu.Unlock()

	d.mu.Lock()
	d.clampLocked()
	if d.page <= 1 {
		d.mu.Unlock()
		return nil, false
	}
	d.page--
	q := d.queryLocked()
	d.mu.Unlock()

	return d.ctrl.Dispatch(ctx, q), true
}

// GoTo jumps to page n, clamped to the known range, and dispatches
func (d *Discover) GoTo(ctx context.Context, n int) *fetch.Ticket {
	d.dispatchMu.Lock()
	defer d.dispatchMu.Unlock()

	d.mu.Lock()
	d.page = n
	d.clampLocked()
	q := d.queryLocked()
	d.mu.Unlock()

	return d.ctrl.Dispatch(ctx, q)
}

// SetSort changes the ordering and returns to page 1. An unsupported key is
// rejected with ErrValidationRejected; an unchanged key returns a nil ticket.
func (d *Discover) SetSort(ctx context.Context, key tmdb.SortKey) (*fetch.Ticket, error) {
	if err := validateSortKey(key); err != nil {
		return nil, err
	}

	d.dispatchMu.Lock()
	defer d.dispatchMu.Unlock()

	d.mu.Lock()
	if d.sortKey == key {
		d.mu.Unlock()
		return nil, nil
	}
	d.sortKey = key
	d.page = 1
	q := d.queryLocked()
	d.mu.Unlock()

	d.logger.Debug().Str("sort_by", string(key)).Msg("Sort changed")
	return d.ctrl.Dispatch(ctx, q), nil
}

// SetIncludeAdult changes the adult content filter and returns to page 1.
// An unchanged value returns nil.
func (d *Discover) SetIncludeAdult(ctx context.Context, include bool) *fetch.Ticket {
	d.dispatchMu.Lock()
	defer d.dispatchMu.Unlock()

	return d.setIncludeAdult(ctx, func(bool) bool { return include })
}

// ToggleAdult flips the adult content filter and returns to page 1
func (d *Discover) ToggleAdult(ctx context.Context) *fetch.Ticket {
	d.dispatchMu.Lock()
	defer d.dispatchMu.Unlock()

	return d.setIncludeAdult(ctx, func(current bool) bool { return !current })
}

// setIncludeAdult must be called with dispatchMu held
func (d *Discover) setIncludeAdult(ctx context.Context, next func(current bool) bool) *fetch.Ticket {
	d.mu.Lock()
	include := next(d.includeAdult)
	if d.includeAdult == include {
		d.mu.Unlock()
		return nil
	}
	d.includeAdult = include
	d.page = 1
	q := d.queryLocked()
	d.mu.Unlock()

	d.logger.Debug().Bool("include_adult", include).Msg("Adult filter changed")
	return d.ctrl.Dispatch(ctx, q)
}

// View returns the current screen state
func (d *Discover) View() DiscoverView {
	d.mu.Lock()
	total, _ := d.totalPages()
	v := DiscoverView{
		Page:         d.clampedLocked(),
		TotalPages:   total,
		SortKey:      d.sortKey,
		IncludeAdult: d.includeAdult,
	}
	d.mu.Unlock()

	result := d.ctrl.State()
	v.State = listStateOf(result)
	v.Results, _ = result.Data()
	v.Err = result.Err()
	v.CanPrev = v.Page > 1
	v.CanNext = v.Page < v.TotalPages

	return v
}

// Subscribe calls fn with a fresh snapshot after every state change
func (d *Discover) Subscribe(fn func(DiscoverView)) (unsubscribe func()) {
	return d.ctrl.Subscribe(func(fetch.Result[*catalog.Page]) {
		fn(d.View())
	})
}

// Wait blocks until every outstanding request has resolved
func (d *Discover) Wait() {
	d.ctrl.Drain()
}
