package view

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/s0up4200/marquee/catalog"
	"github.com/s0up4200/marquee/fetch"
	"github.com/s0up4200/marquee/tmdb"
)

// DetailView is a snapshot of the detail screen
type DetailView struct {
	State   DetailState
	RouteID string
	Movie   *catalog.MovieDetail
	// Err describes why the movie could not be shown
	Err string
}

// ParseRouteID maps a route parameter to a movie id. Only positive base 10
// integers without sign or whitespace are accepted.
func ParseRouteID(routeID string) (int64, bool) {
	if routeID == "" {
		return 0, false
	}
	for _, r := range routeID {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	id, err := strconv.ParseInt(routeID, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Detail coordinates the single movie screen for one route id
type Detail struct {
	ctrl    *fetch.Controller[int64, *catalog.MovieDetail]
	logger  zerolog.Logger
	routeID string
	id      int64
	valid   bool

	dispatchMu sync.Mutex

	mu      sync.Mutex
	mounted bool
}

// NewDetail creates a detail coordinator for routeID
func NewDetail(api tmdb.API, routeID string, logger zerolog.Logger) *Detail {
	logger = logger.With().Str("view", "detail").Str("route_id", routeID).Logger()
	id, valid := ParseRouteID(routeID)

	return &Detail{
		ctrl: fetch.New("detail", api.GetMovie,
			fetch.WithLogger(logger),
			fetch.WithErrorMessage(detailErrorMessage),
		),
		logger:  logger,
		routeID: routeID,
		id:      id,
		valid:   valid,
	}
}

func detailErrorMessage(err error) string {
	if errors.Is(err, tmdb.ErrNotFound) {
		return "movie not found"
	}
	return errorMessage(err)
}

// Mount loads the movie the first time it is called. It returns nil when
// nothing was dispatched: on later calls and for an invalid route id, which
// goes straight to not found.
func (d *Detail) Mount(ctx context.Context) *fetch.Ticket {
	d.dispatchMu.Lock()
	defer d.dispatchMu.Unlock()

	d.mu.Lock()
	if d.mounted {
		d.mu.Unlock()
		return nil
	}
	d.mounted = true
	d.mu.Unlock()

	if !d.valid {
		d.logger.Debug().Msg("Invalid route id, not fetching")
		return nil
	}
	return d.ctrl.Dispatch(ctx, d.id)
}

// Retry fetches the movie again. It returns nil for an invalid route id.
func (d *Detail) Retry(ctx context.Context) *fetch.Ticket {
	d.dispatchMu.Lock()
	defer d.dispatchMu.Unlock()

	d.mu.Lock()
	d.mounted = true
	d.mu.Unlock()

	if !d.valid {
		return nil
	}
	return d.ctrl.Dispatch(ctx, d.id)
}

// ID returns the parsed movie id and whether the route id was valid
func (d *Detail) ID() (int64, bool) {
	return d.id, d.valid
}

// View returns the current screen state
func (d *Detail) View() DetailView {
	d.mu.Lock()
	mounted := d.mounted
	d.mu.Unlock()

	v := DetailView{RouteID: d.routeID}

	switch {
	case !mounted:
		v.State = DetailIdle
		return v
	case !d.valid:
		v.State = DetailNotFound
		v.Err = "invalid movie id"
		return v
	}

	result := d.ctrl.State()
	switch result.Status() {
	case fetch.StatusSuccess:
		v.State = DetailLoaded
		v.Movie, _ = result.Data()
	case fetch.StatusError:
		v.State = DetailNotFound
		v.Err = result.Err()
	default:
		v.State = DetailLoading
	}

	return v
}

// Subscribe calls fn with a fresh snapshot after every state change
func (d *Detail) Subscribe(fn func(DetailView)) (unsubscribe func()) {
	return d.ctrl.Subscribe(func(fetch.Result[*catalog.MovieDetail]) {
		fn(d.View())
	})
}

// Wait blocks until every outstanding request has resolved
func (d *Detail) Wait() {
	d.ctrl.Drain()
}
