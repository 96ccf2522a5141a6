package view

import (
	"context"
	"strings"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog"

	"github.com/s0up4200/marquee/catalog"
	"github.com/s0up4200/marquee/fetch"
	"github.com/s0up4200/marquee/tmdb"
)

// SearchView is a snapshot of the search screen
type SearchView struct {
	State ListState
	// Query is the last accepted query text
	Query   string
	Results *catalog.Page
	Err     string
}

// Search coordinates the title search screen. Searches always ask for the
// first page and exclude adult titles.
type Search struct {
	ctrl   *fetch.Controller[tmdb.SearchQuery, *catalog.Page]
	logger zerolog.Logger

	dispatchMu sync.Mutex

	mu    sync.Mutex
	query string
}

// NewSearch creates a search coordinator backed by api
func NewSearch(api tmdb.API, logger zerolog.Logger) *Search {
	logger = logger.With().Str("view", "search").Logger()
	return &Search{
		ctrl: fetch.New("search", api.SearchMovies,
			fetch.WithLogger(logger),
			fetch.WithErrorMessage(errorMessage),
		),
		logger: logger,
	}
}

// Submit searches for text. Blank text is rejected with
// ErrValidationRejected and nothing else happens.
func (s *Search) Submit(ctx context.Context, text string) (*fetch.Ticket, error) {
	query := strings.TrimSpace(text)
	if err := validation.Validate(query, validation.Required); err != nil {
		s.logger.Debug().Str("input", text).Msg("Ignoring blank search")
		return nil, reject("query", err)
	}

	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	s.query = query
	s.mu.Unlock()

	return s.ctrl.Dispatch(ctx, tmdb.SearchQuery{
		Query:        query,
		Page:         1,
		IncludeAdult: false,
	}), nil
}

// Retry repeats the last accepted search
func (s *Search) Retry(ctx context.Context) (*fetch.Ticket, error) {
	s.mu.Lock()
	query := s.query
	s.mu.Unlock()

	if query == "" {
		return nil, ErrNothingToRetry
	}
	return s.Submit(ctx, query)
}

// View returns the current screen state
func (s *Search) View() SearchView {
	s.mu.Lock()
	query := s.query
	s.mu.Unlock()

	result := s.ctrl.State()
	page, _ := result.Data()

	return SearchView{
		State:   listStateOf(result),
		Query:   query,
		Results: page,
		Err:     result.Err(),
	}
}

// Subscribe calls fn with a fresh snapshot after every state change
func (s *Search) Subscribe(fn func(SearchView)) (unsubscribe func()) {
	return s.ctrl.Subscribe(func(fetch.Result[*catalog.Page]) {
		fn(s.View())
	})
}

// Wait blocks until every outstanding search has resolved
func (s *Search) Wait() {
	s.ctrl.Drain()
}
