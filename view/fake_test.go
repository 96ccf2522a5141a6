package view

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/s0up4200/marquee/catalog"
	"github.com/s0up4200/marquee/fetch"
	"github.com/s0up4200/marquee/tmdb"
)

type reply struct {
	page  *catalog.Page
	movie *catalog.MovieDetail
	err   error
}

// fakeAPI blocks every request until the test releases its key, so tests
// control the order in which replies arrive.
type fakeAPI struct {
	mu    sync.Mutex
	gates map[string]chan reply
	calls []string

	// autoDiscover answers discover requests immediately when set
	autoDiscover func(q tmdb.DiscoverQuery) *catalog.Page
}

var _ tmdb.API = (*fakeAPI)(nil)

func newFakeAPI() *fakeAPI {
	return &fakeAPI{gates: make(map[string]chan reply)}
}

func searchKey(query string) string {
	return "search:" + query
}

func discoverKey(page int, sort tmdb.SortKey, adult bool) string {
	return fmt.Sprintf("discover:%d:%s:%t", page, sort, adult)
}

func movieKey(id int64) string {
	return fmt.Sprintf("movie:%d", id)
}

func (f *fakeAPI) gate(key string) chan reply {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.gates[key]; !ok {
		f.gates[key] = make(chan reply, 4)
	}
	return f.gates[key]
}

func (f *fakeAPI) wait(ctx context.Context, key string) reply {
	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.mu.Unlock()

	select {
	case r := <-f.gate(key):
		return r
	case <-ctx.Done():
		return reply{err: ctx.Err()}
	}
}

func (f *fakeAPI) release(key string, r reply) {
	f.gate(key) <- r
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) SearchMovies(ctx context.Context, q tmdb.SearchQuery) (*catalog.Page, error) {
	if q.Page != 1 || q.IncludeAdult {
		return nil, fmt.Errorf("unexpected search parameters %+v", q)
	}
	r := f.wait(ctx, searchKey(q.Query))
	return r.page, r.err
}

func (f *fakeAPI) DiscoverMovies(ctx context.Context, q tmdb.DiscoverQuery) (*catalog.Page, error) {
	if f.autoDiscover != nil {
		f.mu.Lock()
		f.calls = append(f.calls, discoverKey(q.Page, q.SortBy, q.IncludeAdult))
		f.mu.Unlock()
		return f.autoDiscover(q), nil
	}
	r := f.wait(ctx, discoverKey(q.Page, q.SortBy, q.IncludeAdult))
	return r.page, r.err
}

func (f *fakeAPI) GetMovie(ctx context.Context, id int64) (*catalog.MovieDetail, error) {
	r := f.wait(ctx, movieKey(id))
	return r.movie, r.err
}

// awaitCalls waits until n requests reached the fake. Requests are recorded
// from the goroutine the controller starts, not from Dispatch itself.
func awaitCalls(t *testing.T, api *fakeAPI, n int) []string {
	t.Helper()
	require.Eventually(t, func() bool {
		return len(api.Calls()) >= n
	}, 2*time.Second, 5*time.Millisecond)
	return api.Calls()
}

func page(number, total int, ids ...int64) *catalog.Page {
	p := &catalog.Page{
		Number:       number,
		TotalPages:   total,
		Movies:       make([]catalog.MovieSummary, 0, len(ids)),
		TotalResults: len(ids),
	}
	for _, id := range ids {
		p.Movies = append(p.Movies, catalog.MovieSummary{
			ID:       id,
			Title:    fmt.Sprintf("Movie %d", id),
			GenreIDs: []int{},
		})
	}
	return p
}

func waitFor(t *testing.T, ticket *fetch.Ticket) {
	t.Helper()
	require.NotNil(t, ticket)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, ticket.Wait(ctx))
}
