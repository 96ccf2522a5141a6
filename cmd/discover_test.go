package cmd

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/marquee/tmdb"
	"github.com/s0up4200/marquee/view"
)

// discoverServer serves three discover pages with one movie each
type discoverServer struct {
	mu      sync.Mutex
	queries []string
}

func (s *discoverServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.queries = append(s.queries, r.URL.RawQuery)
	s.mu.Unlock()

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	fmt.Fprintf(w, `{"page":%d,"results":[{"id":%d,"title":"Movie %d","release_date":"%d-01-01","genre_ids":[27]}],"total_pages":3}`,
		page, page*100, page, 1990+page*10)
}

func (s *discoverServer) lastQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queries) == 0 {
		return ""
	}
	return s.queries[len(s.queries)-1]
}

func newTestPager(t *testing.T) (*pager, *discoverServer, *bytes.Buffer) {
	t.Helper()

	srv := &discoverServer{}
	server := httptest.NewServer(srv)
	t.Cleanup(server.Close)

	client, err := tmdb.NewClient(server.URL, "test-token", zerolog.Nop())
	require.NoError(t, err)

	out := &bytes.Buffer{}
	p := &pager{
		discover:  view.NewDiscover(client, tmdb.DiscoverQuery{Page: 1}, zerolog.Nop()),
		formatter: view.NewConsoleFormatter(view.FormatOptions{}),
		out:       out,
		logger:    zerolog.Nop(),
		open: func(ctx context.Context, routeID string) string {
			return "opened " + routeID
		},
	}
	return p, srv, out
}

func TestPagerOnce(t *testing.T) {
	p, _, out := newTestPager(t)

	require.NoError(t, p.once(context.Background()))
	assert.Contains(t, out.String(), "Movie 1 (2000) [100]")
	assert.Contains(t, out.String(), "Sorted by popularity | page 1 of 3 | adult off")
}

func TestPagerHandle(t *testing.T) {
	ctx := context.Background()

	t.Run("paging", func(t *testing.T) {
		p, srv, out := newTestPager(t)
		require.NoError(t, p.once(ctx))

		_, err := p.handle(ctx, "p")
		assert.EqualError(t, err, "already on the first page")

		out.Reset()
		quit, err := p.handle(ctx, "n")
		require.NoError(t, err)
		assert.False(t, quit)
		assert.Contains(t, out.String(), "page 2 of 3")
		assert.Contains(t, srv.lastQuery(), "page=2")

		out.Reset()
		_, err = p.handle(ctx, "g 9")
		require.NoError(t, err)
		assert.Contains(t, out.String(), "page 3 of 3")
		assert.Contains(t, out.String(), "Movie 3")

		_, err = p.handle(ctx, "n")
		assert.EqualError(t, err, "already on the last page")
	})

	t.Run("sort", func(t *testing.T) {
		p, srv, out := newTestPager(t)
		require.NoError(t, p.once(ctx))
		_, err := p.handle(ctx, "g 2")
		require.NoError(t, err)

		out.Reset()
		_, err = p.handle(ctx, "s title.asc")
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Sorted by alphabetically (asc) | page 1 of 3")
		assert.Contains(t, srv.lastQuery(), "sort_by=title.asc")

		_, err = p.handle(ctx, "s budget.desc")
		assert.ErrorIs(t, err, tmdb.ErrInvalidSortKey)
	})

	t.Run("adult toggle", func(t *testing.T) {
		p, srv, out := newTestPager(t)
		require.NoError(t, p.once(ctx))

		out.Reset()
		_, err := p.handle(ctx, "a")
		require.NoError(t, err)
		assert.Contains(t, out.String(), "adult on")
		assert.Contains(t, srv.lastQuery(), "include_adult=true")
	})

	t.Run("invalid input", func(t *testing.T) {
		p, _, _ := newTestPager(t)

		_, err := p.handle(ctx, "g three")
		assert.EqualError(t, err, `invalid page: "three"`)

		_, err = p.handle(ctx, "x")
		assert.EqualError(t, err, `unknown command "x"`)

		quit, err := p.handle(ctx, "   ")
		assert.NoError(t, err)
		assert.False(t, quit)
	})

	t.Run("open and quit", func(t *testing.T) {
		p, _, out := newTestPager(t)

		quit, err := p.handle(ctx, "o 550")
		require.NoError(t, err)
		assert.False(t, quit)
		assert.Contains(t, out.String(), "opened 550")

		quit, err = p.handle(ctx, "q")
		require.NoError(t, err)
		assert.True(t, quit)
	})
}

func TestPagerRun(t *testing.T) {
	p, _, out := newTestPager(t)

	err := p.run(context.Background(), strings.NewReader("n\nbogus\nq\nn\n"))
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "page 1 of 3")
	assert.Contains(t, output, "page 2 of 3")
	assert.Contains(t, output, `unknown command "bogus"`)
	assert.NotContains(t, output, "page 3 of 3")
}

func TestPagerFilter(t *testing.T) {
	p, _, out := newTestPager(t)

	where, err := resolveFilter("Year < 2000", "", nil)
	require.NoError(t, err)
	p.where = where

	require.NoError(t, p.once(context.Background()))
	assert.Contains(t, out.String(), "No movies found")
	assert.NotContains(t, out.String(), "Movie 1")
}
