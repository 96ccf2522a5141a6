package view

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/s0up4200/marquee/catalog"
	"github.com/s0up4200/marquee/tmdb"
)

func TestConsoleFormatter_Search(t *testing.T) {
	f := NewConsoleFormatter(FormatOptions{})

	assert.Equal(t, "Search for a movie by title", f.FormatSearch(SearchView{}))
	assert.Contains(t, f.FormatSearch(SearchView{State: ListEmpty, Query: "zz"}), `No movies found for "zz"`)
	assert.Contains(t, f.FormatSearch(SearchView{State: ListError, Err: "boom"}), "boom")

	out := f.FormatSearch(SearchView{
		State: ListResults,
		Query: "batman",
		Results: &catalog.Page{Movies: []catalog.MovieSummary{
			{ID: 268, Title: "Batman", ReleaseDate: "1989-06-21", GenreIDs: []int{14}},
			{ID: 2661, Title: "Batman", GenreIDs: []int{}},
		}},
	})
	assert.Contains(t, out, `Results for "batman" (2):`)
	assert.Contains(t, out, "├── Batman (1989) [268]")
	assert.Contains(t, out, "╰── Batman [2661]")
	assert.Contains(t, out, "Genre: Fantasy")
	assert.Contains(t, out, "Genre: Unknown")
}

func TestConsoleFormatter_Discover(t *testing.T) {
	f := NewConsoleFormatter(FormatOptions{})

	out := f.FormatDiscover(DiscoverView{
		State:      ListLoading,
		Page:       2,
		TotalPages: 7,
		SortKey:    tmdb.SortTitleAsc,
	})
	assert.Contains(t, out, "page 2 of 7")
	assert.Contains(t, out, "alphabetically")
	assert.Contains(t, out, "adult off")
	assert.Contains(t, out, "Loading...")
}

func TestConsoleFormatter_Detail(t *testing.T) {
	f := NewConsoleFormatter(FormatOptions{ShowPosters: true})

	assert.Contains(t, f.FormatDetail(DetailView{State: DetailNotFound, RouteID: "abc"}), "Movie not found")

	out := f.FormatDetail(DetailView{
		State: DetailLoaded,
		Movie: &catalog.MovieDetail{
			ID:          550,
			Title:       "Fight Club",
			ReleaseDate: "1999-10-15",
			Genres:      []catalog.Genre{{ID: 18, Name: "Drama"}},
			VoteAverage: catalog.Rating{Value: 8.433, Rated: true},
			VoteCount:   100,
			Popularity:  61.6,
			Poster:      catalog.Image{Path: "/p.jpg", Valid: true},
		},
	})
	assert.True(t, strings.HasPrefix(out, "\nFight Club (1999)\n"))
	assert.Contains(t, out, "Genres: Drama")
	assert.Contains(t, out, "Rating: 8.4 (100 votes)")
	assert.Contains(t, out, "Popularity: 62")
	assert.Contains(t, out, "Poster: https://image.tmdb.org/t/p/w500/p.jpg")
	assert.Contains(t, out, "╰── Backdrop: no image")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abc...", truncate("abcdef", 3))
}
