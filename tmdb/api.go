package tmdb

import (
	"context"

	"github.com/s0up4200/marquee/catalog"
)

// API defines the read-only TMDB operations the views depend on
type API interface {
	// SearchMovies runs a title search
	SearchMovies(ctx context.Context, q SearchQuery) (*catalog.Page, error)

	// DiscoverMovies fetches one page of the discover listing
	DiscoverMovies(ctx context.Context, q DiscoverQuery) (*catalog.Page, error)

	// GetMovie fetches a single detail record
	GetMovie(ctx context.Context, id int64) (*catalog.MovieDetail, error)
}
