package radarr

import (
	"context"

	"golift.io/starr"
	"golift.io/starr/radarr"
)

// RadarrAPI defines the Radarr operations used for library lookups
type RadarrAPI interface {
	GetMovieContext(ctx context.Context, params *radarr.GetMovie) ([]*radarr.Movie, error)
	GetTagsContext(ctx context.Context) ([]*starr.Tag, error)

	// Health check
	Ping() error
}

// LibraryLookup reports whether a TMDB movie is managed by Radarr
type LibraryLookup interface {
	LibraryStatus(ctx context.Context, tmdbID int64) (*LibraryStatus, error)
}
