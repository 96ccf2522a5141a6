package radarr

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golift.io/starr"
	"golift.io/starr/radarr"
)

// ErrNotInLibrary indicates Radarr does not track the movie
var ErrNotInLibrary = errors.New("movie not in Radarr library")

// Client wraps the starr Radarr client for library lookups
type Client struct {
	client RadarrAPI
	logger zerolog.Logger

	tagsMu sync.Mutex
	tags   map[int]string
}

var _ LibraryLookup = (*Client)(nil)

// NewClient creates a new Radarr client and checks the connection
func NewClient(url, apiKey string, logger zerolog.Logger) (*Client, error) {
	config := starr.New(apiKey, url, 30*time.Second)
	radarrClient := radarr.New(config)

	if err := radarrClient.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to Radarr: %w", err)
	}

	return NewClientWithAPI(radarrClient, logger), nil
}

// NewClientWithAPI creates a client over an existing API implementation
func NewClientWithAPI(api RadarrAPI, logger zerolog.Logger) *Client {
	return &Client{
		client: api,
		logger: logger,
	}
}

// TestConnection pings Radarr
func (c *Client) TestConnection() error {
	if err := c.client.Ping(); err != nil {
		return fmt.Errorf("failed to connect to Radarr: %w", err)
	}
	return nil
}

// LibraryStatus describes how Radarr manages a movie
type LibraryStatus struct {
	ID        int64
	Title     string
	Year      int
	TMDBID    int64
	Monitored bool
	HasFile   bool
	Path      string
	FilePath  string
	TagNames  []string
	Added     time.Time
	Ratings   map[string]float64
}

// LibraryStatus looks up a movie by TMDB id. It returns ErrNotInLibrary
// when Radarr does not have it.
func (c *Client) LibraryStatus(ctx context.Context, tmdbID int64) (*LibraryStatus, error) {
	if tmdbID <= 0 {
		return nil, ErrNotInLibrary
	}

	movies, err := c.client.GetMovieContext(ctx, &radarr.GetMovie{TMDBID: tmdbID})
	if err != nil {
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}

	var movie *radarr.Movie
	for _, m := range movies {
		if m != nil && m.TmdbID == tmdbID {
			movie = m
			break
		}
	}
	if movie == nil {
		c.logger.Debug().Int64("tmdb_id", tmdbID).Msg("Movie not found in Radarr")
		return nil, ErrNotInLibrary
	}

	tags, err := c.tagNames(ctx)
	if err != nil {
		return nil, err
	}

	return libraryStatus(movie, tags), nil
}

// tagNames fetches the tag labels once per client
func (c *Client) tagNames(ctx context.Context) (map[int]string, error) {
	c.tagsMu.Lock()
	defer c.tagsMu.Unlock()

	if c.tags != nil {
		return c.tags, nil
	}

	tags, err := c.client.GetTagsContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}

	c.tags = make(map[int]string, len(tags))
	for _, tag := range tags {
		c.tags[tag.ID] = tag.Label
	}

	c.logger.Debug().Msgf("Retrieved %d tags from Radarr", len(tags))
	return c.tags, nil
}

func libraryStatus(movie *radarr.Movie, tags map[int]string) *LibraryStatus {
	status := &LibraryStatus{
		ID:        movie.ID,
		Title:     movie.Title,
		Year:      movie.Year,
		TMDBID:    movie.TmdbID,
		Monitored: movie.Monitored,
		HasFile:   movie.HasFile,
		Path:      movie.Path,
		TagNames:  make([]string, 0, len(movie.Tags)),
		Added:     movie.Added,
		Ratings:   make(map[string]float64, len(movie.Ratings)),
	}

	for _, id := range movie.Tags {
		if name, ok := tags[id]; ok {
			status.TagNames = append(status.TagNames, name)
		}
	}

	if movie.MovieFile != nil {
		status.FilePath = movie.MovieFile.Path
	}

	for source, rating := range movie.Ratings {
		status.Ratings[source] = rating.Value
	}

	return status
}
