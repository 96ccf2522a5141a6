package radarr

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golift.io/starr"
	"golift.io/starr/radarr"
)

// mockRadarrAPI implements RadarrAPI for testing
type mockRadarrAPI struct {
	movies  []*radarr.Movie
	tags    []*starr.Tag
	movieErr error
	pingErr error

	// Track calls for verification
	getMovieCalls int
	getTagsCalls  int
	lastParams    *radarr.GetMovie
}

func (m *mockRadarrAPI) GetMovieContext(ctx context.Context, params *radarr.GetMovie) ([]*radarr.Movie, error) {
	m.getMovieCalls++
	m.lastParams = params
	if m.movieErr != nil {
		return nil, m.movieErr
	}

	var out []*radarr.Movie
	for _, movie := range m.movies {
		if params.TMDBID == 0 || movie.TmdbID == params.TMDBID {
			out = append(out, movie)
		}
	}
	return out, nil
}

func (m *mockRadarrAPI) GetTagsContext(ctx context.Context) ([]*starr.Tag, error) {
	m.getTagsCalls++
	return m.tags, nil
}

func (m *mockRadarrAPI) Ping() error {
	return m.pingErr
}

func TestClient_LibraryStatus(t *testing.T) {
	added := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mock := &mockRadarrAPI{
		movies: []*radarr.Movie{
			{
				ID:        7,
				Title:     "Fight Club",
				Year:      1999,
				TmdbID:    550,
				Path:      "/movies/Fight Club (1999)",
				Tags:      []int{1, 3},
				Added:     added,
				HasFile:   true,
				Monitored: true,
				MovieFile: &radarr.MovieFile{
					ID:   10,
					Path: "/movies/Fight Club (1999)/Fight.Club.1999.mkv",
				},
				Ratings: starr.OpenRatings{
					"imdb": starr.Ratings{Value: 8.8},
				},
			},
		},
		tags: []*starr.Tag{
			{ID: 1, Label: "classics"},
			{ID: 2, Label: "kids"},
			{ID: 3, Label: "4k"},
		},
	}

	logger := zerolog.New(nil).Level(zerolog.Disabled)
	client := NewClientWithAPI(mock, logger)

	status, err := client.LibraryStatus(context.Background(), 550)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if mock.lastParams == nil || mock.lastParams.TMDBID != 550 {
		t.Errorf("expected lookup by TMDB id 550, got %+v", mock.lastParams)
	}
	if status.ID != 7 || status.Title != "Fight Club" || status.Year != 1999 {
		t.Errorf("unexpected status: %+v", status)
	}
	if !status.Monitored || !status.HasFile {
		t.Errorf("expected monitored movie with file: %+v", status)
	}
	if status.FilePath != "/movies/Fight Club (1999)/Fight.Club.1999.mkv" {
		t.Errorf("FilePath mismatch: got %s", status.FilePath)
	}
	if strings.Join(status.TagNames, ",") != "classics,4k" {
		t.Errorf("TagNames mismatch: got %v", status.TagNames)
	}
	if status.Ratings["imdb"] != 8.8 {
		t.Errorf("expected imdb rating 8.8, got %v", status.Ratings["imdb"])
	}

	// tags are fetched once per client
	if _, err := client.LibraryStatus(context.Background(), 550); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.getTagsCalls != 1 {
		t.Errorf("expected 1 tag fetch, got %d", mock.getTagsCalls)
	}
}

func TestClient_LibraryStatusNotInLibrary(t *testing.T) {
	mock := &mockRadarrAPI{}
	client := NewClientWithAPI(mock, zerolog.Nop())

	_, err := client.LibraryStatus(context.Background(), 404)
	if !errors.Is(err, ErrNotInLibrary) {
		t.Errorf("expected ErrNotInLibrary, got %v", err)
	}

	_, err = client.LibraryStatus(context.Background(), 0)
	if !errors.Is(err, ErrNotInLibrary) {
		t.Errorf("expected ErrNotInLibrary for id 0, got %v", err)
	}
	if mock.getMovieCalls != 1 {
		t.Errorf("expected invalid id to skip the API, got %d calls", mock.getMovieCalls)
	}
}

func TestClient_LibraryStatusError(t *testing.T) {
	mock := &mockRadarrAPI{movieErr: errors.New("connection refused")}
	client := NewClientWithAPI(mock, zerolog.Nop())

	_, err := client.LibraryStatus(context.Background(), 550)
	if err == nil || errors.Is(err, ErrNotInLibrary) {
		t.Errorf("expected transport error, got %v", err)
	}
}

func TestClient_TestConnection(t *testing.T) {
	client := NewClientWithAPI(&mockRadarrAPI{pingErr: errors.New("401")}, zerolog.Nop())
	if err := client.TestConnection(); err == nil {
		t.Error("expected ping failure")
	}

	client = NewClientWithAPI(&mockRadarrAPI{}, zerolog.Nop())
	if err := client.TestConnection(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConsoleFormatter_FormatLibraryStatus(t *testing.T) {
	f := NewConsoleFormatter()

	if got := f.FormatLibraryStatus(nil); !strings.Contains(got, "not in library") {
		t.Errorf("unexpected output for nil status: %q", got)
	}

	out := f.FormatLibraryStatus(&LibraryStatus{
		Monitored: false,
		HasFile:   false,
		TagNames:  []string{"kids"},
		Ratings:   map[string]float64{"tmdb": 7.3, "imdb": 7.0},
	})

	for _, want := range []string{
		"\u251c\u2500\u2500 Not Monitored",
		"File: missing",
		"Tags: kids",
		"\u2570\u2500\u2500 Ratings: imdb: 7.0, tmdb: 7.3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
