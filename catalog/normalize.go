// Package catalog defines the movie records rendered by the views and the
// rules that turn raw TMDB JSON into them.
//
// Normalization is the only place where loosely typed upstream JSON is
// inspected. Everything downstream works with MovieSummary, MovieDetail and
// Page, where absent values have already been mapped to explicit zero or
// "not present" states.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// rawSummary mirrors a TMDB list result. Pointers distinguish absent/null
// from zero values.
type rawSummary struct {
	ID          *int64  `json:"id"`
	Title       *string `json:"title"`
	ReleaseDate *string `json:"release_date"`
	Overview    *string `json:"overview"`
	GenreIDs    []int   `json:"genre_ids"`
	PosterPath  *string `json:"poster_path"`
}

type rawDetail struct {
	ID               *int64   `json:"id"`
	Title            *string  `json:"title"`
	OriginalTitle    *string  `json:"original_title"`
	OriginalLanguage *string  `json:"original_language"`
	Tagline          *string  `json:"tagline"`
	ReleaseDate      *string  `json:"release_date"`
	Overview         *string  `json:"overview"`
	Runtime          *int     `json:"runtime"`
	Adult            *bool    `json:"adult"`
	Genres           []Genre  `json:"genres"`
	VoteAverage      *float64 `json:"vote_average"`
	VoteCount        *int     `json:"vote_count"`
	Popularity       *float64 `json:"popularity"`
	PosterPath       *string  `json:"poster_path"`
	BackdropPath     *string  `json:"backdrop_path"`
}

type rawPage struct {
	Page         *int              `json:"page"`
	Results      []json.RawMessage `json:"results"`
	TotalPages   *int              `json:"total_pages"`
	TotalResults *int              `json:"total_results"`
}

// NormalizeSummary converts a raw list result into a MovieSummary
func NormalizeSummary(raw json.RawMessage) (MovieSummary, error) {
	var r rawSummary
	if err := json.Unmarshal(raw, &r); err != nil {
		return MovieSummary{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if r.ID == nil {
		return MovieSummary{}, fmt.Errorf("%w: movie without id", ErrMalformed)
	}

	genreIDs := r.GenreIDs
	if genreIDs == nil {
		genreIDs = []int{}
	}

	return MovieSummary{
		ID:          *r.ID,
		Title:       str(r.Title),
		ReleaseDate: str(r.ReleaseDate),
		Overview:    str(r.Overview),
		GenreIDs:    genreIDs,
		Poster:      image(r.PosterPath),
	}, nil
}

// NormalizeDetail converts a raw single-record body into a MovieDetail
func NormalizeDetail(raw json.RawMessage) (MovieDetail, error) {
	var r rawDetail
	if err := json.Unmarshal(raw, &r); err != nil {
		return MovieDetail{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if r.ID == nil {
		return MovieDetail{}, fmt.Errorf("%w: movie without id", ErrMalformed)
	}

	detail := MovieDetail{
		ID:               *r.ID,
		Title:            str(r.Title),
		OriginalTitle:    str(r.OriginalTitle),
		OriginalLanguage: str(r.OriginalLanguage),
		Tagline:          str(r.Tagline),
		ReleaseDate:      str(r.ReleaseDate),
		Overview:         str(r.Overview),
		Genres:           r.Genres,
		Poster:           image(r.PosterPath),
		Backdrop:         image(r.BackdropPath),
	}
	if detail.Genres == nil {
		detail.Genres = []Genre{}
	}
	if r.Runtime != nil {
		detail.Runtime = *r.Runtime
	}
	if r.Adult != nil {
		detail.Adult = *r.Adult
	}
	if r.VoteAverage != nil {
		detail.VoteAverage = Rating{Value: *r.VoteAverage, Rated: true}
	}
	if r.VoteCount != nil {
		detail.VoteCount = *r.VoteCount
	}
	if r.Popularity != nil {
		detail.Popularity = *r.Popularity
	}

	return detail, nil
}

// NormalizePage converts a raw paginated body into a Page. A missing
// results array is an empty page; a missing or non-positive total_pages
// counts as a single page.
func NormalizePage(raw json.RawMessage) (Page, error) {
	if isNull(raw) {
		return Page{}, fmt.Errorf("%w: empty body", ErrMalformed)
	}

	var r rawPage
	if err := json.Unmarshal(raw, &r); err != nil {
		return Page{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	page := Page{
		Number:     1,
		Movies:     make([]MovieSummary, 0, len(r.Results)),
		TotalPages: 1,
	}
	if r.Page != nil && *r.Page > 0 {
		page.Number = *r.Page
	}
	if r.TotalPages != nil && *r.TotalPages > 0 {
		page.TotalPages = *r.TotalPages
	}
	if r.TotalResults != nil {
		page.TotalResults = *r.TotalResults
	} else {
		page.TotalResults = len(r.Results)
	}

	for i, item := range r.Results {
		movie, err := NormalizeSummary(item)
		if err != nil {
			return Page{}, fmt.Errorf("result %d: %w", i, err)
		}
		page.Movies = append(page.Movies, movie)
	}

	return page, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// image maps absent, null, blank and the literal "null" to no image
func image(path *string) Image {
	if path == nil {
		return Image{}
	}
	p := strings.TrimSpace(*path)
	if p == "" || p == "null" || p == "/null" {
		return Image{}
	}
	return Image{Path: p, Valid: true}
}
