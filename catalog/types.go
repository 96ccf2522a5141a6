package catalog

import (
	"fmt"
	"math"
	"strings"

	"github.com/s0up4200/marquee/genre"
)

// ImageBaseURL is the fixed base path for poster and backdrop images
const ImageBaseURL = "https://image.tmdb.org/t/p/w500"

// Image is an optional upstream image path
type Image struct {
	Path  string
	Valid bool
}

// URL returns the displayable URL under ImageBaseURL
func (i Image) URL() (string, bool) {
	return i.URLWithBase(ImageBaseURL)
}

// URLWithBase returns the displayable URL under base. ok is false when
// there is no image and the caller should render a placeholder.
func (i Image) URLWithBase(base string) (url string, ok bool) {
	if !i.Valid {
		return "", false
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(i.Path, "/"), true
}

// Rating is an optional vote average
type Rating struct {
	Value float64
	Rated bool
}

// String renders the rating, or an em dash when unrated
func (r Rating) String() string {
	if !r.Rated {
		return "—"
	}
	return fmt.Sprintf("%.1f", r.Value)
}

// Genre is a resolved genre on a detail record
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MovieSummary is the list-item shape returned by search and discover
type MovieSummary struct {
	ID          int64
	Title       string
	ReleaseDate string
	Overview    string
	GenreIDs    []int
	Poster      Image
}

// PrimaryGenre returns the display name of the first genre, or genre.Unknown
func (m MovieSummary) PrimaryGenre() string {
	if len(m.GenreIDs) == 0 {
		return genre.Unknown
	}
	return genre.DisplayName(m.GenreIDs[0])
}

// Year returns the release year, or an empty string
func (m MovieSummary) Year() string {
	return yearOf(m.ReleaseDate)
}

// MovieDetail is the full single-record shape
type MovieDetail struct {
	ID               int64
	Title            string
	OriginalTitle    string
	OriginalLanguage string
	Tagline          string
	ReleaseDate      string
	Overview         string
	Runtime          int
	Adult            bool
	Genres           []Genre
	VoteAverage      Rating
	VoteCount        int
	Popularity       float64
	Poster           Image
	Backdrop         Image
}

// Year returns the release year, or an empty string
func (m MovieDetail) Year() string {
	return yearOf(m.ReleaseDate)
}

// PopularityRounded returns the popularity rounded for display
func (m MovieDetail) PopularityRounded() int64 {
	return int64(math.Round(m.Popularity))
}

// GenreNames joins the genre names, or returns "N/A" when there are none
func (m MovieDetail) GenreNames() string {
	if len(m.Genres) == 0 {
		return "N/A"
	}
	names := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		names = append(names, g.Name)
	}
	return strings.Join(names, ", ")
}

// Page is one page of summaries
type Page struct {
	Number       int
	Movies       []MovieSummary
	TotalPages   int
	TotalResults int
}

// IsEmpty reports whether the page holds no records
func (p *Page) IsEmpty() bool {
	return p == nil || len(p.Movies) == 0
}

func yearOf(date string) string {
	if len(date) < 4 {
		return ""
	}
	year := date[:4]
	for _, r := range year {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return year
}
