package tmdb

import (
	"fmt"
	"strings"
)

// MaxPage is the highest page TMDB will serve for list endpoints
const MaxPage = 500

// SortKey is a discover sort expression
type SortKey string

const (
	// SortPopularityDesc orders by popularity, most popular first
	SortPopularityDesc SortKey = "popularity.desc"
	// SortReleaseDateDesc orders by primary release date, newest first
	SortReleaseDateDesc SortKey = "primary_release_date.desc"
	// SortTitleAsc orders alphabetically
	SortTitleAsc SortKey = "title.asc"
	// SortVoteAverageDesc orders by vote average, highest first
	SortVoteAverageDesc SortKey = "vote_average.desc"
)

// DefaultSortKey is the discover ordering used when none is configured
const DefaultSortKey = SortPopularityDesc

// SortKeys lists the supported sort expressions in menu order
var SortKeys = []SortKey{
	SortPopularityDesc,
	SortReleaseDateDesc,
	SortTitleAsc,
	SortVoteAverageDesc,
}

// ParseSortKey validates a sort expression
func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	for _, k := range SortKeys {
		if k == key {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSortKey, s)
}

// Label returns a human readable name for the sort key
func (k SortKey) Label() string {
	switch k {
	case SortPopularityDesc:
		return "popularity"
	case SortReleaseDateDesc:
		return "release date (newest → oldest)"
	case SortTitleAsc:
		return "alphabetically (asc)"
	case SortVoteAverageDesc:
		return "rating (highest first)"
	default:
		return string(k)
	}
}

// SearchQuery holds the parameters of a title search
type SearchQuery struct {
	Query        string
	Page         int
	IncludeAdult bool
}

// DiscoverQuery holds the parameters of a discover listing
type DiscoverQuery struct {
	Page         int
	SortBy       SortKey
	IncludeAdult bool
}

// statusResponse is the body of GET /authentication and of non-2xx replies
type statusResponse struct {
	Success       bool   `json:"success"`
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}
