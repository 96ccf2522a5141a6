// Package genre maps TMDB movie genre codes to display names.
package genre

import (
	"errors"
	"sort"
)

// Unknown is the display name for codes outside the table.
const Unknown = "Unknown"

// ErrNotFound is returned for genre codes that are not in the table.
var ErrNotFound = errors.New("genre not found")

// Genre is a single entry of the lookup table
type Genre struct {
	ID   int
	Name string
}

var names = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}

// NameFor returns the name for a genre code
func NameFor(id int) (string, error) {
	name, ok := names[id]
	if !ok {
		return "", ErrNotFound
	}
	return name, nil
}

// DisplayName returns the name for a genre code, or Unknown
func DisplayName(id int) string {
	name, err := NameFor(id)
	if err != nil {
		return Unknown
	}
	return name
}

// All returns every known genre ordered by code
func All() []Genre {
	all := make([]Genre, 0, len(names))
	for id, name := range names {
		all = append(all, Genre{ID: id, Name: name})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}
