package view

import (
	"fmt"
	"strings"

	"github.com/s0up4200/marquee/catalog"
)

// FormatOptions controls console rendering
type FormatOptions struct {
	ShowOverview bool
	ShowPosters  bool
	// ImageBaseURL overrides catalog.ImageBaseURL when set
	ImageBaseURL string
}

// ConsoleFormatter renders coordinator snapshots for a terminal
type ConsoleFormatter struct {
	options FormatOptions
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter(options FormatOptions) *ConsoleFormatter {
	return &ConsoleFormatter{options: options}
}

// FormatSearch renders the search screen
func (f *ConsoleFormatter) FormatSearch(v SearchView) string {
	switch v.State {
	case ListNotLoaded:
		return "Search for a movie by title"
	case ListLoading:
		return fmt.Sprintf("Searching for %q...", v.Query)
	case ListError:
		return fmt.Sprintf("Search failed: %s", v.Err)
	case ListEmpty:
		return fmt.Sprintf("No movies found for %q", v.Query)
	}

	header := fmt.Sprintf("Results for %q", v.Query)
	return f.formatList(header, v.Results)
}

// FormatDiscover renders the discover screen
func (f *ConsoleFormatter) FormatDiscover(v DiscoverView) string {
	adult := "off"
	if v.IncludeAdult {
		adult = "on"
	}
	status := fmt.Sprintf("Sorted by %s | page %d of %d | adult %s",
		v.SortKey.Label(), v.Page, v.TotalPages, adult)

	switch v.State {
	case ListNotLoaded:
		return status
	case ListLoading:
		return status + "\nLoading..."
	case ListError:
		return status + "\nFailed to load movies: " + v.Err
	case ListEmpty:
		return status + "\nNo movies found"
	}

	return f.formatList("Discover", v.Results) + status + "\n"
}

// FormatDetail renders the detail screen
func (f *ConsoleFormatter) FormatDetail(v DetailView) string {
	switch v.State {
	case DetailIdle, DetailLoading:
		return "Loading..."
	case DetailNotFound:
		return fmt.Sprintf("Movie not found (%s)", v.RouteID)
	}

	m := v.Movie
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(m.Title)
	if year := m.Year(); year != "" {
		fmt.Fprintf(&sb, " (%s)", year)
	}
	sb.WriteString("\n")

	lines := []string{
		"Genres: " + m.GenreNames(),
		fmt.Sprintf("Rating: %s (%d votes)", m.VoteAverage, m.VoteCount),
		fmt.Sprintf("Popularity: %d", m.PopularityRounded()),
	}
	if m.Tagline != "" {
		lines = append([]string{fmt.Sprintf("%q", m.Tagline)}, lines...)
	}
	if m.ReleaseDate != "" {
		lines = append(lines, "Released: "+m.ReleaseDate)
	}
	if m.Runtime > 0 {
		lines = append(lines, fmt.Sprintf("Runtime: %dm", m.Runtime))
	}
	if m.OriginalTitle != "" && m.OriginalTitle != m.Title {
		lines = append(lines, fmt.Sprintf("Original title: %s (%s)", m.OriginalTitle, m.OriginalLanguage))
	}
	if f.options.ShowPosters {
		lines = append(lines, "Poster: "+f.imageURL(m.Poster), "Backdrop: "+f.imageURL(m.Backdrop))
	}
	if m.Overview != "" {
		lines = append(lines, "", m.Overview)
	}

	writeTree(&sb, lines)
	return sb.String()
}

// FormatMovieList renders summaries as a tree
func (f *ConsoleFormatter) FormatMovieList(movies []catalog.MovieSummary) string {
	return f.formatList("Movies", &catalog.Page{Movies: movies})
}

func (f *ConsoleFormatter) formatList(header string, page *catalog.Page) string {
	if page.IsEmpty() {
		return "No movies found\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s (%d):\n\n", header, len(page.Movies))

	for i, movie := range page.Movies {
		isLast := i == len(page.Movies)-1
		f.formatSummary(&sb, movie, isLast)

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

func (f *ConsoleFormatter) formatSummary(sb *strings.Builder, movie catalog.MovieSummary, isLast bool) {
	prefix := "├"
	indent := "│   "
	if isLast {
		prefix = "╰"
		indent = "    "
	}

	title := movie.Title
	if title == "" {
		title = "Untitled"
	}
	fmt.Fprintf(sb, "%s── %s", prefix, title)
	if year := movie.Year(); year != "" {
		fmt.Fprintf(sb, " (%s)", year)
	}
	fmt.Fprintf(sb, " [%d]\n", movie.ID)

	fmt.Fprintf(sb, "%sGenre: %s\n", indent, movie.PrimaryGenre())

	if f.options.ShowPosters {
		fmt.Fprintf(sb, "%sPoster: %s\n", indent, f.imageURL(movie.Poster))
	}
	if f.options.ShowOverview && movie.Overview != "" {
		fmt.Fprintf(sb, "%s%s\n", indent, truncate(movie.Overview, 120))
	}
}

func (f *ConsoleFormatter) imageURL(img catalog.Image) string {
	base := f.options.ImageBaseURL
	if base == "" {
		base = catalog.ImageBaseURL
	}
	url, ok := img.URLWithBase(base)
	if !ok {
		return "no image"
	}
	return url
}

func writeTree(sb *strings.Builder, lines []string) {
	for i, line := range lines {
		prefix := "├── "
		if i == len(lines)-1 {
			prefix = "╰── "
		}
		if line == "" {
			sb.WriteString("│\n")
			continue
		}
		sb.WriteString(prefix + line + "\n")
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "..."
}
