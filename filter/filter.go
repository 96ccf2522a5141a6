package filter

import "github.com/s0up4200/marquee/catalog"

var defaultCompiler = NewExprCompiler(WithCache(64))

// CompileFilter compiles expression with the shared caching compiler
func CompileFilter(expression string) (CompiledFilter, error) {
	return defaultCompiler.Compile(expression)
}

// Apply returns the movies matching f, in their original order. A nil
// filter matches everything.
func Apply(f Filter, movies []catalog.MovieSummary) []catalog.MovieSummary {
	if f == nil {
		return movies
	}

	matches := make([]catalog.MovieSummary, 0, len(movies))
	for _, movie := range movies {
		if f.Evaluate(movie) {
			matches = append(matches, movie)
		}
	}
	return matches
}

// ApplyPage returns a copy of page holding only the matching movies. Page
// numbers and totals are left as reported upstream.
func ApplyPage(f Filter, page *catalog.Page) *catalog.Page {
	if f == nil || page == nil {
		return page
	}

	filtered := *page
	filtered.Movies = Apply(f, page.Movies)
	return &filtered
}
