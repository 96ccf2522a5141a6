package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/filter"
	"github.com/s0up4200/marquee/view"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search movies by title",
	Long: `Search TMDB for movies whose title matches the query. Only the first page
of results is shown and adult titles are never included.

Filter expressions (--where, presets) can use the fields ID, Title, Year,
ReleaseDate, Overview, Genre, GenreIDs and HasPoster, and the functions
hasGenre, hasText, hasPrefix, hasSuffix, lower, upper, daysSince, yearsAgo,
parseDate and now. hasText, hasPrefix and hasSuffix ignore case; the
contains, startsWith and endsWith operators do not.`,
	Example: `  marquee search the dark knight
  marquee search alien --where 'Year < 1990'
  marquee search star --where 'hasText(Overview, "space")'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&whereExpr, "where", "w", "", "only show results matching a filter expression")
	searchCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	where, err := resolveFilter(whereExpr, preset, cfg.Filter)
	if err != nil {
		return err
	}

	search := view.NewSearch(tmdbClient, logger)

	ticket, err := search.Submit(ctx, strings.Join(args, " "))
	if errors.Is(err, view.ErrValidationRejected) {
		return fmt.Errorf("search query must not be blank")
	} else if err != nil {
		return err
	}
	if err := ticket.Wait(ctx); err != nil {
		return err
	}

	v := search.View()
	if where != nil {
		v.Results = filter.ApplyPage(where, v.Results)
		if v.State == view.ListResults && v.Results.IsEmpty() {
			v.State = view.ListEmpty
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSearch(v))

	if v.State == view.ListError {
		return fmt.Errorf("search failed: %s", v.Err)
	}
	return nil
}
