package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/marquee/radarr"
	"github.com/s0up4200/marquee/view"
)

// movieCmd represents the movie command
var movieCmd = &cobra.Command{
	Use:   "movie <id...>",
	Short: "Show the full record of one or more movies",
	Long: `Show the full TMDB record for each movie id. When Radarr is configured the
movie's library status is shown underneath.`,
	Example: `  marquee movie 550
  marquee movie 155 268 27205`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMovie,
}

var movieConcurrency int

func init() {
	movieCmd.Flags().IntVar(&movieConcurrency, "concurrency", 4, "maximum number of movies fetched at once")
}

type movieOutput struct {
	output string
	err    error
}

func runMovie(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	outputs := make([]movieOutput, len(args))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(movieConcurrency, 1))
	for i, routeID := range args {
		g.Go(func() error {
			outputs[i] = renderMovie(gctx, routeID)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var failed []string
	out := cmd.OutOrStdout()
	for i, o := range outputs {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprint(out, o.output)
		if o.err != nil {
			failed = append(failed, args[i])
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("failed to load %d movie(s): %s", len(failed), strings.Join(failed, ", "))
	}
	return nil
}

// renderMovie loads and formats a single movie, including its Radarr
// library status when Radarr is enabled
func renderMovie(ctx context.Context, routeID string) movieOutput {
	detail := view.NewDetail(tmdbClient, routeID, logger)
	if ticket := detail.Mount(ctx); ticket != nil {
		if err := ticket.Wait(ctx); err != nil {
			return movieOutput{output: fmt.Sprintf("Movie %s: %v\n", routeID, err), err: err}
		}
	}

	v := detail.View()
	var sb strings.Builder
	sb.WriteString(formatter.FormatDetail(v))
	if !strings.HasSuffix(sb.String(), "\n") {
		sb.WriteString("\n")
	}

	if v.State != view.DetailLoaded {
		return movieOutput{output: sb.String(), err: errors.New(v.Err)}
	}

	if radarrClient != nil {
		status, err := radarrClient.LibraryStatus(ctx, v.Movie.ID)
		switch {
		case errors.Is(err, radarr.ErrNotInLibrary):
			sb.WriteString(radarr.NewConsoleFormatter().FormatLibraryStatus(nil))
		case err != nil:
			logger.Warn().Err(err).Int64("movie_id", v.Movie.ID).Msg("Failed to get Radarr library status")
		default:
			sb.WriteString(radarr.NewConsoleFormatter().FormatLibraryStatus(status))
		}
	}

	return movieOutput{output: sb.String()}
}
