package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/fetch"
	"github.com/s0up4200/marquee/filter"
	"github.com/s0up4200/marquee/tmdb"
	"github.com/s0up4200/marquee/view"
)

var (
	discoverPage  int
	discoverSort  string
	discoverAdult bool
	interactive   bool
)

// discoverCmd represents the discover command
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Browse the discover listing",
	Long: `Browse TMDB's discover listing one page at a time.

Supported orderings:
  popularity.desc            most popular first (default)
  primary_release_date.desc  newest first
  title.asc                  alphabetically
  vote_average.desc          highest rated first

With --interactive the listing stays open and reads commands from stdin:
  n        next page
  p        previous page
  g N      go to page N
  s KEY    change the ordering
  a        toggle adult titles
  o ID     open a movie
  q        quit`,
	Example: `  marquee discover --sort vote_average.desc --page 2
  marquee discover -i --where 'hasGenre("horror")'`,
	Args: cobra.NoArgs,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().IntVar(&discoverPage, "page", 1, "page to show")
	discoverCmd.Flags().StringVarP(&discoverSort, "sort", "s", "", "ordering (default from discover.sort_by)")
	discoverCmd.Flags().BoolVar(&discoverAdult, "adult", false, "include adult titles")
	discoverCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "keep the listing open and page through it")
	discoverCmd.Flags().StringVarP(&whereExpr, "where", "w", "", "only show movies matching a filter expression")
	discoverCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	sortBy := cfg.Discover.SortBy
	if cmd.Flags().Changed("sort") {
		sortBy = discoverSort
	}
	sortKey, err := tmdb.ParseSortKey(sortBy)
	if err != nil {
		return err
	}

	includeAdult := cfg.Discover.IncludeAdult
	if cmd.Flags().Changed("adult") {
		includeAdult = discoverAdult
	}

	where, err := resolveFilter(whereExpr, preset, cfg.Filter)
	if err != nil {
		return err
	}

	discover := view.NewDiscover(tmdbClient, tmdb.DiscoverQuery{
		Page:         discoverPage,
		SortBy:       sortKey,
		IncludeAdult: includeAdult,
	}, logger)

	p := &pager{
		discover:  discover,
		where:     where,
		formatter: formatter,
		out:       cmd.OutOrStdout(),
		logger:    logger,
		open: func(ctx context.Context, routeID string) string {
			return renderMovie(ctx, routeID).output
		},
	}

	if !interactive {
		return p.once(ctx)
	}
	return p.run(ctx, cmd.InOrStdin())
}

// pager drives a Discover coordinator from line based commands
type pager struct {
	discover  *view.Discover
	where     filter.CompiledFilter
	formatter *view.ConsoleFormatter
	out       io.Writer
	logger    zerolog.Logger
	open      func(ctx context.Context, routeID string) string
}

// once loads and prints the current page
func (p *pager) once(ctx context.Context) error {
	if err := p.await(ctx, p.discover.Load(ctx)); err != nil {
		return err
	}

	v := p.render()
	if v.State == view.ListError {
		return fmt.Errorf("failed to load movies: %s", v.Err)
	}
	return nil
}

func (p *pager) run(ctx context.Context, in io.Reader) error {
	if err := p.await(ctx, p.discover.Load(ctx)); err != nil {
		return err
	}
	p.render()

	// styles follow the capabilities of p.out, not stdout
	renderer := lipgloss.NewRenderer(p.out)
	prompt := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).Render("> ")
	errStyle := renderer.NewStyle().Foreground(lipgloss.Color("203"))

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(p.out, prompt)
		if !scanner.Scan() {
			return scanner.Err()
		}

		quit, err := p.handle(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintln(p.out, errStyle.Render(err.Error()))
		}
		if quit {
			return nil
		}
	}
}

// handle executes one pager command
func (p *pager) handle(ctx context.Context, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	var ticket *fetch.Ticket
	switch command, arg := fields[0], strings.Join(fields[1:], " "); command {
	case "q", "quit":
		return true, nil
	case "n", "next":
		var ok bool
		if ticket, ok = p.discover.Next(ctx); !ok {
			return false, errors.New("already on the last page")
		}
	case "p", "prev":
		var ok bool
		if ticket, ok = p.discover.Prev(ctx); !ok {
			return false, errors.New("already on the first page")
		}
	case "g", "goto":
		n, convErr := strconv.Atoi(arg)
		if convErr != nil {
			return false, fmt.Errorf("invalid page: %q", arg)
		}
		ticket = p.discover.GoTo(ctx, n)
	case "s", "sort":
		key, parseErr := tmdb.ParseSortKey(arg)
		if parseErr != nil {
			return false, parseErr
		}
		if ticket, err = p.discover.SetSort(ctx, key); err != nil {
			return false, err
		}
	case "a", "adult":
		ticket = p.discover.ToggleAdult(ctx)
	case "o", "open":
		fmt.Fprintln(p.out, p.open(ctx, arg))
		return false, nil
	case "r", "reload":
		ticket = p.discover.Load(ctx)
	default:
		return false, fmt.Errorf("unknown command %q", command)
	}

	if ticket == nil {
		return false, nil
	}
	if err := p.await(ctx, ticket); err != nil {
		return true, err
	}
	p.render()
	return false, nil
}

func (p *pager) await(ctx context.Context, ticket *fetch.Ticket) error {
	if err := ticket.Wait(ctx); err != nil {
		return err
	}
	if !ticket.Applied() {
		p.logger.Debug().Uint64("seq", ticket.Seq).Msg("Response superseded")
	}
	return nil
}

func (p *pager) render() view.DiscoverView {
	v := p.discover.View()
	if p.where != nil && v.Results != nil {
		v.Results = filter.ApplyPage(p.where, v.Results)
		if v.State == view.ListResults && v.Results.IsEmpty() {
			v.State = view.ListEmpty
		}
	}
	fmt.Fprintln(p.out, p.formatter.FormatDiscover(v))
	return v
}
