package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/genre"
)

// genresCmd represents the genres command
var genresCmd = &cobra.Command{
	Use:         "genres",
	Short:       "List the known genre codes",
	Long:        `List the genre codes TMDB uses in list results together with their names. These are the names accepted by hasGenre() in filter expressions.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipInit: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprint(cmd.OutOrStdout(), formatGenres(genre.All()))
		return nil
	},
}

func formatGenres(genres []genre.Genre) string {
	var sb strings.Builder
	sb.WriteString("Genres:\n")
	for i, g := range genres {
		prefix := "├"
		if i == len(genres)-1 {
			prefix = "╰"
		}
		fmt.Fprintf(&sb, "%s── %-6d %s\n", prefix, g.ID, g.Name)
	}
	return sb.String()
}
