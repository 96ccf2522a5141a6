package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connections to TMDB and Radarr",
	Args:  cobra.NoArgs,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Testing TMDB connection to %s...\n", cfg.TMDB.URL)
	if err := tmdbClient.TestConnection(cmd.Context()); err != nil {
		return fmt.Errorf("TMDB connection failed: %w", err)
	}
	fmt.Fprintln(out, "✓ TMDB connection successful")

	if !cfg.Radarr.Enabled {
		return nil
	}

	fmt.Fprintf(out, "Testing Radarr connection to %s...\n", cfg.Radarr.URL)
	if radarrClient == nil {
		return fmt.Errorf("Radarr connection failed: client could not be created, see log")
	}
	if err := radarrClient.TestConnection(); err != nil {
		return fmt.Errorf("Radarr connection failed: %w", err)
	}
	fmt.Fprintln(out, "✓ Radarr connection successful")

	return nil
}
