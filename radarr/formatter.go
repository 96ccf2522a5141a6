package radarr

import (
	"fmt"
	"slices"
	"strings"
)

// ConsoleFormatter provides console output formatting for library status
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// FormatLibraryStatus formats the Radarr section of a detail view. A nil
// status renders as not in library.
func (f *ConsoleFormatter) FormatLibraryStatus(status *LibraryStatus) string {
	if status == nil {
		return "\nRadarr: not in library\n"
	}

	var sb strings.Builder
	sb.WriteString("\nRadarr:\n")

	monitored := "Monitored"
	if !status.Monitored {
		monitored = "Not Monitored"
	}
	lines := []string{monitored}

	if status.HasFile {
		lines = append(lines, "File: "+status.FilePath)
	} else {
		lines = append(lines, "File: missing")
	}
	if status.Path != "" {
		lines = append(lines, "Path: "+status.Path)
	}
	if len(status.TagNames) > 0 {
		lines = append(lines, "Tags: "+strings.Join(status.TagNames, ", "))
	}
	if !status.Added.IsZero() {
		lines = append(lines, "Added: "+status.Added.Format("2006-01-02"))
	}
	if len(status.Ratings) > 0 {
		sources := make([]string, 0, len(status.Ratings))
		for source := range status.Ratings {
			sources = append(sources, source)
		}
		slices.Sort(sources)

		ratings := make([]string, 0, len(sources))
		for _, source := range sources {
			ratings = append(ratings, fmt.Sprintf("%s: %.1f", source, status.Ratings[source]))
		}
		lines = append(lines, "Ratings: "+strings.Join(ratings, ", "))
	}

	for i, line := range lines {
		prefix := "\u251c"
		if i == len(lines)-1 {
			prefix = "\u2570"
		}
		fmt.Fprintf(&sb, "%s\u2500\u2500 %s\n", prefix, line)
	}

	return sb.String()
}
