package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	TMDB     TMDBConfig     `mapstructure:"tmdb"`
	Discover DiscoverConfig `mapstructure:"discover"`
	Radarr   RadarrConfig   `mapstructure:"radarr"`
	Filter   FilterConfig   `mapstructure:"filter"`
	Display  DisplayConfig  `mapstructure:"display"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// TMDBConfig holds TMDB API connection details
type TMDBConfig struct {
	URL          string        `mapstructure:"url"`
	Token        string        `mapstructure:"token"`
	ImageBaseURL string        `mapstructure:"image_base_url"`
	Language     string        `mapstructure:"language"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// DiscoverConfig holds the initial discover listing filters
type DiscoverConfig struct {
	SortBy       string `mapstructure:"sort_by"`
	IncludeAdult bool   `mapstructure:"include_adult"`
}

// RadarrConfig holds the optional Radarr connection used for library status
type RadarrConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	APIKey  string `mapstructure:"api_key"`
}

// FilterConfig maps preset names to filter expressions
type FilterConfig map[string]string

// DisplayConfig controls console rendering
type DisplayConfig struct {
	ShowOverview bool `mapstructure:"show_overview"`
	ShowPosters  bool `mapstructure:"show_posters"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
