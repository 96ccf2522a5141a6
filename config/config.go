package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "MARQUEE"

// Load loads the configuration from file and environment. A missing config
// file is only an error when configPath was given explicitly.
func Load(configPath string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)
	bindEnv(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".marquee"))
		}
		v.AddConfigPath("/etc/marquee/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// TMDB defaults
	v.SetDefault("tmdb.url", "https://api.themoviedb.org/3")
	v.SetDefault("tmdb.image_base_url", "https://image.tmdb.org/t/p/w500")
	v.SetDefault("tmdb.language", "en-US")
	v.SetDefault("tmdb.timeout", "30s")

	// Discover defaults
	v.SetDefault("discover.sort_by", "popularity.desc")
	v.SetDefault("discover.include_adult", false)

	// Radarr defaults
	v.SetDefault("radarr.enabled", false)
	v.SetDefault("radarr.url", "http://localhost:7878")

	// Display defaults
	v.SetDefault("display.show_overview", false)
	v.SetDefault("display.show_posters", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// bindEnv maps MARQUEE_TMDB_TOKEN style variables onto keys. TMDB_TOKEN is
// accepted as well since that is what most TMDB tooling uses.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("tmdb.token", EnvPrefix+"_TMDB_TOKEN", "TMDB_TOKEN")
	_ = v.BindEnv("radarr.api_key", EnvPrefix+"_RADARR_API_KEY")
}

var (
	validLevels   = []any{"trace", "debug", "info", "warn", "error"}
	validFormats  = []any{"console", "json"}
	validSortKeys = []any{"popularity.desc", "primary_release_date.desc", "title.asc", "vote_average.desc"}
)

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if err := validation.ValidateStruct(&cfg.TMDB,
		validation.Field(&cfg.TMDB.URL, validation.Required, validation.By(httpURL)),
		validation.Field(&cfg.TMDB.Token,
			validation.Required.Error("must be set via tmdb.token or TMDB_TOKEN"),
			validation.NotIn("your-token-here").Error("must be set to a valid read access token"),
		),
		validation.Field(&cfg.TMDB.ImageBaseURL, validation.By(httpURL)),
		validation.Field(&cfg.TMDB.Timeout, validation.Min(0).Exclusive()),
	); err != nil {
		return fmt.Errorf("tmdb: %w", err)
	}

	if err := validation.ValidateStruct(&cfg.Discover,
		validation.Field(&cfg.Discover.SortBy, validation.In(validSortKeys...)),
	); err != nil {
		return fmt.Errorf("discover: %w", err)
	}

	if cfg.Radarr.Enabled {
		if err := validation.ValidateStruct(&cfg.Radarr,
			validation.Field(&cfg.Radarr.URL, validation.Required, validation.By(httpURL)),
			validation.Field(&cfg.Radarr.APIKey, validation.Required, validation.NotIn("your-api-key-here")),
		); err != nil {
			return fmt.Errorf("radarr: %w", err)
		}
	}

	if err := validation.ValidateStruct(&cfg.Logging,
		validation.Field(&cfg.Logging.Level, validation.Required, validation.In(validLevels...)),
		validation.Field(&cfg.Logging.Format, validation.Required, validation.In(validFormats...)),
	); err != nil {
		return fmt.Errorf("logging: %w", err)
	}

	errs := validation.Errors{}
	for name, expression := range cfg.Filter {
		if strings.TrimSpace(expression) == "" {
			errs[name] = validation.NewError("filter_empty", "filter expression must not be empty")
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("filter: %w", errs)
	}

	return nil
}

func httpURL(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return validation.NewError("url_invalid", "must be an http(s) URL")
	}
	return nil
}
