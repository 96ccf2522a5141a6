package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/marquee/catalog"
)

const (
	// DefaultBaseURL is the TMDB v3 API root
	DefaultBaseURL = "https://api.themoviedb.org/3"
	// DefaultLanguage is the language tag sent when none is configured
	DefaultLanguage = "en-US"
)

// Client represents a TMDB API client
type Client struct {
	baseURL    string
	token      string
	language   string
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger
}

var _ API = (*Client)(nil)

// NewClient creates a new TMDB client authenticated with a bearer token
func NewClient(baseURL, token string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: tmdb URL is required", ErrInvalidConfig)
	}
	if token == "" {
		return nil, fmt.Errorf("%w: tmdb token is required", ErrInvalidConfig)
	}

	client := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		token:    token,
		language: DefaultLanguage,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// doRequest performs an authenticated GET and returns the body of a 2xx reply
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	reqURL := c.baseURL + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("query", params.Encode()).
		Msg("Making TMDB API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, body)
	}

	return body, nil
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Message:    http.StatusText(status),
		Body:       string(body),
	}

	var payload statusResponse
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Code = payload.StatusCode
		if payload.StatusMessage != "" {
			apiErr.Message = payload.StatusMessage
		}
	}

	return apiErr
}

// TestConnection verifies the bearer token against /authentication
func (c *Client) TestConnection(ctx context.Context) error {
	body, err := c.doRequest(ctx, "/authentication", nil)
	if err != nil {
		return err
	}

	var result statusResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("%w: %s", ErrUnauthorized, result.StatusMessage)
	}

	return nil
}

// SearchMovies runs a title search
func (c *Client) SearchMovies(ctx context.Context, q SearchQuery) (*catalog.Page, error) {
	params := url.Values{}
	params.Set("query", q.Query)
	params.Set("include_adult", strconv.FormatBool(q.IncludeAdult))
	params.Set("language", c.language)
	params.Set("page", strconv.Itoa(max(q.Page, 1)))

	body, err := c.doRequest(ctx, "/search/movie", params)
	if err != nil {
		return nil, fmt.Errorf("failed to search movies: %w", err)
	}

	page, err := catalog.NormalizePage(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	c.logger.Debug().
		Str("query", q.Query).
		Int("count", len(page.Movies)).
		Int("total_pages", page.TotalPages).
		Msg("Retrieved search results from TMDB")

	return &page, nil
}

// DiscoverMovies fetches one page of the discover listing
func (c *Client) DiscoverMovies(ctx context.Context, q DiscoverQuery) (*catalog.Page, error) {
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = DefaultSortKey
	}

	params := url.Values{}
	params.Set("include_adult", strconv.FormatBool(q.IncludeAdult))
	params.Set("include_video", "false")
	params.Set("language", c.language)
	params.Set("page", strconv.Itoa(min(max(q.Page, 1), MaxPage)))
	params.Set("sort_by", string(sortBy))

	body, err := c.doRequest(ctx, "/discover/movie", params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch movies: %w", err)
	}

	page, err := catalog.NormalizePage(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse discover response: %w", err)
	}

	c.logger.Debug().
		Int("page", page.Number).
		Str("sort_by", string(sortBy)).
		Bool("include_adult", q.IncludeAdult).
		Int("count", len(page.Movies)).
		Int("total_pages", page.TotalPages).
		Msg("Retrieved discover page from TMDB")

	return &page, nil
}

// GetMovie fetches a single detail record
func (c *Client) GetMovie(ctx context.Context, id int64) (*catalog.MovieDetail, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid movie id %d", ErrNotFound, id)
	}

	params := url.Values{}
	params.Set("language", c.language)

	body, err := c.doRequest(ctx, "/movie/"+strconv.FormatInt(id, 10), params)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.IsNotFound() {
			return nil, fmt.Errorf("movie %d: %w", id, err)
		}
		return nil, fmt.Errorf("failed to fetch movie details: %w", err)
	}

	detail, err := catalog.NormalizeDetail(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse movie details: %w", err)
	}

	return &detail, nil
}
