// Package tmdb is a read-only client for The Movie Database v3 API.
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

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/msomdec/reelnotes/internal/cache"
)

const imageBase = "https://image.tmdb.org/t/p/w500"

var (
	// ErrNotFound is returned when TMDB has no record for the requested id.
	ErrNotFound = errors.New("tmdb: not found")
	// ErrNotConfigured is returned when neither an API key nor a bearer
	// token was supplied.
	ErrNotConfigured = errors.New("tmdb: missing credentials")
)

// StatusError carries an unexpected upstream status code.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb status %d", e.Code)
}

type Client struct {
	APIKey      string
	BearerToken string
	BaseURL     string
	HTTP        *http.Client

	cache *cache.TTLCache[string, []byte]
}

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Movie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`

	// Detail-only fields.
	Tagline string  `json:"tagline,omitempty"`
	Runtime int     `json:"runtime,omitempty"`
	Genres  []Genre `json:"genres,omitempty"`
}

// PosterURL is the absolute w500 image URL, or "" when the movie has no poster.
func (m Movie) PosterURL() string {
	if m.PosterPath == "" {
		return ""
	}
	return imageBase + m.PosterPath
}

// Year is the release year, or "" when unknown.
func (m Movie) Year() string {
	if len(m.ReleaseDate) < 4 {
		return ""
	}
	return m.ReleaseDate[:4]
}

type MoviePage struct {
	Page         int     `json:"page"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
	Results      []Movie `json:"results"`
}

// New creates a client. A bearer token, when set, is sent as an
// Authorization header and the API key is not used. Successful responses
// are cached for cacheTTL; zero disables caching.
func New(apiKey, bearerToken, base string, cacheTTL time.Duration) *Client {
	c := &Client{
		APIKey:      apiKey,
		BearerToken: bearerToken,
		BaseURL:     strings.TrimRight(base, "/"),
		HTTP: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	if cacheTTL > 0 {
		c.cache = cache.NewTTL[string, []byte](cacheTTL)
	}
	return c
}

// Close stops the response cache's background sweep.
func (c *Client) Close() {
	if c.cache != nil {
		c.cache.Stop()
	}
}

func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*MoviePage, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("include_adult", "false")
	q.Set("language", "en-US")
	setPage(q, page)

	var out MoviePage
	if err := c.get(ctx, "/search/movie", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PopularMovies(ctx context.Context, page int) (*MoviePage, error) {
	q := url.Values{}
	q.Set("language", "en-US")
	setPage(q, page)

	var out MoviePage
	if err := c.get(ctx, "/movie/popular", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetMovie fetches details for a numeric TMDB id.
func (c *Client) GetMovie(ctx context.Context, id string) (*Movie, error) {
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		return nil, ErrNotFound
	}

	q := url.Values{}
	q.Set("language", "en-US")

	var out Movie
	if err := c.get(ctx, "/movie/"+id, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func setPage(q url.Values, page int) {
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	if c.APIKey == "" && c.BearerToken == "" {
		return ErrNotConfigured
	}

	// The cache key leaves out credentials.
	key := path + "?" + q.Encode()
	if c.cache != nil {
		if body, ok := c.cache.Get(key); ok {
			return json.Unmarshal(body, out)
		}
	}

	if c.BearerToken == "" {
		q.Set("api_key", c.APIKey)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.BearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.BearerToken)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb request: %w", err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case res.StatusCode != http.StatusOK:
		return &StatusError{Code: res.StatusCode}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read tmdb body: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode tmdb body: %w", err)
	}
	if c.cache != nil {
		c.cache.Set(key, body)
	}
	return nil
}
