package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/justbri/cinelog/config"
	"github.com/justbri/cinelog/logger"
)

const tmdbImageBase = "https://image.tmdb.org/t/p/"

// TMDBClient is a minimal client for The Movie Database API.
type TMDBClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewTMDBClient builds a client from config. An empty API key is
// allowed; every call will then fail with a descriptive error.
func NewTMDBClient(cfg *config.Config) *TMDBClient {
	return &TMDBClient{
		apiKey:  cfg.TMDBAPIKey,
		baseURL: cfg.TMDBBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// TMDBSearchResult is one row of a /search/movie response.
type TMDBSearchResult struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	ReleaseDate      string  `json:"release_date"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	OriginalLanguage string  `json:"original_language"`
	GenreIDs         []int   `json:"genre_ids"`
}

type tmdbSearchResponse struct {
	Results      []TMDBSearchResult `json:"results"`
	TotalResults int                `json:"total_results"`
}

// TMDBPerson is a credited person (cast or crew).
type TMDBPerson struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Job         string `json:"job,omitempty"`
	Character   string `json:"character,omitempty"`
	ProfilePath string `json:"profile_path,omitempty"`
}

// TMDBGenre is a genre reference.
type TMDBGenre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type tmdbMovieDetails struct {
	ID               int         `json:"id"`
	Title            string      `json:"title"`
	OriginalTitle    string      `json:"original_title"`
	ReleaseDate      string      `json:"release_date"`
	Runtime          int         `json:"runtime"`
	Overview         string      `json:"overview"`
	BackdropPath     string      `json:"backdrop_path"`
	PosterPath       string      `json:"poster_path"`
	VoteAverage      float64     `json:"vote_average"`
	VoteCount        int         `json:"vote_count"`
	Popularity       float64     `json:"popularity"`
	OriginalLanguage string      `json:"original_language"`
	Tagline          string      `json:"tagline"`
	Status           string      `json:"status"`
	Budget           int64       `json:"budget"`
	Revenue          int64       `json:"revenue"`
	IMDBID           string      `json:"imdb_id"`
	Homepage         string      `json:"homepage"`
	Genres           []TMDBGenre `json:"genres"`
	Credits          struct {
		Cast []TMDBPerson `json:"cast"`
		Crew []TMDBPerson `json:"crew"`
	} `json:"credits"`
	Videos struct {
		Results []struct {
			Key  string `json:"key"`
			Site string `json:"site"`
			Type string `json:"type"`
		} `json:"results"`
	} `json:"videos"`
}

// MovieData is the flattened record FetchMovieData hands to the movie
// service: one struct instead of the raw TMDB response graph.
type MovieData struct {
	TMDBID           int          `json:"tmdb_id"`
	Title            string       `json:"title"`
	OriginalTitle    string       `json:"original_title"`
	ReleaseDate      string       `json:"release_date"`
	Year             int          `json:"year"`
	Runtime          int          `json:"runtime"`
	Overview         string       `json:"overview"`
	BackdropPath     string       `json:"backdrop_path"`
	PosterPath       string       `json:"poster_path"`
	VoteAverage      float64      `json:"vote_average"`
	VoteCount        int          `json:"vote_count"`
	Popularity       float64      `json:"popularity"`
	OriginalLanguage string       `json:"original_language"`
	Tagline          string       `json:"tagline"`
	Status           string       `json:"status"`
	Budget           int64        `json:"budget"`
	Revenue          int64        `json:"revenue"`
	IMDBID           string       `json:"imdb_id"`
	Homepage         string       `json:"homepage"`
	Directors        []TMDBPerson `json:"directors"`
	Genres           []TMDBGenre  `json:"genres"`
	Cast             []TMDBPerson `json:"cast"`
	TrailerKey       string       `json:"trailer_key"`
}

// SearchMovies runs a raw TMDB title search. An empty result list is
// not an error; the caller decides what that means.
func (c *TMDBClient) SearchMovies(ctx context.Context, title string, year int) ([]TMDBSearchResult, error) {
	q := url.Values{}
	q.Set("query", title)
	if year > 0 {
		q.Set("year", strconv.Itoa(year))
	}

	var resp tmdbSearchResponse
	if err := c.get(ctx, "/search/movie", q, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// FetchMovieData resolves a free-text title (and optional year) into a
// flattened movie record. A candidate whose release year matches the
// requested year wins; otherwise the first search hit is used.
// Returns (nil, nil) when the search has no hits at all, so callers
// can tell "not found" apart from transport failures.
func (c *TMDBClient) FetchMovieData(ctx context.Context, title string, year int) (*MovieData, error) {
	results, err := c.SearchMovies(ctx, title, year)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	best := results[0]
	if year > 0 {
		for _, r := range results {
			if releaseYear(r.ReleaseDate) == year {
				best = r
				break
			}
		}
	}

	q := url.Values{}
	q.Set("append_to_response", "credits,videos,keywords,images")

	var details tmdbMovieDetails
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", best.ID), q, &details); err != nil {
		return nil, err
	}

	data := &MovieData{
		TMDBID:           details.ID,
		Title:            details.Title,
		OriginalTitle:    details.OriginalTitle,
		ReleaseDate:      details.ReleaseDate,
		Year:             releaseYear(details.ReleaseDate),
		Runtime:          details.Runtime,
		Overview:         details.Overview,
		BackdropPath:     details.BackdropPath,
		PosterPath:       details.PosterPath,
		VoteAverage:      details.VoteAverage,
		VoteCount:        details.VoteCount,
		Popularity:       details.Popularity,
		OriginalLanguage: details.OriginalLanguage,
		Tagline:          details.Tagline,
		Status:           details.Status,
		Budget:           details.Budget,
		Revenue:          details.Revenue,
		IMDBID:           details.IMDBID,
		Homepage:         details.Homepage,
		Genres:           details.Genres,
	}

	for _, crew := range details.Credits.Crew {
		if crew.Job == "Director" {
			data.Directors = append(data.Directors, crew)
		}
	}

	// Top billing only; the diary doesn't need the full cast list.
	cast := details.Credits.Cast
	if len(cast) > 10 {
		cast = cast[:10]
	}
	data.Cast = cast

	for _, v := range details.Videos.Results {
		if v.Site == "YouTube" && v.Type == "Trailer" {
			data.TrailerKey = v.Key
			break
		}
	}

	return data, nil
}

// Trending proxies TMDB's trending movie list. window is "day" or
// "week"; anything else defaults to "week".
func (c *TMDBClient) Trending(ctx context.Context, window string) ([]TMDBSearchResult, error) {
	if window != "day" && window != "week" {
		window = "week"
	}

	var resp tmdbSearchResponse
	if err := c.get(ctx, "/trending/movie/"+window, url.Values{}, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// GenreList proxies TMDB's canonical movie genre list.
func (c *TMDBClient) GenreList(ctx context.Context) ([]TMDBGenre, error) {
	var resp struct {
		Genres []TMDBGenre `json:"genres"`
	}
	if err := c.get(ctx, "/genre/movie/list", url.Values{}, &resp); err != nil {
		return nil, err
	}
	return resp.Genres, nil
}

// ImageURL builds a full image URL for a TMDB path. Empty in, empty
// out.
func ImageURL(path, size string) string {
	if path == "" {
		return ""
	}
	if size == "" {
		size = "w500"
	}
	return tmdbImageBase + size + path
}

func (c *TMDBClient) get(ctx context.Context, path string, q url.Values, dst interface{}) error {
	if c.apiKey == "" {
		return fmt.Errorf("tmdb: TMDB_API_KEY is not set")
	}

	q.Set("api_key", c.apiKey)
	reqURL := c.baseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("tmdb: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb: request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return fmt.Errorf("tmdb: invalid API key")
	case http.StatusTooManyRequests:
		return fmt.Errorf("tmdb: rate limited")
	default:
		return fmt.Errorf("tmdb: HTTP %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("tmdb: decode response: %w", err)
	}
	return nil
}

func releaseYear(releaseDate string) int {
	if len(releaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(releaseDate[:4])
	if err != nil {
		logger.Debug().Str("release_date", releaseDate).Msg("Unparseable release date from TMDB")
		return 0
	}
	return year
}
