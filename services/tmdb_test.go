package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/justbri/cinelog/config"
)

func testClient(t *testing.T, handler http.HandlerFunc) *TMDBClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewTMDBClient(&config.Config{
		TMDBAPIKey:  "test-key",
		TMDBBaseURL: srv.URL,
	})
}

func TestFetchMovieDataNoResults(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [], "total_results": 0}`))
	})

	data, err := client.FetchMovieData(context.Background(), "definitely not a film", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data != nil {
		t.Errorf("expected nil data for zero search hits, got %+v", data)
	}
}

func TestFetchMovieDataPrefersExactYear(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search/movie":
			w.Write([]byte(`{"results": [
				{"id": 1, "title": "Nosferatu", "release_date": "1922-03-04"},
				{"id": 2, "title": "Nosferatu", "release_date": "2024-12-25"}
			], "total_results": 2}`))
		case "/movie/2":
			w.Write([]byte(`{
				"id": 2, "title": "Nosferatu", "release_date": "2024-12-25", "runtime": 132,
				"credits": {"crew": [
					{"id": 10, "name": "Robert Eggers", "job": "Director"},
					{"id": 11, "name": "Jarin Blaschke", "job": "Director of Photography"}
				]},
				"videos": {"results": [
					{"key": "abc", "site": "YouTube", "type": "Teaser"},
					{"key": "xyz", "site": "YouTube", "type": "Trailer"}
				]}
			}`))
		default:
			t.Errorf("unexpected request path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	data, err := client.FetchMovieData(context.Background(), "Nosferatu", 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data == nil {
		t.Fatal("expected movie data")
	}
	if data.TMDBID != 2 {
		t.Errorf("expected the 2024 release (id 2), got id %d", data.TMDBID)
	}
	if data.Year != 2024 {
		t.Errorf("Year = %d, want 2024", data.Year)
	}
	if len(data.Directors) != 1 || data.Directors[0].Name != "Robert Eggers" {
		t.Errorf("expected only the credited director, got %+v", data.Directors)
	}
	if data.TrailerKey != "xyz" {
		t.Errorf("TrailerKey = %q, want the YouTube trailer key", data.TrailerKey)
	}
}

func TestSearchMoviesRequiresAPIKey(t *testing.T) {
	client := NewTMDBClient(&config.Config{TMDBBaseURL: "http://localhost:1"})
	if _, err := client.SearchMovies(context.Background(), "Heat", 0); err == nil {
		t.Error("expected an error without an API key")
	}
}

func TestImageURL(t *testing.T) {
	if got := ImageURL("/poster.jpg", ""); got != "https://image.tmdb.org/t/p/w500/poster.jpg" {
		t.Errorf("ImageURL = %q", got)
	}
	if got := ImageURL("/poster.jpg", "original"); got != "https://image.tmdb.org/t/p/original/poster.jpg" {
		t.Errorf("ImageURL = %q", got)
	}
	if got := ImageURL("", "w500"); got != "" {
		t.Errorf("empty path should give empty URL, got %q", got)
	}
}

func TestReleaseYear(t *testing.T) {
	if got := releaseYear("1994-09-23"); got != 1994 {
		t.Errorf("releaseYear = %d, want 1994", got)
	}
	if got := releaseYear(""); got != 0 {
		t.Errorf("releaseYear on empty = %d, want 0", got)
	}
	if got := releaseYear("n/a"); got != 0 {
		t.Errorf("releaseYear on junk = %d, want 0", got)
	}
}
