package handlers

import (
	"net/http"
	"strings"

	"github.com/justbri/cinelog/services"
)

// The /tmdb routes proxy The Movie Database so the frontend never
// handles the API key. They are rate limited at the router.

// TMDBSearch proxies a title search. ?q is required, ?year optional.
func TMDBSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		respondError(w, http.StatusBadRequest, "Query parameter q is required", nil)
		return
	}
	year := queryInt(r, "year", 0)

	results, err := services.TMDB().SearchMovies(r.Context(), q, year)
	if err != nil {
		respondError(w, http.StatusBadGateway, "TMDB search failed", err)
		return
	}
	respondData(w, http.StatusOK, results)
}

// TMDBTrending proxies the trending list. ?window is "day" or "week".
func TMDBTrending(w http.ResponseWriter, r *http.Request) {
	results, err := services.TMDB().Trending(r.Context(), r.URL.Query().Get("window"))
	if err != nil {
		respondError(w, http.StatusBadGateway, "TMDB trending failed", err)
		return
	}
	respondData(w, http.StatusOK, results)
}

// TMDBGenres proxies the canonical genre list.
func TMDBGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := services.TMDB().GenreList(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, "TMDB genre list failed", err)
		return
	}
	respondData(w, http.StatusOK, genres)
}
